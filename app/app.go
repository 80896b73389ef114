// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrdnfinance/x402-across/api"
	"github.com/mrdnfinance/x402-across/api/handlers"
	"github.com/mrdnfinance/x402-across/health"
	"github.com/mrdnfinance/x402-across/metrics"
	"github.com/rs/zerolog/log"
)

var Version string

func Run() error {
	configuration, err := LoadConfig()
	panicOnError(err)

	ConfigureLogger(configuration.ServiceConfig.LogLevel, configuration.ServiceConfig.LogFormat)
	log.Info().Msg("Successfully loaded configuration")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	x402Metrics, shutdownMetrics, err := InitMetrics(ctx, configuration, Version)
	panicOnError(err)
	defer shutdownMetrics()

	service, err := NewService(ctx, configuration, x402Metrics)
	panicOnError(err)
	defer service.Close()

	healthHandler := health.NewHandler(service.BlockReaders)
	go health.StartHealthEndpoint(configuration.ServiceConfig.HealthPort, healthHandler)

	paywallRequirements, err := service.PaywallRequirements()
	panicOnError(err)

	h := api.Handlers{
		Quote:   handlers.NewQuoteHandler(service.QuoteFetcher, service.QuoteCache, service.Tokens),
		Settle:  handlers.NewSettleHandler(service.Facilitator),
		Verify:  handlers.NewVerifyHandler(service.Facilitator),
		Paywall: handlers.NewPaywallHandler(paywallRequirements, service.Facilitator, service.Facilitator),
		Deposit: handlers.NewDepositHandler(service.DepositFetchers),
		Health:  healthHandler,
	}
	go api.Serve(ctx, configuration.ServiceConfig.ApiAddr, h, metrics.NewHTTPMetrics())

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	log.Info().Msgf("Started %s with %d chains. Version: v%s", configuration.ServiceConfig.Id, len(service.Chains), Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	return nil
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
