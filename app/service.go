package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mrdnfinance/x402-across/api/handlers"
	"github.com/mrdnfinance/x402-across/cache"
	"github.com/mrdnfinance/x402-across/chains/evm"
	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/health"
	"github.com/mrdnfinance/x402-across/metrics"
	"github.com/mrdnfinance/x402-across/payment"
	"github.com/mrdnfinance/x402-across/protocol/across"
	"github.com/mrdnfinance/x402-across/protocol/x402"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	evmClient "github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/observability"
)

// Service holds every component built from the configuration. The API
// server and the command line payment flow share it.
type Service struct {
	Config *config.Config

	Chains      payment.Chains
	Tokens      *config.TokenStore
	Clients     map[uint64]*evmClient.EVMClient
	QuoteCache  *cache.QuoteCache
	AcrossAPI   *across.AcrossAPI
	Quoter      *payment.Quoter
	Facilitator *x402.Facilitator
	Builder     *payment.Builder

	// QuoteFetcher serves the quote route with mock quotes when the quote
	// service is disabled.
	QuoteFetcher handlers.QuoteFetcher

	Waiters         map[uint64]payment.TransactionWaiter
	FillWaiters     map[uint64]payment.FillWaiter
	DepositFetchers map[uint64]handlers.DepositFetcher
	BlockReaders    map[uint64]health.BlockReader
}

// LoadConfig reads the configuration selected by the --config and
// --config-url flags.
func LoadConfig() (*config.Config, error) {
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)
	configURL := viper.GetString("config-url")

	var configuration *config.Config
	if configURL != "" {
		configuration, err = config.GetSharedConfigFromNetwork(configURL)
		if err != nil {
			return nil, err
		}
	}

	if strings.ToLower(configFlag) == "env" {
		return config.GetConfigFromENV(configuration)
	}
	return config.GetConfigFromFile(configFlag, configuration)
}

func ConfigureLogger(level zerolog.Level, format string) {
	var out io.Writer = os.Stdout
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	observability.ConfigureLogger(level, out)
}

// InitMetrics starts the meter provider and registers the service metrics.
// The returned function flushes and stops the provider.
func InitMetrics(ctx context.Context, configuration *config.Config, version string) (*metrics.X402Metrics, func(), error) {
	mp, err := metrics.InitMetricProvider(ctx, configuration.ServiceConfig.OpenTelemetryCollectorURL)
	if err != nil {
		return nil, nil, err
	}
	shutdown := func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error().Msgf("Error shutting down meter provider: %v", err)
		}
	}

	x402Metrics, err := metrics.NewX402Metrics(
		ctx,
		mp.Meter("x402-metric-provider"),
		configuration.ServiceConfig.Env,
		configuration.ServiceConfig.Id,
		version,
	)
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	return x402Metrics, shutdown, nil
}

// NewService dials every configured chain and wires the payment components.
// Metrics may be nil.
func NewService(ctx context.Context, configuration *config.Config, m *metrics.X402Metrics) (*Service, error) {
	s := &Service{
		Config:          configuration,
		Chains:          make(payment.Chains),
		Tokens:          config.NewTokenStore(),
		Clients:         make(map[uint64]*evmClient.EVMClient),
		Waiters:         make(map[uint64]payment.TransactionWaiter),
		FillWaiters:     make(map[uint64]payment.FillWaiter),
		DepositFetchers: make(map[uint64]handlers.DepositFetcher),
		BlockReaders:    make(map[uint64]health.BlockReader),
	}
	clients := make(map[uint64]evmClient.Client)
	sc := configuration.ServiceConfig

	for _, chainConfig := range configuration.ChainConfigs {
		switch chainConfig["type"] {
		case "evm":
			{
				c, err := evm.NewEVMConfig(chainConfig)
				if err != nil {
					return nil, err
				}
				id := *c.GeneralChainConfig.Id

				client, err := evmClient.NewEVMClient(c.GeneralChainConfig.Endpoint, nil)
				if err != nil {
					return nil, fmt.Errorf("failed dialing chain %d: %w", id, err)
				}
				log.Info().Uint64("chain", id).Str("network", c.GeneralChainConfig.Network).Msgf("Registering EVM chain")

				s.Clients[id] = client
				s.Chains[id] = payment.ChainFromConfig(c)
				s.Tokens.Add(id, c.Tokens)
				clients[id] = client
				s.BlockReaders[id] = client
				s.Waiters[id] = payment.NewReceiptWaiter(client, c.Confirmations, c.Blocktime, c.ReceiptTimeout)
				s.DepositFetchers[id] = across.NewAcrossDepositFetcher(client)
				if sc.WatchFills && c.SpokePool != (common.Address{}) {
					s.FillWaiters[id] = across.NewFillWatcher(client, c.SpokePool, c.Blocktime)
				}
			}
		default:
			return nil, fmt.Errorf("type '%s' not recognized", chainConfig["type"])
		}
	}

	var quoteMetrics payment.QuoteMetrics
	if m != nil {
		quoteMetrics = m
	}

	s.QuoteCache = cache.NewQuoteCache(ctx, sc.QuoteTTL)
	var fetcher payment.QuoteFetcher
	s.QuoteFetcher = across.MockQuoter{}
	if !sc.MockQuotes {
		s.AcrossAPI = across.NewAcrossAPI(sc.AcrossURL)
		fetcher = s.AcrossAPI
		s.QuoteFetcher = s.AcrossAPI
	}
	s.Quoter = payment.NewQuoter(fetcher, s.QuoteCache, s.Chains, quoteMetrics)
	s.Facilitator = x402.NewFacilitator(sc.FacilitatorURL, sc.FacilitatorAPIKey)
	s.Builder = payment.NewBuilder(
		s.Chains,
		payment.ClientTokenReaders(clients),
		across.NewDeadlineValidator(across.ClientSpokePools(clients), time.Now),
		payment.BuilderConfig{
			CreditedRecipient: sc.CreditedRecipient,
			Platform:          sc.Platform,
			PlatformFeeBps:    sc.PlatformFeeBps,
			Resource:          sc.Resource,
			// nolint:gosec
			MaxTimeoutSeconds: int(sc.MaxTimeoutSeconds),
		},
		time.Now,
	)

	return s, nil
}

// PaywallRequirements prices the protected resource on the paywall network.
func (s *Service) PaywallRequirements() (x402.PaymentRequirements, error) {
	sc := s.Config.ServiceConfig
	chain, err := s.Chains.ByNetwork(sc.PaywallNetwork)
	if err != nil {
		return x402.PaymentRequirements{}, err
	}

	price, err := handlers.ParsePrice(sc.PaywallPrice)
	if err != nil {
		return x402.PaymentRequirements{}, err
	}
	amount, err := payment.ParseAmount(price, chain.Decimals)
	if err != nil {
		return x402.PaymentRequirements{}, err
	}

	requirements := x402.PaywallRequirements(
		amount,
		chain.Network,
		chain.Usdc,
		sc.CreditedRecipient,
		sc.Resource,
		handlers.PAYWALL_DESCRIPTION,
		chain.TokenName,
		chain.TokenVersion,
	)
	return requirements, requirements.Validate()
}

// NewOrchestrator creates a payment orchestrator driving the given wallet.
func (s *Service) NewOrchestrator(wallet payment.Wallet, m *metrics.X402Metrics) *payment.Orchestrator {
	var attemptMetrics payment.AttemptMetrics
	if m != nil {
		attemptMetrics = m
	}

	return payment.NewOrchestrator(
		wallet,
		s.Builder,
		s.Quoter,
		s.Facilitator,
		s.Waiters,
		s.FillWaiters,
		s.Chains,
		attemptMetrics,
		payment.OrchestratorConfig{
			SameChainGrace:  s.Config.ServiceConfig.SameChainGrace,
			CrossChainGrace: s.Config.ServiceConfig.CrossChainGrace,
		},
	)
}

func (s *Service) Close() {
	for _, c := range s.Clients {
		c.Close()
	}
}
