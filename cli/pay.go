package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrdnfinance/x402-across/app"
	"github.com/mrdnfinance/x402-across/chains/evm/wallet"
	"github.com/mrdnfinance/x402-across/config"
	"github.com/mrdnfinance/x402-across/payment"
)

const PrivateKeyFlagName = "private-key"

var payCMD = &cobra.Command{
	Use:   "pay",
	Short: "Pay USDC to the credited recipient through the x402 facilitator",
	Long: "Signs an EIP-3009 authorization with a local key and settles it through the facilitator. " +
		"Cross-chain payments are bridged with Across to the destination network.",
	RunE: pay,
}

var (
	payAmount string
	payFrom   string
	payTo     string
)

func init() {
	payCMD.Flags().StringVar(&payAmount, "amount", "", "USDC amount, e.g. 1.5")
	_ = payCMD.MarkFlagRequired("amount")
	payCMD.Flags().StringVar(&payFrom, "from", "base-sepolia", "source network")
	payCMD.Flags().StringVar(&payTo, "to", "optimism-sepolia", "destination network")
	payCMD.Flags().String(PrivateKeyFlagName, "", "hex encoded payer key, read from X402_PRIVATE_KEY when empty")
	_ = viper.BindPFlag(PrivateKeyFlagName, payCMD.Flags().Lookup(PrivateKeyFlagName))
	_ = viper.BindEnv(PrivateKeyFlagName, config.ENV_PREFIX+"_PRIVATE_KEY")
}

func pay(cmd *cobra.Command, args []string) error {
	configuration, err := app.LoadConfig()
	if err != nil {
		return err
	}
	app.ConfigureLogger(configuration.ServiceConfig.LogLevel, configuration.ServiceConfig.LogFormat)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	x402Metrics, shutdownMetrics, err := app.InitMetrics(ctx, configuration, app.Version)
	if err != nil {
		return err
	}
	defer shutdownMetrics()

	service, err := app.NewService(ctx, configuration, x402Metrics)
	if err != nil {
		return err
	}
	defer service.Close()

	source, err := service.Chains.ByNetwork(payFrom)
	if err != nil {
		return err
	}
	chainIds := make([]uint64, 0, len(service.Chains))
	for id := range service.Chains {
		chainIds = append(chainIds, id)
	}

	w, err := wallet.NewLocalWallet(viper.GetString(PrivateKeyFlagName), source.Id, chainIds)
	if err != nil {
		return err
	}
	log.Info().Msgf("Paying from %s", w.Address().Hex())

	orchestrator := service.NewOrchestrator(w, x402Metrics)
	statuses, unsubscribe := orchestrator.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for status := range statuses {
			l := log.Info().Str("step", string(status.Step))
			if status.TxHash != "" {
				l = l.Str("tx", status.TxHash)
			}
			if status.ExplorerURL != "" {
				l = l.Str("explorer", status.ExplorerURL)
			}
			if status.BridgeStatus != "" {
				l = l.Str("bridge", string(status.BridgeStatus))
			}
			if status.Error != "" {
				l = l.Str("error", status.Error)
			}
			l.Msg("Payment status changed")
		}
	}()

	err = orchestrator.Submit(ctx, payment.SubmitRequest{
		Amount:             payAmount,
		SourceNetwork:      payFrom,
		DestinationNetwork: payTo,
	})
	unsubscribe()
	<-done
	return err
}
