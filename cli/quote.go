package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrdnfinance/x402-across/app"
	"github.com/mrdnfinance/x402-across/payment"
)

var quoteCMD = &cobra.Command{
	Use:   "quote",
	Short: "Quote a USDC payment between two networks",
	RunE:  quote,
}

var (
	quoteAmount string
	quoteFrom   string
	quoteTo     string
)

func init() {
	quoteCMD.Flags().StringVar(&quoteAmount, "amount", "", "USDC amount, e.g. 1.5")
	_ = quoteCMD.MarkFlagRequired("amount")
	quoteCMD.Flags().StringVar(&quoteFrom, "from", "base-sepolia", "source network")
	quoteCMD.Flags().StringVar(&quoteTo, "to", "optimism-sepolia", "destination network")
}

func quote(cmd *cobra.Command, args []string) error {
	configuration, err := app.LoadConfig()
	if err != nil {
		return err
	}
	app.ConfigureLogger(configuration.ServiceConfig.LogLevel, configuration.ServiceConfig.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
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

	source, err := service.Chains.ByNetwork(quoteFrom)
	if err != nil {
		return err
	}
	dest, err := service.Chains.ByNetwork(quoteTo)
	if err != nil {
		return err
	}
	amount, err := payment.ParseAmount(quoteAmount, source.Decimals)
	if err != nil {
		return err
	}

	q, err := service.Quoter.Quote(ctx, payment.QuoteInput{
		Amount:             amount,
		SourceChainId:      source.Id,
		DestinationChainId: dest.Id,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
