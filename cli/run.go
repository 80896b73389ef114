package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrdnfinance/x402-across/app"
)

var runCMD = &cobra.Command{
	Use:   "run",
	Short: "Run the payment API",
	Long:  "Serves quote, verify, settle and paywall routes for x402 payments settled through Across",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run()
	},
}
