// Command emi computes fixed-rate loan installments from the command line or
// over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "emi",
		Short: "Fixed-rate loan installment (EMI) calculator",
		Long: `emi computes the fixed monthly payment and total interest of an
amortizing loan from its principal, annual interest rate and term in years.`,
		SilenceUsage: true,
	}

	root.AddCommand(newCalcCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "emi version %s\n", version)
		},
	})

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
