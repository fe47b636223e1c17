// Package cli implements the loancalc command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Output goes to cmd.OutOrStdout so tests
// can capture it.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loancalc",
		Short: "Loan amortization calculator",
		Long: `Compute level-payment amortization schedules from the command line.
The same engine backs the HTTP API served by cmd/api.`,
		SilenceUsage: true,
	}
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newTokenCmd())
	return root
}
