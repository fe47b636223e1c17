package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"loancalc/internal/amortization"
	"loancalc/internal/export"
	"loancalc/internal/loanform"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule for a loan",
		Long: `Print the payment table for a fixed-rate loan repaid in equal monthly payments.
Principal accepts thousands separators and the rate may carry a trailing %.`,
		Example: `  loancalc schedule --principal 10,000 --rate 6 --months 12
  loancalc schedule --principal 250000 --rate 4.5% --months 360 --xlsx schedule.xlsx`,
		Args: cobra.NoArgs,
		RunE: runSchedule,
	}
	cmd.Flags().StringP("principal", "p", "", "Amount borrowed")
	cmd.Flags().StringP("rate", "r", "", "Annual interest rate in percent")
	cmd.Flags().StringP("months", "m", "", "Number of monthly payments")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	cmd.Flags().String("xlsx", "", "Also write the schedule to this spreadsheet file")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("months")
	return cmd
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	principal, _ := cmd.Flags().GetString("principal")
	rate, _ := cmd.Flags().GetString("rate")
	months, _ := cmd.Flags().GetString("months")
	asJSON, _ := cmd.Flags().GetBool("json")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	in, err := loanform.Parse(loanform.Raw{Principal: principal, AnnualRate: rate, Months: months})
	if err != nil {
		return err
	}
	if err := loanform.DefaultLimits().Check(in); err != nil {
		return err
	}
	res, err := amortization.ComputeInput(in)
	if err != nil {
		return err
	}
	rep := res.Report()

	if xlsxPath != "" {
		if err := writeXLSXFile(xlsxPath, rep); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	if err := printSchedule(out, rep); err != nil {
		return err
	}
	if xlsxPath != "" {
		fmt.Fprintf(out, "\nSchedule written to %s\n", xlsxPath)
	}
	return nil
}

func printSchedule(w io.Writer, rep amortization.Report) error {
	fmt.Fprintf(w, "Principal:       %s\n", rep.Principal.StringFixed(amortization.CurrencyScale))
	fmt.Fprintf(w, "Annual rate:     %s%%\n", rep.AnnualRate.String())
	fmt.Fprintf(w, "Terms:           %d\n", rep.Terms)
	fmt.Fprintf(w, "Monthly payment: %s\n", rep.Payment.StringFixed(amortization.CurrencyScale))
	fmt.Fprintf(w, "Total payment:   %s\n", rep.TotalPayment.StringFixed(amortization.CurrencyScale))
	fmt.Fprintf(w, "Total interest:  %s\n\n", rep.TotalInterest.StringFixed(amortization.CurrencyScale))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Payment#\tBalance\tPayment Amount\tInterest\tPrincipal\t")
	for _, e := range rep.Payments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			e.Number,
			e.Balance.StringFixed(amortization.CurrencyScale),
			e.Payment.StringFixed(amortization.CurrencyScale),
			e.Interest.StringFixed(amortization.CurrencyScale),
			e.Principal.StringFixed(amortization.CurrencyScale),
		)
	}
	return tw.Flush()
}

func writeXLSXFile(path string, rep amortization.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := export.WriteXLSX(f, rep); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
