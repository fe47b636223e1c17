// Package export writes amortization reports to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"loancalc/internal/amortization"
)

const (
	ScheduleSheet = "Schedule"
	SummarySheet  = "Summary"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var scheduleHeaders = []string{"Payment#", "Balance", "Payment Amount", "Interest", "Principal"}

// WriteXLSX renders the schedule and summary sheets into w.
func WriteXLSX(w io.Writer, rep amortization.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile starts with "Sheet1"; rename it rather than leaving an empty sheet behind.
	if err := f.SetSheetName("Sheet1", ScheduleSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	for i, h := range scheduleHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ScheduleSheet, cell, h); err != nil {
			return err
		}
	}
	for i, p := range rep.Payments {
		row := i + 2
		values := []any{
			p.Number,
			p.Balance.InexactFloat64(),
			p.Payment.InexactFloat64(),
			p.Interest.InexactFloat64(),
			p.Principal.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(ScheduleSheet, cell, v); err != nil {
				return err
			}
		}
	}

	currency, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}
	if len(rep.Payments) > 0 {
		last := fmt.Sprintf("E%d", len(rep.Payments)+1)
		if err := f.SetCellStyle(ScheduleSheet, "B2", last, currency); err != nil {
			return err
		}
	}

	summary := [][2]any{
		{"Principal", rep.Principal.InexactFloat64()},
		{"Annual Rate (%)", rep.AnnualRate.InexactFloat64()},
		{"Terms", rep.Terms},
		{"Monthly Payment", rep.Payment.InexactFloat64()},
		{"Total Payment", rep.TotalPayment.InexactFloat64()},
		{"Total Interest", rep.TotalInterest.InexactFloat64()},
	}
	for i, kv := range summary {
		row := i + 1
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), kv[1]); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}
