package amortization

import "github.com/shopspring/decimal"

// CurrencyScale is the number of decimal places money is reported at.
const CurrencyScale int32 = 2

// ReportEntry is a schedule row rounded for display. JSON keys follow the
// payment table columns (Payment#, Balance, Payment Amount, Interest, Principal).
type ReportEntry struct {
	Number    int             `json:"number"`
	Balance   decimal.Decimal `json:"balance"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
}

// Report is the rounded view of a Result handed to presentation code.
type Report struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRate    decimal.Decimal `json:"annualRate"`
	MonthlyRate   decimal.Decimal `json:"monthlyRate"`
	Terms         int             `json:"terms"`
	Payment       decimal.Decimal `json:"payment"`
	TotalPayment  decimal.Decimal `json:"totalPayment"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	Payments      []ReportEntry   `json:"payments"`
}

// Report rounds every monetary figure to CurrencyScale. Each row is rounded from
// its own unrounded values; nothing rounded is fed back into later rows.
//
// Totals are derived from the rounded payment, i.e. what the borrower actually
// pays over the term. A zero-rate loan always reports zero interest.
func (r Result) Report() Report {
	payment := money(r.Payment)
	principal := money(r.Input.Principal)
	terms := decimal.NewFromInt(int64(r.Input.TermPeriods))

	totalPayment := payment.Mul(terms)
	totalInterest := totalPayment.Sub(principal)
	if r.MonthlyRate == 0 {
		totalPayment = principal
		totalInterest = decimal.Zero
	}

	rows := make([]ReportEntry, 0, len(r.Schedule))
	for _, e := range r.Schedule {
		rows = append(rows, ReportEntry{
			Number:    e.Period,
			Balance:   money(e.BalanceBefore),
			Payment:   money(e.Payment),
			Interest:  money(e.Interest),
			Principal: money(e.Principal),
		})
	}

	return Report{
		Principal:     principal,
		AnnualRate:    decimal.NewFromFloat(r.Input.AnnualRatePercent),
		MonthlyRate:   decimal.NewFromFloat(r.MonthlyRate),
		Terms:         r.Input.TermPeriods,
		Payment:       payment,
		TotalPayment:  totalPayment,
		TotalInterest: totalInterest,
		Payments:      rows,
	}
}

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(CurrencyScale)
}
