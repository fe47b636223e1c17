// Package chart shapes a report into the two datasets the calculator UI plots.
// It produces data only; drawing is left to the client.
package chart

import (
	"strconv"

	"github.com/shopspring/decimal"

	"loancalc/internal/amortization"
)

// PaymentSeries feeds the stacked principal/interest bar chart, one bar per period.
type PaymentSeries struct {
	Title     string            `json:"title"`
	Labels    []string          `json:"labels"`
	Principal []decimal.Decimal `json:"principal"`
	Interest  []decimal.Decimal `json:"interest"`
}

// Breakdown feeds the loan breakdown pie chart.
type Breakdown struct {
	Title  string            `json:"title"`
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

type Datasets struct {
	Payments  PaymentSeries `json:"payments"`
	Breakdown Breakdown     `json:"breakdown"`
}

func Build(rep amortization.Report) Datasets {
	series := PaymentSeries{
		Title:     "Payments",
		Labels:    make([]string, 0, len(rep.Payments)),
		Principal: make([]decimal.Decimal, 0, len(rep.Payments)),
		Interest:  make([]decimal.Decimal, 0, len(rep.Payments)),
	}
	for _, p := range rep.Payments {
		series.Labels = append(series.Labels, strconv.Itoa(p.Number))
		series.Principal = append(series.Principal, p.Principal)
		series.Interest = append(series.Interest, p.Interest)
	}

	return Datasets{
		Payments: series,
		Breakdown: Breakdown{
			Title:  "Loan Breakdown",
			Labels: []string{"Principal", "Interest"},
			Values: []decimal.Decimal{rep.Principal, rep.TotalInterest},
		},
	}
}
