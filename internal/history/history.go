// Package history keeps a per-client log of calculations. Only inputs and the
// headline figures are stored; schedules are recomputed on demand.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"loancalc/internal/amortization"
)

var ErrNotFound = errors.New("calculation not found")

type Record struct {
	ID                string          `json:"id"`
	ClientID          string          `json:"clientId"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent"`
	TermMonths        int             `json:"termMonths"`
	Payment           decimal.Decimal `json:"payment"`
	TotalPayment      decimal.Decimal `json:"totalPayment"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// Input rebuilds the engine input. Principal and rate were captured with
// decimal.NewFromFloat, so the conversion back is exact.
func (r Record) Input() amortization.Input {
	p, _ := r.Principal.Float64()
	rate, _ := r.AnnualRatePercent.Float64()
	return amortization.Input{Principal: p, AnnualRatePercent: rate, TermPeriods: r.TermMonths}
}

// NewRecord captures a computed report for clientID.
func NewRecord(id, clientID string, in amortization.Input, rep amortization.Report, at time.Time) Record {
	return Record{
		ID:                id,
		ClientID:          clientID,
		Principal:         decimal.NewFromFloat(in.Principal),
		AnnualRatePercent: decimal.NewFromFloat(in.AnnualRatePercent),
		TermMonths:        in.TermPeriods,
		Payment:           rep.Payment,
		TotalPayment:      rep.TotalPayment,
		TotalInterest:     rep.TotalInterest,
		CreatedAt:         at,
	}
}

type Store interface {
	Save(ctx context.Context, rec Record) error
	// Get returns ErrNotFound when id is unknown or belongs to another client.
	Get(ctx context.Context, clientID, id string) (*Record, error)
	// List returns the newest records first.
	List(ctx context.Context, clientID string, limit int) ([]Record, error)
}
