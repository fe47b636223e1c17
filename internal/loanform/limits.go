package loanform

import (
	"fmt"

	"loancalc/internal/amortization"
)

const (
	DefaultMaxPrincipal  = 1_000_000_000.0
	DefaultMaxAnnualRate = 1000.0 // percent
	DefaultMaxTermMonths = 600    // 50 years
)

// Limits caps what the calculator accepts from users. The engine itself has no
// upper bounds; these keep request cost and figures sane.
type Limits struct {
	MaxPrincipal  float64
	MaxAnnualRate float64
	MaxTermMonths int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPrincipal:  DefaultMaxPrincipal,
		MaxAnnualRate: DefaultMaxAnnualRate,
		MaxTermMonths: DefaultMaxTermMonths,
	}
}

// Check runs the engine preconditions and then the upper bounds. A zero limit
// disables that bound.
func (l Limits) Check(in amortization.Input) error {
	if err := amortization.Validate(in); err != nil {
		return err
	}
	if l.MaxPrincipal > 0 && in.Principal > l.MaxPrincipal {
		return invalid("principal", amortization.CodeOutOfRange, fmt.Sprintf("principal exceeds the maximum of %.2f", l.MaxPrincipal))
	}
	if l.MaxAnnualRate > 0 && in.AnnualRatePercent > l.MaxAnnualRate {
		return invalid("annualRatePercent", amortization.CodeOutOfRange, fmt.Sprintf("annual rate exceeds the maximum of %.2f%%", l.MaxAnnualRate))
	}
	if l.MaxTermMonths > 0 && in.TermPeriods > l.MaxTermMonths {
		return invalid("termPeriods", amortization.CodeOutOfRange, fmt.Sprintf("term exceeds the maximum of %d months", l.MaxTermMonths))
	}
	return nil
}
