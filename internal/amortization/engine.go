// Package amortization computes level-payment loan schedules.
//
// Everything here is pure: no I/O, no logging, no shared state. Values are
// tracked at full float64 precision and only rounded by Report.
package amortization

import (
	"fmt"
	"math"
)

type Input struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermPeriods       int     `json:"termPeriods"`
}

// Entry is one row of the schedule.
type Entry struct {
	Period        int
	Payment       float64
	BalanceBefore float64
	Interest      float64
	Principal     float64
}

// BalanceAfter is the outstanding principal once this period's payment is applied.
func (e Entry) BalanceAfter() float64 {
	return e.BalanceBefore - e.Principal
}

type Result struct {
	Input         Input
	MonthlyRate   float64
	Payment       float64
	TotalPayment  float64
	TotalInterest float64
	Schedule      []Entry
}

// MonthlyRate converts a nominal annual percentage into the periodic rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// LevelPayment returns the fixed payment that retires principal over n periods at rate r.
//
// The textbook form P*r*(1+r)^n / ((1+r)^n - 1) overflows for long terms, so it is
// evaluated as P*r / (1 - (1+r)^-n) with log1p/expm1. A zero rate splits the
// principal evenly.
func LevelPayment(principal, r float64, n int) float64 {
	if r == 0 {
		return principal / float64(n)
	}
	return principal * r / -math.Expm1(-float64(n)*math.Log1p(r))
}

// Compute builds the amortization schedule for a loan.
func Compute(principal, annualRatePercent float64, termPeriods int) (Result, error) {
	return ComputeInput(Input{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermPeriods:       termPeriods,
	})
}

func ComputeInput(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	r := MonthlyRate(in.AnnualRatePercent)
	payment := LevelPayment(in.Principal, r, in.TermPeriods)
	if !finite(payment) {
		return Result{}, InvalidInputError{Field: "principal", Code: CodeOutOfRange, Message: "inputs produce a payment outside the representable range"}
	}

	schedule := make([]Entry, 0, in.TermPeriods)
	balance := in.Principal
	for period := 1; period <= in.TermPeriods; period++ {
		interest := balance * r
		e := Entry{
			Period:        period,
			Payment:       payment,
			BalanceBefore: balance,
			Interest:      interest,
			Principal:     payment - interest,
		}
		schedule = append(schedule, e)
		balance = e.BalanceAfter()
	}

	totalPayment := payment * float64(in.TermPeriods)
	totalInterest := totalPayment - in.Principal
	if r == 0 {
		totalPayment = in.Principal
		totalInterest = 0
	}

	return Result{
		Input:         in,
		MonthlyRate:   r,
		Payment:       payment,
		TotalPayment:  totalPayment,
		TotalInterest: totalInterest,
		Schedule:      schedule,
	}, nil
}

// MaxTermPeriods caps the schedule length at 1200 years of monthly periods,
// independent of any service limits.
const MaxTermPeriods = 1200 * 12

// Validate checks the engine preconditions without computing anything.
func Validate(in Input) error {
	if !finite(in.Principal) || in.Principal <= 0 {
		return InvalidInputError{Field: "principal", Code: CodePrincipalInvalid, Message: "principal must be > 0"}
	}
	if !finite(in.AnnualRatePercent) || in.AnnualRatePercent < 0 {
		return InvalidInputError{Field: "annualRatePercent", Code: CodeRateInvalid, Message: "annual rate must be >= 0"}
	}
	if in.TermPeriods < 1 {
		return InvalidInputError{Field: "termPeriods", Code: CodeTermInvalid, Message: "term must be at least 1 period"}
	}
	if in.TermPeriods > MaxTermPeriods {
		return InvalidInputError{Field: "termPeriods", Code: CodeOutOfRange, Message: fmt.Sprintf("term must be at most %d periods", MaxTermPeriods)}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
