// Package loanform turns raw calculator form values into engine input.
package loanform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"loancalc/internal/amortization"
)

// Raw holds the three form fields exactly as the user typed them.
type Raw struct {
	Principal  string `json:"principal"`
	AnnualRate string `json:"annualRatePercent"`
	Months     string `json:"termMonths"`
}

// Parse converts raw form values to an amortization.Input. It only checks that the
// values are numbers; range checks belong to the engine and to Limits.
func Parse(raw Raw) (amortization.Input, error) {
	principal, err := parsePrincipal(raw.Principal)
	if err != nil {
		return amortization.Input{}, err
	}
	rate, err := parseDecimal("annualRatePercent", strings.TrimSuffix(strings.TrimSpace(raw.AnnualRate), "%"))
	if err != nil {
		return amortization.Input{}, err
	}

	months := strings.TrimSpace(raw.Months)
	if months == "" {
		return amortization.Input{}, invalid("termPeriods", amortization.CodeTermInvalid, "term is required")
	}
	n, err := strconv.Atoi(months)
	if err != nil {
		return amortization.Input{}, invalid("termPeriods", amortization.CodeTermInvalid, "term must be a whole number of months")
	}

	p, _ := principal.Float64()
	r, _ := rate.Float64()
	return amortization.Input{Principal: p, AnnualRatePercent: r, TermPeriods: n}, nil
}

// groupedAmount matches a number whose integer part uses "," between groups of
// three digits, e.g. 1,234,567.89.
var groupedAmount = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parsePrincipal accepts "," only as a thousands separator. Anything else with a
// comma ("10,5", "1,0,0") is rejected rather than guessed at.
func parsePrincipal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		if !groupedAmount.MatchString(s) {
			return decimal.Zero, invalid("principal", amortization.CodePrincipalInvalid, "principal may only use ',' to group thousands")
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	return parseDecimal("principal", s)
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	code := amortization.CodePrincipalInvalid
	if field != "principal" {
		code = amortization.CodeRateInvalid
	}
	if s == "" {
		return decimal.Zero, invalid(field, code, field+" is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, code, fmt.Sprintf("%s must be a number", field))
	}
	return d, nil
}

func invalid(field, code, msg string) amortization.InvalidInputError {
	return amortization.InvalidInputError{Field: field, Code: code, Message: msg}
}
