package amortization

import (
	"errors"
	"fmt"
)

// InvalidInputError is returned when a loan input violates a precondition.
// It is the only error the engine produces.
type InvalidInputError struct {
	Field   string
	Code    string
	Message string
}

func (e InvalidInputError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidInput reports whether err (or anything it wraps) is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie InvalidInputError
	return errors.As(err, &ie)
}

const (
	CodePrincipalInvalid = "PRINCIPAL_INVALID"
	CodeRateInvalid      = "RATE_INVALID"
	CodeTermInvalid      = "TERM_INVALID"
	CodeOutOfRange       = "OUT_OF_RANGE"
)
