// Package cache stores computed reports keyed by their exact inputs.
package cache

import (
	"context"
	"strconv"

	"loancalc/internal/amortization"
)

type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key identifies a report by its inputs. Floats are formatted with the shortest
// representation that round-trips, so distinct inputs never share a key.
func Key(in amortization.Input) string {
	return "amortization:v1:" +
		strconv.FormatFloat(in.Principal, 'g', -1, 64) + ":" +
		strconv.FormatFloat(in.AnnualRatePercent, 'g', -1, 64) + ":" +
		strconv.Itoa(in.TermPeriods)
}
