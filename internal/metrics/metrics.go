// Package metrics holds the Prometheus collectors for the calculator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

type Metrics struct {
	Calculations    *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	SchedulePeriods prometheus.Histogram
	HistoryErrors   prometheus.Counter
}

// New registers the collectors with reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Calculations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loancalc",
			Name:      "calculations_total",
			Help:      "Amortization calculations by outcome.",
		}, []string{"outcome"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loancalc",
			Name:      "cache_lookups_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		SchedulePeriods: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "loancalc",
			Name:      "schedule_periods",
			Help:      "Number of periods in computed schedules.",
			Buckets:   []float64{12, 24, 36, 60, 84, 120, 180, 240, 360, 480, 600},
		}),
		HistoryErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "loancalc",
			Subsystem: "history",
			Name:      "save_errors_total",
			Help:      "Calculations that could not be recorded in history.",
		}),
	}
}
