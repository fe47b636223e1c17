// Package calculation exposes the amortization engine to API clients: it applies
// request limits, caches reports, records history and serves the HTTP handlers.
package calculation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"loancalc/internal/amortization"
	"loancalc/internal/cache"
	"loancalc/internal/history"
	"loancalc/internal/loanform"
	"loancalc/internal/metrics"
)

// Calculation is a report together with the history entry it was recorded under.
// ID is empty when history could not be written.
type Calculation struct {
	ID        string              `json:"id,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	Report    amortization.Report `json:"report"`
}

type Service struct {
	cache   cache.Store
	history history.Store
	limits  loanform.Limits
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
}

func NewService(c cache.Store, h history.Store, limits loanform.Limits, m *metrics.Metrics, log *zap.Logger) *Service {
	return &Service{
		cache:   c,
		history: h,
		limits:  limits,
		metrics: m,
		log:     log,
		now:     time.Now,
	}
}

// Calculate computes (or fetches from cache) the report for in and records it for clientID.
// Failing to record history is logged and does not fail the calculation.
func (s *Service) Calculate(ctx context.Context, clientID string, in amortization.Input) (Calculation, error) {
	if err := s.limits.Check(in); err != nil {
		s.metrics.Calculations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return Calculation{}, err
	}

	rep, err := s.report(ctx, in)
	if err != nil {
		s.metrics.Calculations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return Calculation{}, err
	}
	s.metrics.Calculations.WithLabelValues(metrics.OutcomeOK).Inc()
	s.metrics.SchedulePeriods.Observe(float64(in.TermPeriods))

	rec := history.NewRecord(uuid.NewString(), clientID, in, rep, s.now().UTC())
	if err := s.history.Save(ctx, rec); err != nil {
		s.metrics.HistoryErrors.Inc()
		s.log.Warn("failed to record calculation",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return Calculation{CreatedAt: rec.CreatedAt, Report: rep}, nil
	}

	return Calculation{ID: rec.ID, CreatedAt: rec.CreatedAt, Report: rep}, nil
}

// Get recomputes the report of a recorded calculation.
func (s *Service) Get(ctx context.Context, clientID, id string) (Calculation, error) {
	rec, err := s.history.Get(ctx, clientID, id)
	if err != nil {
		return Calculation{}, err
	}
	rep, err := s.report(ctx, rec.Input())
	if err != nil {
		return Calculation{}, fmt.Errorf("recompute %s: %w", id, err)
	}
	return Calculation{ID: rec.ID, CreatedAt: rec.CreatedAt, Report: rep}, nil
}

func (s *Service) List(ctx context.Context, clientID string, limit int) ([]history.Record, error) {
	return s.history.List(ctx, clientID, limit)
}

func (s *Service) report(ctx context.Context, in amortization.Input) (amortization.Report, error) {
	key := cache.Key(in)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var rep amortization.Report
		if err := json.Unmarshal([]byte(raw), &rep); err == nil {
			s.metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()
			return rep, nil
		}
		s.log.Warn("discarding unreadable cached report", zap.String("key", key))
	}
	s.metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()

	res, err := amortization.ComputeInput(in)
	if err != nil {
		return amortization.Report{}, err
	}
	rep := res.Report()

	if b, err := json.Marshal(rep); err == nil {
		if err := s.cache.Set(ctx, key, string(b)); err != nil {
			s.log.Warn("failed to cache report", zap.String("key", key), zap.Error(err))
		}
	}
	return rep, nil
}
