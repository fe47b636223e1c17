package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"loancalc/internal/api"
	"loancalc/internal/calculation"
	"loancalc/pkg/config"
)

type Dependencies struct {
	Cfg         config.Config
	Log         *zap.Logger
	Calculation *calculation.Service
	Limiter     *api.RateLimiter
	// Gatherer backs /metrics; nil serves the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	calcHandlers := calculation.Handlers{Service: deps.Calculation, Log: deps.Log}

	r.Route("/v1", func(r chi.Router) {
		// Browser calculators live on other origins; only allow the configured ones.
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-Client-ID"},
			MaxAgeSeconds:  600,
		}))
		if deps.Limiter != nil {
			r.Use(api.RateLimit(deps.Limiter))
		}
		r.Use(api.ClientAuth(deps.Cfg, deps.Log))

		r.Post("/amortizations", calcHandlers.Create)
		r.Get("/amortizations", calcHandlers.List)
		r.Get("/amortizations/{id}", calcHandlers.Get)
		r.Get("/amortizations/{id}/charts", calcHandlers.Charts)
		r.Get("/amortizations/{id}/schedule.xlsx", calcHandlers.ExportXLSX)
	})

	return r
}
