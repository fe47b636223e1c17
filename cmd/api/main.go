package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"loancalc/internal/api"
	"loancalc/internal/cache"
	"loancalc/internal/calculation"
	"loancalc/internal/history"
	"loancalc/internal/httpapi"
	"loancalc/internal/loanform"
	"loancalc/internal/metrics"
	"loancalc/pkg/config"
	"loancalc/pkg/db"
	"loancalc/pkg/logging"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store history.Store
	switch cfg.HistoryBackend {
	case "memory":
		log.Warn("history is kept in memory and lost on restart")
		store = history.NewMemory()
	default:
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			log.Fatal("db open", zap.Error(err))
		}
		defer conn.Close()

		if cfg.MigrationsPath != "" {
			if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
				log.Fatal("migrate", zap.Error(err))
			}
		}
		store = history.NewRepository(conn)
	}

	var reports cache.Store = cache.NewMemory(cfg.CacheMaxEntries, cfg.Redis.TTL)
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err := rc.Ping(ctx); err != nil {
			log.Fatal("redis ping", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer func() { _ = rc.Close() }()
		reports = rc
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := calculation.NewService(reports, store, loanform.Limits{
		MaxPrincipal:  cfg.Loan.MaxPrincipal,
		MaxAnnualRate: cfg.Loan.MaxAnnualRate,
		MaxTermMonths: cfg.Loan.MaxTermMonths,
	}, metrics.New(reg), log)

	limiter := api.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer limiter.Stop()

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:         cfg,
		Log:         log,
		Calculation: svc,
		Limiter:     limiter,
		Gatherer:    reg,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.AppEnv),
			zap.String("history", cfg.HistoryBackend),
			zap.Bool("redis", cfg.Redis.Addr != ""),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http serve", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
}
