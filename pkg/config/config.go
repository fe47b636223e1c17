package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	LogLevel       string
	MigrationsPath string

	// DATABASE_URL is the runtime connection (possibly through a pooler);
	// DIRECT_URL is used for migrations when set.
	DatabaseURL string
	DirectURL   string

	// HistoryBackend selects where calculations are recorded: "postgres" or "memory".
	HistoryBackend string

	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
	Loan  LoanConfig

	// AllowedOrigins is the CORS allowlist for browser clients, comma-separated in env.
	AllowedOrigins []string

	// CacheMaxEntries bounds the in-process report cache used without Redis.
	CacheMaxEntries int

	RateLimitCapacity int
	RateLimitWindow   time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// RedisConfig enables the shared report cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type AuthConfig struct {
	// TokenSecret signs and verifies client bearer tokens (HS256).
	TokenSecret string
	Audience    string
}

type LoanConfig struct {
	MaxPrincipal  float64
	MaxAnnualRate float64
	MaxTermMonths int
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

func Load() Config {
	// Local dev convenience; production relies on real environment variables.
	_ = godotenv.Load()

	// Cloud Run style PORT wins only when HTTP_ADDR is absent.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8080"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		LogLevel:       env("LOG_LEVEL", "info"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		HistoryBackend: env("HISTORY_BACKEND", "postgres"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "loancalc"),
			User:     env("DB_USER", "loancalc"),
			Password: env("DB_PASSWORD", "loancalc"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
			TTL:      envDuration("CACHE_TTL", 24*time.Hour),
		},
		Auth: AuthConfig{
			TokenSecret: os.Getenv("AUTH_TOKEN_SECRET"),
			Audience:    env("AUTH_AUDIENCE", "loancalc"),
		},
		Loan: LoanConfig{
			MaxPrincipal:  envFloat("LOAN_MAX_PRINCIPAL", 1_000_000_000),
			MaxAnnualRate: envFloat("LOAN_MAX_RATE", 1000),
			MaxTermMonths: envInt("LOAN_MAX_TERM", 600),
		},
		AllowedOrigins:    envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
		CacheMaxEntries:   envInt("CACHE_MAX_ENTRIES", 10_000),
		RateLimitCapacity: envInt("RATE_LIMIT_CAPACITY", 60),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return d
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
