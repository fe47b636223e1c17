package httpapi

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loancalc/internal/api"
	"loancalc/internal/cache"
	"loancalc/internal/calculation"
	"loancalc/internal/history"
	"loancalc/internal/loanform"
	"loancalc/internal/metrics"
	"loancalc/pkg/config"
)

func newTestServer(t *testing.T, limiter *api.RateLimiter) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := calculation.NewService(cache.NewMemory(0, time.Hour), history.NewMemory(), loanform.DefaultLimits(), metrics.New(reg), zap.NewNop())
	srv := httptest.NewServer(NewRouter(Dependencies{
		Cfg:         config.Config{AppEnv: "dev", AllowedOrigins: []string{"https://calc.example"}},
		Log:         zap.NewNop(),
		Calculation: svc,
		Limiter:     limiter,
		Gatherer:    reg,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, err = http.Post(srv.URL+"/v1/amortizations", "application/json",
		bytes.NewBufferString(`{"principal": 10000, "annualRatePercent": 6, "termMonths": 12}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), `loancalc_calculations_total{outcome="ok"} 1`), string(body))
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/v1/amortizations", nil)
	req.Header.Set("Origin", "https://calc.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://calc.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimited(t *testing.T) {
	limiter := api.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	srv := newTestServer(t, limiter)

	resp, err := http.Get(srv.URL + "/v1/amortizations")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/v1/amortizations")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
