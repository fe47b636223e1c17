package calculation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"loancalc/internal/api"
	"loancalc/internal/export"
	"loancalc/internal/history"
	"loancalc/pkg/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	s, _, _ := newTestService(history.NewMemory())
	h := Handlers{Service: s, Log: zap.NewNop()}

	r := chi.NewRouter()
	r.Use(api.ClientAuth(config.Config{AppEnv: "dev"}, zap.NewNop()))
	r.Post("/amortizations", h.Create)
	r.Get("/amortizations", h.List)
	r.Get("/amortizations/{id}", h.Get)
	r.Get("/amortizations/{id}/charts", h.Charts)
	r.Get("/amortizations/{id}/schedule.xlsx", h.ExportXLSX)
	return r
}

func do(t *testing.T, h http.Handler, method, path, client string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if client != "" {
		req.Header.Set("X-Client-ID", client)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreate_OK(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/amortizations", "alice",
		[]byte(`{"principal": 10000, "annualRatePercent": "6", "termMonths": 12}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got struct {
		ID     string `json:"id"`
		Report struct {
			Payment       string `json:"payment"`
			TotalPayment  string `json:"totalPayment"`
			TotalInterest string `json:"totalInterest"`
			Payments      []struct {
				Number    int    `json:"number"`
				Balance   string `json:"balance"`
				Interest  string `json:"interest"`
				Principal string `json:"principal"`
			} `json:"payments"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "860.66", got.Report.Payment)
	assert.Equal(t, "10327.92", got.Report.TotalPayment)
	assert.Equal(t, "327.92", got.Report.TotalInterest)
	require.Len(t, got.Report.Payments, 12)
	assert.Equal(t, 1, got.Report.Payments[0].Number)
	assert.Equal(t, "10000", got.Report.Payments[0].Balance)
	assert.Equal(t, "50", got.Report.Payments[0].Interest)
	assert.Equal(t, "810.66", got.Report.Payments[0].Principal)
}

func TestCreate_ValidationErrors(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"zero principal", `{"principal": 0, "annualRatePercent": 6, "termMonths": 12}`, "principal"},
		{"negative rate", `{"principal": 1000, "annualRatePercent": -2, "termMonths": 12}`, "annualRatePercent"},
		{"zero term", `{"principal": 1000, "annualRatePercent": 6, "termMonths": 0}`, "termPeriods"},
		{"fractional term", `{"principal": 1000, "annualRatePercent": 6, "termMonths": 12.5}`, "termPeriods"},
		{"missing principal", `{"annualRatePercent": 6, "termMonths": 12}`, "principal"},
		{"term over limit", `{"principal": 1000, "annualRatePercent": 6, "termMonths": 601}`, "termPeriods"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/amortizations", "alice", []byte(tc.body))
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var env api.ErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
			assert.Equal(t, tc.field, env.Error.Field)
		})
	}

	w := do(t, h, http.MethodPost, "/amortizations", "alice", []byte(`{invalid-json}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetChartsAndExport(t *testing.T) {
	h := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/amortizations", "alice",
		[]byte(`{"principal": "10000", "annualRatePercent": "6", "termMonths": "12"}`))
	require.Equal(t, http.StatusCreated, w.Code)
	var created Calculation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, h, http.MethodGet, "/amortizations/"+created.ID, "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got Calculation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.Report.Payment.Equal(created.Report.Payment))

	w = do(t, h, http.MethodGet, "/amortizations/"+created.ID, "bob", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "other clients cannot read it")

	w = do(t, h, http.MethodGet, "/amortizations/"+created.ID+"/charts", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var charts struct {
		Payments struct {
			Labels []string `json:"labels"`
		} `json:"payments"`
		Breakdown struct {
			Labels []string `json:"labels"`
			Values []string `json:"values"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &charts))
	assert.Len(t, charts.Payments.Labels, 12)
	assert.Equal(t, []string{"Principal", "Interest"}, charts.Breakdown.Labels)
	assert.Equal(t, []string{"10000", "327.92"}, charts.Breakdown.Values)

	w = do(t, h, http.MethodGet, "/amortizations/"+created.ID+"/schedule.xlsx", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.ScheduleSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 13)
}

func TestGet_MalformedIDIsNotFound(t *testing.T) {
	h := newTestRouter(t)

	for _, id := range []string{"abc", "123", "not-a-uuid-at-all", "00000000-0000-0000-0000-00000000000g"} {
		for _, suffix := range []string{"", "/charts", "/schedule.xlsx"} {
			w := do(t, h, http.MethodGet, "/amortizations/"+id+suffix, "alice", nil)
			require.Equal(t, http.StatusNotFound, w.Code, "id %q%s", id, suffix)

			var env api.ErrorEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, "NOT_FOUND", env.Error.Code)
		}
	}

	w := do(t, h, http.MethodGet, "/amortizations/6f1c2b1e-3d4a-4c5b-9e8f-0a1b2c3d4e5f", "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "well-formed but unknown id")
}

func TestList(t *testing.T) {
	h := newTestRouter(t)

	for i := 0; i < 3; i++ {
		w := do(t, h, http.MethodPost, "/amortizations", "alice",
			[]byte(`{"principal": 5000, "annualRatePercent": 4, "termMonths": 24}`))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := do(t, h, http.MethodGet, "/amortizations?limit=2", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Items []history.Record `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out.Items, 2)

	w = do(t, h, http.MethodGet, "/amortizations", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items": []}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/amortizations?limit=zero", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
