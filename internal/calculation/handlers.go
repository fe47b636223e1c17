package calculation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"loancalc/internal/amortization"
	"loancalc/internal/api"
	"loancalc/internal/chart"
	"loancalc/internal/export"
	"loancalc/internal/history"
	"loancalc/internal/loanform"
)

const maxListLimit = 200

type Handlers struct {
	Service *Service
	Log     *zap.Logger
}

// CreateRequest accepts JSON numbers or numeric strings, so a form can post
// what the user typed and have it parsed server-side.
type CreateRequest struct {
	Principal         json.Number `json:"principal"`
	AnnualRatePercent json.Number `json:"annualRatePercent"`
	TermMonths        json.Number `json:"termMonths"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	client, ok := api.ClientFromContext(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing client identity")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	in, err := loanform.Parse(loanform.Raw{
		Principal:  req.Principal.String(),
		AnnualRate: req.AnnualRatePercent.String(),
		Months:     req.TermMonths.String(),
	})
	if err != nil {
		h.writeCalcError(w, err)
		return
	}

	calc, err := h.Service.Calculate(r.Context(), client.ID, in)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, calc)
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	client, ok := api.ClientFromContext(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing client identity")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	items, err := h.Service.List(r.Context(), client.ID, limit)
	if err != nil {
		h.Log.Error("list calculations", zap.String("client_id", client.ID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []history.Record{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	calc, ok := h.load(w, r)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, calc)
}

func (h Handlers) Charts(w http.ResponseWriter, r *http.Request) {
	calc, ok := h.load(w, r)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, chart.Build(calc.Report))
}

func (h Handlers) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	calc, ok := h.load(w, r)
	if !ok {
		return
	}

	// Render into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, calc.Report); err != nil {
		h.Log.Error("export xlsx", zap.String("id", calc.ID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to build spreadsheet")
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=amortization_%s.xlsx", calc.ID))
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.Warn("write xlsx response", zap.Error(err))
	}
}

func (h Handlers) load(w http.ResponseWriter, r *http.Request) (Calculation, bool) {
	client, ok := api.ClientFromContext(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing client identity")
		return Calculation{}, false
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return Calculation{}, false
	}
	// IDs are UUIDs; anything else cannot name a calculation on any backend.
	if _, err := uuid.Parse(id); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "calculation not found")
		return Calculation{}, false
	}

	calc, err := h.Service.Get(r.Context(), client.ID, id)
	if errors.Is(err, history.ErrNotFound) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "calculation not found")
		return Calculation{}, false
	}
	if err != nil {
		h.Log.Error("load calculation", zap.String("id", id), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return Calculation{}, false
	}
	return calc, true
}

func (h Handlers) writeCalcError(w http.ResponseWriter, err error) {
	var ie amortization.InvalidInputError
	if errors.As(err, &ie) {
		api.WriteFieldError(w, ie.Field, ie.Message)
		return
	}
	h.Log.Error("calculate", zap.Error(err))
	api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
