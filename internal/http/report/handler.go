package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/report"
)

const (
	defaultMonths = 6
	maxMonths     = 120
)

// Source provides the snapshot reports are computed from.
type Source interface {
	List() expense.Snapshot
}

type Handler struct {
	source Source
	now    func() time.Time
	logger *slog.Logger
}

func NewHandler(source Source, now func() time.Time, logger *slog.Logger) *Handler {
	return &Handler{source: source, now: now, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.categories)
	r.Get("/monthly", h.monthly)
	r.Get("/dashboard", h.dashboard)
	r.Get("/summary", h.summary)
}

type categoriesResponse struct {
	Range  report.Range           `json:"range"`
	Total  float64                `json:"total"`
	Totals []report.CategoryTotal `json:"totals"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	rng := report.MonthRange(h.now())

	if s := r.URL.Query().Get("start"); s != "" {
		d, err := expense.ParseDate(s)
		if err != nil {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}

		rng.Start = d
	}

	if s := r.URL.Query().Get("end"); s != "" {
		d, err := expense.ParseDate(s)
		if err != nil {
			http.Error(w, "invalid end date", http.StatusBadRequest)
			return
		}

		rng.End = d
	}

	if rng.End.Before(rng.Start) {
		http.Error(w, "end date is before start date", http.StatusBadRequest)
		return
	}

	expenses := h.source.List().Expenses

	h.writeJSON(w, categoriesResponse{
		Range:  rng,
		Total:  report.Total(report.Filter(expenses, rng)),
		Totals: report.CategoryTotals(expenses, rng),
	})
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	n, err := months(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, report.MonthlyTotals(h.source.List().Expenses, h.now(), n))
}

func (h *Handler) dashboard(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, report.Dashboard(h.source.List().Expenses, h.now()))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	n, err := months(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, report.Reports(h.source.List().Expenses, h.now(), n))
}

func months(r *http.Request) (int, error) {
	s := r.URL.Query().Get("months")
	if s == "" {
		return defaultMonths, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxMonths {
		return 0, fmt.Errorf("months must be between 1 and %d", maxMonths)
	}

	return n, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
