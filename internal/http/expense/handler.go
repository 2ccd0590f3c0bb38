package expense

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/smartexpense/internal/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/form"
)

type Handler struct {
	store  *expense.Store
	logger *slog.Logger
}

func NewHandler(store *expense.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/", h.clear)
	r.Get("/stream", h.stream)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Title       string      `json:"title"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
}

type updateExpenseRequest struct {
	Title       *string      `json:"title,omitempty"`
	Amount      *json.Number `json:"amount,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Date        *string      `json:"date,omitempty"`
	Description *string      `json:"description,omitempty"`
}

func etag(version uint64) string {
	return `"` + strconv.FormatUint(version, 10) + `"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	snap := h.store.List()
	tag := etag(snap.Version)

	w.Header().Set("ETag", tag)

	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := form.Draft{
		Title:       req.Title,
		Amount:      req.Amount.String(),
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	}.CreateParams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.store.Add(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, e)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	e, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, e)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := form.Patch{
		Title:       req.Title,
		Category:    req.Category,
		Date:        req.Date,
		Description: req.Description,
	}

	if req.Amount != nil {
		patch.Amount = new(req.Amount.String())
	}

	params, err := patch.UpdateParams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, ok, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !ok {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, e)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ok, err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !ok {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
