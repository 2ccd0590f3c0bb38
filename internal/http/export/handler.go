package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/smartexpense/internal/export"
)

type Handler struct {
	svc    *export.Service
	now    func() time.Time
	logger *slog.Logger
}

func NewHandler(svc *export.Service, now func() time.Time, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, now: now, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, _ *http.Request) {
	now := h.now()

	var buf bytes.Buffer
	if err := export.Write(&buf, h.svc.Backup(now)); err != nil {
		h.logger.Error("failed to build backup", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(now)))

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write backup", "error", err)
	}
}
