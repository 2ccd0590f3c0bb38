package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/smartexpense/internal/http/category"
	"github.com/MrJamesThe3rd/smartexpense/internal/http/expense"
	"github.com/MrJamesThe3rd/smartexpense/internal/http/export"
	"github.com/MrJamesThe3rd/smartexpense/internal/http/report"
)

func New(
	allowedOrigins []string,
	expensesV1 *expense.Handler,
	reportsV1 *report.Handler,
	categoriesV1 *category.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)
		r.Route("/categories", categoriesV1.Routes)
		r.Route("/export", exportV1.Routes)
	})

	return router
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
