package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"inmopanel/app"
)

// NewOpsRouter builds the operational surface: liveness, readiness and
// profiling. It runs on its own port, away from the dashboard API.
func NewOpsRouter(service *app.DashboardService) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Ready once a dataset snapshot has been loaded at least once.
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !service.Ready() {
			http.Error(w, "dataset snapshot not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	router.Mount("/debug", middleware.Profiler())

	return router
}
