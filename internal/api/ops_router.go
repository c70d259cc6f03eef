// Package api serves the operational side endpoints next to the dashboard:
// a health probe and the pprof profiler.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HealthSource reports what the dashboard is serving
type HealthSource interface {
	ModelKind() string
}

// HealthStatus is the /healthz body
type HealthStatus struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// NewOpsRouter builds the ops router. The profiler is mounted under /debug
// only when profiling is enabled.
func NewOpsRouter(health HealthSource, profiling bool) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HealthStatus{Status: "ok", Model: health.ModelKind()})
	})

	if profiling {
		r.Mount("/debug", middleware.Profiler())
	}
	return r
}
