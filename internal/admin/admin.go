// Package admin serves the operator endpoints on a separate listener:
// liveness and the pprof profiles.
package admin

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the admin router
type App struct {
	router  *chi.Mux
	started time.Time
}

// NewApp creates the admin router
func NewApp() *App {
	a := &App{
		router:  chi.NewRouter(),
		started: time.Now(),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.NoCache)
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Mount("/debug", middleware.Profiler())
}

// Handler returns the admin router
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":     "ok",
		"uptime":     time.Since(a.started).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
	})
}
