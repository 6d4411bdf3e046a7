package main

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/handlers"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/middleware"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
)

// Pinger reports whether the database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// App is the main application handler that sets up all routes.
type App struct {
	mux    *http.ServeMux
	stores *store.Stores
	db     Pinger
}

// NewApp creates a new application with all routes configured. db may be nil.
func NewApp(stores *store.Stores, db Pinger, revenueTarget float64) *App {
	app := &App{
		mux:    http.NewServeMux(),
		stores: stores,
		db:     db,
	}
	app.setupRoutes(revenueTarget)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withRecover(middleware.Prefs(a.mux)).ServeHTTP(w, r)
}

func (a *App) setupRoutes(revenueTarget float64) {
	projects := services.NewProjectService(a.stores.Projects)
	tasks := services.NewTaskService(a.stores.Tasks)
	clients := services.NewClientService(a.stores.Clients)

	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /healthz", a.health)

	handlers.NewDashboardHandler(
		services.NewDashboardService(a.stores.Projects, a.stores.Tasks, revenueTarget), a.stores,
	).Register(a.mux)
	handlers.NewProjectHandler(projects, clients).Register(a.mux)
	handlers.NewClientHandler(clients).Register(a.mux)
	handlers.NewTaskHandler(tasks, projects).Register(a.mux)
	handlers.NewNoteHandler(services.NewNoteService(a.stores.Notes)).Register(a.mux)
	handlers.NewWebsiteHandler(services.NewWebsiteService(a.stores.Websites)).Register(a.mux)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "ok",
		"loaded": map[string]bool{
			"projects": a.stores.Projects.Loaded(),
			"clients":  a.stores.Clients.Loaded(),
			"tasks":    a.stores.Tasks.Loaded(),
			"notes":    a.stores.Notes.Loaded(),
			"websites": a.stores.Websites.Loaded(),
		},
	}
	if a.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.PingContext(ctx); err != nil {
			logger.Warn("health check failed", "error", err)
			status["status"] = "degraded"
			httpx.JSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, status)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request with its status and duration.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

// withRecover turns a panic in a handler into a 500 response.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic serving request", "path", r.URL.Path, "panic", v, "stack", string(debug.Stack()))
				httpx.JSONErrorMessage(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
