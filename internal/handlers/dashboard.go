package handlers

import (
	"context"
	"net/http"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
)

// Loader reloads every collection from the backend.
type Loader interface {
	LoadAll(ctx context.Context) error
}

type DashboardHandler struct {
	svc    *services.DashboardService
	loader Loader
}

func NewDashboardHandler(svc *services.DashboardService, loader Loader) *DashboardHandler {
	return &DashboardHandler{svc: svc, loader: loader}
}

func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard", h.Show)
	mux.HandleFunc("POST /api/refresh", h.Refresh)
}

// Show accepts step=<stage> to filter the recent projects.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Build(now(), r.URL.Query().Get("step")))
}

func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.loader.LoadAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
