package handlers

import (
	"net/http"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
)

type WebsiteHandler struct {
	svc *services.WebsiteService
}

func NewWebsiteHandler(svc *services.WebsiteService) *WebsiteHandler {
	return &WebsiteHandler{svc: svc}
}

func (h *WebsiteHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/websites", h.List)
	mux.HandleFunc("POST /api/websites", h.Create)
	mux.HandleFunc("GET /api/websites/{id}", h.View)
	mux.HandleFunc("PUT /api/websites/{id}", h.Update)
	mux.HandleFunc("DELETE /api/websites/{id}", h.Delete)
}

func (h *WebsiteHandler) List(w http.ResponseWriter, r *http.Request) {
	list(w, parseSpec(r), h.svc.List)
}

func (h *WebsiteHandler) View(w http.ResponseWriter, r *http.Request) {
	site, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, site)
}

func (h *WebsiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.WebsiteInput
	if !decode(w, r, &in) {
		return
	}
	site, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "website_created", site)
}

func (h *WebsiteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.WebsiteInput
	if !decode(w, r, &in) {
		return
	}
	site, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "website_updated", site)
}

func (h *WebsiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "website_deleted", nil)
}
