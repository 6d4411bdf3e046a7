package handlers

import (
	"net/http"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
)

type ClientHandler struct {
	svc *services.ClientService
}

func NewClientHandler(svc *services.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func (h *ClientHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/clients", h.List)
	mux.HandleFunc("GET /api/clients/tags", h.Tags)
	mux.HandleFunc("POST /api/clients", h.Create)
	mux.HandleFunc("GET /api/clients/{id}", h.View)
	mux.HandleFunc("PUT /api/clients/{id}", h.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", h.Delete)
}

// List accepts tags=Client,mariage; Client and Prospect select on status.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	list(w, parseSpec(r), h.svc.List)
}

func (h *ClientHandler) Tags(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Tags())
}

func (h *ClientHandler) View(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ClientInput
	if !decode(w, r, &in) {
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "client_created", c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ClientInput
	if !decode(w, r, &in) {
		return
	}
	c, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "client_updated", c)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "client_deleted", nil)
}
