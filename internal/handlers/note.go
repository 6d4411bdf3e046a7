package handlers

import (
	"net/http"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
)

type NoteHandler struct {
	svc *services.NoteService
}

func NewNoteHandler(svc *services.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

func (h *NoteHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/notes", h.List)
	mux.HandleFunc("GET /api/notes/tags", h.Tags)
	mux.HandleFunc("POST /api/notes", h.Create)
	mux.HandleFunc("GET /api/notes/{id}", h.View)
	mux.HandleFunc("PUT /api/notes/{id}", h.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", h.Delete)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	list(w, parseSpec(r), h.svc.List)
}

func (h *NoteHandler) Tags(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Tags())
}

func (h *NoteHandler) View(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.NoteInput
	if !decode(w, r, &in) {
		return
	}
	n, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "note_created", n)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.NoteInput
	if !decode(w, r, &in) {
		return
	}
	n, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "note_updated", n)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "note_deleted", nil)
}
