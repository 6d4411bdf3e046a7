package handlers

import (
	"net/http"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
)

type ProjectHandler struct {
	svc     *services.ProjectService
	clients *services.ClientService
}

func NewProjectHandler(svc *services.ProjectService, clients *services.ClientService) *ProjectHandler {
	return &ProjectHandler{svc: svc, clients: clients}
}

func (h *ProjectHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/projects", h.List)
	mux.HandleFunc("POST /api/projects", h.Create)
	mux.HandleFunc("GET /api/projects/{id}", h.View)
	mux.HandleFunc("PUT /api/projects/{id}", h.Update)
	mux.HandleFunc("DELETE /api/projects/{id}", h.Delete)
	mux.HandleFunc("POST /api/projects/{id}/duplicate", h.Duplicate)
	mux.HandleFunc("POST /api/projects/{id}/favorite", h.ToggleFavorite)
	mux.HandleFunc("POST /api/projects/{id}/status", h.SetStatus)
	mux.HandleFunc("POST /api/projects/{id}/tasks", h.AddSubTask)
	mux.HandleFunc("PATCH /api/projects/{id}/tasks/{taskID}", h.UpdateSubTask)
	mux.HandleFunc("DELETE /api/projects/{id}/tasks/{taskID}", h.RemoveSubTask)
	mux.HandleFunc("POST /api/projects/{id}/documents", h.AttachDocument)
	mux.HandleFunc("DELETE /api/projects/{id}/documents/{docID}", h.DetachDocument)
}

// List serves the project board, newest first unless sort is given.
// Favourites always come first.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	list(w, parseSpec(r), h.svc.List)
}

// View returns the project with the client record its name refers to, or
// client_resolved false when no client matches.
func (h *ProjectHandler) View(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := struct {
		models.Project
		ClientRecord   *models.Client `json:"client_record,omitempty"`
		ClientResolved bool           `json:"client_resolved"`
	}{Project: p}
	if c, ok := query.ResolveClient(p.Client, h.clients.All()); ok {
		resp.ClientRecord = &c
		resp.ClientResolved = true
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProjectInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "project_created", p)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProjectInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "project_updated", p)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "project_deleted", nil)
}

func (h *ProjectHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Duplicate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "project_duplicated", p)
}

func (h *ProjectHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "project_updated", p)
}

func (h *ProjectHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status models.ProjectStatus `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}
	p, err := h.svc.SetStatus(r.Context(), r.PathValue("id"), in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "project_updated", p)
}

func (h *ProjectHandler) AddSubTask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &in) {
		return
	}
	p, err := h.svc.AddSubTask(r.Context(), r.PathValue("id"), in.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "project_updated", p)
}

func (h *ProjectHandler) UpdateSubTask(w http.ResponseWriter, r *http.Request) {
	var in services.SubTaskInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.svc.UpdateSubTask(r.Context(), r.PathValue("id"), r.PathValue("taskID"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "project_updated", p)
}

func (h *ProjectHandler) RemoveSubTask(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.RemoveSubTask(r.Context(), r.PathValue("id"), r.PathValue("taskID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "project_updated", p)
}

func (h *ProjectHandler) AttachDocument(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if !decode(w, r, &doc) {
		return
	}
	p, err := h.svc.AttachDocument(r.Context(), r.PathValue("id"), doc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "project_updated", p)
}

func (h *ProjectHandler) DetachDocument(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.DetachDocument(r.Context(), r.PathValue("id"), r.PathValue("docID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "project_updated", p)
}
