package handlers

import (
	"net/http"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/httpx"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/kpi"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
)

type TaskHandler struct {
	svc      *services.TaskService
	projects *services.ProjectService
}

func NewTaskHandler(svc *services.TaskService, projects *services.ProjectService) *TaskHandler {
	return &TaskHandler{svc: svc, projects: projects}
}

func (h *TaskHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tasks", h.List)
	mux.HandleFunc("GET /api/tasks/projects", h.Projects)
	mux.HandleFunc("POST /api/tasks", h.Create)
	mux.HandleFunc("GET /api/tasks/{id}", h.View)
	mux.HandleFunc("PUT /api/tasks/{id}", h.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", h.Delete)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", h.Toggle)
}

// List sorts by priority unless another order is requested.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	spec := parseSpec(r)
	if spec.Sort == "" {
		spec.Sort = query.SortPriority
	}
	at := now()
	list(w, spec, func(s query.Spec) query.Result[kpi.TaskView] {
		res := h.svc.List(s)
		out := query.Result[kpi.TaskView]{Page: make([]kpi.TaskView, 0, len(res.Page)), TotalPages: res.TotalPages, Total: res.Total}
		for _, t := range res.Page {
			out.Page = append(out.Page, kpi.TaskView{Task: t, Overdue: t.Overdue(at)})
		}
		return out
	})
}

// Projects lists the project names a task can refer to.
func (h *TaskHandler) Projects(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, query.ProjectNames(h.projects.All()))
}

func (h *TaskHandler) View(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := struct {
		kpi.TaskView
		ProjectID string `json:"project_id,omitempty"`
	}{TaskView: kpi.TaskView{Task: t, Overdue: t.Overdue(now())}}
	if p, ok := query.ResolveProject(t.Project, h.projects.All()); ok {
		resp.ProjectID = p.ID
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.TaskInput
	if !decode(w, r, &in) {
		return
	}
	t, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusCreated, "task_created", t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.TaskInput
	if !decode(w, r, &in) {
		return
	}
	t, err := h.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "task_updated", t)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "task_updated", t)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMutation(w, r, http.StatusOK, "task_deleted", nil)
}
