package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/middleware"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/persistence"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/services"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStores(t *testing.T) *store.Stores {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.ProjectRow{}, &models.ClientRow{}, &models.TaskRow{}, &models.NoteRow{}, &models.WebsiteRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewStores(store.GormTables(db, persistence.BreakerSettings{}))
}

func newTestServer(stores *store.Stores) http.Handler {
	mux := http.NewServeMux()
	projects := services.NewProjectService(stores.Projects)
	clients := services.NewClientService(stores.Clients)
	NewProjectHandler(projects, clients).Register(mux)
	NewClientHandler(clients).Register(mux)
	NewTaskHandler(services.NewTaskService(stores.Tasks), projects).Register(mux)
	NewNoteHandler(services.NewNoteService(stores.Notes)).Register(mux)
	NewWebsiteHandler(services.NewWebsiteService(stores.Websites)).Register(mux)
	NewDashboardHandler(services.NewDashboardService(stores.Projects, stores.Tasks, 10000), stores).Register(mux)
	return middleware.Prefs(mux)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type mutation[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type page[T any] struct {
	Page       []T `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	PageIndex  int `json:"page_index"`
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func TestProjectHandler_CreateAndList(t *testing.T) {
	h := newTestServer(setupTestStores(t))

	rec := do(t, h, http.MethodPost, "/api/projects?lang=en", `{"name":"Mariage Dupont","client":"Marie Dupont","budget":1500}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body)
	}
	created := decodeBody[mutation[models.Project]](t, rec)
	if created.Message != "Project created" || created.Data.ID == "" || created.Data.Status != models.StatusConception {
		t.Fatalf("unexpected response %+v", created)
	}

	rec = do(t, h, http.MethodGet, "/api/projects", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	list := decodeBody[page[models.Project]](t, rec)
	if list.Total != 1 || list.TotalPages != 1 || list.Page[0].ID != created.Data.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	rec = do(t, h, http.MethodGet, "/api/projects/"+created.Data.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("view status = %d", rec.Code)
	}
}

func TestProjectHandler_ViewResolvesClient(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	rec := do(t, h, http.MethodPost, "/api/clients", `{"first_name":"Marie","last_name":"Dupont","email":"marie@example.com","company":"Studio Nord"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client status = %d body=%s", rec.Code, rec.Body)
	}
	client := decodeBody[mutation[models.Client]](t, rec).Data

	type view struct {
		models.Project
		ClientRecord   *models.Client `json:"client_record"`
		ClientResolved bool           `json:"client_resolved"`
	}
	tests := []struct {
		name     string
		client   string
		resolved bool
	}{
		{"full name", "marie dupont", true},
		{"company", "Studio Nord", true},
		{"unknown", "Inconnu", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/projects", `{"name":"Shooting","client":"`+tt.client+`"}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("create status = %d body=%s", rec.Code, rec.Body)
			}
			id := decodeBody[mutation[models.Project]](t, rec).Data.ID

			rec = do(t, h, http.MethodGet, "/api/projects/"+id, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("view status = %d", rec.Code)
			}
			got := decodeBody[view](t, rec)
			if got.ID != id || got.Client != tt.client {
				t.Fatalf("project fields lost: %+v", got.Project)
			}
			if got.ClientResolved != tt.resolved {
				t.Fatalf("client_resolved = %v, want %v", got.ClientResolved, tt.resolved)
			}
			if tt.resolved && (got.ClientRecord == nil || got.ClientRecord.ID != client.ID) {
				t.Fatalf("client_record = %+v, want %s", got.ClientRecord, client.ID)
			}
			if !tt.resolved && got.ClientRecord != nil {
				t.Fatalf("unexpected client_record %+v", got.ClientRecord)
			}
		})
	}
}

func TestProjectHandler_Errors(t *testing.T) {
	h := newTestServer(setupTestStores(t))

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"validation", http.MethodPost, "/api/projects", `{"name":"","budget":-5}`, http.StatusUnprocessableEntity, "validation_failed"},
		{"malformed json", http.MethodPost, "/api/projects", `{"name":`, http.StatusBadRequest, "invalid_json"},
		{"unknown field", http.MethodPost, "/api/projects", `{"title":"x"}`, http.StatusBadRequest, "invalid_json"},
		{"missing project", http.MethodGet, "/api/projects/nope", "", http.StatusNotFound, "not_found"},
		{"delete missing", http.MethodDelete, "/api/projects/nope", "", http.StatusNotFound, "not_found"},
		{"bad status", http.MethodPost, "/api/projects/nope/status", `{"status":"Archivé"}`, http.StatusUnprocessableEntity, "validation_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body=%s)", rec.Code, tt.status, rec.Body)
			}
			if got := decodeBody[errorBody](t, rec); got.Error != tt.code {
				t.Fatalf("error = %q, want %q", got.Error, tt.code)
			}
		})
	}
}

func TestProjectHandler_ValidationDetailsAreTranslated(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	rec := do(t, h, http.MethodPost, "/api/projects?lang=en", `{"name":""}`)
	body := decodeBody[errorBody](t, rec)
	if body.Details["name"] != "Required" {
		t.Fatalf("details = %+v", body.Details)
	}
}

func TestProjectHandler_Actions(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	created := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodPost, "/api/projects", `{"name":"Clip","client":"Studio X","type":"Video"}`))
	id := created.Data.ID

	fav := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodPost, "/api/projects/"+id+"/favorite", ""))
	if !fav.Data.IsFavorite {
		t.Fatal("favourite not toggled")
	}
	st := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodPost, "/api/projects/"+id+"/status", `{"status":"Montage"}`))
	if st.Data.Status != models.StatusMontage {
		t.Fatalf("status = %q", st.Data.Status)
	}

	rec := do(t, h, http.MethodPost, "/api/projects/"+id+"/duplicate", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d", rec.Code)
	}
	dup := decodeBody[mutation[models.Project]](t, rec)
	if dup.Data.Name != "Copie de Clip" || dup.Data.IsFavorite || dup.Data.ID == id {
		t.Fatalf("unexpected duplicate %+v", dup.Data)
	}

	list := decodeBody[page[models.Project]](t, do(t, h, http.MethodGet, "/api/projects", ""))
	if list.Total != 2 || list.Page[0].ID != id {
		t.Fatalf("favourite should lead the list: %+v", list.Page)
	}

	rec = do(t, h, http.MethodDelete, "/api/projects/"+dup.Data.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestProjectHandler_SubTasksAndDocuments(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	created := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodPost, "/api/projects",
		`{"name":"Mariage","client":"Léa Martin","tasks":[{"text":"Devis"},{"text":"Contrat"}]}`))
	id := created.Data.ID

	added := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodPost, "/api/projects/"+id+"/tasks", `{"text":"Livraison"}`))
	if len(added.Data.Tasks) != 3 {
		t.Fatalf("tasks = %+v", added.Data.Tasks)
	}
	first := added.Data.Tasks[0].ID

	rec := do(t, h, http.MethodPatch, "/api/projects/"+id+"/tasks/"+first, `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d body=%s", rec.Code, rec.Body)
	}
	patched := decodeBody[mutation[models.Project]](t, rec)
	if !patched.Data.Tasks[0].Completed || patched.Data.Tasks[0].Text != "Devis" || patched.Data.Tasks[1].Completed {
		t.Fatalf("only the first sub-task should change: %+v", patched.Data.Tasks)
	}

	if rec := do(t, h, http.MethodPatch, "/api/projects/"+id+"/tasks/missing", `{"completed":true}`); rec.Code != http.StatusNotFound {
		t.Fatalf("missing sub-task status = %d", rec.Code)
	}

	removed := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodDelete, "/api/projects/"+id+"/tasks/"+first, ""))
	if len(removed.Data.Tasks) != 2 {
		t.Fatalf("tasks after remove = %+v", removed.Data.Tasks)
	}

	withDoc := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodPost, "/api/projects/"+id+"/documents",
		`{"name":"contrat.pdf","path":"/docs/contrat.pdf"}`))
	if len(withDoc.Data.Documents) != 1 || withDoc.Data.Documents[0].ID == "" {
		t.Fatalf("documents = %+v", withDoc.Data.Documents)
	}
	detached := decodeBody[mutation[models.Project]](t, do(t, h, http.MethodDelete,
		"/api/projects/"+id+"/documents/"+withDoc.Data.Documents[0].ID, ""))
	if len(detached.Data.Documents) != 0 {
		t.Fatalf("documents after detach = %+v", detached.Data.Documents)
	}
}

func TestList_PageIsClamped(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	for i := range 13 {
		do(t, h, http.MethodPost, "/api/notes", fmt.Sprintf(`{"title":"note %d"}`, i))
	}
	got := decodeBody[page[models.Note]](t, do(t, h, http.MethodGet, "/api/notes?page=7", ""))
	if got.TotalPages != 2 || got.PageIndex != 2 || len(got.Page) != 1 {
		t.Fatalf("unexpected page %+v", got)
	}
	got = decodeBody[page[models.Note]](t, do(t, h, http.MethodGet, "/api/notes?size=5&page=3", ""))
	if got.TotalPages != 3 || len(got.Page) != 3 {
		t.Fatalf("unexpected page %+v", got)
	}
}

func TestClientHandler_FilterByPseudoTag(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	for _, body := range []string{
		`{"first_name":"Sarah","last_name":"Martin","email":"sarah@example.com","status":"Client","tags":["mariage"]}`,
		`{"first_name":"Marc","last_name":"Dubois","email":"marc@example.com","tags":["corporate"]}`,
	} {
		if rec := do(t, h, http.MethodPost, "/api/clients", body); rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d body=%s", rec.Code, rec.Body)
		}
	}
	got := decodeBody[page[models.Client]](t, do(t, h, http.MethodGet, "/api/clients?tags=Prospect", ""))
	if got.Total != 1 || got.Page[0].FirstName != "Marc" {
		t.Fatalf("unexpected clients %+v", got.Page)
	}
	tags := decodeBody[[]string](t, do(t, h, http.MethodGet, "/api/clients/tags", ""))
	if len(tags) != 2 {
		t.Fatalf("tags = %v", tags)
	}

	rec := do(t, h, http.MethodPost, "/api/clients", `{"first_name":"X","last_name":"Y","email":"not-an-email"}`)
	if body := decodeBody[errorBody](t, rec); rec.Code != http.StatusUnprocessableEntity || body.Details["email"] == "" {
		t.Fatalf("status = %d details = %+v", rec.Code, body.Details)
	}
}

func TestTaskHandler_OverdueAndToggle(t *testing.T) {
	now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	defer func() { now = time.Now }()

	h := newTestServer(setupTestStores(t))
	late := decodeBody[mutation[models.Task]](t, do(t, h, http.MethodPost, "/api/tasks",
		`{"title":"Relancer","due_date":"2024-06-10","priority":"Urgente"}`))
	do(t, h, http.MethodPost, "/api/tasks", `{"title":"Trier","due_date":"2024-07-01","priority":"Faible"}`)

	type taskView struct {
		models.Task
		Overdue bool `json:"overdue"`
	}
	got := decodeBody[page[taskView]](t, do(t, h, http.MethodGet, "/api/tasks", ""))
	if got.Total != 2 || got.Page[0].Title != "Relancer" || !got.Page[0].Overdue || got.Page[1].Overdue {
		t.Fatalf("unexpected tasks %+v", got.Page)
	}

	toggled := decodeBody[mutation[models.Task]](t, do(t, h, http.MethodPost, "/api/tasks/"+late.Data.ID+"/toggle", ""))
	if toggled.Data.Status != models.TaskDone {
		t.Fatalf("status = %q", toggled.Data.Status)
	}
	got = decodeBody[page[taskView]](t, do(t, h, http.MethodGet, "/api/tasks?status=En%20cours", ""))
	if got.Total != 1 || got.Page[0].Title != "Trier" {
		t.Fatalf("unexpected filtered tasks %+v", got.Page)
	}
}

func TestWebsiteHandler_CRUD(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	created := decodeBody[mutation[models.Website]](t, do(t, h, http.MethodPost, "/api/websites",
		`{"name":"Shadcn UI","url":"https://ui.shadcn.com","tag":"Outils"}`))
	id := created.Data.ID

	rec := do(t, h, http.MethodPut, "/api/websites/"+id, `{"name":"Shadcn","url":"https://ui.shadcn.com","tag":"Design"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", rec.Code, rec.Body)
	}
	if rec := do(t, h, http.MethodPut, "/api/websites/"+id, `{"name":"Shadcn","url":"ftp://x"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid url status = %d", rec.Code)
	}
	got := decodeBody[page[models.Website]](t, do(t, h, http.MethodGet, "/api/websites?tags=Design", ""))
	if got.Total != 1 || got.Page[0].Name != "Shadcn" {
		t.Fatalf("unexpected websites %+v", got.Page)
	}
	if rec := do(t, h, http.MethodDelete, "/api/websites/"+id, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestDashboardHandler(t *testing.T) {
	h := newTestServer(setupTestStores(t))
	do(t, h, http.MethodPost, "/api/projects", `{"name":"A","client":"Sarah Martin","budget":1000,"payment_status":"Payé","end_date":"2024-05-10","status":"Terminé"}`)
	do(t, h, http.MethodPost, "/api/projects", `{"name":"B","client":"Marc Dubois","budget":500,"end_date":"2024-06-10","status":"Montage"}`)

	rec := do(t, h, http.MethodGet, "/api/dashboard?step=Montage", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d struct {
		Kpis struct {
			Ongoing  int     `json:"ongoing_projects"`
			Finished int     `json:"finished_projects"`
			Realized float64 `json:"revenue_realized"`
		} `json:"kpis"`
		RecentProjects []models.Project `json:"recent_projects"`
		Objective      *struct {
			Percent int `json:"percent"`
		} `json:"objective"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Kpis.Ongoing != 1 || d.Kpis.Finished != 1 || d.Kpis.Realized != 1000 || len(d.RecentProjects) != 1 || d.RecentProjects[0].Name != "B" {
		t.Fatalf("unexpected dashboard %s", rec.Body)
	}
	if d.Objective == nil {
		t.Fatal("expected an objective when a revenue target is set")
	}

	if rec := do(t, h, http.MethodPost, "/api/refresh", ""); rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d", rec.Code)
	}
}

type brokenTable[R any] struct{}

var errBackendDown = errors.New("backend down")

func (brokenTable[R]) ListAll(context.Context, string) ([]R, error) { return nil, errBackendDown }
func (brokenTable[R]) Insert(_ context.Context, row R) (R, error)    { return row, errBackendDown }
func (brokenTable[R]) Update(context.Context, string, map[string]any) (R, error) {
	var zero R
	return zero, errBackendDown
}
func (brokenTable[R]) Delete(context.Context, string) error { return errBackendDown }

func TestPersistenceFailure(t *testing.T) {
	stores := store.NewStores(store.Tables{
		Projects: brokenTable[models.ProjectRow]{},
		Clients:  brokenTable[models.ClientRow]{},
		Tasks:    brokenTable[models.TaskRow]{},
		Notes:    brokenTable[models.NoteRow]{},
		Websites: brokenTable[models.WebsiteRow]{},
	})
	h := newTestServer(stores)

	rec := do(t, h, http.MethodPost, "/api/notes", `{"title":"idée"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if got := decodeBody[page[models.Note]](t, do(t, h, http.MethodGet, "/api/notes", "")); got.Total != 0 {
		t.Fatalf("failed insert must not be visible: %+v", got)
	}
	if rec := do(t, h, http.MethodPost, "/api/refresh", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("refresh status = %d, want 502", rec.Code)
	}
}
