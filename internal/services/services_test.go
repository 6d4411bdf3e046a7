package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/persistence"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/validation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStores(t *testing.T, name string) *store.Stores {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.ProjectRow{}, &models.ClientRow{}, &models.TaskRow{}, &models.NoteRow{}, &models.WebsiteRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.NewStores(store.GormTables(db, persistence.BreakerSettings{}))
}

func violations(t *testing.T, err error) validation.Violations {
	t.Helper()
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return verr.Violations
}

func TestProjectService_CreateDefaults(t *testing.T) {
	svc := NewProjectService(setupTestStores(t, t.Name()).Projects)
	p, err := svc.Create(context.Background(), ProjectInput{
		Name:   " Mariage Dupont ",
		Client: "Marie Dupont",
		Budget: 1500,
		Tasks:  []models.SubTask{{Text: "Devis"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Name != "Mariage Dupont" || p.CreatedAt.IsZero() {
		t.Fatalf("unexpected project %+v", p)
	}
	if p.Status != models.StatusConception || p.Type != models.TypePhoto || p.PaymentStatus != models.PaymentUnpaid {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if len(p.Tasks) != 1 || p.Tasks[0].ID == "" {
		t.Fatalf("sub-task ids not assigned: %+v", p.Tasks)
	}
}

func TestProjectService_Validation(t *testing.T) {
	stores := setupTestStores(t, t.Name())
	svc := NewProjectService(stores.Projects)
	_, err := svc.Create(context.Background(), ProjectInput{
		Budget:    -10,
		Status:    "Archivé",
		StartDate: "demain",
	})
	v := violations(t, err)
	for field, code := range map[string]string{
		"name":       "required",
		"client":     "required",
		"budget":     "must_not_be_negative",
		"status":     "invalid_choice",
		"start_date": "invalid_date",
	} {
		if v[field] != code {
			t.Errorf("violation[%s] = %q, want %q", field, v[field], code)
		}
	}
	if stores.Projects.Len() != 0 {
		t.Fatal("invalid project reached the store")
	}
}

func TestProjectService_UpdateAndSubTasks(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(setupTestStores(t, t.Name()).Projects)
	p, err := svc.Create(ctx, ProjectInput{Name: "Portrait", Client: "Léa Martin",
		Tasks: []models.SubTask{{Text: "Shooting"}, {Text: "Retouches"}}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done := true
	got, err := svc.UpdateSubTask(ctx, p.ID, p.Tasks[0].ID, SubTaskInput{Completed: &done})
	if err != nil {
		t.Fatalf("update sub-task: %v", err)
	}
	if !got.Tasks[0].Completed || got.Tasks[0].Text != "Shooting" || got.Tasks[1] != p.Tasks[1] {
		t.Fatalf("tasks = %+v", got.Tasks)
	}

	blank := " "
	if _, err := svc.UpdateSubTask(ctx, p.ID, p.Tasks[0].ID, SubTaskInput{Text: &blank}); err == nil {
		t.Fatal("expected validation error for blank text")
	}

	in := ProjectInput{Name: "Portrait studio", Client: "Léa Martin", Status: models.StatusEnvoye,
		PaymentStatus: models.PaymentPaid, Budget: 400, Tasks: got.Tasks}
	updated, err := svc.Update(ctx, p.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Portrait studio" || updated.Status != models.StatusEnvoye || updated.CreatedAt.IsZero() {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := svc.Update(ctx, "missing", in); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("update missing: %v", err)
	}
	if _, err := svc.SetStatus(ctx, p.ID, "Livré"); err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

func TestClientService(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(setupTestStores(t, t.Name()).Clients)

	_, err := svc.Create(ctx, ClientInput{FirstName: "Léa", Email: "lea@"})
	v := violations(t, err)
	if v["last_name"] != "required" || v["email"] != "invalid_email" {
		t.Fatalf("violations = %v", v)
	}

	c, err := svc.Create(ctx, ClientInput{FirstName: "Léa", LastName: "Martin", Email: "lea@studio.fr",
		Tags: []string{" mariage ", "mariage", ""}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Status != models.ClientStatusProspect || len(c.Tags) != 1 || c.Tags[0] != "mariage" {
		t.Fatalf("client = %+v", c)
	}
	res := svc.List(query.Spec{Tags: []string{"Prospect", "mariage"}, PageIndex: 1})
	if res.Total != 1 {
		t.Fatalf("list total = %d", res.Total)
	}
	if tags := svc.Tags(); len(tags) != 1 {
		t.Fatalf("tags = %v", tags)
	}
}

func TestTaskService(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(setupTestStores(t, t.Name()).Tasks)

	_, err := svc.Create(ctx, TaskInput{Title: "Sauvegarde", Recurrence: &models.Recurrence{Pattern: "yearly", Interval: 0}})
	v := violations(t, err)
	if v["recurrence.pattern"] != "invalid_choice" || v["recurrence.interval"] != "out_of_range" {
		t.Fatalf("violations = %v", v)
	}

	task, err := svc.Create(ctx, TaskInput{Title: "Sauvegarde", DueDate: "2024-07-01",
		Recurrence: &models.Recurrence{Pattern: models.RecurrenceWeekly, Interval: 1}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Priority != models.PriorityNormal || task.Status != models.TaskInProgress {
		t.Fatalf("defaults = %+v", task)
	}
	toggled, err := svc.Toggle(ctx, task.ID)
	if err != nil || toggled.Status != models.TaskDone {
		t.Fatalf("toggle: %+v %v", toggled, err)
	}
}

func TestNoteAndWebsiteServices(t *testing.T) {
	ctx := context.Background()
	stores := setupTestStores(t, t.Name())
	notes := NewNoteService(stores.Notes)
	if _, err := notes.Create(ctx, NoteInput{Title: " "}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := notes.Create(ctx, NoteInput{Title: "Matériel", Tags: []string{"achat", "achat"}}); err != nil {
		t.Fatalf("create note: %v", err)
	}
	if tags := notes.Tags(); len(tags) != 1 || tags[0] != "achat" {
		t.Fatalf("tags = %v", tags)
	}

	sites := NewWebsiteService(stores.Websites)
	if _, err := sites.Create(ctx, WebsiteInput{Name: "Unsplash", URL: "unsplash.com"}); err == nil {
		t.Fatal("expected invalid url")
	}
	w, err := sites.Create(ctx, WebsiteInput{Name: "Unsplash", URL: "https://unsplash.com", Tag: "Photos"})
	if err != nil {
		t.Fatalf("create website: %v", err)
	}
	w, err = sites.Update(ctx, w.ID, WebsiteInput{Name: "Unsplash", URL: "https://unsplash.com/fr", Tag: "Photos"})
	if err != nil || w.URL != "https://unsplash.com/fr" {
		t.Fatalf("update website: %+v %v", w, err)
	}
}

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	stores := setupTestStores(t, t.Name())
	projects := NewProjectService(stores.Projects)
	if _, err := projects.Create(ctx, ProjectInput{Name: "Mariage", Client: "Léa Martin", EndDate: "2024-06-20",
		PaymentStatus: models.PaymentPaid, Budget: 2000}); err != nil {
		t.Fatalf("create: %v", err)
	}
	d := NewDashboardService(stores.Projects, stores.Tasks, 10000).Build(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), "")
	if d.Kpis.RevenueRealized != 2000 || d.Objective == nil || d.Objective.Percent != 20 {
		t.Fatalf("dashboard = %+v", d)
	}
}
