package services

import (
	"context"
	"strings"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/validation"
)

type TaskService struct {
	store *store.TaskStore
}

func NewTaskService(s *store.TaskStore) *TaskService {
	return &TaskService{store: s}
}

// TaskInput is the editable part of a task. Priority defaults to Normale and
// status to En cours.
type TaskInput struct {
	Title       string              `json:"title"`
	Project     string              `json:"project"`
	Description string              `json:"description"`
	DueDate     string              `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	Recurrence  *models.Recurrence  `json:"recurrence"`
}

func (in *TaskInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Project = strings.TrimSpace(in.Project)
	if in.Priority == "" {
		in.Priority = models.PriorityNormal
	}
	if in.Status == "" {
		in.Status = models.TaskInProgress
	}
}

func (in TaskInput) validate() error {
	v := make(validation.Violations)
	validation.Required("title", in.Title, v)
	validation.OneOf("priority", in.Priority, []models.TaskPriority{models.PriorityUrgent, models.PriorityNormal, models.PriorityLow}, v)
	validation.OneOf("status", in.Status, []models.TaskStatus{models.TaskInProgress, models.TaskDone}, v)
	validation.Date("due_date", in.DueDate, models.ParseDate, v)
	if in.Recurrence != nil {
		validation.OneOf("recurrence.pattern", in.Recurrence.Pattern,
			[]models.RecurrencePattern{models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly}, v)
		validation.MinInt("recurrence.interval", in.Recurrence.Interval, 1, v)
	}
	return v.Err()
}

func (in TaskInput) apply(t *models.Task) {
	t.Title = in.Title
	t.Project = in.Project
	t.Description = in.Description
	t.DueDate = in.DueDate
	t.Priority = in.Priority
	t.Status = in.Status
	t.Recurrence = nil
	if in.Recurrence != nil {
		r := *in.Recurrence
		t.Recurrence = &r
	}
}

func (s *TaskService) List(spec query.Spec) query.Result[models.Task] {
	return query.Tasks(s.store.Snapshot(), spec)
}

func (s *TaskService) All() []models.Task { return s.store.Snapshot() }

func (s *TaskService) Get(id string) (models.Task, error) { return s.store.Get(id) }

func (s *TaskService) Create(ctx context.Context, in TaskInput) (models.Task, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Task{}, err
	}
	t := models.Task{ID: newID(), CreatedAt: now()}
	in.apply(&t)
	return s.store.Add(ctx, t)
}

func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) (models.Task, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Task{}, err
	}
	return s.store.Update(ctx, id, func(t *models.Task) error {
		in.apply(t)
		return nil
	})
}

func (s *TaskService) Toggle(ctx context.Context, id string) (models.Task, error) {
	return s.store.ToggleTask(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
