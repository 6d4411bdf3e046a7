package services

import (
	"context"
	"strings"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/validation"
)

type ProjectService struct {
	store *store.ProjectStore
}

func NewProjectService(s *store.ProjectStore) *ProjectService {
	return &ProjectService{store: s}
}

// ProjectInput is the editable part of a project. Empty enums take their
// defaults: Conception, Photo and Non payé.
type ProjectInput struct {
	Name          string               `json:"name"`
	Client        string               `json:"client"`
	Description   string               `json:"description"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Status        models.ProjectStatus `json:"status"`
	Type          models.ProjectType   `json:"type"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	Budget        float64              `json:"budget"`
	IsFavorite    bool                 `json:"is_favorite"`
	Tasks         []models.SubTask     `json:"tasks"`
	Notes         string               `json:"notes"`
	Documents     []models.Document    `json:"documents"`
}

func (in *ProjectInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Client = strings.TrimSpace(in.Client)
	if in.Status == "" {
		in.Status = models.StatusConception
	}
	if in.Type == "" {
		in.Type = models.TypePhoto
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = models.PaymentUnpaid
	}
	for i := range in.Tasks {
		if in.Tasks[i].ID == "" {
			in.Tasks[i].ID = newID()
		}
	}
	for i := range in.Documents {
		if in.Documents[i].ID == "" {
			in.Documents[i].ID = newID()
		}
	}
}

func (in ProjectInput) validate() error {
	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	validation.Required("client", in.Client, v)
	validation.OneOf("status", in.Status, models.ProjectStatuses, v)
	validation.OneOf("type", in.Type, []models.ProjectType{models.TypePhoto, models.TypeVideo}, v)
	validation.OneOf("payment_status", in.PaymentStatus, models.PaymentStatuses, v)
	validation.NonNegativeFloat("budget", in.Budget, v)
	validation.Date("start_date", in.StartDate, models.ParseDate, v)
	validation.Date("end_date", in.EndDate, models.ParseDate, v)
	for _, t := range in.Tasks {
		if strings.TrimSpace(t.Text) == "" {
			v["tasks"] = "required"
		}
	}
	for _, d := range in.Documents {
		if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Path) == "" {
			v["documents"] = "required"
		}
	}
	return v.Err()
}

func (in ProjectInput) apply(p *models.Project) {
	p.Name = in.Name
	p.Client = in.Client
	p.Description = in.Description
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Status = in.Status
	p.Type = in.Type
	p.PaymentStatus = in.PaymentStatus
	p.Budget = in.Budget
	p.IsFavorite = in.IsFavorite
	p.Tasks = append([]models.SubTask{}, in.Tasks...)
	p.Notes = in.Notes
	p.Documents = append([]models.Document{}, in.Documents...)
}

func (s *ProjectService) List(spec query.Spec) query.Result[models.Project] {
	return query.Projects(s.store.Snapshot(), spec)
}

func (s *ProjectService) All() []models.Project { return s.store.Snapshot() }

func (s *ProjectService) Get(id string) (models.Project, error) { return s.store.Get(id) }

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (models.Project, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Project{}, err
	}
	p := models.Project{ID: newID(), CreatedAt: now()}
	in.apply(&p)
	return s.store.Add(ctx, p)
}

// Update replaces every editable field of the project.
func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (models.Project, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Project{}, err
	}
	return s.store.Update(ctx, id, func(p *models.Project) error {
		in.apply(p)
		return nil
	})
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *ProjectService) Duplicate(ctx context.Context, id string) (models.Project, error) {
	return s.store.Duplicate(ctx, id)
}

func (s *ProjectService) ToggleFavorite(ctx context.Context, id string) (models.Project, error) {
	return s.store.ToggleFavorite(ctx, id)
}

func (s *ProjectService) SetStatus(ctx context.Context, id string, status models.ProjectStatus) (models.Project, error) {
	v := make(validation.Violations)
	validation.OneOf("status", status, models.ProjectStatuses, v)
	if err := v.Err(); err != nil {
		return models.Project{}, err
	}
	return s.store.SetStatus(ctx, id, status)
}

// SubTaskInput edits a sub-task; nil fields are left unchanged.
type SubTaskInput struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (s *ProjectService) AddSubTask(ctx context.Context, id, text string) (models.Project, error) {
	v := make(validation.Violations)
	validation.Required("text", text, v)
	if err := v.Err(); err != nil {
		return models.Project{}, err
	}
	return s.store.AddSubTask(ctx, id, strings.TrimSpace(text))
}

func (s *ProjectService) UpdateSubTask(ctx context.Context, id, taskID string, in SubTaskInput) (models.Project, error) {
	if in.Text != nil {
		v := make(validation.Violations)
		validation.Required("text", *in.Text, v)
		if err := v.Err(); err != nil {
			return models.Project{}, err
		}
	}
	return s.store.UpdateSubTask(ctx, id, taskID, func(t *models.SubTask) {
		if in.Text != nil {
			t.Text = strings.TrimSpace(*in.Text)
		}
		if in.Completed != nil {
			t.Completed = *in.Completed
		}
	})
}

func (s *ProjectService) RemoveSubTask(ctx context.Context, id, taskID string) (models.Project, error) {
	return s.store.RemoveSubTask(ctx, id, taskID)
}

func (s *ProjectService) AttachDocument(ctx context.Context, id string, doc models.Document) (models.Project, error) {
	v := make(validation.Violations)
	validation.Required("name", doc.Name, v)
	validation.Required("path", doc.Path, v)
	if err := v.Err(); err != nil {
		return models.Project{}, err
	}
	return s.store.AttachDocument(ctx, id, doc)
}

func (s *ProjectService) DetachDocument(ctx context.Context, id, docID string) (models.Project, error) {
	return s.store.DetachDocument(ctx, id, docID)
}
