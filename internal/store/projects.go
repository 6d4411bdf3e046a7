package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/persistence"
	"github.com/google/uuid"
)

var ProjectCodec = Codec[models.Project, models.ProjectRow]{
	ToRow:   models.ProjectToRow,
	FromRow: models.ProjectFromRow,
	ID:      func(p models.Project) string { return p.ID },
	Clone:   models.Project.Clone,
	Columns: models.ProjectRow.Columns,
}

// ProjectStore adds the project actions of the dashboard on top of Store.
type ProjectStore struct {
	*Store[models.Project, models.ProjectRow]
}

func NewProjectStore(table persistence.Table[models.ProjectRow]) *ProjectStore {
	return &ProjectStore{New("projects", table, ProjectCodec, "created_at desc")}
}

// Duplicate stores a copy of the project named "Copie de <name>". The copy
// gets fresh ids, including for its sub-tasks, and is not a favourite.
func (s *ProjectStore) Duplicate(ctx context.Context, id string) (models.Project, error) {
	src, err := s.Get(id)
	if err != nil {
		return models.Project{}, err
	}
	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.Name = "Copie de " + src.Name
	dup.IsFavorite = false
	dup.CreatedAt = time.Now().UTC()
	for i := range dup.Tasks {
		dup.Tasks[i].ID = uuid.NewString()
	}
	for i := range dup.Documents {
		dup.Documents[i].ID = uuid.NewString()
	}
	return s.Add(ctx, dup)
}

func (s *ProjectStore) ToggleFavorite(ctx context.Context, id string) (models.Project, error) {
	return s.Update(ctx, id, func(p *models.Project) error {
		p.IsFavorite = !p.IsFavorite
		return nil
	})
}

// SetStatus moves the project to any stage, backwards included.
func (s *ProjectStore) SetStatus(ctx context.Context, id string, status models.ProjectStatus) (models.Project, error) {
	if !status.Valid() {
		return models.Project{}, fmt.Errorf("unknown project status %q", status)
	}
	return s.Update(ctx, id, func(p *models.Project) error {
		p.Status = status
		return nil
	})
}

func (s *ProjectStore) AddSubTask(ctx context.Context, id, text string) (models.Project, error) {
	return s.Update(ctx, id, func(p *models.Project) error {
		p.Tasks = append(p.Tasks, models.SubTask{ID: uuid.NewString(), Text: text})
		return nil
	})
}

// UpdateSubTask edits one sub-task. Its siblings are left as stored.
func (s *ProjectStore) UpdateSubTask(ctx context.Context, id, taskID string, edit func(*models.SubTask)) (models.Project, error) {
	return s.Update(ctx, id, func(p *models.Project) error {
		i := p.SubTask(taskID)
		if i < 0 {
			return fmt.Errorf("sub-task %s: %w", taskID, ErrNotFound)
		}
		edit(&p.Tasks[i])
		p.Tasks[i].ID = taskID
		return nil
	})
}

func (s *ProjectStore) RemoveSubTask(ctx context.Context, id, taskID string) (models.Project, error) {
	return s.Update(ctx, id, func(p *models.Project) error {
		i := p.SubTask(taskID)
		if i < 0 {
			return fmt.Errorf("sub-task %s: %w", taskID, ErrNotFound)
		}
		p.Tasks = slices.Delete(p.Tasks, i, i+1)
		return nil
	})
}

// AttachDocument records a reference to an already stored file.
func (s *ProjectStore) AttachDocument(ctx context.Context, id string, doc models.Document) (models.Project, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	return s.Update(ctx, id, func(p *models.Project) error {
		p.Documents = append(p.Documents, doc)
		return nil
	})
}

func (s *ProjectStore) DetachDocument(ctx context.Context, id, docID string) (models.Project, error) {
	return s.Update(ctx, id, func(p *models.Project) error {
		i := slices.IndexFunc(p.Documents, func(d models.Document) bool { return d.ID == docID })
		if i < 0 {
			return fmt.Errorf("document %s: %w", docID, ErrNotFound)
		}
		p.Documents = slices.Delete(p.Documents, i, i+1)
		return nil
	})
}
