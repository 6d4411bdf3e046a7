package store

import (
	"context"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/persistence"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type (
	ClientStore  = Store[models.Client, models.ClientRow]
	NoteStore    = Store[models.Note, models.NoteRow]
	WebsiteStore = Store[models.Website, models.WebsiteRow]
)

var ClientCodec = Codec[models.Client, models.ClientRow]{
	ToRow:   models.ClientToRow,
	FromRow: models.ClientFromRow,
	ID:      func(c models.Client) string { return c.ID },
	Clone:   models.Client.Clone,
	Columns: models.ClientRow.Columns,
}

var TaskCodec = Codec[models.Task, models.TaskRow]{
	ToRow:   models.TaskToRow,
	FromRow: models.TaskFromRow,
	ID:      func(t models.Task) string { return t.ID },
	Clone:   models.Task.Clone,
	Columns: models.TaskRow.Columns,
}

var NoteCodec = Codec[models.Note, models.NoteRow]{
	ToRow:   models.NoteToRow,
	FromRow: models.NoteFromRow,
	ID:      func(n models.Note) string { return n.ID },
	Clone:   models.Note.Clone,
	Columns: models.NoteRow.Columns,
}

var WebsiteCodec = Codec[models.Website, models.WebsiteRow]{
	ToRow:   models.WebsiteToRow,
	FromRow: models.WebsiteFromRow,
	ID:      func(w models.Website) string { return w.ID },
	Clone:   models.Website.Clone,
	Columns: models.WebsiteRow.Columns,
}

func NewClientStore(table persistence.Table[models.ClientRow]) *ClientStore {
	return New("clients", table, ClientCodec, "created_at desc")
}

func NewNoteStore(table persistence.Table[models.NoteRow]) *NoteStore {
	return New("notes", table, NoteCodec, "created_at desc")
}

// Bookmarks keep insertion order.
func NewWebsiteStore(table persistence.Table[models.WebsiteRow]) *WebsiteStore {
	return New("websites", table, WebsiteCodec, "created_at asc")
}

type TaskStore struct {
	*Store[models.Task, models.TaskRow]
}

func NewTaskStore(table persistence.Table[models.TaskRow]) *TaskStore {
	return &TaskStore{New("tasks", table, TaskCodec, "created_at desc")}
}

// ToggleTask flips the task between En cours and Terminée.
func (s *TaskStore) ToggleTask(ctx context.Context, id string) (models.Task, error) {
	return s.Update(ctx, id, func(t *models.Task) error {
		t.Status = t.Status.Toggle()
		return nil
	})
}

// Tables groups the persistence tables backing each store.
type Tables struct {
	Projects persistence.Table[models.ProjectRow]
	Clients  persistence.Table[models.ClientRow]
	Tasks    persistence.Table[models.TaskRow]
	Notes    persistence.Table[models.NoteRow]
	Websites persistence.Table[models.WebsiteRow]
}

// GormTables backs every store with db, each table behind its own breaker.
func GormTables(db *gorm.DB, settings persistence.BreakerSettings) Tables {
	return Tables{
		Projects: persistence.WithBreaker[models.ProjectRow](persistence.NewGormTable[models.ProjectRow](db), persistence.NewBreaker("projects", settings)),
		Clients:  persistence.WithBreaker[models.ClientRow](persistence.NewGormTable[models.ClientRow](db), persistence.NewBreaker("clients", settings)),
		Tasks:    persistence.WithBreaker[models.TaskRow](persistence.NewGormTable[models.TaskRow](db), persistence.NewBreaker("tasks", settings)),
		Notes:    persistence.WithBreaker[models.NoteRow](persistence.NewGormTable[models.NoteRow](db), persistence.NewBreaker("notes", settings)),
		Websites: persistence.WithBreaker[models.WebsiteRow](persistence.NewGormTable[models.WebsiteRow](db), persistence.NewBreaker("websites", settings)),
	}
}

// Stores holds one store per entity type.
type Stores struct {
	Projects *ProjectStore
	Clients  *ClientStore
	Tasks    *TaskStore
	Notes    *NoteStore
	Websites *WebsiteStore
}

func NewStores(t Tables) *Stores {
	return &Stores{
		Projects: NewProjectStore(t.Projects),
		Clients:  NewClientStore(t.Clients),
		Tasks:    NewTaskStore(t.Tasks),
		Notes:    NewNoteStore(t.Notes),
		Websites: NewWebsiteStore(t.Websites),
	}
}

// LoadAll loads every store concurrently and returns the first error.
func (s *Stores) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Projects.Load(ctx) })
	g.Go(func() error { return s.Clients.Load(ctx) })
	g.Go(func() error { return s.Tasks.Load(ctx) })
	g.Go(func() error { return s.Notes.Load(ctx) })
	g.Go(func() error { return s.Websites.Load(ctx) })
	return g.Wait()
}
