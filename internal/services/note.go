package services

import (
	"context"
	"strings"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/validation"
)

type NoteService struct {
	store *store.NoteStore
}

func NewNoteService(s *store.NoteStore) *NoteService {
	return &NoteService{store: s}
}

type NoteInput struct {
	Title string   `json:"title"`
	Text  string   `json:"text"`
	Tags  []string `json:"tags"`
}

func (in *NoteInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Tags = normalizeTags(in.Tags)
}

func (in NoteInput) validate() error {
	v := make(validation.Violations)
	validation.Required("title", in.Title, v)
	return v.Err()
}

func (s *NoteService) List(spec query.Spec) query.Result[models.Note] {
	return query.Notes(s.store.Snapshot(), spec)
}

func (s *NoteService) Tags() []string { return query.NoteTags(s.store.Snapshot()) }

func (s *NoteService) Get(id string) (models.Note, error) { return s.store.Get(id) }

func (s *NoteService) Create(ctx context.Context, in NoteInput) (models.Note, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Note{}, err
	}
	return s.store.Add(ctx, models.Note{ID: newID(), Title: in.Title, Text: in.Text, Tags: in.Tags, CreatedAt: now()})
}

func (s *NoteService) Update(ctx context.Context, id string, in NoteInput) (models.Note, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Note{}, err
	}
	return s.store.Update(ctx, id, func(n *models.Note) error {
		n.Title, n.Text, n.Tags = in.Title, in.Text, in.Tags
		return nil
	})
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
