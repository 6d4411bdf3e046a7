package services

import (
	"context"
	"strings"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/validation"
)

type WebsiteService struct {
	store *store.WebsiteStore
}

func NewWebsiteService(s *store.WebsiteStore) *WebsiteService {
	return &WebsiteService{store: s}
}

type WebsiteInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

func (in *WebsiteInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	in.Tag = strings.TrimSpace(in.Tag)
}

func (in WebsiteInput) validate() error {
	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	validation.URL("url", in.URL, v)
	return v.Err()
}

func (in WebsiteInput) website(id string) models.Website {
	return models.Website{ID: id, Name: in.Name, URL: in.URL, Description: in.Description, Tag: in.Tag}
}

func (s *WebsiteService) List(spec query.Spec) query.Result[models.Website] {
	return query.Websites(s.store.Snapshot(), spec)
}

func (s *WebsiteService) Get(id string) (models.Website, error) { return s.store.Get(id) }

func (s *WebsiteService) Create(ctx context.Context, in WebsiteInput) (models.Website, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Website{}, err
	}
	return s.store.Add(ctx, in.website(newID()))
}

func (s *WebsiteService) Update(ctx context.Context, id string, in WebsiteInput) (models.Website, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Website{}, err
	}
	return s.store.Update(ctx, id, func(w *models.Website) error {
		*w = in.website(id)
		return nil
	})
}

func (s *WebsiteService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
