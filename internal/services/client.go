package services

import (
	"context"
	"strings"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/query"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/validation"
)

type ClientService struct {
	store *store.ClientStore
}

func NewClientService(s *store.ClientStore) *ClientService {
	return &ClientService{store: s}
}

// ClientInput is the editable part of a client. Status defaults to Prospect.
type ClientInput struct {
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Company   string              `json:"company"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
	Status    models.ClientStatus `json:"status"`
	Tags      []string            `json:"tags"`
}

func (in *ClientInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Company = strings.TrimSpace(in.Company)
	in.Email = strings.TrimSpace(in.Email)
	if in.Status == "" {
		in.Status = models.ClientStatusProspect
	}
	in.Tags = normalizeTags(in.Tags)
}

func (in ClientInput) validate() error {
	v := make(validation.Violations)
	validation.Required("first_name", in.FirstName, v)
	validation.Required("last_name", in.LastName, v)
	validation.Email("email", in.Email, v)
	validation.OneOf("status", in.Status, models.ClientStatuses, v)
	return v.Err()
}

func (in ClientInput) apply(c *models.Client) {
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Company = in.Company
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.Status = in.Status
	c.Tags = in.Tags
}

func (s *ClientService) List(spec query.Spec) query.Result[models.Client] {
	return query.Clients(s.store.Snapshot(), spec)
}

func (s *ClientService) All() []models.Client { return s.store.Snapshot() }

func (s *ClientService) Get(id string) (models.Client, error) { return s.store.Get(id) }

func (s *ClientService) Create(ctx context.Context, in ClientInput) (models.Client, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Client{}, err
	}
	c := models.Client{ID: newID(), DateAdded: now()}
	in.apply(&c)
	return s.store.Add(ctx, c)
}

func (s *ClientService) Update(ctx context.Context, id string, in ClientInput) (models.Client, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return models.Client{}, err
	}
	return s.store.Update(ctx, id, func(c *models.Client) error {
		in.apply(c)
		return nil
	})
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Tags lists the distinct client tags, for the filter bar.
func (s *ClientService) Tags() []string {
	var tags []string
	for _, c := range s.store.Snapshot() {
		tags = append(tags, c.Tags...)
	}
	return normalizeTags(tags)
}
