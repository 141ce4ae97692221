package service

import (
	"context"
	"strings"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

func (s *contactServiceImpl) List(ctx context.Context) ([]*model.Contact, error) {
	return s.repo.List(ctx)
}

func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.Contact, error) {
	return s.repo.FindByID(ctx, id)
}

// Create normalises each contact and stores them in one batch.
func (s *contactServiceImpl) Create(ctx context.Context, contacts ...*model.Contact) (int, error) {
	for _, c := range contacts {
		Normalize(c)
	}
	return s.repo.InsertMany(ctx, contacts)
}

func (s *contactServiceImpl) Update(ctx context.Context, id string, c *model.Contact) (*model.Contact, error) {
	Normalize(c)
	return s.repo.UpdateByID(ctx, id, c)
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) (*model.Contact, error) {
	return s.repo.DeleteByID(ctx, id)
}

// Normalize trims surrounding whitespace from the submitted fields. Create
// and Update apply it; callers that validate first use it so the checked
// values are the stored ones.
func Normalize(c *model.Contact) {
	c.Nama = strings.TrimSpace(c.Nama)
	c.Email = strings.TrimSpace(c.Email)
	c.NoHP = strings.TrimSpace(c.NoHP)
}
