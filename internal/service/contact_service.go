package service

import (
	"context"

	"github.com/contactbook/backend/internal/model"
)

// ContactService defines the business logic for managing contacts.
type ContactService interface {
	List(ctx context.Context) ([]*model.Contact, error)
	Get(ctx context.Context, id string) (*model.Contact, error)

	// Create stores one or more contacts. IDs are populated by the
	// implementation.
	Create(ctx context.Context, contacts ...*model.Contact) (int, error)

	// Update replaces the mutable fields of the contact with the given id.
	Update(ctx context.Context, id string, c *model.Contact) (*model.Contact, error)
	Delete(ctx context.Context, id string) (*model.Contact, error)
}
