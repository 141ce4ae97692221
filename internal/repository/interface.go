package repository

import (
	"context"

	"github.com/contactbook/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository is the persistence interface for contacts.
//
// FindByID, UpdateByID and DeleteByID return ErrNotFound when the id does not
// match a stored contact, including ids the store cannot parse.
type ContactRepository interface {
	DB
	List(ctx context.Context) ([]*model.Contact, error)
	FindByID(ctx context.Context, id string) (*model.Contact, error)
	// InsertMany stores every contact, sets each ID in place and returns the
	// number of records created.
	InsertMany(ctx context.Context, contacts []*model.Contact) (int, error)
	UpdateByID(ctx context.Context, id string, c *model.Contact) (*model.Contact, error)
	DeleteByID(ctx context.Context, id string) (*model.Contact, error)
}
