package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/contactbook/backend/internal/model"
	"github.com/google/uuid"
)

// MemoryContactRepository is an in-process ContactRepository.
// Records are copied on the way in and out so callers never share state
// with the store.
type MemoryContactRepository struct {
	mu       sync.Mutex
	contacts []model.Contact
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

// NewMemoryContactRepository returns a store seeded with cs. Seed records
// without an ID get one.
func NewMemoryContactRepository(cs ...model.Contact) *MemoryContactRepository {
	r := &MemoryContactRepository{contacts: make([]model.Contact, 0, len(cs))}
	for _, c := range cs {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.contacts = append(r.contacts, c)
	}
	return r
}

func (r *MemoryContactRepository) Ping(context.Context) error { return nil }

func (r *MemoryContactRepository) List(context.Context) ([]*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out = append(out, &c)
	}
	return out, nil
}

func (r *MemoryContactRepository) FindByID(_ context.Context, id string) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	c := r.contacts[i]
	return &c, nil
}

func (r *MemoryContactRepository) InsertMany(_ context.Context, contacts []*model.Contact) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range contacts {
		c.ID = uuid.NewString()
		r.contacts = append(r.contacts, *c)
	}
	return len(contacts), nil
}

func (r *MemoryContactRepository) UpdateByID(_ context.Context, id string, c *model.Contact) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	r.contacts[i].Nama = c.Nama
	r.contacts[i].Email = c.Email
	r.contacts[i].NoHP = c.NoHP
	updated := r.contacts[i]
	return &updated, nil
}

func (r *MemoryContactRepository) DeleteByID(_ context.Context, id string) (*model.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	removed := r.contacts[i]
	r.contacts = slices.Delete(r.contacts, i, i+1)
	return &removed, nil
}

func (r *MemoryContactRepository) indexOf(id string) int {
	return slices.IndexFunc(r.contacts, func(c model.Contact) bool { return c.ID == id })
}
