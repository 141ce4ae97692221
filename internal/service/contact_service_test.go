package service

import (
	"context"
	"errors"
	"testing"

	"github.com/contactbook/backend/internal/model"
	"github.com/contactbook/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockContactRepository: func-field stub for testing
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	listFunc       func(ctx context.Context) ([]*model.Contact, error)
	findByIDFunc   func(ctx context.Context, id string) (*model.Contact, error)
	insertManyFunc func(ctx context.Context, cs []*model.Contact) (int, error)
	updateByIDFunc func(ctx context.Context, id string, c *model.Contact) (*model.Contact, error)
	deleteByIDFunc func(ctx context.Context, id string) (*model.Contact, error)
}

func (m *mockContactRepository) Ping(ctx context.Context) error { return nil }

func (m *mockContactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockContactRepository) InsertMany(ctx context.Context, cs []*model.Contact) (int, error) {
	if m.insertManyFunc != nil {
		return m.insertManyFunc(ctx, cs)
	}
	return len(cs), nil
}

func (m *mockContactRepository) UpdateByID(ctx context.Context, id string, c *model.Contact) (*model.Contact, error) {
	if m.updateByIDFunc != nil {
		return m.updateByIDFunc(ctx, id, c)
	}
	return nil, repository.ErrNotFound
}

func (m *mockContactRepository) DeleteByID(ctx context.Context, id string) (*model.Contact, error) {
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestContactService_Create_TrimsFields(t *testing.T) {
	var saved []*model.Contact
	mock := &mockContactRepository{
		insertManyFunc: func(ctx context.Context, cs []*model.Contact) (int, error) {
			saved = cs
			return len(cs), nil
		},
	}
	svc := NewContactService(mock)

	n, err := svc.Create(context.Background(), &model.Contact{Nama: "  Budi ", Email: " budi@example.com", NoHP: "081234567890 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 || len(saved) != 1 {
		t.Fatalf("expected one contact stored, got n=%d saved=%d", n, len(saved))
	}
	if saved[0].Nama != "Budi" || saved[0].Email != "budi@example.com" || saved[0].NoHP != "081234567890" {
		t.Errorf("fields not trimmed: %+v", saved[0])
	}
}

func TestContactService_Create_Batch(t *testing.T) {
	svc := NewContactService(repository.NewMemoryContactRepository())

	n, err := svc.Create(context.Background(),
		&model.Contact{Nama: "A"},
		&model.Contact{Nama: "B"},
		&model.Contact{Nama: "C"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 created, got %d", n)
	}
}

func TestContactService_Create_PropagatesError(t *testing.T) {
	mock := &mockContactRepository{
		insertManyFunc: func(ctx context.Context, cs []*model.Contact) (int, error) {
			return 0, errors.New("db down")
		},
	}
	svc := NewContactService(mock)

	if _, err := svc.Create(context.Background(), &model.Contact{Nama: "A"}); err == nil {
		t.Error("expected error from repository")
	}
}

// ---------------------------------------------------------------------------
// Get / Update / Delete tests
// ---------------------------------------------------------------------------

func TestContactService_Get_NotFound(t *testing.T) {
	svc := NewContactService(&mockContactRepository{})

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactService_Update_PassesIDAndTrimmedContact(t *testing.T) {
	var gotID string
	var got *model.Contact
	mock := &mockContactRepository{
		updateByIDFunc: func(ctx context.Context, id string, c *model.Contact) (*model.Contact, error) {
			gotID, got = id, c
			return c, nil
		},
	}
	svc := NewContactService(mock)

	if _, err := svc.Update(context.Background(), "c1", &model.Contact{Nama: " New "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "c1" || got.Nama != "New" {
		t.Errorf("unexpected update call: id=%q contact=%+v", gotID, got)
	}
}

func TestContactService_Update_Idempotent(t *testing.T) {
	repo := repository.NewMemoryContactRepository(model.Contact{ID: "c1", Nama: "Old"})
	svc := NewContactService(repo)
	ctx := context.Background()

	first, err := svc.Update(ctx, "c1", &model.Contact{Nama: "Same", Email: "s@example.com", NoHP: "081234567890"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Update(ctx, "c1", &model.Contact{Nama: "Same", Email: "s@example.com", NoHP: "081234567890"})
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Errorf("repeated update changed state: %+v vs %+v", first, second)
	}
}

func TestContactService_Delete(t *testing.T) {
	repo := repository.NewMemoryContactRepository(model.Contact{ID: "c1", Nama: "Gone"})
	svc := NewContactService(repo)
	ctx := context.Background()

	removed, err := svc.Delete(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if removed.Nama != "Gone" {
		t.Errorf("unexpected removed contact %+v", removed)
	}
	if _, err := svc.Get(ctx, "c1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
