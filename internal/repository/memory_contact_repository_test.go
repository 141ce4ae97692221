package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/contactbook/backend/internal/model"
)

func TestMemoryContactRepository_InsertManyAssignsIDs(t *testing.T) {
	repo := NewMemoryContactRepository()
	ctx := context.Background()

	cs := []*model.Contact{
		{Nama: "A", Email: "a@example.com", NoHP: "081234567890"},
		{Nama: "B", Email: "b@example.com", NoHP: "081234567891"},
	}
	n, err := repo.InsertMany(ctx, cs)
	if err != nil {
		t.Fatalf("InsertMany: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 created, got %d", n)
	}
	if cs[0].ID == "" || cs[1].ID == "" || cs[0].ID == cs[1].ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", cs[0].ID, cs[1].ID)
	}

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].Nama != "A" || list[1].Nama != "B" {
		t.Errorf("expected [A B] in insertion order, got %+v", list)
	}
}

func TestMemoryContactRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryContactRepository()
	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryContactRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryContactRepository(model.Contact{ID: "c1", Nama: "Original"})
	ctx := context.Background()

	c, err := repo.FindByID(ctx, "c1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	c.Nama = "Mutated"

	again, _ := repo.FindByID(ctx, "c1")
	if again.Nama != "Original" {
		t.Errorf("store was mutated through a returned pointer: %q", again.Nama)
	}
}

func TestMemoryContactRepository_UpdateByID(t *testing.T) {
	repo := NewMemoryContactRepository(model.Contact{ID: "c1", Nama: "Old", Email: "old@example.com", NoHP: "0811111111"})
	ctx := context.Background()

	updated, err := repo.UpdateByID(ctx, "c1", &model.Contact{ID: "ignored", Nama: "New", Email: "new@example.com", NoHP: "0822222222"})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if updated.ID != "c1" {
		t.Errorf("id must not change, got %q", updated.ID)
	}
	if updated.Nama != "New" || updated.Email != "new@example.com" || updated.NoHP != "0822222222" {
		t.Errorf("unexpected updated contact: %+v", updated)
	}

	if _, err := repo.UpdateByID(ctx, "missing", &model.Contact{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing id, got %v", err)
	}
}

func TestMemoryContactRepository_DeleteByID_RemovesOnlyTarget(t *testing.T) {
	repo := NewMemoryContactRepository(
		model.Contact{ID: "c1", Nama: "One"},
		model.Contact{ID: "c2", Nama: "Two"},
		model.Contact{ID: "c3", Nama: "Three"},
	)
	ctx := context.Background()

	removed, err := repo.DeleteByID(ctx, "c2")
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if removed.Nama != "Two" {
		t.Errorf("expected removed contact Two, got %+v", removed)
	}

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].ID != "c1" || list[1].ID != "c3" {
		t.Errorf("expected [c1 c3] to remain, got %+v", list)
	}

	if _, err := repo.DeleteByID(ctx, "c2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
