package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/mealtrack/internal/domain/meal"
	"github.com/google/uuid"
)

func boolPtr(b bool) *bool { return &b }

func TestMealsRepo_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := NewMealsRepo()

	ownerA := uuid.NewString()
	ownerB := uuid.NewString()

	created, err := repo.Create(ctx, ownerA, meal.CreateMealRequest{
		Name:        "Breakfast",
		Description: "bacon with eggs",
		Planned:     boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// the correct id under the wrong owner must look absent
	if _, err := repo.GetByOwnerAndID(ctx, ownerB, created.ID); !errors.Is(err, meal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}

	if _, err := repo.UpdateByOwnerAndID(ctx, ownerB, created.ID, meal.UpdateMealRequest{
		Name:    "Hijacked",
		Planned: boolPtr(false),
	}); !errors.Is(err, meal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign update, got %v", err)
	}

	if err := repo.DeleteByOwnerAndID(ctx, ownerB, created.ID); !errors.Is(err, meal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on foreign delete, got %v", err)
	}

	// still fully visible to its owner
	got, err := repo.GetByOwnerAndID(ctx, ownerA, created.ID)
	if err != nil {
		t.Fatalf("GetByOwnerAndID error: %v", err)
	}
	if got.Name != "Breakfast" || !got.Planned {
		t.Fatalf("unexpected meal: %+v", got)
	}
}

func TestMealsRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMealsRepo()
	owner := uuid.NewString()

	created, err := repo.Create(ctx, owner, meal.CreateMealRequest{
		Name:        "Lunch",
		Description: "salad",
		Planned:     boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := repo.UpdateByOwnerAndID(ctx, owner, created.ID, meal.UpdateMealRequest{
		Name:        "Late lunch",
		Description: "salad, extra dressing",
		Planned:     boolPtr(false),
	})
	if err != nil {
		t.Fatalf("UpdateByOwnerAndID error: %v", err)
	}

	if updated.ID != created.ID || updated.UserID != owner {
		t.Fatalf("update must not change id or owner: %+v", updated)
	}
	if updated.Name != "Late lunch" || updated.Planned {
		t.Fatalf("update not applied: %+v", updated)
	}

	got, err := repo.GetByOwnerAndID(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("GetByOwnerAndID error: %v", err)
	}
	if got.Name != updated.Name || got.Description != updated.Description || got.Planned != updated.Planned {
		t.Fatalf("re-fetch mismatch: %+v vs %+v", got, updated)
	}

	if err := repo.DeleteByOwnerAndID(ctx, owner, created.ID); err != nil {
		t.Fatalf("DeleteByOwnerAndID error: %v", err)
	}

	if _, err := repo.GetByOwnerAndID(ctx, owner, created.ID); !errors.Is(err, meal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMealsRepo_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMealsRepo()
	owner := uuid.NewString()

	names := []string{"first", "second", "third"}

	for _, n := range names {
		if _, err := repo.Create(ctx, owner, meal.CreateMealRequest{Name: n, Planned: boolPtr(true)}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	meals, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}

	if len(meals) != len(names) {
		t.Fatalf("got %d meals, want %d", len(meals), len(names))
	}

	for i, n := range names {
		if meals[i].Name != n {
			t.Fatalf("position %d: got %q, want %q", i, meals[i].Name, n)
		}
	}
}
