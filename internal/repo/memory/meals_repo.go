package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/mealtrack/internal/domain/meal"
)

// MealsRepo is an in-memory meal store with the same contract as the
// postgres one. It keeps insertion order, which the metrics computation
// relies on.
type MealsRepo struct {
	mu    sync.RWMutex
	items []meal.Meal
}

func NewMealsRepo() *MealsRepo {
	return &MealsRepo{
		items: make([]meal.Meal, 0),
	}
}

func (r *MealsRepo) ListByOwner(ctx context.Context, userID string) ([]meal.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]meal.Meal, 0)

	for _, m := range r.items {
		if m.UserID == userID {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *MealsRepo) GetByOwnerAndID(ctx context.Context, userID, mealID string) (meal.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.ID == mealID && m.UserID == userID {
			return m, nil
		}
	}

	return meal.Meal{}, meal.ErrNotFound
}

func (r *MealsRepo) Create(ctx context.Context, userID string, req meal.CreateMealRequest) (meal.Meal, error) {
	m := meal.NewFromCreateRequest(userID, req)

	r.mu.Lock()
	r.items = append(r.items, m)
	r.mu.Unlock()

	return m, nil
}

func (r *MealsRepo) UpdateByOwnerAndID(ctx context.Context, userID, mealID string, req meal.UpdateMealRequest) (meal.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.items {
		if m.ID == mealID && m.UserID == userID {
			m.Name = req.Name
			m.Description = req.Description
			if req.Planned != nil {
				m.Planned = *req.Planned
			}
			m.UpdatedAt = time.Now().UTC()

			r.items[i] = m

			return m, nil
		}
	}

	return meal.Meal{}, meal.ErrNotFound
}

func (r *MealsRepo) DeleteByOwnerAndID(ctx context.Context, userID, mealID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.items {
		if m.ID == mealID && m.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}

	return meal.ErrNotFound
}
