package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/mealtrack/internal/domain/meal"
	"github.com/geocoder89/mealtrack/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MealsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMealsRepo(pool *pgxpool.Pool, prom *observability.Prom) *MealsRepo {
	return &MealsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *MealsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// ListByOwner returns the full meal history in creation order, which is the
// order the metrics engine depends on.
func (repo *MealsRepo) ListByOwner(ctx context.Context, userID string) (meals []meal.Meal, err error) {
	var rows pgx.Rows

	err = repo.observe("meals.list_by_owner", func() error {
		rows, err = repo.pool.Query(ctx,
			`
	SELECT id, name, description, planned, user_id, created_at, updated_at
	FROM meals
	WHERE user_id = $1
	ORDER BY created_at ASC, id ASC
	`,
			userID,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	meals = make([]meal.Meal, 0)

	for rows.Next() {
		var m meal.Meal

		e := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Planned, &m.UserID, &m.CreatedAt, &m.UpdatedAt)

		if e != nil {
			err = e
			return
		}
		meals = append(meals, m)
	}

	e := rows.Err()

	if e != nil {
		if repo.prom != nil {
			repo.prom.DbErrorsTotal.WithLabelValues("meals.list_by_owner", "rows_err").Inc()
		}
		err = e
		return
	}

	return
}

// GetByOwnerAndID is scoped by owner: a correct meal id under the wrong
// user comes back as ErrNotFound, indistinguishable from a missing row.
func (repo *MealsRepo) GetByOwnerAndID(ctx context.Context, userID, mealID string) (found meal.Meal, err error) {
	var m meal.Meal

	e := repo.observe("meals.get_by_owner_and_id", func() error {
		return repo.pool.QueryRow(ctx,
			`
		SELECT id, name, description, planned, user_id, created_at, updated_at
		FROM meals
		WHERE id = $1 AND user_id = $2
		`,
			mealID, userID,
		).Scan(&m.ID, &m.Name, &m.Description, &m.Planned, &m.UserID, &m.CreatedAt, &m.UpdatedAt)
	})

	if e != nil {
		if errors.Is(e, pgx.ErrNoRows) {
			err = meal.ErrNotFound
			return
		}

		err = e
		return
	}

	found = m
	return
}

func (repo *MealsRepo) Create(ctx context.Context, userID string, req meal.CreateMealRequest) (meal.Meal, error) {
	m := meal.NewFromCreateRequest(userID, req)

	err := repo.observe("meals.create", func() error {
		_, e := repo.pool.Exec(ctx,
			`INSERT INTO meals (id, name, description, planned, user_id, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			m.ID, m.Name, m.Description, m.Planned, m.UserID, m.CreatedAt, m.UpdatedAt,
		)
		return e
	})

	if err != nil {
		return meal.Meal{}, err
	}

	return m, nil
}

// UpdateByOwnerAndID replaces the three mutable fields in one conditional
// statement. Ownership lives in the WHERE clause, so there is no window
// between checking and mutating.
func (repo *MealsRepo) UpdateByOwnerAndID(ctx context.Context, userID, mealID string, req meal.UpdateMealRequest) (meal.Meal, error) {
	var m meal.Meal

	planned := false
	if req.Planned != nil {
		planned = *req.Planned
	}

	err := repo.observe("meals.update_by_owner_and_id", func() error {
		return repo.pool.QueryRow(
			ctx,
			`UPDATE meals
				SET name        = $3,
						description = $4,
						planned     = $5,
						updated_at  = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING id, name, description, planned, user_id, created_at, updated_at`,
			mealID,
			userID,
			req.Name,
			req.Description,
			planned,
		).Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.Planned,
			&m.UserID,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
	})

	if err != nil {
		// zero rows updated: absent or owned by someone else
		if errors.Is(err, pgx.ErrNoRows) {
			return meal.Meal{}, meal.ErrNotFound
		}

		return meal.Meal{}, err
	}

	return m, nil
}

// DeleteByOwnerAndID removes a single meal for its owner.

func (repo *MealsRepo) DeleteByOwnerAndID(ctx context.Context, userID, mealID string) (err error) {
	var tag pgconn.CommandTag
	op := "meals.delete_by_owner_and_id"

	err = repo.observe(op, func() error {
		var err error
		tag, err = repo.pool.Exec(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, mealID, userID)

		return err
	})

	if err != nil {
		return
	}

	if tag.RowsAffected() == 0 {
		err = meal.ErrNotFound

		return
	}

	return
}
