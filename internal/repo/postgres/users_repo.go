package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/mealtrack/internal/domain/user"
	"github.com/geocoder89/mealtrack/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *UsersRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (repo *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := repo.observe("users.get_by_id", func() error {
		return repo.pool.QueryRow(
			ctx,
			`SELECT id, fullname, email, password_hash, created_at, updated_at
			 FROM users
			 WHERE id = $1`,
			id,
		).Scan(
			&u.ID,
			&u.Fullname,
			&u.Email,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

// GetByEmail looks up by the canonical (lowercased) form; rows are stored
// canonical so a plain equality match is enough.
func (repo *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := repo.observe("users.get_by_email", func() error {
		return repo.pool.QueryRow(
			ctx,
			`SELECT id, fullname, email, password_hash, created_at, updated_at
			 FROM users
			 WHERE email = $1`,
			user.CanonicalEmail(email),
		).Scan(
			&u.ID,
			&u.Fullname,
			&u.Email,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

// Create inserts a new user. The unique index on email is the authoritative
// duplicate guard; the handler's pre-check only exists for a friendlier
// message, so a 23505 here still comes back as ErrEmailAlreadyUsed.
func (repo *UsersRepo) Create(ctx context.Context, fullname, email, passwordHash string) (user.User, error) {
	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Fullname:     fullname,
		Email:        user.CanonicalEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := repo.observe("users.create", func() error {
		_, e := repo.pool.Exec(ctx,
			`INSERT INTO users (id, fullname, email, password_hash, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			u.ID, u.Fullname, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		)
		return e
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailAlreadyUsed
		}

		return user.User{}, err
	}

	return u, nil
}

// Update applies a partial profile update: nil fields keep the stored value
// (COALESCE), updated_at always moves.
func (repo *UsersRepo) Update(ctx context.Context, id string, fullname, email, passwordHash *string) (user.User, error) {
	var u user.User

	if email != nil {
		canonical := user.CanonicalEmail(*email)
		email = &canonical
	}

	err := repo.observe("users.update", func() error {
		return repo.pool.QueryRow(
			ctx,
			`UPDATE users
				SET fullname      = COALESCE($2, fullname),
						email         = COALESCE($3, email),
						password_hash = COALESCE($4, password_hash),
						updated_at    = NOW()
			WHERE id = $1
			RETURNING id, fullname, email, password_hash, created_at, updated_at`,
			id,
			fullname,
			email,
			passwordHash,
		).Scan(
			&u.ID,
			&u.Fullname,
			&u.Email,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailAlreadyUsed
		}

		return user.User{}, err
	}

	return u, nil
}

// IsUniqueViolation reports whether err is a postgres unique constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
