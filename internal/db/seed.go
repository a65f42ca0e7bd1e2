package db

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/mealtrack/internal/config"
	"github.com/geocoder89/mealtrack/internal/domain/user"
	"github.com/geocoder89/mealtrack/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSeedUser inserts a known account on boot so a fresh environment
// is usable without a manual signup. Skips silently when unconfigured
// or when the account already exists.
func EnsureSeedUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		return nil
	}

	email := user.CanonicalEmail(cfg.SeedEmail)

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.SeedPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Fullname:     cfg.SeedFullname,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, fullname, email, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		`,
		u.ID, u.Fullname, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)

	return err
}
