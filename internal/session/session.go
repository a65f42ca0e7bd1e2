package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/mealtrack/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The session token is the authenticated user's UUID, carried only by the
// client cookie. There is no server-side session table: a token is valid
// exactly as long as the user row exists.
const CookieName = "sessionId"

var (
	// token missing or not a UUID at all
	ErrUnauthenticated = errors.New("missing or malformed session token")
	// token well-formed but no user row behind it (dangling session)
	ErrSessionInvalid = errors.New("session does not resolve to a user")
)

// Keep this small interface so tests can fake it easily.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type Manager struct {
	users  UserResolver
	ttl    time.Duration
	secure bool
}

func NewManager(users UserResolver, ttl time.Duration, env string) *Manager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &Manager{
		users:  users,
		ttl:    ttl,
		secure: env == "prod",
	}
}

// Issue binds a session cookie to the user id after signup or login.
func (m *Manager) Issue(ctx *gin.Context, userID string) {
	ctx.SetSameSite(http.SameSiteStrictMode)

	ctx.SetCookie(
		CookieName,
		userID,
		int(m.ttl.Seconds()),
		"/",
		"",
		m.secure,
		true, // HttpOnly.
	)
}

func (m *Manager) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}

// Token reads the raw cookie value; empty string when absent.
func (m *Manager) Token(ctx *gin.Context) string {
	raw, err := ctx.Cookie(CookieName)

	if err != nil {
		return ""
	}

	return raw
}

// Validate runs the two-stage check in order: syntax first, then row
// existence. It short-circuits on the first failure and returns the
// resolved user id for ownership scoping.
func (m *Manager) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	id, err := uuid.Parse(token)

	if err != nil {
		return "", ErrUnauthenticated
	}

	u, err := m.users.GetByID(ctx, id.String())

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrSessionInvalid
		}

		return "", err
	}

	return u.ID, nil
}
