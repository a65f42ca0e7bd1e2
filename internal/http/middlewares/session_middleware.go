package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/geocoder89/mealtrack/internal/session"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type SessionValidator interface {
	Token(ctx *gin.Context) string
	Validate(ctx context.Context, token string) (string, error)
}

type SessionMiddleware struct {
	sessions SessionValidator
}

func NewSessionMiddleware(sessions SessionValidator) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession gates every protected route. Check order matters: a
// missing/garbled cookie is "unauthenticated", a well-formed cookie whose
// user is gone is "session_invalid"; the first failure aborts.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.sessions.Token(c)

		userID, err := m.sessions.Validate(c.Request.Context(), token)

		if err != nil {
			switch {
			case errors.Is(err, session.ErrUnauthenticated):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{
						"code":    "unauthenticated",
						"message": "Missing or invalid session cookie",
					},
				})
			case errors.Is(err, session.ErrSessionInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": gin.H{
						"code":    "session_invalid",
						"message": "Session does not match a known user",
					},
				})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "internal_error",
						"message": "Could not validate session",
					},
				})
			}
			return
		}

		// Stash the resolved identity on the context
		c.Set(ctxUserIDKey, userID)

		c.Next()
	}
}

// Helper so handlers don't need to know the magic key.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
