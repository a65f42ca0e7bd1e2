package middlewares_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geocoder89/mealtrack/internal/domain/user"
	"github.com/geocoder89/mealtrack/internal/http/middlewares"
	"github.com/geocoder89/mealtrack/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserResolver struct {
	knownID string
}

func (f *fakeUserResolver) GetByID(ctx context.Context, id string) (user.User, error) {
	if id == f.knownID {
		return user.User{ID: id}, nil
	}

	return user.User{}, user.ErrNotFound
}

func protectedRouter(knownID string) *gin.Engine {
	sessions := session.NewManager(&fakeUserResolver{knownID: knownID}, time.Hour, "test")
	guard := middlewares.NewSessionMiddleware(sessions)

	r := gin.New()
	r.GET("/protected", guard.RequireSession(), func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})

	return r
}

func TestRequireSession(t *testing.T) {
	knownID := uuid.NewString()

	tests := []struct {
		name           string
		cookie         *http.Cookie
		wantStatusCode int
		wantErrCode    string
	}{
		{
			name:           "no_cookie",
			wantStatusCode: http.StatusUnauthorized,
			wantErrCode:    "unauthenticated",
		},
		{
			name:           "garbage_token",
			cookie:         &http.Cookie{Name: session.CookieName, Value: "not-a-uuid"},
			wantStatusCode: http.StatusUnauthorized,
			wantErrCode:    "unauthenticated",
		},
		{
			name:           "dangling_session",
			cookie:         &http.Cookie{Name: session.CookieName, Value: uuid.NewString()},
			wantStatusCode: http.StatusUnauthorized,
			wantErrCode:    "session_invalid",
		},
		{
			name:           "valid_session",
			cookie:         &http.Cookie{Name: session.CookieName, Value: knownID},
			wantStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := protectedRouter(knownID)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)

			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantErrCode != "" && !strings.Contains(w.Body.String(), tt.wantErrCode) {
				t.Fatalf("expected error code %q in body, got %s", tt.wantErrCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp struct {
					UserID string `json:"userId"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal body: %v", err)
				}
				if resp.UserID != knownID {
					t.Fatalf("resolved user %q, want %q", resp.UserID, knownID)
				}
			}
		})
	}
}
