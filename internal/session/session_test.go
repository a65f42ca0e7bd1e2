package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/mealtrack/internal/domain/user"
	"github.com/google/uuid"
)

type fakeUserResolver struct {
	getFn func(ctx context.Context, id string) (user.User, error)
}

func (f *fakeUserResolver) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}

	return user.User{}, user.ErrNotFound
}

func TestValidate(t *testing.T) {
	knownID := uuid.NewString()

	resolver := &fakeUserResolver{
		getFn: func(ctx context.Context, id string) (user.User, error) {
			if id == knownID {
				return user.User{ID: knownID}, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}

	m := NewManager(resolver, 24*time.Hour, "test")

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr error
	}{
		{
			name:    "empty_token",
			token:   "",
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "not_a_uuid",
			token:   "definitely-not-a-uuid",
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "dangling_session",
			token:   uuid.NewString(),
			wantErr: ErrSessionInvalid,
		},
		{
			name:   "resolves_to_user",
			token:  knownID,
			wantID: knownID,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			id, err := m.Validate(context.Background(), tt.token)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got err %v, want %v", err, tt.wantErr)
			}

			if id != tt.wantID {
				t.Fatalf("got id %q, want %q", id, tt.wantID)
			}
		})
	}
}

// A malformed token must never hit the store: syntax is checked first.
func TestValidate_ShortCircuitsBeforeLookup(t *testing.T) {
	calls := 0

	resolver := &fakeUserResolver{
		getFn: func(ctx context.Context, id string) (user.User, error) {
			calls++
			return user.User{}, user.ErrNotFound
		},
	}

	m := NewManager(resolver, time.Hour, "test")

	_, err := m.Validate(context.Background(), "nope")

	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("got err %v, want ErrUnauthenticated", err)
	}

	if calls != 0 {
		t.Fatalf("expected no store lookups, got %d", calls)
	}
}

func TestValidate_StoreErrorPassesThrough(t *testing.T) {
	boom := errors.New("db down")

	resolver := &fakeUserResolver{
		getFn: func(ctx context.Context, id string) (user.User, error) {
			return user.User{}, boom
		},
	}

	m := NewManager(resolver, time.Hour, "test")

	_, err := m.Validate(context.Background(), uuid.NewString())

	if !errors.Is(err, boom) {
		t.Fatalf("got err %v, want passthrough of store error", err)
	}
}
