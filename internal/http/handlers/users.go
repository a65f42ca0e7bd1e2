package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/mealtrack/internal/config"
	"github.com/geocoder89/mealtrack/internal/domain/user"
	"github.com/geocoder89/mealtrack/internal/http/middlewares"
	"github.com/geocoder89/mealtrack/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, fullname, email, passwordHash string) (user.User, error)
	Update(ctx context.Context, id string, fullname, email, passwordHash *string) (user.User, error)
}

type SessionIssuer interface {
	Issue(ctx *gin.Context, userID string)
}

type UsersHandler struct {
	users      UserReader
	userWriter UserWriter
	sessions   SessionIssuer
}

func NewUsersHandler(users UserReader, userWriter UserWriter, sessions SessionIssuer) *UsersHandler {
	return &UsersHandler{
		users:      users,
		userWriter: userWriter,
		sessions:   sessions,
	}
}

func (h *UsersHandler) Signup(ctx *gin.Context) {
	var req user.SignupRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// pre-check for a friendly message; the unique index is the real guard
	_, err := h.users.GetByEmail(cctx, req.Email)

	if err == nil {
		RespondConflict(ctx, "email_taken", "E-mail already in use.")
		return
	}

	if !errors.Is(err, user.ErrNotFound) {
		RespondInternal(ctx, "Could not create user")
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.userWriter.Create(cctx, req.Fullname, req.Email, hash)

	if err != nil {
		// two signups can race past the pre-check; the insert settles it
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			RespondConflict(ctx, "email_taken", "E-mail already in use.")
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	h.sessions.Issue(ctx, u.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"user": u,
	})
}

func (h *UsersHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}
	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		// unknown email and wrong password share a response so account
		// existence cannot be probed
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	h.sessions.Issue(ctx, foundUser.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"user": foundUser,
	})
}

// GET /users returns the profile behind the current session.

func (h *UsersHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": u,
	})
}

func (h *UsersHandler) Update(ctx *gin.Context) {
	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	current, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternal(ctx, "Could not update user")
		return
	}

	// the old password gates every profile change, not just password ones
	err = security.CheckPassword(current.PasswordHash, req.OldPassword)

	if err != nil {
		RespondUnAuthorized(ctx, "wrong_password", "Wrong old password")
		return
	}

	if req.Email != nil {
		registered, err := h.users.GetByEmail(cctx, *req.Email)

		if err == nil && registered.ID != userID {
			RespondConflict(ctx, "email_taken", "E-mail already in use.")
			return
		}

		if err != nil && !errors.Is(err, user.ErrNotFound) {
			RespondInternal(ctx, "Could not update user")
			return
		}
	}

	var hashPtr *string

	if req.NewPassword != nil {
		hash, err := security.HashPassword(*req.NewPassword)

		if err != nil {
			RespondInternal(ctx, "Could not update user")
			return
		}

		hashPtr = &hash
	}

	updated, err := h.userWriter.Update(cctx, userID, req.Fullname, req.Email, hashPtr)

	if err != nil {
		// a concurrent signup may have claimed the email between check and write
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			RespondConflict(ctx, "email_taken", "E-mail already in use.")
			return
		}

		RespondInternal(ctx, "Could not update user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": updated,
	})
}
