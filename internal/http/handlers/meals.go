package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/mealtrack/internal/cache"
	"github.com/geocoder89/mealtrack/internal/config"
	"github.com/geocoder89/mealtrack/internal/domain/meal"
	"github.com/geocoder89/mealtrack/internal/http/middlewares"
	"github.com/geocoder89/mealtrack/internal/utils"
	"github.com/gin-gonic/gin"
)

type MealStore interface {
	ListByOwner(ctx context.Context, userID string) ([]meal.Meal, error)
	GetByOwnerAndID(ctx context.Context, userID, mealID string) (meal.Meal, error)
	Create(ctx context.Context, userID string, req meal.CreateMealRequest) (meal.Meal, error)
	UpdateByOwnerAndID(ctx context.Context, userID, mealID string, req meal.UpdateMealRequest) (meal.Meal, error)
	DeleteByOwnerAndID(ctx context.Context, userID, mealID string) error
}

type MealsHandler struct {
	repo         MealStore
	metricsCache *cache.Cache
}

func NewMealsHandler(repo MealStore) *MealsHandler {
	return &MealsHandler{repo: repo}
}

// NewMealsHandlerWithCache also caches metrics responses; writes invalidate.
func NewMealsHandlerWithCache(repo MealStore, c *cache.Cache) *MealsHandler {
	return &MealsHandler{repo: repo, metricsCache: c}
}

func metricsCacheKey(userID string) string {
	return "meals:metrics:v1:user=" + userID
}

func (h *MealsHandler) invalidateMetrics(userID string) {
	if h.metricsCache != nil {
		h.metricsCache.Delete(metricsCacheKey(userID))
	}
}

func (h *MealsHandler) ListMeals(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	meals, err := h.repo.ListByOwner(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not list meals")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": meals,
		"count": len(meals),
	})
}

func (h *MealsHandler) CreateMeal(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	var req meal.CreateMealRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.Create(cctx, userID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create meal")
		return
	}

	h.invalidateMetrics(userID)

	ctx.JSON(http.StatusCreated, m)
}

func (h *MealsHandler) GetMealById(ctx *gin.Context) {
	mealID := ctx.Param("id")

	if !utils.IsUUID(mealID) {
		RespondBadRequest(ctx, "invalid_id", "meal id must be a valid UUID")
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.GetByOwnerAndID(cctx, userID, mealID)

	if err != nil {
		if errors.Is(err, meal.ErrNotFound) {
			RespondNotFound(ctx, "Meal not found")
			return
		}

		RespondInternal(ctx, "Could not fetch meal")
		return
	}

	ctx.JSON(http.StatusOK, m)
}

func (h *MealsHandler) UpdateMeal(ctx *gin.Context) {
	mealID := ctx.Param("id")

	if !utils.IsUUID(mealID) {
		RespondBadRequest(ctx, "invalid_id", "meal id must be a valid UUID")
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	var req meal.UpdateMealRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	m, err := h.repo.UpdateByOwnerAndID(cctx, userID, mealID, req)

	if err != nil {
		if errors.Is(err, meal.ErrNotFound) {
			RespondNotFound(ctx, "Meal not found")
			return
		}

		RespondInternal(ctx, "Could not update meal")
		return
	}

	h.invalidateMetrics(userID)

	ctx.JSON(http.StatusOK, m)
}

func (h *MealsHandler) DeleteMeal(ctx *gin.Context) {
	mealID := ctx.Param("id")

	if !utils.IsUUID(mealID) {
		RespondBadRequest(ctx, "invalid_id", "meal id must be a valid UUID")
		return
	}

	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.DeleteByOwnerAndID(cctx, userID, mealID)

	if err != nil {
		if errors.Is(err, meal.ErrNotFound) {
			RespondNotFound(ctx, "Meal not found")
			return
		}

		RespondInternal(ctx, "Could not delete meal")
		return
	}

	h.invalidateMetrics(userID)

	ctx.Status(http.StatusNoContent)
}

// Metrics aggregates the caller's full meal history. The list is small per
// user, so one linear pass per request is fine; the cache only absorbs
// dashboard-style polling.
func (h *MealsHandler) Metrics(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthenticated", "Missing identity")
		return
	}

	if h.metricsCache != nil {
		if cached, ok := h.metricsCache.Get(metricsCacheKey(userID)); ok {
			if metrics, ok := cached.(meal.Metrics); ok {
				RespondJSONWithETag(ctx, http.StatusOK, metrics)
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	meals, err := h.repo.ListByOwner(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not compute metrics")
		return
	}

	metrics := meal.ComputeMetrics(meals)

	if h.metricsCache != nil {
		h.metricsCache.Set(metricsCacheKey(userID), metrics)
	}

	RespondJSONWithETag(ctx, http.StatusOK, metrics)
}
