package meal

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(userID string, req CreateMealRequest) Meal {
	now := time.Now().UTC()

	planned := false
	if req.Planned != nil {
		planned = *req.Planned
	}

	return Meal{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Planned:     planned,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
