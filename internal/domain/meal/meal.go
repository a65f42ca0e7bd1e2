package meal

import (
	"errors"
	"time"
)

type Meal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Planned     bool      `json:"planned"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("meal not found")

type CreateMealRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	// pointer so a missing boolean is a binding error rather than a silent false
	Planned *bool `json:"planned" binding:"required"`
}

// a full replace of the three mutable fields, same shape as create.
type UpdateMealRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Planned     *bool  `json:"planned" binding:"required"`
}
