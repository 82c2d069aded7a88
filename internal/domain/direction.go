package domain

import (
	"context"
	"time"
)

// Direction is a career specialization ("Data Engineer", "Welder").
// Names are unique under case-insensitive comparison.
type Direction struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Salary is a persisted monthly-income reference value for one
// (direction, city) pair. At most one row exists per pair; repeated AI
// suggestions never overwrite a stored value.
type Salary struct {
	ID          int64      `json:"id"`
	DirectionID int64      `json:"direction_id"`
	CityID      int64      `json:"city_id"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Direction   *Direction `json:"direction,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type DirectionRepository interface {
	GetByID(ctx context.Context, id int64) (*Direction, error)
	// GetByName matches case-insensitively and returns nil when absent.
	GetByName(ctx context.Context, name string) (*Direction, error)
	Create(ctx context.Context, direction *Direction) (*Direction, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// ListAll returns every direction, used to warm the search mirror.
	ListAll(ctx context.Context) ([]Direction, error)
}

type SalaryRepository interface {
	GetByCityAndDirection(ctx context.Context, cityID, directionID int64) (*Salary, error)
	Create(ctx context.Context, salary *Salary) (*Salary, error)
}

type AIDirectionsRequest struct {
	CityID int64    `json:"city_id" validate:"required"`
	Skills []string `json:"skills"`
}

type CreateDirectionRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type DirectionUsecase interface {
	GetAIDirections(ctx context.Context, req *AIDirectionsRequest) ([]Salary, error)
	GetByID(ctx context.Context, id int64) (*Direction, error)
	Create(ctx context.Context, req *CreateDirectionRequest) (*Direction, error)
	Delete(ctx context.Context, id int64) error
	Autocomplete(ctx context.Context, query string, page, perPage int) (*Pagination[SearchRecord], error)
}
