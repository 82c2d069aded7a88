package domain

import (
	"context"
	"time"
)

// Skill names are unique under case-insensitive comparison.
type Skill struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SkillRepository interface {
	GetByID(ctx context.Context, id int64) (*Skill, error)
	// GetByName matches case-insensitively and returns nil when absent.
	GetByName(ctx context.Context, name string) (*Skill, error)
	Create(ctx context.Context, skill *Skill) (*Skill, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// ListAll returns every skill, used to warm the search mirror.
	ListAll(ctx context.Context) ([]Skill, error)
}

type CreateSkillRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type SkillUsecase interface {
	GetByID(ctx context.Context, id int64) (*Skill, error)
	Create(ctx context.Context, req *CreateSkillRequest) (*Skill, error)
	Delete(ctx context.Context, id int64) error
	Autocomplete(ctx context.Context, query string, page, perPage int) (*Pagination[SearchRecord], error)
}
