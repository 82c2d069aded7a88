package domain

import (
	"context"
	"time"
)

type User struct {
	ID                    int64       `json:"id"`
	Email                 string      `json:"email"`
	Password              string      `json:"-"`
	Name                  *string     `json:"name,omitempty"`
	CityID                *int64      `json:"city_id,omitempty"`
	DirectionID           *int64      `json:"direction_id,omitempty"`
	IsOnboardingCompleted bool        `json:"is_onboarding_completed"`
	City                  *City       `json:"city,omitempty"`
	Direction             *Direction  `json:"direction,omitempty"`
	Skills                []UserSkill `json:"skills,omitempty"`  // already-known (to_learn=false)
	Modules               []UserSkill `json:"modules,omitempty"` // suggested learning goals (to_learn=true)
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// UserSkill links a user to a skill, either as already-known or as an
// AI-suggested learning goal with an optional match confidence.
type UserSkill struct {
	UserID          int64     `json:"user_id"`
	SkillID         int64     `json:"skill_id"`
	ToLearn         bool      `json:"to_learn"`
	MatchPercentage *float64  `json:"match_percentage,omitempty"`
	Skill           *Skill    `json:"skill,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserPopulate selects which relations a user read should join. Relation
// loading is always explicit; nothing is inferred from earlier queries.
type UserPopulate struct {
	City      bool
	Direction bool
	Skills    bool
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64, populate UserPopulate) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	// CompleteOnboarding sets name, city, direction and flips
	// is_onboarding_completed to true.
	CompleteOnboarding(ctx context.Context, id int64, name string, cityID, directionID int64) (*User, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
}

type UserSkillRepository interface {
	// Add inserts the link. Inserting an already-attached (user, skill)
	// pair is a no-op, not an error.
	Add(ctx context.Context, userSkill *UserSkill) error
}

type CreateProfileRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	CityID      int64   `json:"city_id" validate:"required"`
	DirectionID int64   `json:"direction_id" validate:"required"`
	SkillIDs    []int64 `json:"skill_ids" validate:"required,min=1"`
}

type UserUsecase interface {
	CreateProfile(ctx context.Context, userID int64, req *CreateProfileRequest) (*User, error)
	GetProfile(ctx context.Context, userID int64, populate UserPopulate) (*User, error)
}
