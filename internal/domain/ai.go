package domain

import "context"

// SalarySuggestion is one parsed specialization suggestion from the AI
// provider: a direction plus an entry-level monthly salary.
type SalarySuggestion struct {
	DirectionName string
	Description   string
	Amount        float64
	Currency      string
}

// SkillSuggestion is one theoretical skill a person in a direction is
// expected to eventually learn, with the provider's match confidence.
type SkillSuggestion struct {
	Name            string
	MatchPercentage *float64
}

// AIRecommender wraps the external completion provider. Both operations
// degrade to an empty slice on provider or parse failure; the only error
// they return is a rejected temperature (outside [0, 2]), which fails
// fast before any I/O.
type AIRecommender interface {
	Specializations(ctx context.Context, skills []string, city, country string) ([]SalarySuggestion, error)
	TheoreticalSkills(ctx context.Context, directionName string, knownSkills []string) ([]SkillSuggestion, error)
}
