package postgres

import (
	"context"
	"fmt"

	"skills-platform-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userSkillRepo struct {
	db *pgxpool.Pool
}

func NewUserSkillRepository(db *pgxpool.Pool) domain.UserSkillRepository {
	return &userSkillRepo{db: db}
}

func (r *userSkillRepo) Add(ctx context.Context, userSkill *domain.UserSkill) error {
	// ON CONFLICT DO NOTHING keeps repeated attachment of the same skill
	// idempotent per (user, skill).
	query := `
		INSERT INTO user_skills (user_id, skill_id, to_learn, match_percentage, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, skill_id) DO NOTHING`

	_, err := querier(ctx, r.db).Exec(ctx, query,
		userSkill.UserID, userSkill.SkillID, userSkill.ToLearn, userSkill.MatchPercentage)
	if err != nil {
		return fmt.Errorf("failed to add user skill: %w", err)
	}
	return nil
}
