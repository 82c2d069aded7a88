package postgres

import (
	"context"
	"errors"
	"fmt"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func scanSkill(row pgx.Row) (*domain.Skill, error) {
	var s domain.Skill
	err := row.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan skill: %w", err)
	}
	return &s, nil
}

func (r *skillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	query := `SELECT id, name, created_at, updated_at FROM skills WHERE id = $1`
	return scanSkill(querier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *skillRepo) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	query := `SELECT id, name, created_at, updated_at FROM skills WHERE LOWER(name) = LOWER($1)`
	return scanSkill(querier(ctx, r.db).QueryRow(ctx, query, name))
}

func (r *skillRepo) Create(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	query := `
		INSERT INTO skills (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, name, created_at, updated_at`

	created, err := scanSkill(querier(ctx, r.db).QueryRow(ctx, query, skill.Name))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(fmt.Sprintf("Skill %q already exists", skill.Name))
		}
		return nil, err
	}
	return created, nil
}

func (r *skillRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete skill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *skillRepo) ListAll(ctx context.Context) ([]domain.Skill, error) {
	rows, err := querier(ctx, r.db).Query(ctx, `SELECT id, name, created_at, updated_at FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
