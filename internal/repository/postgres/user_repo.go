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

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password, name, city_id, direction_id, is_onboarding_completed, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.CityID, &u.DirectionID,
		&u.IsOnboardingCompleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64, populate domain.UserPopulate) (*domain.User, error) {
	q := querier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil || user == nil {
		return nil, err
	}

	if populate.City && user.CityID != nil {
		city, err := r.loadCity(ctx, q, *user.CityID)
		if err != nil {
			return nil, err
		}
		user.City = city
	}

	if populate.Direction && user.DirectionID != nil {
		direction, err := r.loadDirection(ctx, q, *user.DirectionID)
		if err != nil {
			return nil, err
		}
		user.Direction = direction
	}

	if populate.Skills {
		if err := r.loadSkills(ctx, q, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(querier(ctx, r.db).QueryRow(ctx, query, email))
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING ` + userColumns

	created, err := scanUser(querier(ctx, r.db).QueryRow(ctx, query, user.Email, user.Password))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("User with this email already exists")
		}
		return nil, err
	}
	return created, nil
}

func (r *userRepo) CompleteOnboarding(ctx context.Context, id int64, name string, cityID, directionID int64) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = $2,
			city_id = $3,
			direction_id = $4,
			is_onboarding_completed = TRUE,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(querier(ctx, r.db).QueryRow(ctx, query, id, name, cityID, directionID))
}

func (r *userRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`
	_, err := querier(ctx, r.db).Exec(ctx, query, id, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *userRepo) loadCity(ctx context.Context, q DBTX, cityID int64) (*domain.City, error) {
	query := `
		SELECT c.id, c.name, c.country_id, c.created_at, c.updated_at,
		       co.id, co.name, co.created_at, co.updated_at
		FROM cities c
		JOIN countries co ON co.id = c.country_id
		WHERE c.id = $1`

	var city domain.City
	var country domain.Country
	err := q.QueryRow(ctx, query, cityID).Scan(
		&city.ID, &city.Name, &city.CountryID, &city.CreatedAt, &city.UpdatedAt,
		&country.ID, &country.Name, &country.CreatedAt, &country.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load city: %w", err)
	}
	city.Country = &country
	return &city, nil
}

func (r *userRepo) loadDirection(ctx context.Context, q DBTX, directionID int64) (*domain.Direction, error) {
	query := `SELECT id, name, COALESCE(description, ''), created_at, updated_at FROM directions WHERE id = $1`

	var d domain.Direction
	err := q.QueryRow(ctx, query, directionID).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load direction: %w", err)
	}
	return &d, nil
}

// loadSkills splits the user's skill links into known skills and modules.
func (r *userRepo) loadSkills(ctx context.Context, q DBTX, user *domain.User) error {
	query := `
		SELECT us.user_id, us.skill_id, us.to_learn, us.match_percentage, us.created_at,
		       s.id, s.name, s.created_at, s.updated_at
		FROM user_skills us
		JOIN skills s ON s.id = us.skill_id
		WHERE us.user_id = $1
		ORDER BY us.created_at, us.skill_id`

	rows, err := q.Query(ctx, query, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load user skills: %w", err)
	}
	defer rows.Close()

	user.Skills = []domain.UserSkill{}
	user.Modules = []domain.UserSkill{}

	for rows.Next() {
		var us domain.UserSkill
		var skill domain.Skill
		if err := rows.Scan(
			&us.UserID, &us.SkillID, &us.ToLearn, &us.MatchPercentage, &us.CreatedAt,
			&skill.ID, &skill.Name, &skill.CreatedAt, &skill.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan user skill: %w", err)
		}
		us.Skill = &skill
		if us.ToLearn {
			user.Modules = append(user.Modules, us)
		} else {
			user.Skills = append(user.Skills, us)
		}
	}

	return rows.Err()
}
