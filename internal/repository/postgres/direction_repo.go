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

type directionRepo struct {
	db *pgxpool.Pool
}

func NewDirectionRepository(db *pgxpool.Pool) domain.DirectionRepository {
	return &directionRepo{db: db}
}

const directionColumns = `id, name, COALESCE(description, ''), created_at, updated_at`

func scanDirection(row pgx.Row) (*domain.Direction, error) {
	var d domain.Direction
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan direction: %w", err)
	}
	return &d, nil
}

func (r *directionRepo) GetByID(ctx context.Context, id int64) (*domain.Direction, error) {
	query := `SELECT ` + directionColumns + ` FROM directions WHERE id = $1`
	return scanDirection(querier(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *directionRepo) GetByName(ctx context.Context, name string) (*domain.Direction, error) {
	query := `SELECT ` + directionColumns + ` FROM directions WHERE LOWER(name) = LOWER($1)`
	return scanDirection(querier(ctx, r.db).QueryRow(ctx, query, name))
}

func (r *directionRepo) Create(ctx context.Context, direction *domain.Direction) (*domain.Direction, error) {
	query := `
		INSERT INTO directions (name, description, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), NOW(), NOW())
		RETURNING ` + directionColumns

	created, err := scanDirection(querier(ctx, r.db).QueryRow(ctx, query, direction.Name, direction.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(fmt.Sprintf("Direction %q already exists", direction.Name))
		}
		return nil, err
	}
	return created, nil
}

func (r *directionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM directions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete direction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *directionRepo) ListAll(ctx context.Context) ([]domain.Direction, error) {
	query := `SELECT ` + directionColumns + ` FROM directions ORDER BY id`
	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list directions: %w", err)
	}
	defer rows.Close()

	var directions []domain.Direction
	for rows.Next() {
		var d domain.Direction
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan direction row: %w", err)
		}
		directions = append(directions, d)
	}
	return directions, rows.Err()
}
