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

type salaryRepo struct {
	db *pgxpool.Pool
}

func NewSalaryRepository(db *pgxpool.Pool) domain.SalaryRepository {
	return &salaryRepo{db: db}
}

const salaryColumns = `id, direction_id, city_id, amount, currency, created_at, updated_at`

func scanSalary(row pgx.Row) (*domain.Salary, error) {
	var s domain.Salary
	err := row.Scan(&s.ID, &s.DirectionID, &s.CityID, &s.Amount, &s.Currency, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan salary: %w", err)
	}
	return &s, nil
}

func (r *salaryRepo) GetByCityAndDirection(ctx context.Context, cityID, directionID int64) (*domain.Salary, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE city_id = $1 AND direction_id = $2`
	return scanSalary(querier(ctx, r.db).QueryRow(ctx, query, cityID, directionID))
}

func (r *salaryRepo) Create(ctx context.Context, salary *domain.Salary) (*domain.Salary, error) {
	query := `
		INSERT INTO salaries (direction_id, city_id, amount, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + salaryColumns

	created, err := scanSalary(querier(ctx, r.db).QueryRow(ctx, query,
		salary.DirectionID, salary.CityID, salary.Amount, salary.Currency))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("Salary for this direction and city already exists")
		}
		return nil, err
	}
	return created, nil
}
