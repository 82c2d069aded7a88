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

type countryRepo struct {
	db *pgxpool.Pool
}

func NewCountryRepository(db *pgxpool.Pool) domain.CountryRepository {
	return &countryRepo{db: db}
}

func (r *countryRepo) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	query := `SELECT id, name, created_at, updated_at FROM countries WHERE id = $1`

	var c domain.Country
	err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return &c, nil
}

func (r *countryRepo) Create(ctx context.Context, country *domain.Country) (*domain.Country, error) {
	query := `
		INSERT INTO countries (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, name, created_at, updated_at`

	var c domain.Country
	err := querier(ctx, r.db).QueryRow(ctx, query, country.Name).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(fmt.Sprintf("Country %q already exists", country.Name))
		}
		return nil, fmt.Errorf("failed to create country: %w", err)
	}
	return &c, nil
}

func (r *countryRepo) List(ctx context.Context, page, perPage int) (*domain.Pagination[domain.Country], error) {
	page, perPage = domain.NormalizePagination(page, perPage)
	q := querier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM countries`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	query := `SELECT id, name, created_at, updated_at FROM countries ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := q.Query(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	items := []domain.Country{}
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.Pagination[domain.Country]{Page: page, PerPage: perPage, Total: total, Items: items}, nil
}

type cityRepo struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) domain.CityRepository {
	return &cityRepo{db: db}
}

func (r *cityRepo) GetByID(ctx context.Context, id int64, populateCountry bool) (*domain.City, error) {
	q := querier(ctx, r.db)

	if !populateCountry {
		query := `SELECT id, name, country_id, created_at, updated_at FROM cities WHERE id = $1`
		var c domain.City
		err := q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CountryID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to get city: %w", err)
		}
		return &c, nil
	}

	query := `
		SELECT c.id, c.name, c.country_id, c.created_at, c.updated_at,
		       co.id, co.name, co.created_at, co.updated_at
		FROM cities c
		JOIN countries co ON co.id = c.country_id
		WHERE c.id = $1`

	var city domain.City
	var country domain.Country
	err := q.QueryRow(ctx, query, id).Scan(
		&city.ID, &city.Name, &city.CountryID, &city.CreatedAt, &city.UpdatedAt,
		&country.ID, &country.Name, &country.CreatedAt, &country.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	city.Country = &country
	return &city, nil
}

func (r *cityRepo) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	query := `
		INSERT INTO cities (name, country_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, name, country_id, created_at, updated_at`

	var c domain.City
	err := querier(ctx, r.db).QueryRow(ctx, query, city.Name, city.CountryID).Scan(
		&c.ID, &c.Name, &c.CountryID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(fmt.Sprintf("City %q already exists in this country", city.Name))
		}
		if isForeignKeyViolation(err) {
			return nil, apperror.NotFound(fmt.Sprintf("Country %d not found", city.CountryID))
		}
		return nil, fmt.Errorf("failed to create city: %w", err)
	}
	return &c, nil
}

func (r *cityRepo) ListByCountry(ctx context.Context, countryID int64, page, perPage int) (*domain.Pagination[domain.City], error) {
	page, perPage = domain.NormalizePagination(page, perPage)
	q := querier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM cities WHERE country_id = $1`, countryID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count cities: %w", err)
	}

	query := `
		SELECT id, name, country_id, created_at, updated_at
		FROM cities
		WHERE country_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, countryID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	items := []domain.City{}
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.Pagination[domain.City]{Page: page, PerPage: perPage, Total: total, Items: items}, nil
}
