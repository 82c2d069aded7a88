package domain

import (
	"context"
	"time"
)

type Country struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type City struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CountryID int64     `json:"country_id"`
	Country   *Country  `json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CountryRepository interface {
	GetByID(ctx context.Context, id int64) (*Country, error)
	Create(ctx context.Context, country *Country) (*Country, error)
	List(ctx context.Context, page, perPage int) (*Pagination[Country], error)
}

type CityRepository interface {
	// GetByID returns the city or nil when it does not exist. The country
	// relation is joined only when populateCountry is set.
	GetByID(ctx context.Context, id int64, populateCountry bool) (*City, error)
	Create(ctx context.Context, city *City) (*City, error)
	ListByCountry(ctx context.Context, countryID int64, page, perPage int) (*Pagination[City], error)
}

type CreateCountryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateCityRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	CountryID int64  `json:"country_id" validate:"required"`
}

type LocationUsecase interface {
	ListCountries(ctx context.Context, page, perPage int) (*Pagination[Country], error)
	CreateCountry(ctx context.Context, req *CreateCountryRequest) (*Country, error)
	ListCitiesByCountry(ctx context.Context, countryID int64, page, perPage int) (*Pagination[City], error)
	CreateCity(ctx context.Context, req *CreateCityRequest) (*City, error)
}
