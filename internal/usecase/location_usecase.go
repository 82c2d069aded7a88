package usecase

import (
	"context"
	"fmt"
	"strings"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type locationUsecase struct {
	countryRepo domain.CountryRepository
	cityRepo    domain.CityRepository
	validate    *validator.Validate
}

func NewLocationUsecase(countryRepo domain.CountryRepository, cityRepo domain.CityRepository, validate *validator.Validate) domain.LocationUsecase {
	return &locationUsecase{
		countryRepo: countryRepo,
		cityRepo:    cityRepo,
		validate:    validate,
	}
}

func (uc *locationUsecase) ListCountries(ctx context.Context, page, perPage int) (*domain.Pagination[domain.Country], error) {
	page, perPage = domain.NormalizePagination(page, perPage)
	result, err := uc.countryRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return result, nil
}

func (uc *locationUsecase) CreateCountry(ctx context.Context, req *domain.CreateCountryRequest) (*domain.Country, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}
	return uc.countryRepo.Create(ctx, &domain.Country{Name: strings.TrimSpace(req.Name)})
}

func (uc *locationUsecase) ListCitiesByCountry(ctx context.Context, countryID int64, page, perPage int) (*domain.Pagination[domain.City], error) {
	country, err := uc.countryRepo.GetByID(ctx, countryID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if country == nil {
		return nil, apperror.NotFound(fmt.Sprintf("Country %d not found", countryID))
	}
	page, perPage = domain.NormalizePagination(page, perPage)
	result, err := uc.cityRepo.ListByCountry(ctx, countryID, page, perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return result, nil
}

func (uc *locationUsecase) CreateCity(ctx context.Context, req *domain.CreateCityRequest) (*domain.City, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}
	return uc.cityRepo.Create(ctx, &domain.City{
		Name:      strings.TrimSpace(req.Name),
		CountryID: req.CountryID,
	})
}
