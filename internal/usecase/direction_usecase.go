package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type directionUsecase struct {
	directionRepo domain.DirectionRepository
	salaryRepo    domain.SalaryRepository
	cityRepo      domain.CityRepository
	recommender   domain.AIRecommender
	search        domain.SearchIndex
	validate      *validator.Validate
}

func NewDirectionUsecase(
	directionRepo domain.DirectionRepository,
	salaryRepo domain.SalaryRepository,
	cityRepo domain.CityRepository,
	recommender domain.AIRecommender,
	search domain.SearchIndex,
	validate *validator.Validate,
) domain.DirectionUsecase {
	return &directionUsecase{
		directionRepo: directionRepo,
		salaryRepo:    salaryRepo,
		cityRepo:      cityRepo,
		recommender:   recommender,
		search:        search,
		validate:      validate,
	}
}

// GetAIDirections asks the AI for specializations matching the user's
// skills and persists each suggestion as reference data. Every suggestion
// is its own atomic step: a stored salary for a (city, direction) pair is
// never overwritten by a later suggestion.
func (uc *directionUsecase) GetAIDirections(ctx context.Context, req *domain.AIDirectionsRequest) ([]domain.Salary, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}

	city, err := uc.cityRepo.GetByID(ctx, req.CityID, true)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if city == nil {
		return nil, apperror.NotFound("City not found")
	}

	countryName := ""
	if city.Country != nil {
		countryName = city.Country.Name
	}

	suggestions, err := uc.recommender.Specializations(ctx, req.Skills, city.Name, countryName)
	if err != nil {
		return nil, err
	}

	results := make([]domain.Salary, 0, len(suggestions))
	for _, suggestion := range suggestions {
		salary, err := uc.persistSuggestion(ctx, city.ID, suggestion)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		results = append(results, *salary)
	}
	return results, nil
}

// persistSuggestion materializes one suggestion: direction get-or-create
// by case-insensitive name, then salary get-or-create for the pair. A
// concurrent insert losing the race falls back to re-reading the row the
// winner committed.
func (uc *directionUsecase) persistSuggestion(ctx context.Context, cityID int64, suggestion domain.SalarySuggestion) (*domain.Salary, error) {
	name := strings.TrimSpace(suggestion.DirectionName)

	direction, err := uc.directionRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if direction == nil {
		direction, err = uc.directionRepo.Create(ctx, &domain.Direction{
			Name:        name,
			Description: suggestion.Description,
		})
		if err != nil {
			direction, err = uc.recoverDirection(ctx, name, err)
			if err != nil {
				return nil, err
			}
		} else {
			uc.indexDirection(ctx, direction)
		}
	}

	salary, err := uc.salaryRepo.GetByCityAndDirection(ctx, cityID, direction.ID)
	if err != nil {
		return nil, err
	}
	if salary == nil {
		salary, err = uc.salaryRepo.Create(ctx, &domain.Salary{
			DirectionID: direction.ID,
			CityID:      cityID,
			Amount:      suggestion.Amount,
			Currency:    suggestion.Currency,
		})
		if err != nil {
			salary, err = uc.recoverSalary(ctx, cityID, direction.ID, err)
			if err != nil {
				return nil, err
			}
		}
	}

	salary.Direction = direction
	return salary, nil
}

func (uc *directionUsecase) recoverDirection(ctx context.Context, name string, createErr error) (*domain.Direction, error) {
	var appErr *apperror.AppError
	if !errors.As(createErr, &appErr) || appErr.Code != http.StatusConflict {
		return nil, createErr
	}
	direction, err := uc.directionRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if direction == nil {
		return nil, createErr
	}
	return direction, nil
}

func (uc *directionUsecase) recoverSalary(ctx context.Context, cityID, directionID int64, createErr error) (*domain.Salary, error) {
	var appErr *apperror.AppError
	if !errors.As(createErr, &appErr) || appErr.Code != http.StatusConflict {
		return nil, createErr
	}
	salary, err := uc.salaryRepo.GetByCityAndDirection(ctx, cityID, directionID)
	if err != nil {
		return nil, err
	}
	if salary == nil {
		return nil, createErr
	}
	return salary, nil
}

func (uc *directionUsecase) GetByID(ctx context.Context, id int64) (*domain.Direction, error) {
	direction, err := uc.directionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if direction == nil {
		return nil, apperror.NotFound("Direction not found")
	}
	return direction, nil
}

func (uc *directionUsecase) Create(ctx context.Context, req *domain.CreateDirectionRequest) (*domain.Direction, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}
	direction, err := uc.directionRepo.Create(ctx, &domain.Direction{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	uc.indexDirection(ctx, direction)
	return direction, nil
}

func (uc *directionUsecase) Delete(ctx context.Context, id int64) error {
	deleted, err := uc.directionRepo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound("Direction not found")
	}
	if err := uc.search.Delete(ctx, id); err != nil {
		logger.Log.Warn("failed to delete direction from search index", "id", id, "error", err)
	}
	return nil
}

func (uc *directionUsecase) Autocomplete(ctx context.Context, query string, page, perPage int) (*domain.Pagination[domain.SearchRecord], error) {
	page, perPage = domain.NormalizePagination(page, perPage)
	if err := uc.warmUpIfEmpty(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	result, err := uc.search.Search(ctx, query, page, perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return result, nil
}

// warmUpIfEmpty bulk-loads the mirror from the table the first time the
// index reports no usable documents. Count returns -1 when the backend
// is unreachable, which also triggers a fresh attempt.
func (uc *directionUsecase) warmUpIfEmpty(ctx context.Context) error {
	if uc.search.Count(ctx) >= 1 {
		return nil
	}
	if err := uc.search.CreateIndexIfNotExists(ctx); err != nil {
		return err
	}
	directions, err := uc.directionRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	records := make([]domain.SearchRecord, 0, len(directions))
	for _, d := range directions {
		records = append(records, domain.SearchRecord{ID: d.ID, Name: d.Name})
	}
	return uc.search.BulkIndex(ctx, records)
}

func (uc *directionUsecase) indexDirection(ctx context.Context, direction *domain.Direction) {
	if err := uc.search.Index(ctx, direction.ID, direction.Name); err != nil {
		logger.Log.Warn("failed to index direction", "id", direction.ID, "error", err)
	}
}
