package usecase

import (
	"context"
	"strings"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type skillUsecase struct {
	skillRepo domain.SkillRepository
	search    domain.SearchIndex
	validate  *validator.Validate
}

func NewSkillUsecase(skillRepo domain.SkillRepository, search domain.SearchIndex, validate *validator.Validate) domain.SkillUsecase {
	return &skillUsecase{
		skillRepo: skillRepo,
		search:    search,
		validate:  validate,
	}
}

func (uc *skillUsecase) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	skill, err := uc.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if skill == nil {
		return nil, apperror.NotFound("Skill not found")
	}
	return skill, nil
}

func (uc *skillUsecase) Create(ctx context.Context, req *domain.CreateSkillRequest) (*domain.Skill, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}
	skill, err := uc.skillRepo.Create(ctx, &domain.Skill{Name: strings.TrimSpace(req.Name)})
	if err != nil {
		return nil, err
	}
	if err := uc.search.Index(ctx, skill.ID, skill.Name); err != nil {
		logger.Log.Warn("failed to index skill", "id", skill.ID, "error", err)
	}
	return skill, nil
}

func (uc *skillUsecase) Delete(ctx context.Context, id int64) error {
	deleted, err := uc.skillRepo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return apperror.NotFound("Skill not found")
	}
	if err := uc.search.Delete(ctx, id); err != nil {
		logger.Log.Warn("failed to delete skill from search index", "id", id, "error", err)
	}
	return nil
}

func (uc *skillUsecase) Autocomplete(ctx context.Context, query string, page, perPage int) (*domain.Pagination[domain.SearchRecord], error) {
	page, perPage = domain.NormalizePagination(page, perPage)
	if uc.search.Count(ctx) < 1 {
		if err := uc.search.CreateIndexIfNotExists(ctx); err != nil {
			return nil, apperror.Internal(err)
		}
		skills, err := uc.skillRepo.ListAll(ctx)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		records := make([]domain.SearchRecord, 0, len(skills))
		for _, s := range skills {
			records = append(records, domain.SearchRecord{ID: s.ID, Name: s.Name})
		}
		if err := uc.search.BulkIndex(ctx, records); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	result, err := uc.search.Search(ctx, query, page, perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return result, nil
}
