package usecase

import (
	"context"
	"fmt"
	"strings"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type userUsecase struct {
	userRepo      domain.UserRepository
	userSkillRepo domain.UserSkillRepository
	skillRepo     domain.SkillRepository
	directionRepo domain.DirectionRepository
	cityRepo      domain.CityRepository
	recommender   domain.AIRecommender
	tx            domain.Transactor
	validate      *validator.Validate
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	userSkillRepo domain.UserSkillRepository,
	skillRepo domain.SkillRepository,
	directionRepo domain.DirectionRepository,
	cityRepo domain.CityRepository,
	recommender domain.AIRecommender,
	tx domain.Transactor,
	validate *validator.Validate,
) domain.UserUsecase {
	return &userUsecase{
		userRepo:      userRepo,
		userSkillRepo: userSkillRepo,
		skillRepo:     skillRepo,
		directionRepo: directionRepo,
		cityRepo:      cityRepo,
		recommender:   recommender,
		tx:            tx,
		validate:      validate,
	}
}

// dedupeIDs removes duplicates preserving first-seen order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CreateProfile completes onboarding: it attaches the explicit skills,
// asks the AI for theoretical skills of the chosen direction and
// reconciles the suggestions against existing rows, all in one
// transaction. AI failure only costs the enrichment, never the profile.
func (uc *userUsecase) CreateProfile(ctx context.Context, userID int64, req *domain.CreateProfileRequest) (*domain.User, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}

	user, err := uc.userRepo.GetByID(ctx, userID, domain.UserPopulate{})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	city, err := uc.cityRepo.GetByID(ctx, req.CityID, false)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if city == nil {
		return nil, apperror.NotFound(fmt.Sprintf("City %d not found", req.CityID))
	}

	direction, err := uc.directionRepo.GetByID(ctx, req.DirectionID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if direction == nil {
		return nil, apperror.NotFound(fmt.Sprintf("Direction %d not found", req.DirectionID))
	}

	uniqueSkillIDs := dedupeIDs(req.SkillIDs)
	skillNames := make([]string, 0, len(uniqueSkillIDs))
	for _, skillID := range uniqueSkillIDs {
		skill, err := uc.skillRepo.GetByID(ctx, skillID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if skill == nil {
			return nil, apperror.NotFound(fmt.Sprintf("Skill %d not found", skillID))
		}
		skillNames = append(skillNames, skill.Name)
	}

	// Degrades to an empty list on provider failure; only a rejected
	// temperature surfaces as an error.
	suggestions, err := uc.recommender.TheoreticalSkills(ctx, direction.Name, skillNames)
	if err != nil {
		return nil, err
	}

	err = uc.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := uc.userRepo.CompleteOnboarding(txCtx, userID, req.Name, req.CityID, req.DirectionID); err != nil {
			return err
		}

		for _, skillID := range uniqueSkillIDs {
			if err := uc.userSkillRepo.Add(txCtx, &domain.UserSkill{
				UserID:  userID,
				SkillID: skillID,
				ToLearn: false,
			}); err != nil {
				return err
			}
		}

		return uc.attachSuggestedSkills(txCtx, userID, uniqueSkillIDs, skillNames, suggestions)
	})
	if err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, userID, domain.UserPopulate{City: true, Direction: true, Skills: true})
}

// attachSuggestedSkills reconciles AI suggestions against the explicit
// skills and the skills table. Processing is strictly sequential: each
// step's dedup check depends on everything added before it.
func (uc *userUsecase) attachSuggestedSkills(
	ctx context.Context,
	userID int64,
	explicitIDs []int64,
	explicitNames []string,
	suggestions []domain.SkillSuggestion,
) error {
	addedIDs := make(map[int64]struct{}, len(explicitIDs))
	for _, id := range explicitIDs {
		addedIDs[id] = struct{}{}
	}
	addedNames := make(map[string]struct{}, len(explicitNames))
	for _, name := range explicitNames {
		addedNames[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	for _, suggestion := range suggestions {
		name := strings.TrimSpace(suggestion.Name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := addedNames[lower]; ok {
			continue
		}

		var skillID int64
		existing, err := uc.skillRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil && strings.EqualFold(existing.Name, name) {
			skillID = existing.ID
		} else {
			created, err := uc.skillRepo.Create(ctx, &domain.Skill{Name: name})
			if err != nil {
				return err
			}
			skillID = created.ID
		}

		if _, ok := addedIDs[skillID]; ok {
			continue
		}

		if err := uc.userSkillRepo.Add(ctx, &domain.UserSkill{
			UserID:          userID,
			SkillID:         skillID,
			ToLearn:         true,
			MatchPercentage: suggestion.MatchPercentage,
		}); err != nil {
			return err
		}

		addedIDs[skillID] = struct{}{}
		addedNames[lower] = struct{}{}
	}

	logger.Log.Debug("attached suggested skills", "user_id", userID, "suggestions", len(suggestions))
	return nil
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID int64, populate domain.UserPopulate) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID, populate)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
