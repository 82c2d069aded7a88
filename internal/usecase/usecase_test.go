package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/internal/usecase"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/auth"
	"skills-platform-backend/pkg/email"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64, populate domain.UserPopulate) (*domain.User, error) {
	args := m.Called(ctx, id, populate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) CompleteOnboarding(ctx context.Context, id int64, name string, cityID, directionID int64) (*domain.User, error) {
	args := m.Called(ctx, id, name, cityID, directionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return m.Called(ctx, id, hashedPassword).Error(0)
}

type MockUserSkillRepo struct {
	mock.Mock
}

func (m *MockUserSkillRepo) Add(ctx context.Context, userSkill *domain.UserSkill) error {
	return m.Called(ctx, userSkill).Error(0)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *MockSkillRepo) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *MockSkillRepo) Create(ctx context.Context, skill *domain.Skill) (*domain.Skill, error) {
	args := m.Called(ctx, skill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *MockSkillRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSkillRepo) ListAll(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Skill), args.Error(1)
}

type MockDirectionRepo struct {
	mock.Mock
}

func (m *MockDirectionRepo) GetByID(ctx context.Context, id int64) (*domain.Direction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Direction), args.Error(1)
}

func (m *MockDirectionRepo) GetByName(ctx context.Context, name string) (*domain.Direction, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Direction), args.Error(1)
}

func (m *MockDirectionRepo) Create(ctx context.Context, direction *domain.Direction) (*domain.Direction, error) {
	args := m.Called(ctx, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Direction), args.Error(1)
}

func (m *MockDirectionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectionRepo) ListAll(ctx context.Context) ([]domain.Direction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Direction), args.Error(1)
}

type MockSalaryRepo struct {
	mock.Mock
}

func (m *MockSalaryRepo) GetByCityAndDirection(ctx context.Context, cityID, directionID int64) (*domain.Salary, error) {
	args := m.Called(ctx, cityID, directionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

func (m *MockSalaryRepo) Create(ctx context.Context, salary *domain.Salary) (*domain.Salary, error) {
	args := m.Called(ctx, salary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salary), args.Error(1)
}

type MockCityRepo struct {
	mock.Mock
}

func (m *MockCityRepo) GetByID(ctx context.Context, id int64, populateCountry bool) (*domain.City, error) {
	args := m.Called(ctx, id, populateCountry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepo) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockCityRepo) ListByCountry(ctx context.Context, countryID int64, page, perPage int) (*domain.Pagination[domain.City], error) {
	args := m.Called(ctx, countryID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pagination[domain.City]), args.Error(1)
}

type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return m.Called(ctx, email, code, ttl).Error(0)
}

func (m *MockOTPRepo) Get(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockOTPRepo) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Specializations(ctx context.Context, skills []string, city, country string) ([]domain.SalarySuggestion, error) {
	args := m.Called(ctx, skills, city, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalarySuggestion), args.Error(1)
}

func (m *MockRecommender) TheoreticalSkills(ctx context.Context, directionName string, knownSkills []string) ([]domain.SkillSuggestion, error) {
	args := m.Called(ctx, directionName, knownSkills)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkillSuggestion), args.Error(1)
}

type MockSearchIndex struct {
	mock.Mock
}

func (m *MockSearchIndex) CreateIndexIfNotExists(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSearchIndex) Count(ctx context.Context) int64 {
	return m.Called(ctx).Get(0).(int64)
}

func (m *MockSearchIndex) BulkIndex(ctx context.Context, records []domain.SearchRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *MockSearchIndex) Index(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockSearchIndex) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSearchIndex) Search(ctx context.Context, name string, page, perPage int) (*domain.Pagination[domain.SearchRecord], error) {
	args := m.Called(ctx, name, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pagination[domain.SearchRecord]), args.Error(1)
}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testTokenManager() *auth.Manager {
	return auth.NewManager("test-secret", 15*time.Minute, 168*time.Hour, 5*time.Minute)
}

func floatPtr(v float64) *float64 { return &v }

func TestRegister(t *testing.T) {
	validate := validator.New()
	ctx := context.Background()

	t.Run("Should conflict when email already registered", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		otpRepo := new(MockOTPRepo)
		uc := usecase.NewAuthUsecase(userRepo, otpRepo, email.NewService(email.Config{}), testTokenManager(), validate, 5*time.Minute)

		userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: 7, Email: "taken@example.com"}, nil)

		_, err := uc.Register(ctx, &domain.RegisterRequest{
			Email:    "taken@example.com",
			Password: "password123",
			Code:     "123456",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Should reject wrong OTP code", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		otpRepo := new(MockOTPRepo)
		uc := usecase.NewAuthUsecase(userRepo, otpRepo, email.NewService(email.Config{}), testTokenManager(), validate, 5*time.Minute)

		userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, nil)
		otpRepo.On("Get", ctx, "new@example.com").Return("654321", nil)

		_, err := uc.Register(ctx, &domain.RegisterRequest{
			Email:    "new@example.com",
			Password: "password123",
			Code:     "123456",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Incorrect or expired OTP code")
	})

	t.Run("Should hash the password and issue both tokens", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		otpRepo := new(MockOTPRepo)
		uc := usecase.NewAuthUsecase(userRepo, otpRepo, email.NewService(email.Config{}), testTokenManager(), validate, 5*time.Minute)

		userRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, nil)
		otpRepo.On("Get", ctx, "new@example.com").Return("123456", nil)
		otpRepo.On("Delete", ctx, "new@example.com").Return(nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(&domain.User{ID: 42, Email: "new@example.com"}, nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")))
		})

		result, err := uc.Register(ctx, &domain.RegisterRequest{
			Email:    "new@example.com",
			Password: "password123",
			Code:     "123456",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(42), result.UserID)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		otpRepo.AssertCalled(t, "Delete", ctx, "new@example.com")
	})
}

func TestLogin(t *testing.T) {
	validate := validator.New()
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	t.Run("Should 404 on unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockOTPRepo), email.NewService(email.Config{}), testTokenManager(), validate, 5*time.Minute)

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

		_, err := uc.Login(ctx, &domain.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Should reject bad password without revealing which field failed", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockOTPRepo), email.NewService(email.Config{}), testTokenManager(), validate, 5*time.Minute)

		userRepo.On("GetByEmail", ctx, "u@example.com").Return(&domain.User{ID: 1, Email: "u@example.com", Password: string(hashed)}, nil)

		_, err := uc.Login(ctx, &domain.LoginRequest{Email: "u@example.com", Password: "wrong"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Incorrect credentials")
	})

	t.Run("Should return a verifiable token pair", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := testTokenManager()
		uc := usecase.NewAuthUsecase(userRepo, new(MockOTPRepo), email.NewService(email.Config{}), tokens, validate, 5*time.Minute)

		userRepo.On("GetByEmail", ctx, "u@example.com").Return(&domain.User{ID: 9, Email: "u@example.com", Password: string(hashed)}, nil)

		pair, err := uc.Login(ctx, &domain.LoginRequest{Email: "u@example.com", Password: "password123"})
		assert.NoError(t, err)

		claims, err := tokens.Parse(pair.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), claims.UserID)
		assert.Equal(t, auth.TokenAccess, claims.Type)
	})
}

func TestSendOTPAlreadySent(t *testing.T) {
	validate := validator.New()
	ctx := context.Background()
	otpRepo := new(MockOTPRepo)
	uc := usecase.NewAuthUsecase(new(MockUserRepo), otpRepo, email.NewService(email.Config{}), testTokenManager(), validate, 5*time.Minute)

	otpRepo.On("Save", ctx, "u@example.com", mock.AnythingOfType("string"), 5*time.Minute).Return(domain.ErrOTPAlreadySent)

	err := uc.SendOTP(ctx, "u@example.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already sent")

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.Code)
}

func newProfileUsecase(userRepo *MockUserRepo, userSkillRepo *MockUserSkillRepo, skillRepo *MockSkillRepo, directionRepo *MockDirectionRepo, cityRepo *MockCityRepo, rec *MockRecommender) domain.UserUsecase {
	return usecase.NewUserUsecase(userRepo, userSkillRepo, skillRepo, directionRepo, cityRepo, rec, passthroughTx{}, validator.New())
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	user := &domain.User{ID: 1, Email: "u@example.com"}
	city := &domain.City{ID: 10, Name: "Berlin", CountryID: 3}
	direction := &domain.Direction{ID: 20, Name: "Backend Developer"}

	t.Run("Should 404 on unknown skill id", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		skillRepo := new(MockSkillRepo)
		directionRepo := new(MockDirectionRepo)
		cityRepo := new(MockCityRepo)
		uc := newProfileUsecase(userRepo, new(MockUserSkillRepo), skillRepo, directionRepo, cityRepo, new(MockRecommender))

		userRepo.On("GetByID", ctx, int64(1), domain.UserPopulate{}).Return(user, nil)
		cityRepo.On("GetByID", ctx, int64(10), false).Return(city, nil)
		directionRepo.On("GetByID", ctx, int64(20)).Return(direction, nil)
		skillRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

		_, err := uc.CreateProfile(ctx, 1, &domain.CreateProfileRequest{
			Name:        "Ada",
			CityID:      10,
			DirectionID: 20,
			SkillIDs:    []int64{99},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Skill 99 not found")
	})

	t.Run("Should reconcile suggestions against explicit and existing skills", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userSkillRepo := new(MockUserSkillRepo)
		skillRepo := new(MockSkillRepo)
		directionRepo := new(MockDirectionRepo)
		cityRepo := new(MockCityRepo)
		rec := new(MockRecommender)
		uc := newProfileUsecase(userRepo, userSkillRepo, skillRepo, directionRepo, cityRepo, rec)

		userRepo.On("GetByID", ctx, int64(1), domain.UserPopulate{}).Return(user, nil)
		cityRepo.On("GetByID", ctx, int64(10), false).Return(city, nil)
		directionRepo.On("GetByID", ctx, int64(20)).Return(direction, nil)

		// Explicit ids carry a duplicate that must collapse to one fetch.
		skillRepo.On("GetByID", ctx, int64(5)).Return(&domain.Skill{ID: 5, Name: "Python"}, nil).Once()
		skillRepo.On("GetByID", ctx, int64(6)).Return(&domain.Skill{ID: 6, Name: "SQL"}, nil).Once()

		rec.On("TheoreticalSkills", ctx, "Backend Developer", []string{"Python", "SQL"}).Return([]domain.SkillSuggestion{
			{Name: "python", MatchPercentage: floatPtr(95)},  // duplicate of explicit skill, skipped
			{Name: "Docker", MatchPercentage: floatPtr(80)},  // new skill, created
			{Name: "Linux", MatchPercentage: floatPtr(70)},   // exists already, reused
			{Name: "  ", MatchPercentage: nil},               // blank, skipped
			{Name: "docker", MatchPercentage: floatPtr(60)},  // duplicate suggestion, skipped
		}, nil)

		userRepo.On("CompleteOnboarding", ctx, int64(1), "Ada", int64(10), int64(20)).Return(user, nil)

		skillRepo.On("GetByName", ctx, "Docker").Return(nil, nil)
		skillRepo.On("Create", ctx, mock.AnythingOfType("*domain.Skill")).Return(&domain.Skill{ID: 30, Name: "Docker"}, nil).Once()
		skillRepo.On("GetByName", ctx, "Linux").Return(&domain.Skill{ID: 31, Name: "Linux"}, nil)

		var added []domain.UserSkill
		userSkillRepo.On("Add", ctx, mock.AnythingOfType("*domain.UserSkill")).Return(nil).Run(func(args mock.Arguments) {
			added = append(added, *args.Get(1).(*domain.UserSkill))
		})

		populated := &domain.User{ID: 1, Email: "u@example.com", IsOnboardingCompleted: true}
		userRepo.On("GetByID", ctx, int64(1), domain.UserPopulate{City: true, Direction: true, Skills: true}).Return(populated, nil)

		result, err := uc.CreateProfile(ctx, 1, &domain.CreateProfileRequest{
			Name:        "Ada",
			CityID:      10,
			DirectionID: 20,
			SkillIDs:    []int64{5, 6, 5},
		})
		assert.NoError(t, err)
		assert.True(t, result.IsOnboardingCompleted)

		// Two explicit links plus Docker and Linux as learning goals.
		assert.Len(t, added, 4)
		assert.False(t, added[0].ToLearn)
		assert.False(t, added[1].ToLearn)
		assert.Equal(t, int64(30), added[2].SkillID)
		assert.True(t, added[2].ToLearn)
		assert.Equal(t, 80.0, *added[2].MatchPercentage)
		assert.Equal(t, int64(31), added[3].SkillID)
		assert.True(t, added[3].ToLearn)

		skillRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Should complete onboarding even when the AI returns nothing", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userSkillRepo := new(MockUserSkillRepo)
		skillRepo := new(MockSkillRepo)
		directionRepo := new(MockDirectionRepo)
		cityRepo := new(MockCityRepo)
		rec := new(MockRecommender)
		uc := newProfileUsecase(userRepo, userSkillRepo, skillRepo, directionRepo, cityRepo, rec)

		userRepo.On("GetByID", ctx, int64(1), domain.UserPopulate{}).Return(user, nil)
		cityRepo.On("GetByID", ctx, int64(10), false).Return(city, nil)
		directionRepo.On("GetByID", ctx, int64(20)).Return(direction, nil)
		skillRepo.On("GetByID", ctx, int64(5)).Return(&domain.Skill{ID: 5, Name: "Python"}, nil)

		rec.On("TheoreticalSkills", ctx, "Backend Developer", []string{"Python"}).Return([]domain.SkillSuggestion{}, nil)

		userRepo.On("CompleteOnboarding", ctx, int64(1), "Ada", int64(10), int64(20)).Return(user, nil)
		userSkillRepo.On("Add", ctx, mock.AnythingOfType("*domain.UserSkill")).Return(nil)
		userRepo.On("GetByID", ctx, int64(1), domain.UserPopulate{City: true, Direction: true, Skills: true}).Return(user, nil)

		_, err := uc.CreateProfile(ctx, 1, &domain.CreateProfileRequest{
			Name:        "Ada",
			CityID:      10,
			DirectionID: 20,
			SkillIDs:    []int64{5},
		})
		assert.NoError(t, err)
		userSkillRepo.AssertNumberOfCalls(t, "Add", 1)
	})
}

func TestGetAIDirections(t *testing.T) {
	validate := validator.New()
	ctx := context.Background()

	t.Run("Should 404 on unknown city", func(t *testing.T) {
		cityRepo := new(MockCityRepo)
		uc := usecase.NewDirectionUsecase(new(MockDirectionRepo), new(MockSalaryRepo), cityRepo, new(MockRecommender), new(MockSearchIndex), validate)

		cityRepo.On("GetByID", ctx, int64(999), true).Return(nil, nil)

		_, err := uc.GetAIDirections(ctx, &domain.AIDirectionsRequest{CityID: 999})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "City not found")
	})

	t.Run("Should keep the stored salary when one exists", func(t *testing.T) {
		directionRepo := new(MockDirectionRepo)
		salaryRepo := new(MockSalaryRepo)
		cityRepo := new(MockCityRepo)
		rec := new(MockRecommender)
		uc := usecase.NewDirectionUsecase(directionRepo, salaryRepo, cityRepo, rec, new(MockSearchIndex), validate)

		city := &domain.City{ID: 10, Name: "Berlin", Country: &domain.Country{ID: 3, Name: "Germany"}}
		cityRepo.On("GetByID", ctx, int64(10), true).Return(city, nil)

		rec.On("Specializations", ctx, []string{"Go"}, "Berlin", "Germany").Return([]domain.SalarySuggestion{
			{DirectionName: "Backend Developer", Amount: 9000, Currency: "EUR"},
		}, nil)

		directionRepo.On("GetByName", ctx, "Backend Developer").Return(&domain.Direction{ID: 20, Name: "Backend Developer"}, nil)
		stored := &domain.Salary{ID: 1, DirectionID: 20, CityID: 10, Amount: 4500, Currency: "EUR"}
		salaryRepo.On("GetByCityAndDirection", ctx, int64(10), int64(20)).Return(stored, nil)

		results, err := uc.GetAIDirections(ctx, &domain.AIDirectionsRequest{CityID: 10, Skills: []string{"Go"}})
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 4500.0, results[0].Amount)
		assert.Equal(t, "Backend Developer", results[0].Direction.Name)
		salaryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should create direction and salary for new suggestions", func(t *testing.T) {
		directionRepo := new(MockDirectionRepo)
		salaryRepo := new(MockSalaryRepo)
		cityRepo := new(MockCityRepo)
		rec := new(MockRecommender)
		search := new(MockSearchIndex)
		uc := usecase.NewDirectionUsecase(directionRepo, salaryRepo, cityRepo, rec, search, validate)

		city := &domain.City{ID: 10, Name: "Berlin", Country: &domain.Country{ID: 3, Name: "Germany"}}
		cityRepo.On("GetByID", ctx, int64(10), true).Return(city, nil)

		rec.On("Specializations", ctx, []string(nil), "Berlin", "Germany").Return([]domain.SalarySuggestion{
			{DirectionName: "Data Engineer", Description: "Builds pipelines", Amount: 8000, Currency: "EUR"},
		}, nil)

		directionRepo.On("GetByName", ctx, "Data Engineer").Return(nil, nil)
		directionRepo.On("Create", ctx, mock.AnythingOfType("*domain.Direction")).Return(&domain.Direction{ID: 21, Name: "Data Engineer", Description: "Builds pipelines"}, nil)
		search.On("Index", ctx, int64(21), "Data Engineer").Return(nil)

		salaryRepo.On("GetByCityAndDirection", ctx, int64(10), int64(21)).Return(nil, nil)
		salaryRepo.On("Create", ctx, mock.AnythingOfType("*domain.Salary")).Return(&domain.Salary{ID: 2, DirectionID: 21, CityID: 10, Amount: 8000, Currency: "EUR"}, nil)

		results, err := uc.GetAIDirections(ctx, &domain.AIDirectionsRequest{CityID: 10})
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 8000.0, results[0].Amount)
		assert.Equal(t, int64(21), results[0].Direction.ID)
	})

	t.Run("Should fall back to the winning row when salary insert loses a race", func(t *testing.T) {
		directionRepo := new(MockDirectionRepo)
		salaryRepo := new(MockSalaryRepo)
		cityRepo := new(MockCityRepo)
		rec := new(MockRecommender)
		uc := usecase.NewDirectionUsecase(directionRepo, salaryRepo, cityRepo, rec, new(MockSearchIndex), validate)

		city := &domain.City{ID: 10, Name: "Berlin", Country: &domain.Country{ID: 3, Name: "Germany"}}
		cityRepo.On("GetByID", ctx, int64(10), true).Return(city, nil)

		rec.On("Specializations", ctx, []string(nil), "Berlin", "Germany").Return([]domain.SalarySuggestion{
			{DirectionName: "Welder", Amount: 3000, Currency: "EUR"},
		}, nil)

		directionRepo.On("GetByName", ctx, "Welder").Return(&domain.Direction{ID: 22, Name: "Welder"}, nil)
		winner := &domain.Salary{ID: 3, DirectionID: 22, CityID: 10, Amount: 2800, Currency: "EUR"}
		salaryRepo.On("GetByCityAndDirection", ctx, int64(10), int64(22)).Return(nil, nil).Once()
		salaryRepo.On("Create", ctx, mock.AnythingOfType("*domain.Salary")).Return(nil, apperror.Conflict("Salary for this direction and city already exists"))
		salaryRepo.On("GetByCityAndDirection", ctx, int64(10), int64(22)).Return(winner, nil).Once()

		results, err := uc.GetAIDirections(ctx, &domain.AIDirectionsRequest{CityID: 10})
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 2800.0, results[0].Amount)
	})
}

func TestAutocompleteWarmUp(t *testing.T) {
	validate := validator.New()
	ctx := context.Background()
	want := &domain.Pagination[domain.SearchRecord]{Page: 1, PerPage: 10, Total: 2, Items: []domain.SearchRecord{{ID: 1, Name: "Go"}, {ID: 2, Name: "Gradle"}}}

	t.Run("Should bulk load the index when it reports empty", func(t *testing.T) {
		skillRepo := new(MockSkillRepo)
		search := new(MockSearchIndex)
		uc := usecase.NewSkillUsecase(skillRepo, search, validate)

		search.On("Count", ctx).Return(int64(0))
		search.On("CreateIndexIfNotExists", ctx).Return(nil)
		skillRepo.On("ListAll", ctx).Return([]domain.Skill{{ID: 1, Name: "Go"}, {ID: 2, Name: "Gradle"}}, nil)
		search.On("BulkIndex", ctx, []domain.SearchRecord{{ID: 1, Name: "Go"}, {ID: 2, Name: "Gradle"}}).Return(nil)
		search.On("Search", ctx, "g", 1, 10).Return(want, nil)

		result, err := uc.Autocomplete(ctx, "g", 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
	})

	t.Run("Should treat an unreachable backend count as a warm-up trigger", func(t *testing.T) {
		skillRepo := new(MockSkillRepo)
		search := new(MockSearchIndex)
		uc := usecase.NewSkillUsecase(skillRepo, search, validate)

		search.On("Count", ctx).Return(int64(-1))
		search.On("CreateIndexIfNotExists", ctx).Return(nil)
		skillRepo.On("ListAll", ctx).Return([]domain.Skill{}, nil)
		search.On("BulkIndex", ctx, []domain.SearchRecord{}).Return(nil)
		search.On("Search", ctx, "x", 1, 10).Return(&domain.Pagination[domain.SearchRecord]{Page: 1, PerPage: 10}, nil)

		_, err := uc.Autocomplete(ctx, "x", 1, 10)
		assert.NoError(t, err)
		search.AssertCalled(t, "BulkIndex", ctx, []domain.SearchRecord{})
	})

	t.Run("Should serve straight from a warm index", func(t *testing.T) {
		skillRepo := new(MockSkillRepo)
		search := new(MockSearchIndex)
		uc := usecase.NewSkillUsecase(skillRepo, search, validate)

		search.On("Count", ctx).Return(int64(25))
		search.On("Search", ctx, "go", 1, 10).Return(want, nil)

		result, err := uc.Autocomplete(ctx, "go", 1, 10)
		assert.NoError(t, err)
		assert.Len(t, result.Items, 2)
		skillRepo.AssertNotCalled(t, "ListAll", ctx)
		search.AssertNotCalled(t, "BulkIndex", mock.Anything, mock.Anything)
	})
}
