package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/auth"
	"skills-platform-backend/pkg/email"
	"skills-platform-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo     domain.UserRepository
	otpRepo      domain.OTPRepository
	emailService *email.Service
	tokens       *auth.Manager
	validate     *validator.Validate
	otpTTL       time.Duration
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	otpRepo domain.OTPRepository,
	emailService *email.Service,
	tokens *auth.Manager,
	validate *validator.Validate,
	otpTTL time.Duration,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		otpRepo:      otpRepo,
		emailService: emailService,
		tokens:       tokens,
		validate:     validate,
		otpTTL:       otpTTL,
	}
}

// generateOTP returns a 6-digit zero-padded code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (uc *authUsecase) SendOTP(ctx context.Context, emailAddr string) error {
	if err := uc.validate.Var(emailAddr, "required,email"); err != nil {
		return apperror.BadRequest("A valid email is required")
	}

	code, err := generateOTP()
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.otpRepo.Save(ctx, emailAddr, code, uc.otpTTL); err != nil {
		if errors.Is(err, domain.ErrOTPAlreadySent) {
			return apperror.BadRequest("OTP was already sent and has not expired yet")
		}
		return apperror.Internal(err)
	}

	if err := uc.emailService.SendOTPEmail(emailAddr, email.OTPEmailData{
		Code:       code,
		TTLMinutes: int(uc.otpTTL.Minutes()),
	}); err != nil {
		// Free the key so the user can retry immediately.
		_ = uc.otpRepo.Delete(ctx, emailAddr)
		logger.Log.Error("failed to send otp email", "error", err)
		return apperror.Internal(err)
	}

	return nil
}

func (uc *authUsecase) verifyOTP(ctx context.Context, emailAddr, code string) error {
	stored, err := uc.otpRepo.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return apperror.BadRequest("Incorrect or expired OTP code")
		}
		return apperror.Internal(err)
	}
	if stored != code {
		return apperror.BadRequest("Incorrect or expired OTP code")
	}
	return uc.otpRepo.Delete(ctx, emailAddr)
}

func (uc *authUsecase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResult, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}

	existing, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf("User with %s already exists", req.Email))
	}

	if err := uc.verifyOTP(ctx, req.Email, req.Code); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	created, err := uc.userRepo.Create(ctx, &domain.User{
		Email:    req.Email,
		Password: string(hashed),
	})
	if err != nil {
		return nil, err
	}

	access, refresh, err := uc.tokens.GeneratePair(created.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.RegisterResult{
		UserID: created.ID,
		TokenPair: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}

func (uc *authUsecase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenPair, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed: " + err.Error())
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound(fmt.Sprintf("User with %s not found", req.Email))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.BadRequest("Incorrect credentials")
	}

	access, refresh, err := uc.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (uc *authUsecase) VerifyOTPForPasswordReset(ctx context.Context, req *domain.VerifyOTPRequest) (string, error) {
	if err := uc.validate.Struct(req); err != nil {
		return "", apperror.BadRequest("Validation failed: " + err.Error())
	}

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if user == nil {
		return "", apperror.NotFound(fmt.Sprintf("User with %s not found", req.Email))
	}

	if err := uc.verifyOTP(ctx, req.Email, req.Code); err != nil {
		return "", err
	}

	token, err := uc.tokens.Generate(user.ID, auth.TokenPasswordReset)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (uc *authUsecase) ResetPassword(ctx context.Context, userID int64, req *domain.ResetPasswordRequest) error {
	if err := uc.validate.Struct(req); err != nil {
		return apperror.BadRequest("Validation failed: " + err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.userRepo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *authUsecase) RefreshTokens(ctx context.Context, userID int64) (*domain.TokenPair, error) {
	user, err := uc.userRepo.GetByID(ctx, userID, domain.UserPopulate{})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("User no longer exists")
	}

	access, refresh, err := uc.tokens.GeneratePair(userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
