package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrOTPNotFound signals an absent or expired code.
	ErrOTPNotFound = errors.New("otp not found")
	// ErrOTPAlreadySent signals a live un-expired code for the same email.
	ErrOTPAlreadySent = errors.New("otp already sent")
)

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyTokenType CtxKey = "TokenType"
	KeyRequestID CtxKey = "RequestID"
)

// OTPRepository stores one-time passcodes keyed by email with a TTL.
type OTPRepository interface {
	// Save stores the code and fails if a live code already exists.
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Code     string `json:"code" validate:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// TokenPair is issued on registration, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	UserID int64 `json:"user_id"`
	TokenPair
}

type AuthUsecase interface {
	SendOTP(ctx context.Context, email string) error
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenPair, error)
	// VerifyOTPForPasswordReset trades a valid code for a short-lived
	// password-reset token.
	VerifyOTPForPasswordReset(ctx context.Context, req *VerifyOTPRequest) (string, error)
	ResetPassword(ctx context.Context, userID int64, req *ResetPasswordRequest) error
	RefreshTokens(ctx context.Context, userID int64) (*TokenPair, error)
}
