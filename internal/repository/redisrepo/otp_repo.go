package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skills-platform-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

type otpRepo struct {
	client *redis.Client
}

func NewOTPRepository(client *redis.Client) domain.OTPRepository {
	return &otpRepo{client: client}
}

func otpKey(email string) string {
	return "otp:" + email
}

func (r *otpRepo) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	ok, err := r.client.SetNX(ctx, otpKey(email), code, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	if !ok {
		return domain.ErrOTPAlreadySent
	}
	return nil
}

func (r *otpRepo) Get(ctx context.Context, email string) (string, error) {
	code, err := r.client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrOTPNotFound
		}
		return "", fmt.Errorf("failed to read otp: %w", err)
	}
	return code, nil
}

func (r *otpRepo) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
