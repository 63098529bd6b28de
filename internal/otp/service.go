package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/hanamaged/electro-backend/pkg/config"
	redisclient "github.com/hanamaged/electro-backend/pkg/redis"
)

// Service issues and verifies one-time reset codes backed by expiring Redis keys.
type Service interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	IsVerified(ctx context.Context, email string) (bool, error)
	Consume(ctx context.Context, email string) error
}

type codeStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	OTPKey(email string) string
	OTPVerifiedKey(email string) string
}

type service struct {
	store codeStore
	cfg   config.OTPConfig
}

// ServiceParams bundles the dependencies required to build an OTP service.
type ServiceParams struct {
	Store  codeStore
	Config config.OTPConfig
}

// NewService constructs an OTP service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("code store is required")
	}
	if params.Config.Length <= 0 {
		return nil, fmt.Errorf("otp length must be positive")
	}
	if params.Config.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	return &service{store: params.Store, cfg: params.Config}, nil
}

// NewServiceFromClient wires the service to the shared Redis client.
func NewServiceFromClient(client *redisclient.Client, cfg config.OTPConfig) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return NewService(ServiceParams{Store: client, Config: cfg})
}

// Issue generates a fresh code for the email and stores it under the configured TTL.
// A second issue before expiry replaces the outstanding code.
func (s *service) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode(s.cfg.Length)
	if err != nil {
		return "", fmt.Errorf("generating otp code: %w", err)
	}
	if err := s.store.Set(ctx, s.store.OTPKey(email), code, s.cfg.TTL); err != nil {
		return "", fmt.Errorf("storing otp code: %w", err)
	}
	return code, nil
}

// Verify compares the submitted code against the stored one. On match the code
// is consumed and the email is marked verified for the follow-up window.
func (s *service) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.store.Get(ctx, s.store.OTPKey(email))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("loading otp code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	// Single use: the code is gone once it matches.
	if err := s.store.Del(ctx, s.store.OTPKey(email)); err != nil {
		return false, fmt.Errorf("consuming otp code: %w", err)
	}

	verifiedTTL := s.cfg.VerifiedTTL
	if verifiedTTL <= 0 {
		verifiedTTL = s.cfg.TTL
	}
	if err := s.store.Set(ctx, s.store.OTPVerifiedKey(email), "1", verifiedTTL); err != nil {
		return false, fmt.Errorf("marking otp verified: %w", err)
	}
	return true, nil
}

// IsVerified reports whether a successful Verify happened within its window.
func (s *service) IsVerified(ctx context.Context, email string) (bool, error) {
	if _, err := s.store.Get(ctx, s.store.OTPVerifiedKey(email)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("checking otp verification: %w", err)
	}
	return true, nil
}

// Consume clears the verified marker after the reset completes.
func (s *service) Consume(ctx context.Context, email string) error {
	return s.store.Del(ctx, s.store.OTPVerifiedKey(email))
}

func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
