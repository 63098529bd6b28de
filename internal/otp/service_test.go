package otp

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/hanamaged/electro-backend/pkg/config"
)

type stubStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string]string)}
}

func (s *stubStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value.(string)
	return nil
}

func (s *stubStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (s *stubStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *stubStore) OTPKey(email string) string {
	return "otp:" + strings.ToLower(email)
}

func (s *stubStore) OTPVerifiedKey(email string) string {
	return "otp_verified:" + strings.ToLower(email)
}

func newTestService(t *testing.T, store *stubStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store: store,
		Config: config.OTPConfig{
			Length:     6,
			TTL:        10 * time.Minute,
			VerifiedTTL: 10 * time.Minute,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestIssueGeneratesDigits(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	code, err := svc.Issue(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric code, got %q", code)
		}
	}
	if stored := store.data[store.OTPKey("alice@example.com")]; stored != code {
		t.Fatalf("code not stored: %q vs %q", stored, code)
	}
}

func TestVerifyConsumesCodeAndMarksVerified(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)
	ctx := context.Background()
	email := "alice@example.com"

	code, err := svc.Issue(ctx, email)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ok, err := svc.Verify(ctx, email, "000000")
	if err != nil {
		t.Fatalf("verify wrong code: %v", err)
	}
	if ok {
		t.Fatal("wrong code should not verify")
	}

	ok, err = svc.Verify(ctx, email, code)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("correct code should verify")
	}

	// Single use: a second verify with the same code must fail.
	ok, err = svc.Verify(ctx, email, code)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if ok {
		t.Fatal("code must verify exactly once")
	}

	verified, err := svc.IsVerified(ctx, email)
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if !verified {
		t.Fatal("expected verified flag after successful verify")
	}

	if err := svc.Consume(ctx, email); err != nil {
		t.Fatalf("consume: %v", err)
	}
	verified, err = svc.IsVerified(ctx, email)
	if err != nil {
		t.Fatalf("is verified after consume: %v", err)
	}
	if verified {
		t.Fatal("verified flag should be gone after consume")
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	ok, err := svc.Verify(context.Background(), "nobody@example.com", "123456")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("verify must fail when no code was issued")
	}
}
