package security_test

import (
	"testing"

	"go.uber.org/multierr"

	"github.com/hanamaged/electro-backend/pkg/config"
	"github.com/hanamaged/electro-backend/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	hash, err := security.HashPassword("very-secure-password", cfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestValidatePolicy(t *testing.T) {
	cfg := config.PasswordConfig{MinLength: 6}

	if err := security.ValidatePolicy("Secret1", cfg); err != nil {
		t.Fatalf("expected valid password, got: %v", err)
	}

	err := security.ValidatePolicy("ab1", cfg)
	if err == nil {
		t.Fatal("expected policy violation for short password")
	}
	if got := len(multierr.Errors(err)); got != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", got, err)
	}

	err = security.ValidatePolicy("ab", cfg)
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", got, err)
	}
}
