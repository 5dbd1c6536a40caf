package otp

import (
	"context"
	"errors"
	"testing"
)

func TestRealVerifierEnforcesChallenge(t *testing.T) {
	store := NewMemoryStore(DefaultTTL, DefaultMaxAttempts)
	defer store.Close()
	verifier := NewRealVerifier(store)
	ctx := context.Background()

	if err := verifier.Verify(ctx, "9876543210", "1234"); err != ErrNoChallenge {
		t.Fatalf("expected ErrNoChallenge, got %v", err)
	}

	if err := store.Issue(ctx, "9876543210", "1234"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	var mismatch *MismatchError
	if err := verifier.Verify(ctx, "9876543210", "9999"); !errors.As(err, &mismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := verifier.Verify(ctx, "9876543210", "1234"); err != nil {
		t.Fatalf("verify correct code: %v", err)
	}
}

func TestAcceptAllVerifierClearsChallenge(t *testing.T) {
	store := NewMemoryStore(DefaultTTL, DefaultMaxAttempts)
	defer store.Close()
	verifier := NewAcceptAllVerifier(store)
	ctx := context.Background()

	if err := store.Issue(ctx, "9876543210", "1234"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Any value passes, and the stored challenge is discarded.
	if err := verifier.Verify(ctx, "9876543210", "whatever"); err != nil {
		t.Fatalf("bypass verify: %v", err)
	}
	if err := store.Verify(ctx, "9876543210", "1234"); err != ErrNoChallenge {
		t.Fatalf("expected challenge to be cleared, got %v", err)
	}

	// Works with no challenge stored at all.
	if err := verifier.Verify(ctx, "0001112223", ""); err != nil {
		t.Fatalf("bypass verify without challenge: %v", err)
	}
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(CodeLength)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("expected %d digits, got %q", CodeLength, code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("expected digits only, got %q", code)
		}
	}
}
