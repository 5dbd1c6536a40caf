package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "9876543210", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	phone, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if phone != "9876543210" {
		t.Fatalf("expected phone 9876543210, got %q", phone)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "9876543210", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken("secret", "9876543210", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}
