// Package otp manages one-time login codes keyed by canonical phone number.
// A phone has at most one active challenge; issuing replaces whatever is
// stored. Codes are bcrypt-hashed at rest, expire after a fixed TTL and allow
// a bounded number of failed attempts before the challenge is discarded.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultTTL is how long an issued code stays valid.
	DefaultTTL = 5 * time.Minute
	// DefaultMaxAttempts caps failed verifications per challenge.
	DefaultMaxAttempts = 5
	// CodeLength is the number of digits in a generated login code.
	CodeLength = 4
)

var (
	ErrNoChallenge     = errors.New("no active challenge for this phone number")
	ErrExpired         = errors.New("challenge has expired")
	ErrTooManyAttempts = errors.New("too many failed attempts")
)

// MismatchError reports a wrong code together with the attempts left before
// the challenge is discarded.
type MismatchError struct {
	Remaining int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("code mismatch, %d attempts remaining", e.Remaining)
}

// Challenge is a stored one-time code. Only the bcrypt hash of the code is
// kept.
type Challenge struct {
	CodeHash  []byte
	ExpiresAt time.Time
	Attempts  int
}

// Store holds active challenges. Implementations must make Verify's
// read-modify-write of the attempt counter safe under concurrent calls for
// the same phone number.
type Store interface {
	// Issue stores a new challenge for phone, replacing any existing one.
	Issue(ctx context.Context, phone, code string) error
	// Verify checks code against the stored challenge. It consumes the
	// challenge on success, expiry and attempt exhaustion; a plain mismatch
	// only increments the attempt counter.
	Verify(ctx context.Context, phone, code string) error
	// Clear drops any stored challenge for phone. Clearing an absent
	// challenge is not an error.
	Clear(ctx context.Context, phone string) error
}

// GenerateCode returns a random numeric code of the given length.
func GenerateCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

func hashCode(code string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
}

func codeMatches(hash []byte, code string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(code)) == nil
}
