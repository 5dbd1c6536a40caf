package otp

import (
	"context"
)

// Verifier decides whether a submitted login code is acceptable. The
// variant is chosen once at construction; the real path has no bypass
// branch.
type Verifier interface {
	Verify(ctx context.Context, phone, code string) error
}

// RealVerifier enforces the stored challenge.
type RealVerifier struct {
	store Store
}

// NewRealVerifier creates the production verifier.
func NewRealVerifier(store Store) *RealVerifier {
	return &RealVerifier{store: store}
}

// Verify delegates to the challenge store.
func (v *RealVerifier) Verify(ctx context.Context, phone, code string) error {
	return v.store.Verify(ctx, phone, code)
}

// AcceptAllVerifier accepts any submitted value and discards whatever
// challenge is stored. It defeats authentication entirely and exists only
// for non-production testing.
type AcceptAllVerifier struct {
	store Store
}

// NewAcceptAllVerifier creates the bypass verifier.
func NewAcceptAllVerifier(store Store) *AcceptAllVerifier {
	return &AcceptAllVerifier{store: store}
}

// Verify clears any stored challenge and succeeds unconditionally.
func (v *AcceptAllVerifier) Verify(ctx context.Context, phone, _ string) error {
	return v.store.Clear(ctx, phone)
}
