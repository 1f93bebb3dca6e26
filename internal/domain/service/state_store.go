package service

import (
	"context"
	"errors"
)

// ErrStateNotFound is returned when a state nonce is unknown, expired, or
// already consumed.
var ErrStateNotFound = errors.New("oauth state not found")

// StateStore holds short-lived anti-CSRF state nonces for the OAuth redirect
// round trip. A nonce is consumed exactly once: a successful Verify deletes it,
// so replaying a callback fails.
type StateStore interface {
	// Issue creates and stores a fresh random state nonce.
	Issue(ctx context.Context) (string, error)

	// Verify consumes the nonce. Returns ErrStateNotFound when it is unknown,
	// expired, or was already used.
	Verify(ctx context.Context, state string) error
}
