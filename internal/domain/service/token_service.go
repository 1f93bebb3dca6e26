// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenPair holds the two bearer credentials issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenClaims are the verified claims of a refresh token. ExpiresAt is
// taken from the token's own exp claim; the store row derives its expiry from
// it rather than recomputing from configuration.
type RefreshTokenClaims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// IdentityClaims are the profile assertions read from a provider-issued
// identity token. They are decoded, not locally verified; the token arrives
// over the provider's own TLS channel during the code exchange.
type IdentityClaims struct {
	Subject string // The provider's stable user identifier ('sub').
	Email   string
	Name    string
	Picture string
}

// TokenService issues and validates the two locally signed bearer-token types,
// and decodes third-party identity tokens.
type TokenService interface {
	// IssueTokenPair creates two independently signed tokens for the user.
	// Each call issues a refresh token with the full configured window, so a
	// refresh fully resets the rolling expiry.
	IssueTokenPair(userID uuid.UUID) (*TokenPair, error)

	// VerifyAccessToken checks signature and expiry and returns the subject.
	VerifyAccessToken(token string) (uuid.UUID, error)

	// VerifyRefreshToken checks signature and expiry and returns the claims.
	VerifyRefreshToken(token string) (*RefreshTokenClaims, error)

	// DecodeIDToken reads profile claims out of a provider-issued token
	// without verifying a local signature.
	DecodeIDToken(token string) (*IdentityClaims, error)

	// HashToken digests a signed token to a fixed length. Signed tokens
	// exceed bcrypt's 72-byte input limit, so storage hashes the digest.
	HashToken(token string) string
}
