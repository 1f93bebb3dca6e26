// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents the single live session credential for a user.
// The user_id column carries a unique constraint, so a user holds at most one
// valid refresh token at a time; every login or refresh replaces the row,
// which is the sole revocation mechanism for the superseded token.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to. Unique.
	TokenHash string    // bcrypt hash of the raw refresh token; the raw value is never stored.
	ExpiresAt time.Time // Expiry copied from the signed token's own exp claim.
	CreatedAt time.Time // Timestamp of when this session row was last created.
	UpdatedAt time.Time // Timestamp of the last rotation.
}

// OAuthLink associates a local user account with a third-party identity
// provider account. The (provider, provider_id) pair is unique.
type OAuthLink struct {
	ID                    uuid.UUID    // The unique ID for this link record.
	UserID                uuid.UUID    // The local account this provider identity belongs to.
	Provider              ProviderType // The identity provider, e.g. "google".
	ProviderID            string       // The provider's subject identifier (Google's 'sub' claim).
	EncryptedRefreshToken string       // AES-GCM envelope of the provider's refresh token.
	ExpirationAt          time.Time    // Expiry reported by the provider for the current grant.
	CreatedAt             time.Time    // Timestamp of when the link was first established.
	UpdatedAt             time.Time    // Timestamp of the last re-consent.
}

// ProviderType identifies a third-party identity provider.
type ProviderType string

const (
	// ProviderTypeGoogle is the Google OAuth provider.
	ProviderTypeGoogle ProviderType = "google"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// IsValid checks if the ProviderType is a known value.
func (p ProviderType) IsValid() bool {
	return p == ProviderTypeGoogle
}
