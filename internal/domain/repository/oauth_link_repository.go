// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOAuthLinkNotFound is returned when no provider link exists.
var ErrOAuthLinkNotFound = errors.New("oauth link not found")

// OAuthLinkRepository persists associations between local accounts and
// third-party identity provider accounts.
type OAuthLinkRepository interface {
	// FindByProviderID retrieves a link by its unique (provider, provider_id) pair.
	FindByProviderID(ctx context.Context, provider entity.ProviderType, providerID string) (*entity.OAuthLink, error)

	// FindByUserIDAndProvider retrieves a user's link for a specific provider.
	FindByUserIDAndProvider(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.OAuthLink, error)

	// Create persists a new provider link.
	Create(ctx context.Context, link *entity.OAuthLink) error

	// Update refreshes the stored ciphertext and expiry of an existing link.
	Update(ctx context.Context, link *entity.OAuthLink) error
}
