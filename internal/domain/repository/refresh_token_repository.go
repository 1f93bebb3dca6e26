// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when no refresh token row exists for a user.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository manages the single live refresh-token row per user.
// Rotation is modelled as an upsert keyed on the unique user_id: the replaced
// hash becomes unverifiable, which is the only revocation mechanism.
type RefreshTokenRepository interface {
	// Upsert creates the user's refresh token row, or replaces the hash and
	// expiry of the existing one. Last writer wins on concurrent rotation.
	Upsert(ctx context.Context, token *entity.RefreshToken) error

	// FindByUserID retrieves the current refresh token row for a user.
	// Returns ErrRefreshTokenNotFound when the user has no live session.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.RefreshToken, error)

	// DeleteByUserID removes the user's refresh token row, ending the session.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
