// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

// UserUsecase defines the interface for user profile operations.
type UserUsecase interface {
	// GetProfile retrieves the authenticated user's own account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
