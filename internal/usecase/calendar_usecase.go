// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// CalendarUsecase exposes the provider-token capability backing calendar sync.
type CalendarUsecase interface {
	// GoogleAccessToken decrypts the user's stored Google refresh token and
	// exchanges it for a short-lived Google access token.
	GoogleAccessToken(ctx context.Context, userID uuid.UUID) (string, error)
}
