// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskhub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email           string
	Password        string
	Name            string
	ProfileImageURL string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleCallbackInput carries the provider redirect parameters.
type GoogleCallbackInput struct {
	Code  string
	State string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// AuthOutput returns the issued token pair after a successful
// login, refresh, or OAuth callback.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a local account with a hashed password.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials, issues a token pair, and persists the
	// refresh token hash as the user's single live session.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Refresh rotates a valid refresh token into a fresh token pair. The
	// presented token must match the stored session row; any failure is
	// reported as an expired session.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout deletes the user's session row so the outstanding refresh
	// token stops working.
	Logout(ctx context.Context, userID uuid.UUID) error

	// GoogleAuthURL issues a state nonce and builds the provider
	// authorization URL for the browser redirect.
	GoogleAuthURL(ctx context.Context) (string, error)

	// GoogleCallback completes the code flow: verifies state, exchanges the
	// code, then links the provider identity to an existing account or
	// creates a new one, and issues a local token pair.
	GoogleCallback(ctx context.Context, input GoogleCallbackInput) (*AuthOutput, error)
}
