// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account.
// PasswordHash is nil for accounts created through an OAuth provider only;
// such accounts cannot log in with email/password until one is set.
type User struct {
	ID              uuid.UUID // The global unique identifier for the user.
	Email           string    // The user's primary email, used as the login identifier.
	Name            string    // The user's display name.
	PasswordHash    *string   // bcrypt hash of the password; nil for OAuth-only accounts.
	ProfileImageURL string    // Relative path of the uploaded profile image, empty when absent.
	CreatedAt       time.Time // Timestamp of when this user account was created.
	UpdatedAt       time.Time // Timestamp of the last modification to this user's data.
}

// HasPassword reports whether the account can authenticate with a local password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
