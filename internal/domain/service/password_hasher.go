package service

// PasswordHasher defines the interface for slow one-way hashing and verification.
// It is used for user passwords and for refresh tokens at rest: a leaked
// database must not hand an attacker valid session credentials.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext secret.
	Hash(secret string) (string, error)

	// Check compares a plaintext secret with a hash to see if they match.
	Check(secret, hash string) bool
}
