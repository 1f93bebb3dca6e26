package service

// TokenEncryptor provides authenticated encryption for provider refresh tokens
// at rest. Unlike passwords these secrets must be recoverable later to call the
// provider API, hence reversible encryption rather than hashing.
type TokenEncryptor interface {
	// Encrypt seals the plaintext into an <ivHex>:<authTagHex>:<ciphertextHex>
	// envelope with a fresh random nonce.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens an envelope. It fails when the envelope is malformed or
	// the authentication tag does not verify (tamper or wrong key).
	Decrypt(envelope string) (string, error)
}
