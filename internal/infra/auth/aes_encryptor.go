// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"taskhub/config"
	"taskhub/internal/domain/service"
	"taskhub/internal/errors"
)

const (
	nonceLength = 12 // 96-bit GCM nonce, random per call.
	tagLength   = 16 // GCM authentication tag.
)

// aesEncryptor implements service.TokenEncryptor with AES-256-GCM.
// The envelope format is <ivHex>:<authTagHex>:<ciphertextHex>.
type aesEncryptor struct {
	aead cipher.AEAD
}

// NewAESEncryptor builds the encryptor from the hex-encoded 256-bit key in config.
func NewAESEncryptor(cfg *config.Config) (service.TokenEncryptor, error) {
	if cfg.Auth == nil || cfg.Auth.CryptoKey == "" {
		return nil, errors.New("crypto key must be provided")
	}

	key, err := hex.DecodeString(cfg.Auth.CryptoKey)
	if err != nil {
		return nil, errors.Wrap(err, "crypto key is not valid hex")
	}
	if len(key) != 32 {
		return nil, errors.Errorf("crypto key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize AES cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize GCM")
	}

	return &aesEncryptor{aead: aead}, nil
}

// Encrypt seals the plaintext with a fresh random nonce.
func (e *aesEncryptor) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	sealed := e.aead.Seal(nil, nonce, []byte(plaintext), nil)

	// Seal appends the auth tag to the ciphertext; the envelope keeps them
	// as separate fields.
	ciphertext := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt opens an <ivHex>:<authTagHex>:<ciphertextHex> envelope.
func (e *aesEncryptor) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != 3 {
		return "", errors.New("malformed envelope")
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceLength {
		return "", errors.New("malformed envelope: bad nonce")
	}

	tag, err := hex.DecodeString(parts[1])
	if err != nil || len(tag) != tagLength {
		return "", errors.New("malformed envelope: bad auth tag")
	}

	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", errors.New("malformed envelope: bad ciphertext")
	}

	plaintext, err := e.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		// Tampered data or wrong key; no further detail is exposed.
		return "", errors.Wrap(err, "decryption failed")
	}

	return string(plaintext), nil
}
