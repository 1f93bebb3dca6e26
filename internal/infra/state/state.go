// Package state stores single-use OAuth state nonces.
package state

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"taskhub/config"
	"taskhub/internal/domain/service"

	"github.com/pkg/errors"
)

// stateTTL bounds how long an issued nonce stays redeemable.
const stateTTL = 10 * time.Minute

// newNonce returns a fresh random hex nonce.
func newNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate state nonce")
	}

	return hex.EncodeToString(buf), nil
}

// NewStateStore picks the backing store from config. Redis is preferred when
// configured so nonces survive restarts and work across replicas.
func NewStateStore(cfg *config.Config, logger *slog.Logger) service.StateStore {
	if cfg.Redis != nil && cfg.Redis.Addr != "" {
		return NewRedisStore(cfg.Redis)
	}

	logger.Warn("redis not configured, oauth state nonces held in memory")

	return NewMemoryStore()
}
