package state

import (
	"context"

	"taskhub/config"
	"taskhub/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth:state:"

// redisStore keeps state nonces in Redis with a TTL. GETDEL makes each nonce
// redeemable exactly once even across replicas.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore connects a state store to Redis.
func NewRedisStore(cfg *config.RedisConfig) service.StateStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &redisStore{client: client}
}

// Issue creates a nonce and stores it with the state TTL.
func (s *redisStore) Issue(ctx context.Context) (string, error) {
	nonce, err := newNonce()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, stateKeyPrefix+nonce, "1", stateTTL).Err(); err != nil {
		return "", errors.Wrap(err, "failed to store state nonce")
	}

	return nonce, nil
}

// Verify consumes the nonce. A nonce can only be verified once.
func (s *redisStore) Verify(ctx context.Context, state string) error {
	if state == "" {
		return service.ErrStateNotFound
	}

	if err := s.client.GetDel(ctx, stateKeyPrefix+state).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return service.ErrStateNotFound
		}

		return errors.Wrap(err, "failed to verify state nonce")
	}

	return nil
}
