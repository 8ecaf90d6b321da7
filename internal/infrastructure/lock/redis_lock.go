package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pawmarket/pkg/errors"
)

var releaseIfOwnerScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// RedisLocker leases keys with SET NX PX so the lock holds across API instances.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisLocker(client *redis.Client, keyPrefix string) *RedisLocker {
	if keyPrefix == "" {
		keyPrefix = "pawmarket:lock:"
	}
	return &RedisLocker{client: client, keyPrefix: keyPrefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	fullKey := l.keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, errors.Transient(err)
	}
	if !ok {
		return nil, errors.Conflict("another request for this resource is in progress")
	}

	// Only the holder's token may delete the key; an expired lease re-taken by
	// someone else is left alone.
	return func(ctx context.Context) error {
		return releaseIfOwnerScript.Run(ctx, l.client, []string{fullKey}, token).Err()
	}, nil
}
