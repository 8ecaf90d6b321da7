package service

import (
	"context"
	"time"
)

// Locker hands out short-lived exclusive leases on string keys.
type Locker interface {
	// Acquire returns a release function, or a Conflict error when the key is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}
