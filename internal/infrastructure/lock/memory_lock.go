package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawmarket/pkg/errors"
)

type lease struct {
	token   string
	expires time.Time
}

// MemoryLocker is the single-instance fallback used when no Redis is configured.
type MemoryLocker struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.leases[key]; ok && now.Before(held.expires) {
		return nil, errors.Conflict("another request for this resource is in progress")
	}

	token := uuid.NewString()
	l.leases[key] = lease{token: token, expires: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if held, ok := l.leases[key]; ok && held.token == token {
			delete(l.leases, key)
		}
		return nil
	}, nil
}
