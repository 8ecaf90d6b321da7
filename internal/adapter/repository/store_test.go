package repository

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pawmarket/pkg/errors"
)

func newTestStore(retries uint) *Store {
	return &Store{
		opts: StoreOptions{CallTimeout: time.Second, MaxRetries: retries},
		newBackOff: func() backoff.BackOff {
			return &backoff.ZeroBackOff{}
		},
	}
}

func TestCallRetriesTransientThenSucceeds(t *testing.T) {
	s := newTestStore(3)
	attempts := 0

	v, err := call(context.Background(), s, "Shop", "get shop", func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", status.Error(codes.Unavailable, "backend down")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, attempts)
}

func TestCallSurfacesTransientAfterRetriesExhausted(t *testing.T) {
	s := newTestStore(2)
	attempts := 0

	_, err := call(context.Background(), s, "Shop", "get shop", func(ctx context.Context) (string, error) {
		attempts++
		return "", status.Error(codes.DeadlineExceeded, "slow")
	})

	assert.Equal(t, 3, attempts)
	assert.True(t, errors.Is(err, errors.CodeTransient))
	assert.True(t, errors.IsRetryable(err))
}

func TestCallDoesNotRetryPermanentFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"not found", status.Error(codes.NotFound, "missing"), errors.CodeNotFound},
		{"already exists", status.Error(codes.AlreadyExists, "dup"), errors.CodeConflict},
		{"permission", status.Error(codes.PermissionDenied, "rules"), errors.CodeInternal},
		{"domain error", errors.InvalidState("shop already reviewed"), errors.CodeInvalidState},
		{"plain", stderrors.New("decode failed"), errors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(3)
			attempts := 0

			err := exec(context.Background(), s, "Shop", "update shop", func(ctx context.Context) error {
				attempts++
				return tt.err
			})

			assert.Equal(t, 1, attempts)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestCallStopsWhenCallerContextDone(t *testing.T) {
	s := newTestStore(5)
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	_, err := call(ctx, s, "Post", "get post", func(ctx context.Context) (int, error) {
		attempts++
		cancel()
		return 0, status.Error(codes.Unavailable, "down")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestCallAppliesPerAttemptTimeout(t *testing.T) {
	s := newTestStore(0)
	s.opts.CallTimeout = 10 * time.Millisecond

	_, err := call(context.Background(), s, "Post", "get post", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	assert.True(t, errors.Is(err, errors.CodeTransient))
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	err := classify("Cart item", "get cart item", status.Error(codes.NotFound, "no such entity"))

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "Cart item not found", appErr.Message)
}
