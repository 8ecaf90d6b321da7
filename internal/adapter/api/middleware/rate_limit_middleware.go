package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
	"pawmarket/pkg/response"
)

// Limiter is satisfied by ratelimit.RateLimiter.
type Limiter interface {
	Allow(subject, action string) (bool, time.Duration)
}

// RejectionRecorder is satisfied by the metrics collector.
type RejectionRecorder interface {
	RateLimited(action string)
}

type RateLimitMiddleware struct {
	limiter  Limiter
	recorder RejectionRecorder
}

func NewRateLimitMiddleware(limiter Limiter, recorder RejectionRecorder) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:  limiter,
		recorder: recorder,
	}
}

// PerUser limits an action per authenticated user. It must run after Authenticate.
func (m *RateLimitMiddleware) PerUser(action string) echo.MiddlewareFunc {
	return m.limit(action, func(c echo.Context) string {
		if uid := UID(c); uid != "" {
			return "user:" + uid
		}
		return "ip:" + c.RealIP()
	})
}

// PerIP limits an action per client address, for routes used before login.
func (m *RateLimitMiddleware) PerIP(action string) echo.MiddlewareFunc {
	return m.limit(action, func(c echo.Context) string {
		return "ip:" + c.RealIP()
	})
}

func (m *RateLimitMiddleware) limit(action string, subject func(c echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := subject(c)
			ok, wait := m.limiter.Allow(key, action)
			if ok {
				return next(c)
			}

			if m.recorder != nil {
				m.recorder.RateLimited(action)
			}
			logger.Warn("rate limit: %s blocked on %s (retry in %s)", key, action, wait)

			seconds := int(math.Ceil(wait.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
			return response.Error(c, errors.TooManyRequests(fmt.Sprintf("Rate limit exceeded, retry in %ds", seconds)))
		}
	}
}
