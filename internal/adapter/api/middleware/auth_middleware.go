package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"pawmarket/internal/domain/service"
	"pawmarket/pkg/errors"
	"pawmarket/pkg/response"
)

// ContextKeyUID is where authenticated handlers find the caller's user id.
const ContextKeyUID = "uid"

type AuthMiddleware struct {
	auth service.AuthGateway
}

func NewAuthMiddleware(auth service.AuthGateway) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// Authenticate rejects requests without a valid Firebase ID token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		token, ok := bearerToken(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		uid, err := m.auth.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set(ContextKeyUID, uid)
		return next(c)
	}
}

// OptionalAuthenticate sets the uid when a valid token is present and lets
// anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		if uid, err := m.auth.VerifyToken(c.Request().Context(), token); err == nil {
			c.Set(ContextKeyUID, uid)
		}
		return next(c)
	}
}

// UID returns the authenticated user id, or "" for anonymous requests.
func UID(c echo.Context) string {
	uid, _ := c.Get(ContextKeyUID).(string)
	return uid
}
