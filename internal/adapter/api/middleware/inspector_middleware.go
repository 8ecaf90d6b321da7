package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"pawmarket/pkg/errors"
	"pawmarket/pkg/response"
)

// InspectorChecker reports whether a user currently holds the inspector role.
type InspectorChecker interface {
	RequireInspector(ctx context.Context, userID string) error
}

type InspectorMiddleware struct {
	inspectors InspectorChecker
}

func NewInspectorMiddleware(inspectors InspectorChecker) *InspectorMiddleware {
	return &InspectorMiddleware{
		inspectors: inspectors,
	}
}

// InspectorOnly must run after Authenticate. The role is looked up on every
// request, so a revoked inspector loses access immediately.
func (m *InspectorMiddleware) InspectorOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := UID(c)
		if uid == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		if err := m.inspectors.RequireInspector(c.Request().Context(), uid); err != nil {
			return response.Error(c, err)
		}

		return next(c)
	}
}
