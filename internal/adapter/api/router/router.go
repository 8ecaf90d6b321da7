package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
)

// Rate-limited actions. Policies are keyed by these names.
const (
	ActionAuthLogin     = "auth_login"
	ActionCreatePost    = "create_post"
	ActionCreateComment = "create_comment"
	ActionLikePost      = "like_post"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	inspectorMiddleware *middleware.InspectorMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	metricsHandler http.Handler,
) {
	SetupAuthRouter(e, authMiddleware, rateLimitMiddleware)
	SetupProfileRouter(e, authMiddleware)
	SetupInspectorRouter(e, authMiddleware, inspectorMiddleware)
	SetupShopRouter(e, authMiddleware)
	SetupProductRouter(e, authMiddleware)
	SetupCartRouter(e, authMiddleware)
	SetupPostRouter(e, authMiddleware, rateLimitMiddleware)
	SetupRatingRouter(e, authMiddleware)
	SetupHealthRouter(e, metricsHandler)
}
