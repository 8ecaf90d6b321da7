package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.POST("/v1/auth/login", authHandler.Login, rateLimitMiddleware.PerIP(ActionAuthLogin))

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)
}
