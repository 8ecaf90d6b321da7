package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupProfileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("/username", profileHandler.UpdateUsername)
	profile.PUT("/avatar", profileHandler.UpdateAvatar)
	profile.POST("/avatar/upload", profileHandler.UploadAvatar)
	profile.GET("/experience-logs", profileHandler.ListExperienceLogs)
}
