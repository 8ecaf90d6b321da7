package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupInspectorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, inspectorMiddleware *middleware.InspectorMiddleware) {
	inspectorHandler := handler.GetInspectorHandler()
	reviewHandler := handler.GetReviewHandler()

	inspectors := e.Group("/v1/inspectors")
	inspectors.Use(authMiddleware.Authenticate)
	inspectors.GET("/eligibility", inspectorHandler.CheckEligibility)
	inspectors.GET("/me", inspectorHandler.Status)
	inspectors.POST("/apply", inspectorHandler.Apply)
	inspectors.GET("/tasks", inspectorHandler.ListTasks, inspectorMiddleware.InspectorOnly)

	reviews := e.Group("/v1/reviews")
	reviews.Use(authMiddleware.Authenticate)
	reviews.Use(inspectorMiddleware.InspectorOnly)
	reviews.POST("/shops/:id/approve", reviewHandler.ApproveShop)
	reviews.POST("/shops/:id/reject", reviewHandler.RejectShop)
	reviews.POST("/posts/:id/approve", reviewHandler.ApprovePost)
	reviews.POST("/posts/:id/reject", reviewHandler.RejectPost)
}
