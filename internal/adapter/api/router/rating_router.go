package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupRatingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	ratingHandler := handler.GetRatingHandler()

	e.GET("/v1/ratings/products/:id", ratingHandler.GetProductRatings)
	e.GET("/v1/ratings/shops/:id", ratingHandler.GetShopRatings)

	ratings := e.Group("/v1/ratings")
	ratings.Use(authMiddleware.Authenticate)
	ratings.POST("/products", ratingHandler.RateProduct)
	ratings.POST("/shops", ratingHandler.RateShop)
}
