package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.Use(authMiddleware.OptionalAuthenticate)
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	myProducts := e.Group("/v1/my-products")
	myProducts.Use(authMiddleware.Authenticate)
	myProducts.GET("", productHandler.ListMyProducts)
	myProducts.POST("", productHandler.CreateProduct)
	myProducts.PUT("/:id", productHandler.UpdateProduct)
	myProducts.DELETE("/:id", productHandler.DeleteProduct)
	myProducts.PATCH("/:id/status", productHandler.SetProductStatus)
	myProducts.POST("/:id/image", productHandler.UploadImage)
}
