package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupShopRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	shopHandler := handler.GetShopHandler()
	productHandler := handler.GetProductHandler()

	shops := e.Group("/v1/shops")
	shops.Use(authMiddleware.OptionalAuthenticate)
	shops.GET("", shopHandler.ListShops)
	shops.GET("/:id", shopHandler.GetShop)
	shops.GET("/:id/products", productHandler.ListShopProducts)

	e.POST("/v1/shops", shopHandler.RegisterShop, authMiddleware.Authenticate)

	myShop := e.Group("/v1/my-shop")
	myShop.Use(authMiddleware.Authenticate)
	myShop.GET("", shopHandler.GetMyShop)
	myShop.PUT("", shopHandler.UpdateMyShop)
	myShop.PATCH("/status", shopHandler.SetMyShopStatus)
	myShop.GET("/orders", shopHandler.ListMyShopOrders)
	myShop.POST("/logo", shopHandler.UploadLogo)
}
