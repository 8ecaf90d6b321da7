package router

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/handler"
	"pawmarket/internal/adapter/api/middleware"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	cartHandler := handler.GetCartHandler()
	orderHandler := handler.GetOrderHandler()

	cart := e.Group("/v1/cart")
	cart.Use(authMiddleware.Authenticate)
	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:id", cartHandler.UpdateItem)
	cart.DELETE("/items/:id", cartHandler.RemoveItem)
	cart.POST("/checkout", cartHandler.Checkout)

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)
}
