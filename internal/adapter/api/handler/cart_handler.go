package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
)

type CartHandler struct {
	cartUseCase     *usecase.CartUseCase
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase, checkoutUseCase *usecase.CheckoutUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase:     cartUseCase,
		checkoutUseCase: checkoutUseCase,
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartUseCase.GetCart(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.AddToCart(c.Request().Context(), middleware.UID(c), req.ProductID, req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, item)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.cartUseCase.UpdateQuantity(c.Request().Context(), middleware.UID(c), c.Param("id"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.cartUseCase.RemoveItem(c.Request().Context(), middleware.UID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Item removed from cart"})
}

func (h *CartHandler) Checkout(c echo.Context) error {
	result, err := h.checkoutUseCase.Checkout(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}
