package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
	"pawmarket/pkg/utils"
)

type OrderHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewOrderHandler(checkoutUseCase *usecase.CheckoutUseCase) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.checkoutUseCase.ListOrders(c.Request().Context(), middleware.UID(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.checkoutUseCase.GetOrder(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}
