package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
	"pawmarket/pkg/utils"
)

type ShopHandler struct {
	shopUseCase *usecase.ShopUseCase
}

func NewShopHandler(shopUseCase *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{
		shopUseCase: shopUseCase,
	}
}

type shopRequest struct {
	ShopName    string `json:"shop_name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

func (r shopRequest) input() usecase.ShopInput {
	return usecase.ShopInput{
		ShopName:    r.ShopName,
		Description: r.Description,
		LogoURL:     r.LogoURL,
	}
}

type shopStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

func (h *ShopHandler) RegisterShop(c echo.Context) error {
	var req shopRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	shop, err := h.shopUseCase.RegisterShop(c.Request().Context(), middleware.UID(c), req.input())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, shop)
}

func (h *ShopHandler) ListShops(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	shops, total, err := h.shopUseCase.ListShops(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, shops, total, pagination.Page, pagination.PageSize)
}

func (h *ShopHandler) GetShop(c echo.Context) error {
	shop, err := h.shopUseCase.GetShop(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, shop)
}

func (h *ShopHandler) GetMyShop(c echo.Context) error {
	shop, err := h.shopUseCase.GetMyShop(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, shop)
}

func (h *ShopHandler) UpdateMyShop(c echo.Context) error {
	var req shopRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	shop, err := h.shopUseCase.UpdateMyShop(c.Request().Context(), middleware.UID(c), req.input())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, shop)
}

func (h *ShopHandler) SetMyShopStatus(c echo.Context) error {
	var req shopStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	shop, err := h.shopUseCase.SetMyShopActive(c.Request().Context(), middleware.UID(c), req.Status == "active")
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, shop)
}

func (h *ShopHandler) ListMyShopOrders(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.shopUseCase.ListMyShopOrders(c.Request().Context(), middleware.UID(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *ShopHandler) UploadLogo(c echo.Context) error {
	file, contentType, err := readUpload(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer file.Close()

	shop, err := h.shopUseCase.UploadLogo(c.Request().Context(), middleware.UID(c), file, contentType)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, shop)
}
