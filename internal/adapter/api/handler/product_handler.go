package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/domain/entity"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
	"pawmarket/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=5000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=50"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

func (r productRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
	}
}

type productStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), middleware.UID(c), req.input())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), middleware.UID(c), c.Param("id"), req.input())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) SetProductStatus(c echo.Context) error {
	var req productStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.SetProductStatus(c.Request().Context(), middleware.UID(c), c.Param("id"), entity.ProductStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), middleware.UID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Product deleted successfully"})
}

func (h *ProductHandler) UploadImage(c echo.Context) error {
	file, contentType, err := readUpload(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer file.Close()

	product, err := h.productUseCase.UploadImage(c.Request().Context(), middleware.UID(c), c.Param("id"), file, contentType)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), c.QueryParam("category"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) ListShopProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListShopProducts(c.Request().Context(), c.Param("id"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListMyProducts(c.Request().Context(), middleware.UID(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}
