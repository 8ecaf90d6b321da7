package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
	}
}

type rateProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

type rateShopRequest struct {
	ShopID  string `json:"shop_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

func (h *RatingHandler) RateProduct(c echo.Context) error {
	var req rateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	rating, err := h.ratingUseCase.RateProduct(c.Request().Context(), middleware.UID(c), usecase.RateInput{
		TargetID: req.ProductID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, rating)
}

func (h *RatingHandler) RateShop(c echo.Context) error {
	var req rateShopRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	rating, err := h.ratingUseCase.RateShop(c.Request().Context(), middleware.UID(c), usecase.RateInput{
		TargetID: req.ShopID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, rating)
}

func (h *RatingHandler) GetProductRatings(c echo.Context) error {
	summary, err := h.ratingUseCase.GetProductRatings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, summary)
}

func (h *RatingHandler) GetShopRatings(c echo.Context) error {
	summary, err := h.ratingUseCase.GetShopRatings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, summary)
}
