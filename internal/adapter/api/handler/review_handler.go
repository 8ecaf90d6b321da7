package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/domain/entity"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
)

type ReviewHandler struct {
	moderationUseCase *usecase.ModerationUseCase
}

func NewReviewHandler(moderationUseCase *usecase.ModerationUseCase) *ReviewHandler {
	return &ReviewHandler{
		moderationUseCase: moderationUseCase,
	}
}

type reviewRequest struct {
	Comment string `json:"comment" validate:"max=500"`
}

func (h *ReviewHandler) input(c echo.Context, decision entity.Decision) (usecase.ReviewInput, error) {
	var req reviewRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return usecase.ReviewInput{}, err
		}
		if err := c.Validate(&req); err != nil {
			return usecase.ReviewInput{}, err
		}
	}

	return usecase.ReviewInput{
		ReviewerID: middleware.UID(c),
		TargetID:   c.Param("id"),
		Decision:   decision,
		Comment:    req.Comment,
	}, nil
}

func (h *ReviewHandler) reviewShop(decision entity.Decision) echo.HandlerFunc {
	return func(c echo.Context) error {
		input, err := h.input(c, decision)
		if err != nil {
			return response.Error(c, err)
		}

		shop, err := h.moderationUseCase.ReviewShop(c.Request().Context(), input)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, shop)
	}
}

func (h *ReviewHandler) reviewPost(decision entity.Decision) echo.HandlerFunc {
	return func(c echo.Context) error {
		input, err := h.input(c, decision)
		if err != nil {
			return response.Error(c, err)
		}

		post, err := h.moderationUseCase.ReviewPost(c.Request().Context(), input)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, post)
	}
}

func (h *ReviewHandler) ApproveShop(c echo.Context) error {
	return h.reviewShop(entity.DecisionApprove)(c)
}

func (h *ReviewHandler) RejectShop(c echo.Context) error {
	return h.reviewShop(entity.DecisionReject)(c)
}

func (h *ReviewHandler) ApprovePost(c echo.Context) error {
	return h.reviewPost(entity.DecisionApprove)(c)
}

func (h *ReviewHandler) RejectPost(c echo.Context) error {
	return h.reviewPost(entity.DecisionReject)(c)
}
