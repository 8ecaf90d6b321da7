package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/domain/entity"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
	"pawmarket/pkg/utils"
)

type PostHandler struct {
	postUseCase *usecase.PostUseCase
}

func NewPostHandler(postUseCase *usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

type createPostRequest struct {
	Content      string `json:"content" validate:"required,max=2000"`
	PostType     string `json:"post_type" validate:"required,oneof=daily help"`
	IsAnonymous  bool   `json:"is_anonymous"`
	RewardPoints int    `json:"reward_points" validate:"gte=0"`
}

type solvePostRequest struct {
	SolverID string `json:"solver_id" validate:"required"`
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	post, err := h.postUseCase.CreatePost(c.Request().Context(), middleware.UID(c), usecase.CreatePostInput{
		Content:      req.Content,
		PostType:     entity.PostType(req.PostType),
		IsAnonymous:  req.IsAnonymous,
		RewardPoints: req.RewardPoints,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, post)
}

func (h *PostHandler) ListPosts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	posts, total, err := h.postUseCase.ListPublicPosts(c.Request().Context(), entity.PostType(c.QueryParam("type")), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, posts, total, pagination.Page, pagination.PageSize)
}

func (h *PostHandler) ListMyPosts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	posts, total, err := h.postUseCase.ListMyPosts(c.Request().Context(), middleware.UID(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, posts, total, pagination.Page, pagination.PageSize)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postUseCase.GetPost(c.Request().Context(), middleware.UID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, post)
}

func (h *PostHandler) LikePost(c echo.Context) error {
	if err := h.postUseCase.LikePost(c.Request().Context(), middleware.UID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"liked": true})
}

func (h *PostHandler) UnlikePost(c echo.Context) error {
	if err := h.postUseCase.UnlikePost(c.Request().Context(), middleware.UID(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{"liked": false})
}

func (h *PostHandler) MarkSolved(c echo.Context) error {
	var req solvePostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	post, err := h.postUseCase.MarkSolved(c.Request().Context(), middleware.UID(c), c.Param("id"), req.SolverID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, post)
}

func (h *PostHandler) CreateComment(c echo.Context) error {
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	comment, err := h.postUseCase.CreateComment(c.Request().Context(), middleware.UID(c), c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, comment)
}

func (h *PostHandler) ListComments(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	comments, total, err := h.postUseCase.ListComments(c.Request().Context(), middleware.UID(c), c.Param("id"), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, comments, total, pagination.Page, pagination.PageSize)
}
