package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
	"pawmarket/pkg/utils"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

type updateUsernameRequest struct {
	Username string `json:"username" validate:"required,max=30"`
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileUseCase.GetProfile(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *ProfileHandler) UpdateUsername(c echo.Context) error {
	var req updateUsernameRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	profile, err := h.profileUseCase.UpdateUsername(c.Request().Context(), middleware.UID(c), req.Username)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	profile, err := h.profileUseCase.UpdateAvatar(c.Request().Context(), middleware.UID(c), req.AvatarURL)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	file, contentType, err := readUpload(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer file.Close()

	profile, err := h.profileUseCase.UploadAvatar(c.Request().Context(), middleware.UID(c), file, contentType)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

func (h *ProfileHandler) ListExperienceLogs(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	logs, total, err := h.profileUseCase.ListExperienceLogs(c.Request().Context(), middleware.UID(c), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, logs, total, pagination.Page, pagination.PageSize)
}
