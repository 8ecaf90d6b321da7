package handler

import (
	"github.com/labstack/echo/v4"

	"pawmarket/internal/adapter/api/middleware"
	"pawmarket/internal/usecase"
	"pawmarket/pkg/response"
)

type InspectorHandler struct {
	inspectorUseCase *usecase.InspectorUseCase
}

func NewInspectorHandler(inspectorUseCase *usecase.InspectorUseCase) *InspectorHandler {
	return &InspectorHandler{
		inspectorUseCase: inspectorUseCase,
	}
}

func (h *InspectorHandler) CheckEligibility(c echo.Context) error {
	eligibility, err := h.inspectorUseCase.CheckEligibility(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, eligibility)
}

func (h *InspectorHandler) Status(c echo.Context) error {
	status, err := h.inspectorUseCase.Status(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, status)
}

func (h *InspectorHandler) Apply(c echo.Context) error {
	inspector, err := h.inspectorUseCase.Apply(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, inspector)
}

func (h *InspectorHandler) ListTasks(c echo.Context) error {
	tasks, err := h.inspectorUseCase.ListTasks(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, tasks)
}
