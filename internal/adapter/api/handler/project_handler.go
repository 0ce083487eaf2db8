package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gigspace/internal/usecase"
	"gigspace/pkg/response"
	"gigspace/pkg/utils"
)

type ProjectHandler struct {
	projectUseCase *usecase.ProjectUseCase
}

func NewProjectHandler(projectUseCase *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: projectUseCase,
	}
}

func (h *ProjectHandler) ListOpen(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	maxBudget, _ := strconv.ParseFloat(c.QueryParam("max_budget"), 64)

	projects, err := h.projectUseCase.ListOpen(c.Request().Context(),
		c.QueryParam("category"), maxBudget, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, projects)
}

func (h *ProjectHandler) ListMine(c echo.Context) error {
	userID := c.Get("uid").(string)

	projects, err := h.projectUseCase.ListMine(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, projects)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projectUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req usecase.ProjectInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.Create(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, project)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
}

func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.UpdateStatus(c.Request().Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}
