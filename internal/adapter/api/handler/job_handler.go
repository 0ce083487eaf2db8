package handler

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/usecase"
	"gigspace/pkg/response"
	"gigspace/pkg/utils"
)

type JobHandler struct {
	jobUseCase *usecase.JobUseCase
}

func NewJobHandler(jobUseCase *usecase.JobUseCase) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
	}
}

// List is the public job board. Search, location and type narrow the page.
func (h *JobHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	jobs, err := h.jobUseCase.List(c.Request().Context(), usecase.JobFilter{
		Search:   c.QueryParam("search"),
		Location: c.QueryParam("location"),
		Type:     c.QueryParam("type"),
	}, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, jobs)
}

func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

func (h *JobHandler) Create(c echo.Context) error {
	var req usecase.JobInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	job, err := h.jobUseCase.Create(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, job)
}

func (h *JobHandler) Update(c echo.Context) error {
	var req usecase.JobInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	job, err := h.jobUseCase.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.jobUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}
