package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"gigspace/internal/usecase"
	"gigspace/pkg/response"
	"gigspace/pkg/utils"
)

type FreelancerHandler struct {
	freelancerUseCase *usecase.FreelancerUseCase
}

func NewFreelancerHandler(freelancerUseCase *usecase.FreelancerUseCase) *FreelancerHandler {
	return &FreelancerHandler{
		freelancerUseCase: freelancerUseCase,
	}
}

func (h *FreelancerHandler) Search(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	var skills []string
	if raw := c.QueryParam("skills"); raw != "" {
		skills = strings.Split(raw, ",")
	}

	profiles, err := h.freelancerUseCase.Search(c.Request().Context(),
		skills, c.QueryParam("availability"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profiles)
}

func (h *FreelancerHandler) Get(c echo.Context) error {
	profile, err := h.freelancerUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *FreelancerHandler) MyProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	profile, err := h.freelancerUseCase.GetProfileByUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *FreelancerHandler) Create(c echo.Context) error {
	var req usecase.FreelancerProfileInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	profile, err := h.freelancerUseCase.CreateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, profile)
}

func (h *FreelancerHandler) Update(c echo.Context) error {
	var req usecase.FreelancerProfileInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	profile, err := h.freelancerUseCase.UpdateProfile(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}
