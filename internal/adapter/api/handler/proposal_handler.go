package handler

import (
	"github.com/labstack/echo/v4"

	"gigspace/internal/usecase"
	"gigspace/pkg/response"
)

type ProposalHandler struct {
	proposalUseCase *usecase.ProposalUseCase
}

func NewProposalHandler(proposalUseCase *usecase.ProposalUseCase) *ProposalHandler {
	return &ProposalHandler{
		proposalUseCase: proposalUseCase,
	}
}

func (h *ProposalHandler) Submit(c echo.Context) error {
	var req usecase.ProposalInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	proposal, err := h.proposalUseCase.Submit(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, proposal)
}

func (h *ProposalHandler) ListByProject(c echo.Context) error {
	userID := c.Get("uid").(string)

	proposals, err := h.proposalUseCase.ListByProject(c.Request().Context(), userID, c.Param("projectId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposals)
}

func (h *ProposalHandler) ListMine(c echo.Context) error {
	userID := c.Get("uid").(string)

	proposals, err := h.proposalUseCase.ListMine(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposals)
}

// Accept assigns the freelancer and returns the chat room opened for the
// engagement.
func (h *ProposalHandler) Accept(c echo.Context) error {
	userID := c.Get("uid").(string)

	room, err := h.proposalUseCase.Accept(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, room)
}

func (h *ProposalHandler) Reject(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.proposalUseCase.Reject(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "rejected"})
}

func (h *ProposalHandler) Withdraw(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.proposalUseCase.Withdraw(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "withdrawn"})
}
