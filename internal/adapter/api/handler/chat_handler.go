package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gigspace/internal/domain/entity"
	"gigspace/internal/usecase"
	"gigspace/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createRoomRequest struct {
	ProjectID    string `json:"project_id" validate:"required"`
	FreelancerID string `json:"freelancer_id" validate:"required"`
}

type sendMessageRequest struct {
	Content     string   `json:"content"`
	Kind        string   `json:"kind" validate:"omitempty,oneof=text file image milestone contract"`
	Attachments []string `json:"attachments,omitempty" validate:"omitempty,dive,url"`
}

// CreateRoom opens (or returns) the conversation for a project pairing.
func (h *ChatHandler) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	room, err := h.chatUseCase.CreateRoom(c.Request().Context(), userID, usecase.CreateRoomInput{
		ProjectID:    req.ProjectID,
		FreelancerID: req.FreelancerID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, room)
}

// ListRooms returns the caller's rooms for one role, most recently active
// first.
func (h *ChatHandler) ListRooms(c echo.Context) error {
	userID := c.Get("uid").(string)
	role := entity.ParticipantRole(c.QueryParam("role"))
	if role == "" {
		role = entity.RoleClient
	}

	rooms, err := h.chatUseCase.ListRooms(c.Request().Context(), userID, role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, rooms)
}

func (h *ChatHandler) GetRoom(c echo.Context) error {
	userID := c.Get("uid").(string)

	room, err := h.chatUseCase.GetRoom(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, room)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	messages, err := h.chatUseCase.GetMessages(c.Request().Context(), c.Param("id"), userID, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	msg, err := h.chatUseCase.SendMessage(c.Request().Context(), c.Param("id"), userID, usecase.SendMessageInput{
		Content:     req.Content,
		Kind:        req.Kind,
		Attachments: req.Attachments,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, msg)
}

// MarkRead flips the other side's unread messages and resets the caller's
// counter.
func (h *ChatHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	flipped, err := h.chatUseCase.MarkRead(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"marked_read": flipped})
}
