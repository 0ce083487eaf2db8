package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/internal/infrastructure/ratelimit"
	"gigspace/internal/infrastructure/websocket"
	"gigspace/pkg/errors"
	"gigspace/pkg/logger"
)

// DefaultMessageWindow is how many recent messages a room stream carries.
const DefaultMessageWindow = 50

type ChatUseCase struct {
	chatRepo      repository.ChatRepository
	projectRepo   repository.ProjectRepository
	userRepo      repository.UserRepository
	wsManager     *websocket.Manager
	rateLimiter   *ratelimit.RateLimiter
	messageWindow int
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	rateLimiter *ratelimit.RateLimiter,
	messageWindow int,
) *ChatUseCase {
	if messageWindow <= 0 {
		messageWindow = DefaultMessageWindow
	}
	return &ChatUseCase{
		chatRepo:      chatRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		rateLimiter:   rateLimiter,
		messageWindow: messageWindow,
	}
}

// SetWebSocketManager wires the push side after both sides exist. The
// manager needs the usecase for streams and the usecase needs the manager
// for notifications.
func (uc *ChatUseCase) SetWebSocketManager(m *websocket.Manager) {
	uc.wsManager = m
}

type CreateRoomInput struct {
	ProjectID    string `json:"project_id" validate:"required"`
	FreelancerID string `json:"freelancer_id" validate:"required"`
}

// CreateRoom opens the conversation between a project's client and a
// freelancer. Calling it again for the same pairing returns the existing
// room instead of a duplicate.
func (uc *ChatUseCase) CreateRoom(ctx context.Context, clientID string, input CreateRoomInput) (*entity.ChatRoom, error) {
	if clientID == input.FreelancerID {
		return nil, errors.BadRequest("Cannot open a chat room with yourself", nil)
	}

	project, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, errors.Forbidden("Only the project owner can open this chat room", nil)
	}

	existing, err := uc.chatRepo.FindRoomByProject(ctx, input.ProjectID, clientID, input.FreelancerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if allowed, wait := uc.rateLimiter.Allow(clientID, "create_chat"); !allowed {
		return nil, errors.TooManyRequests(
			fmt.Sprintf("Too many chat rooms created. Try again in %.0f seconds", wait.Seconds()), wait)
	}

	room := &entity.ChatRoom{
		ProjectID:    input.ProjectID,
		ClientID:     clientID,
		FreelancerID: input.FreelancerID,
	}
	if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	logger.Info("Chat room %s created for project %s", room.ID, input.ProjectID)
	return room, nil
}

func (uc *ChatUseCase) GetRoom(ctx context.Context, chatID, userID string) (*entity.ChatRoom, error) {
	room, err := uc.chatRepo.GetRoom(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if _, ok := room.RoleOf(userID); !ok {
		return nil, errors.Forbidden("You are not a participant of this chat room", nil)
	}
	return room, nil
}

func (uc *ChatUseCase) ListRooms(ctx context.Context, userID string, role entity.ParticipantRole) ([]*entity.ChatRoom, error) {
	if !role.Valid() {
		return nil, errors.BadRequest("Invalid participant role", nil)
	}
	return uc.chatRepo.ListRoomsByUser(ctx, userID, role)
}

type SendMessageInput struct {
	Content     string   `json:"content"`
	Kind        string   `json:"kind"`
	Attachments []string `json:"attachments,omitempty"`
}

// SendMessage validates everything before any store write: a rejected
// message leaves both the message log and the room summary untouched.
func (uc *ChatUseCase) SendMessage(ctx context.Context, chatID, senderID string, input SendMessageInput) (*entity.ChatMessage, error) {
	room, err := uc.chatRepo.GetRoom(ctx, chatID)
	if err != nil {
		return nil, err
	}

	role, ok := room.RoleOf(senderID)
	if !ok {
		return nil, errors.Forbidden("You are not a participant of this chat room", nil)
	}
	if !room.IsActive {
		return nil, errors.BadRequest("This chat room is closed", nil)
	}

	kind := input.Kind
	if kind == "" {
		kind = entity.MessageKindText
	}
	if !entity.ValidMessageKind(kind) {
		return nil, errors.BadRequest("Invalid message kind", nil)
	}

	content := strings.TrimSpace(input.Content)
	if kind == entity.MessageKindText && content == "" {
		return nil, errors.BadRequest("Message text cannot be empty", nil)
	}
	if (kind == entity.MessageKindFile || kind == entity.MessageKindImage) && len(input.Attachments) == 0 {
		return nil, errors.BadRequest("Attachment messages need at least one attachment", nil)
	}

	if allowed, wait := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests(
			fmt.Sprintf("Sending too fast. Try again in %.0f seconds", wait.Seconds()), wait)
	}

	msg := &entity.ChatMessage{
		SenderID:    senderID,
		SenderRole:  role,
		Content:     content,
		Kind:        kind,
		Attachments: input.Attachments,
	}
	if err := uc.chatRepo.SendMessage(ctx, room, msg); err != nil {
		return nil, err
	}

	uc.notifyRoomActivity(room, msg)
	return msg, nil
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, chatID, userID string, limit int) ([]*entity.ChatMessage, error) {
	room, err := uc.chatRepo.GetRoom(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if _, ok := room.RoleOf(userID); !ok {
		return nil, errors.Forbidden("You are not a participant of this chat room", nil)
	}

	if limit <= 0 || limit > uc.messageWindow {
		limit = uc.messageWindow
	}
	return uc.chatRepo.GetMessages(ctx, chatID, limit)
}

// MarkRead flips the other participant's unread messages and resets the
// reader's counter. Safe to call repeatedly.
func (uc *ChatUseCase) MarkRead(ctx context.Context, chatID, userID string) (int, error) {
	room, err := uc.chatRepo.GetRoom(ctx, chatID)
	if err != nil {
		return 0, err
	}

	role, ok := room.RoleOf(userID)
	if !ok {
		return 0, errors.Forbidden("You are not a participant of this chat room", nil)
	}

	if allowed, wait := uc.rateLimiter.Allow(userID, "mark_read"); !allowed {
		return 0, errors.TooManyRequests(
			fmt.Sprintf("Too many requests. Try again in %.0f seconds", wait.Seconds()), wait)
	}

	return uc.chatRepo.MarkMessagesRead(ctx, room, role)
}

// StreamMessages opens a live snapshot stream over the room's recent
// message window. Errors in the stream are forwarded once; after the
// returned cancel func is called, fn is never invoked again.
func (uc *ChatUseCase) StreamMessages(ctx context.Context, chatID, userID string, fn func(messages []*entity.ChatMessage, err error)) (func(), error) {
	room, err := uc.chatRepo.GetRoom(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if _, ok := room.RoleOf(userID); !ok {
		return nil, errors.Forbidden("You are not a participant of this chat room", nil)
	}

	return uc.chatRepo.SubscribeToMessages(chatID, uc.messageWindow, func(messages []*entity.ChatMessage, err error) {
		if err != nil {
			logger.Error("Message stream for chat %s broke: %v", chatID, err)
		}
		fn(messages, err)
	})
}

// notifyRoomActivity nudges the recipient's room list even when they have
// not joined the room stream.
func (uc *ChatUseCase) notifyRoomActivity(room *entity.ChatRoom, msg *entity.ChatMessage) {
	if uc.wsManager == nil {
		return
	}

	recipient := room.ParticipantID(msg.SenderRole.Other())

	senderName := ""
	if sender, err := uc.userRepo.GetByID(context.Background(), msg.SenderID); err == nil {
		senderName = sender.DisplayName
	}

	payload, err := json.Marshal(websocket.WSMessage{
		Type:   "room_activity",
		ChatID: room.ID,
		Data: map[string]interface{}{
			"chat_id":      room.ID,
			"sender_id":    msg.SenderID,
			"sender_name":  senderName,
			"last_message": msg.Content,
			"sent_at":      msg.Timestamp.Format(time.RFC3339),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal room activity notification: %v", err)
		return
	}

	uc.wsManager.SendToUser(recipient, payload)
}
