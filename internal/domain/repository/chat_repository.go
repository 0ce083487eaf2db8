package repository

import (
	"context"

	"gigspace/internal/domain/entity"
)

// MessagesSnapshotFunc receives the full current message window every time
// the underlying collection changes. A non-nil error means the stream is
// broken and no further snapshots will follow.
type MessagesSnapshotFunc func(messages []*entity.ChatMessage, err error)

type ChatRepository interface {
	CreateRoom(ctx context.Context, room *entity.ChatRoom) error
	GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error)
	FindRoomByProject(ctx context.Context, projectID, clientID, freelancerID string) (*entity.ChatRoom, error)
	ListRoomsByUser(ctx context.Context, userID string, role entity.ParticipantRole) ([]*entity.ChatRoom, error)

	// SendMessage atomically appends the message and refreshes the room's
	// denormalized summary. The stored message id is written back to msg.
	SendMessage(ctx context.Context, room *entity.ChatRoom, msg *entity.ChatMessage) error

	GetMessages(ctx context.Context, chatID string, limit int) ([]*entity.ChatMessage, error)

	// MarkMessagesRead flips the unread messages sent by the other
	// participant and zeroes the reader's unread counter in one batch.
	MarkMessagesRead(ctx context.Context, room *entity.ChatRoom, reader entity.ParticipantRole) (int, error)

	// SubscribeToMessages registers a live listener over the room's most
	// recent message window. The returned func cancels the listener; after
	// it returns, fn is never invoked again.
	SubscribeToMessages(chatID string, limit int, fn MessagesSnapshotFunc) (func(), error)
}
