package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/internal/domain/store"
	"gigspace/pkg/errors"
)

const (
	roomsCollection    = "chatRooms"
	messagesCollection = "messages"
)

// StoreChatRepository implements ChatRepository on top of the DocumentStore
// contract, so the same code runs against Firestore and the in-memory store.
type StoreChatRepository struct {
	store store.DocumentStore
}

func NewStoreChatRepository(s store.DocumentStore) repository.ChatRepository {
	return &StoreChatRepository{store: s}
}

func (r *StoreChatRepository) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	id, err := r.store.Insert(ctx, roomsCollection, map[string]interface{}{
		"projectId":     room.ProjectID,
		"clientId":      room.ClientID,
		"freelancerId":  room.FreelancerID,
		"lastMessage":   "",
		"lastMessageAt": store.ServerTimestamp,
		"unreadCount": map[string]interface{}{
			"client":     0,
			"freelancer": 0,
		},
		"isActive":  true,
		"createdAt": store.ServerTimestamp,
	})
	if err != nil {
		return err
	}
	room.ID = id

	doc, err := r.store.Get(ctx, roomsCollection, id)
	if err != nil {
		return err
	}
	created := docToRoom(doc)
	room.CreatedAt = created.CreatedAt
	room.LastMessageAt = created.LastMessageAt
	room.IsActive = true
	room.UnreadCount = entity.UnreadCount{}
	room.LastMessage = ""
	return nil
}

func (r *StoreChatRepository) GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error) {
	doc, err := r.store.Get(ctx, roomsCollection, id)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NotFound("Chat room", err)
		}
		return nil, err
	}
	return docToRoom(doc), nil
}

func (r *StoreChatRepository) FindRoomByProject(ctx context.Context, projectID, clientID, freelancerID string) (*entity.ChatRoom, error) {
	docs, err := r.store.Query(ctx, roomsCollection,
		[]store.Filter{
			{Field: "projectId", Op: "==", Value: projectID},
			{Field: "clientId", Op: "==", Value: clientID},
			{Field: "freelancerId", Op: "==", Value: freelancerID},
		},
		nil, 1)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docToRoom(&docs[0]), nil
}

func (r *StoreChatRepository) ListRoomsByUser(ctx context.Context, userID string, role entity.ParticipantRole) ([]*entity.ChatRoom, error) {
	field := "clientId"
	if role == entity.RoleFreelancer {
		field = "freelancerId"
	}

	docs, err := r.store.Query(ctx, roomsCollection,
		[]store.Filter{{Field: field, Op: "==", Value: userID}},
		[]store.Order{{Field: "lastMessageAt", Desc: true}},
		0)
	if err != nil {
		return nil, err
	}

	rooms := make([]*entity.ChatRoom, 0, len(docs))
	for i := range docs {
		rooms = append(rooms, docToRoom(&docs[i]))
	}
	return rooms, nil
}

// SendMessage writes the message and the room summary refresh in one batch.
// Either both land or neither does, so the room summary can never name a
// message that was not stored.
func (r *StoreChatRepository) SendMessage(ctx context.Context, room *entity.ChatRoom, msg *entity.ChatMessage) error {
	msg.ID = uuid.New().String()
	msg.ChatID = room.ID
	msg.IsRead = false

	msgData := map[string]interface{}{
		"chatId":     msg.ChatID,
		"senderId":   msg.SenderID,
		"senderRole": string(msg.SenderRole),
		"content":    msg.Content,
		"kind":       msg.Kind,
		"timestamp":  store.ServerTimestamp,
		"isRead":     false,
	}
	if len(msg.Attachments) > 0 {
		msgData["attachments"] = msg.Attachments
	}

	recipient := msg.SenderRole.Other()
	err := r.store.BatchWrite(ctx, []store.WriteOp{
		{
			Kind:       store.WriteInsert,
			Collection: messagesCollection,
			ID:         msg.ID,
			Data:       msgData,
		},
		{
			Kind:       store.WriteUpdate,
			Collection: roomsCollection,
			ID:         room.ID,
			Data: map[string]interface{}{
				"lastMessage":   messagePreview(msg),
				"lastMessageAt": store.ServerTimestamp,
				"unreadCount." + string(recipient): store.Increment(1),
			},
		},
	})
	if err != nil {
		return err
	}

	doc, err := r.store.Get(ctx, messagesCollection, msg.ID)
	if err != nil {
		return err
	}
	msg.Timestamp = toTime(doc.Data["timestamp"])
	return nil
}

func (r *StoreChatRepository) GetMessages(ctx context.Context, chatID string, limit int) ([]*entity.ChatMessage, error) {
	docs, err := r.store.Query(ctx, messagesCollection,
		[]store.Filter{{Field: "chatId", Op: "==", Value: chatID}},
		[]store.Order{{Field: "timestamp", Desc: true}},
		limit)
	if err != nil {
		return nil, err
	}
	return docsToMessagesAscending(docs), nil
}

// MarkMessagesRead flips every unread message from the other participant and
// zeroes the reader's counter in one batch. A message sent between the query
// and the commit is left untouched; the counter reset still applies, which
// is the accepted trade-off of this reconciliation.
func (r *StoreChatRepository) MarkMessagesRead(ctx context.Context, room *entity.ChatRoom, reader entity.ParticipantRole) (int, error) {
	sender := room.ParticipantID(reader.Other())

	docs, err := r.store.Query(ctx, messagesCollection,
		[]store.Filter{
			{Field: "chatId", Op: "==", Value: room.ID},
			{Field: "senderId", Op: "==", Value: sender},
			{Field: "isRead", Op: "==", Value: false},
		},
		nil, 0)
	if err != nil {
		return 0, err
	}

	ops := make([]store.WriteOp, 0, len(docs)+1)
	for _, doc := range docs {
		ops = append(ops, store.WriteOp{
			Kind:       store.WriteUpdate,
			Collection: messagesCollection,
			ID:         doc.ID,
			Data:       map[string]interface{}{"isRead": true},
		})
	}
	ops = append(ops, store.WriteOp{
		Kind:       store.WriteUpdate,
		Collection: roomsCollection,
		ID:         room.ID,
		Data:       map[string]interface{}{"unreadCount." + string(reader): 0},
	})

	if err := r.store.BatchWrite(ctx, ops); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *StoreChatRepository) SubscribeToMessages(chatID string, limit int, fn repository.MessagesSnapshotFunc) (func(), error) {
	return r.store.Subscribe(messagesCollection,
		[]store.Filter{{Field: "chatId", Op: "==", Value: chatID}},
		[]store.Order{{Field: "timestamp", Desc: true}},
		limit,
		func(docs []store.Document, err error) {
			if err != nil {
				fn(nil, err)
				return
			}
			fn(docsToMessagesAscending(docs), nil)
		})
}

// messagePreview is the summary line shown on room lists. Attachment-only
// messages get a fixed label instead of empty text.
func messagePreview(msg *entity.ChatMessage) string {
	if msg.Content != "" {
		return msg.Content
	}
	switch msg.Kind {
	case entity.MessageKindImage:
		return "Sent an image"
	case entity.MessageKindFile:
		return "Sent a file"
	}
	return msg.Content
}

// docsToMessagesAscending converts a newest-first window into the ascending
// order conversations render in.
func docsToMessagesAscending(docs []store.Document) []*entity.ChatMessage {
	messages := make([]*entity.ChatMessage, len(docs))
	for i := range docs {
		messages[len(docs)-1-i] = docToMessage(&docs[i])
	}
	return messages
}

func docToRoom(doc *store.Document) *entity.ChatRoom {
	data := doc.Data
	counts, _ := data["unreadCount"].(map[string]interface{})
	return &entity.ChatRoom{
		ID:            doc.ID,
		ProjectID:     toString(data["projectId"]),
		ClientID:      toString(data["clientId"]),
		FreelancerID:  toString(data["freelancerId"]),
		LastMessage:   toString(data["lastMessage"]),
		LastMessageAt: toTime(data["lastMessageAt"]),
		UnreadCount: entity.UnreadCount{
			Client:     toInt(counts["client"]),
			Freelancer: toInt(counts["freelancer"]),
		},
		IsActive:  toBool(data["isActive"]),
		CreatedAt: toTime(data["createdAt"]),
	}
}

func docToMessage(doc *store.Document) *entity.ChatMessage {
	data := doc.Data
	return &entity.ChatMessage{
		ID:          doc.ID,
		ChatID:      toString(data["chatId"]),
		SenderID:    toString(data["senderId"]),
		SenderRole:  entity.ParticipantRole(toString(data["senderRole"])),
		Content:     toString(data["content"]),
		Kind:        toString(data["kind"]),
		Attachments: toStringSlice(data["attachments"]),
		Timestamp:   toTime(data["timestamp"]),
		IsRead:      toBool(data["isRead"]),
	}
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func toBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func toTime(v interface{}) time.Time {
	t, _ := v.(time.Time)
	return t
}

func toStringSlice(v interface{}) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
