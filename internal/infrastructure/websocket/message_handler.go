package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gigspace/internal/domain/entity"
)

// WebSocket message types
const (
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeJoinChatRoom  = "join_chat_room"
	MessageTypeLeaveChatRoom = "leave_chat_room"
	MessageTypeChatSnapshot  = "chat_snapshot"
	MessageTypeMarkRead      = "mark_read"
	MessageTypeReadReceipt   = "read_receipt"
	MessageTypeTyping        = "typing_indicator"
	MessageTypeError         = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	ChatID    string      `json:"chat_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ChatSnapshotData carries the full current message window for one room.
// Clients replace their local state with it instead of merging diffs.
type ChatSnapshotData struct {
	ChatID   string                `json:"chat_id"`
	Messages []*entity.ChatMessage `json:"messages"`
	Error    string                `json:"error,omitempty"`
}

type ReadReceiptData struct {
	ChatID   string `json:"chat_id"`
	ReaderID string `json:"reader_id"`
	Flipped  int    `json:"flipped"`
}

type TypingData struct {
	ChatID    string `json:"chat_id"`
	UserID    string `json:"user_id"`
	Typing    bool   `json:"typing"`
	ExpiresAt string `json:"expires_at"`
}

// HandleClientMessage dispatches one incoming frame.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage

	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		log.Printf("WebSocket: Failed to unmarshal message from client %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.handlePing(client)

	case MessageTypeJoinChatRoom:
		m.handleJoinChatRoom(client, wsMessage)

	case MessageTypeLeaveChatRoom:
		m.handleLeaveChatRoom(client, wsMessage)

	case MessageTypeMarkRead:
		m.handleMarkRead(client, wsMessage)

	case "typing_start":
		m.handleTyping(client, wsMessage, true)

	case "typing_stop":
		m.handleTyping(client, wsMessage, false)

	default:
		log.Printf("WebSocket: Unknown message type '%s' from client %s", wsMessage.Type, client.UserID)
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) handlePing(client *Client) {
	m.sendToClient(client, WSMessage{
		Type:      MessageTypePong,
		Data:      map[string]string{"status": "alive"},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// handleJoinChatRoom opens a live snapshot stream for the room. Every change
// to the message window is pushed to this client as a chat_snapshot frame
// until the room is left or the connection closes.
func (m *Manager) handleJoinChatRoom(client *Client, wsMessage WSMessage) {
	chatID := wsMessage.ChatID
	if chatID == "" {
		m.sendErrorToClient(client, "Missing chat_id")
		return
	}

	m.mutex.RLock()
	_, already := client.subscriptions[chatID]
	m.mutex.RUnlock()
	if already {
		return
	}

	cancel, err := m.streams.StreamMessages(context.Background(), chatID, client.UserID,
		func(messages []*entity.ChatMessage, err error) {
			snapshot := ChatSnapshotData{ChatID: chatID, Messages: messages}
			if err != nil {
				snapshot.Error = "Message stream interrupted"
			}
			m.sendToClient(client, WSMessage{
				Type:      MessageTypeChatSnapshot,
				ChatID:    chatID,
				Data:      snapshot,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})
	if err != nil {
		log.Printf("WebSocket: Client %s failed to join chat %s: %v", client.UserID, chatID, err)
		m.sendErrorToClient(client, "Failed to join chat room")
		return
	}

	m.mutex.Lock()
	if client.subscriptions == nil {
		// Connection is already gone.
		m.mutex.Unlock()
		cancel()
		return
	}
	client.subscriptions[chatID] = cancel
	client.ActiveChatRoom = chatID
	m.mutex.Unlock()

	m.AddClientToChatRoom(chatID, client.UserID)
	log.Printf("WebSocket: Client %s joined chat room %s", client.UserID, chatID)
}

func (m *Manager) handleLeaveChatRoom(client *Client, wsMessage WSMessage) {
	chatID := wsMessage.ChatID
	if chatID == "" {
		m.sendErrorToClient(client, "Missing chat_id")
		return
	}

	m.mutex.Lock()
	cancel, ok := client.subscriptions[chatID]
	if ok {
		delete(client.subscriptions, chatID)
	}
	if client.ActiveChatRoom == chatID {
		client.ActiveChatRoom = ""
	}
	m.mutex.Unlock()

	if ok {
		cancel()
	}
	m.RemoveClientFromChatRoom(chatID, client.UserID)
	log.Printf("WebSocket: Client %s left chat room %s", client.UserID, chatID)
}

// handleMarkRead runs the read reconciliation and notifies the other
// participant with a read receipt.
func (m *Manager) handleMarkRead(client *Client, wsMessage WSMessage) {
	chatID := wsMessage.ChatID
	if chatID == "" {
		m.sendErrorToClient(client, "Missing chat_id")
		return
	}

	flipped, err := m.streams.MarkRead(context.Background(), chatID, client.UserID)
	if err != nil {
		log.Printf("WebSocket: Mark read failed for %s in chat %s: %v", client.UserID, chatID, err)
		m.sendErrorToClient(client, "Failed to mark messages as read")
		return
	}

	m.BroadcastToChatRoomExcept(chatID, client.UserID, WSMessage{
		Type: MessageTypeReadReceipt,
		Data: ReadReceiptData{
			ChatID:   chatID,
			ReaderID: client.UserID,
			Flipped:  flipped,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (m *Manager) handleTyping(client *Client, wsMessage WSMessage, typing bool) {
	chatID := wsMessage.ChatID
	if chatID == "" {
		m.sendErrorToClient(client, "Missing chat_id")
		return
	}

	m.BroadcastToChatRoomExcept(chatID, client.UserID, WSMessage{
		Type: MessageTypeTyping,
		Data: TypingData{
			ChatID:    chatID,
			UserID:    client.UserID,
			Typing:    typing,
			ExpiresAt: time.Now().Add(5 * time.Second).Format(time.RFC3339),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	payload, err := marshalMessage(message)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal message for client %s: %v", client.UserID, err)
		return
	}

	select {
	case client.Send <- payload:
	default:
		log.Printf("WebSocket: Client %s send channel full, closing connection", client.UserID)
		// Teardown runs async: this path can be reached from inside a
		// snapshot delivery, and cancelling that subscription inline
		// would deadlock.
		go m.removeClient(client)
	}
}

func (m *Manager) sendErrorToClient(client *Client, errorMsg string) {
	m.sendToClient(client, WSMessage{
		Type: MessageTypeError,
		Data: map[string]string{
			"error":   errorMsg,
			"user_id": client.UserID,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func marshalMessage(message WSMessage) ([]byte, error) {
	return json.Marshal(message)
}
