package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"gigspace/internal/domain/entity"
)

// ChatStreams is the manager's view of the chat synchronizer. StreamMessages
// delivers the full current message window on every change until the
// returned cancel func is called.
type ChatStreams interface {
	StreamMessages(ctx context.Context, chatID, userID string, fn func(messages []*entity.ChatMessage, err error)) (func(), error)
	MarkRead(ctx context.Context, chatID, userID string) (int, error)
}

// Client represents one WebSocket connection.
type Client struct {
	UserID         string
	Conn           *websocket.Conn
	Send           chan []byte
	ActiveChatRoom string

	// subscriptions holds the live snapshot cancel func per joined room,
	// guarded by the manager mutex.
	subscriptions map[string]func()
}

// Manager tracks active connections and room membership.
type Manager struct {
	clients         map[string]*Client
	chatRoomClients map[string]map[string]bool
	Register        chan *Client
	Unregister      chan *Client
	streams         ChatStreams
	mutex           sync.RWMutex
}

func NewManager(streams ChatStreams) *Manager {
	return &Manager{
		clients:         make(map[string]*Client),
		chatRoomClients: make(map[string]map[string]bool),
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
		streams:         streams,
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				client.subscriptions = make(map[string]func())
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.removeClient(client)
				log.Printf("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// removeClient drops the client from every room and cancels its live
// subscriptions so no snapshot is pushed to a dead connection.
func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	existing, ok := m.clients[client.UserID]
	if !ok || existing != client {
		m.mutex.Unlock()
		return
	}
	cancels := make([]func(), 0, len(client.subscriptions))
	for _, cancel := range client.subscriptions {
		cancels = append(cancels, cancel)
	}
	client.subscriptions = nil
	for chatID, members := range m.chatRoomClients {
		delete(members, client.UserID)
		if len(members) == 0 {
			delete(m.chatRoomClients, chatID)
		}
	}
	delete(m.clients, client.UserID)
	m.mutex.Unlock()

	// Cancel every subscription before closing Send. A snapshot delivery
	// already in flight may still write to the channel; cancel returns only
	// once no further callback can run, so the close cannot race a send.
	for _, cancel := range cancels {
		cancel()
	}
	close(client.Send)
}

func (m *Manager) RemoveClient(userID string) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()
	if ok {
		m.removeClient(client)
	}
}

// SendToUser sends a message to a specific user if connected.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}
	select {
	case client.Send <- message:
	default:
		log.Printf("WebSocket: Client %s send channel full, dropping connection", userID)
		go m.removeClient(client)
	}
}

func (m *Manager) AddClientToChatRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members, ok := m.chatRoomClients[chatID]
	if !ok {
		members = make(map[string]bool)
		m.chatRoomClients[chatID] = members
	}
	members[userID] = true
}

func (m *Manager) RemoveClientFromChatRoom(chatID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.chatRoomClients[chatID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(m.chatRoomClients, chatID)
		}
	}
}

func (m *Manager) BroadcastToChatRoom(chatID string, message WSMessage) {
	m.broadcastToChatRoom(chatID, "", message)
}

func (m *Manager) BroadcastToChatRoomExcept(chatID, exceptUserID string, message WSMessage) {
	m.broadcastToChatRoom(chatID, exceptUserID, message)
}

func (m *Manager) broadcastToChatRoom(chatID, exceptUserID string, message WSMessage) {
	payload, err := marshalMessage(message)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal broadcast for chat %s: %v", chatID, err)
		return
	}

	m.mutex.RLock()
	var targets []string
	for userID := range m.chatRoomClients[chatID] {
		if userID != exceptUserID {
			targets = append(targets, userID)
		}
	}
	m.mutex.RUnlock()

	for _, userID := range targets {
		m.SendToUser(userID, payload)
	}
}

// ReadPump reads messages from the WebSocket connection.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("error: %v", err)
			return
		}
	}
}
