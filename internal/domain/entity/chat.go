package entity

import "time"

// ParticipantRole identifies which side of a conversation a user is on.
type ParticipantRole string

const (
	RoleClient     ParticipantRole = "client"
	RoleFreelancer ParticipantRole = "freelancer"
)

// Other returns the opposite role in a two-party room.
func (r ParticipantRole) Other() ParticipantRole {
	if r == RoleClient {
		return RoleFreelancer
	}
	return RoleClient
}

func (r ParticipantRole) Valid() bool {
	return r == RoleClient || r == RoleFreelancer
}

// UnreadCount holds per-role unread counters for a room. Values never go
// negative; each counter is reset only by its own participant.
type UnreadCount struct {
	Client     int `json:"client" firestore:"client"`
	Freelancer int `json:"freelancer" firestore:"freelancer"`
}

func (u UnreadCount) For(role ParticipantRole) int {
	if role == RoleClient {
		return u.Client
	}
	return u.Freelancer
}

// ChatRoom is a persistent two-party conversation scoped to one project.
// LastMessage, LastMessageAt and UnreadCount are a denormalized summary of
// the room's message collection; LastMessageAt never moves backward.
type ChatRoom struct {
	ID            string      `json:"id" firestore:"id"`
	ProjectID     string      `json:"project_id" firestore:"projectId"`
	ClientID      string      `json:"client_id" firestore:"clientId"`
	FreelancerID  string      `json:"freelancer_id" firestore:"freelancerId"`
	LastMessage   string      `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time   `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   UnreadCount `json:"unread_count" firestore:"unreadCount"`
	IsActive      bool        `json:"is_active" firestore:"isActive"`
	CreatedAt     time.Time   `json:"created_at" firestore:"createdAt"`
}

// RoleOf resolves a user id to its role in the room. The second return is
// false when the user is not a participant.
func (c *ChatRoom) RoleOf(userID string) (ParticipantRole, bool) {
	switch userID {
	case c.ClientID:
		return RoleClient, true
	case c.FreelancerID:
		return RoleFreelancer, true
	}
	return "", false
}

// ParticipantID returns the user id holding the given role.
func (c *ChatRoom) ParticipantID(role ParticipantRole) string {
	if role == RoleClient {
		return c.ClientID
	}
	return c.FreelancerID
}
