package entity

import "time"

// Message kinds. Milestone and contract messages carry a reference id in
// Content instead of free text.
const (
	MessageKindText      = "text"
	MessageKindFile      = "file"
	MessageKindImage     = "image"
	MessageKindMilestone = "milestone"
	MessageKindContract  = "contract"
)

func ValidMessageKind(kind string) bool {
	switch kind {
	case MessageKindText, MessageKindFile, MessageKindImage, MessageKindMilestone, MessageKindContract:
		return true
	}
	return false
}

// ChatMessage belongs to exactly one ChatRoom. Timestamp is assigned by the
// store at write time, never by the sender's clock. IsRead only ever moves
// from false to true.
type ChatMessage struct {
	ID          string          `json:"id" firestore:"id"`
	ChatID      string          `json:"chat_id" firestore:"chatId"`
	SenderID    string          `json:"sender_id" firestore:"senderId"`
	SenderRole  ParticipantRole `json:"sender_role" firestore:"senderRole"`
	Content     string          `json:"content" firestore:"content"`
	Kind        string          `json:"kind" firestore:"kind"`
	Attachments []string        `json:"attachments,omitempty" firestore:"attachments,omitempty"`
	Timestamp   time.Time       `json:"timestamp" firestore:"timestamp"`
	IsRead      bool            `json:"is_read" firestore:"isRead"`
	EditedAt    *time.Time      `json:"edited_at,omitempty" firestore:"editedAt,omitempty"`
}
