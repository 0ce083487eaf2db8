package entity

import "time"

type ContactInfo struct {
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address  string `json:"address,omitempty" firestore:"address,omitempty"`
	Website  string `json:"website,omitempty" firestore:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" firestore:"linkedin,omitempty"`
}

type UserProfile struct {
	ID          string      `json:"id" firestore:"id"`
	DisplayName string      `json:"display_name" firestore:"displayName"`
	Email       string      `json:"email" firestore:"email"`
	Avatar      string      `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	UserType    string      `json:"user_type" firestore:"userType"` // "client", "freelancer", "both"
	Role        string      `json:"role" firestore:"role"`          // "user", "admin"
	IsVerified  bool        `json:"is_verified" firestore:"isVerified"`
	Timezone    string      `json:"timezone,omitempty" firestore:"timezone,omitempty"`
	ContactInfo ContactInfo `json:"contact_info" firestore:"contactInfo"`
	JoinedAt    time.Time   `json:"joined_at" firestore:"joinedAt"`
	LastSeen    time.Time   `json:"last_seen" firestore:"lastSeen"`
}
