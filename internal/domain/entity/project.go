package entity

import "time"

type Budget struct {
	Type string  `json:"type" firestore:"type"` // "fixed", "hourly"
	Min  float64 `json:"min" firestore:"min"`
	Max  float64 `json:"max" firestore:"max"`
}

// Project is a client-posted engagement freelancers can send proposals to.
type Project struct {
	ID              string     `json:"id" firestore:"id"`
	ClientID        string     `json:"client_id" firestore:"clientId"`
	FreelancerID    string     `json:"freelancer_id,omitempty" firestore:"freelancerId,omitempty"`
	Title           string     `json:"title" firestore:"title"`
	Description     string     `json:"description" firestore:"description"`
	Category        string     `json:"category" firestore:"category"`
	Subcategory     string     `json:"subcategory,omitempty" firestore:"subcategory,omitempty"`
	SkillsRequired  []string   `json:"skills_required" firestore:"skillsRequired"`
	Budget          Budget     `json:"budget" firestore:"budget"`
	Duration        string     `json:"duration,omitempty" firestore:"duration,omitempty"`
	ExperienceLevel string     `json:"experience_level" firestore:"experienceLevel"` // "entry", "intermediate", "expert"
	Status          string     `json:"status" firestore:"status"`                    // "open", "in_progress", "completed", "cancelled"
	Attachments     []string   `json:"attachments,omitempty" firestore:"attachments,omitempty"`
	ProposalCount   int        `json:"proposal_count" firestore:"proposalCount"`
	Deadline        *time.Time `json:"deadline,omitempty" firestore:"deadline,omitempty"`
	CreatedAt       time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time  `json:"updated_at" firestore:"updatedAt"`
}
