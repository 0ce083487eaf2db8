package entity

import "time"

const (
	ProposalStatusPending   = "pending"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusRejected  = "rejected"
	ProposalStatusWithdrawn = "withdrawn"
)

type ProposedMilestone struct {
	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Amount      float64 `json:"amount" firestore:"amount"`
	Duration    string  `json:"duration" firestore:"duration"`
}

type Proposal struct {
	ID                string              `json:"id" firestore:"id"`
	ProjectID         string              `json:"project_id" firestore:"projectId"`
	FreelancerID      string              `json:"freelancer_id" firestore:"freelancerId"`
	CoverLetter       string              `json:"cover_letter" firestore:"coverLetter"`
	ProposedRate      float64             `json:"proposed_rate" firestore:"proposedRate"`
	EstimatedDuration string              `json:"estimated_duration" firestore:"estimatedDuration"`
	Milestones        []ProposedMilestone `json:"milestones,omitempty" firestore:"milestones,omitempty"`
	Attachments       []string            `json:"attachments,omitempty" firestore:"attachments,omitempty"`
	Status            string              `json:"status" firestore:"status"`
	CreatedAt         time.Time           `json:"created_at" firestore:"createdAt"`
}
