package entity

import "time"

// Job is a job-board posting managed through the admin panel.
type Job struct {
	ID                  string    `json:"id" firestore:"id"`
	Title               string    `json:"title" firestore:"title"`
	Company             string    `json:"company" firestore:"company"`
	Location            string    `json:"location" firestore:"location"`
	Salary              string    `json:"salary" firestore:"salary"`
	Type                string    `json:"type" firestore:"type"` // "Full-time", "Part-time", "Contract", "Remote"
	Description         string    `json:"description" firestore:"description"`
	KeyResponsibilities []string  `json:"key_responsibilities,omitempty" firestore:"keyResponsibilities,omitempty"`
	Requirements        []string  `json:"requirements,omitempty" firestore:"requirements,omitempty"`
	Benefits            []string  `json:"benefits,omitempty" firestore:"benefits,omitempty"`
	Tags                []string  `json:"tags" firestore:"tags"`
	CompanyLogo         string    `json:"company_logo,omitempty" firestore:"companyLogo,omitempty"`
	CreatedAt           time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time `json:"updated_at" firestore:"updatedAt"`
}
