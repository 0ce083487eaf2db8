package entity

import "time"

type PortfolioItem struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Images      []string  `json:"images,omitempty" firestore:"images,omitempty"`
	Tags        []string  `json:"tags,omitempty" firestore:"tags,omitempty"`
	ProjectURL  string    `json:"project_url,omitempty" firestore:"projectUrl,omitempty"`
	CompletedAt time.Time `json:"completed_at" firestore:"completedAt"`
}

type LanguageSkill struct {
	Name        string `json:"name" firestore:"name"`
	Proficiency string `json:"proficiency" firestore:"proficiency"` // "basic", "conversational", "fluent", "native"
}

type FreelancerProfile struct {
	ID                string          `json:"id" firestore:"id"`
	UserID            string          `json:"user_id" firestore:"userId"`
	Title             string          `json:"title" firestore:"title"`
	Description       string          `json:"description" firestore:"description"`
	Skills            []string        `json:"skills" firestore:"skills"`
	HourlyRate        float64         `json:"hourly_rate" firestore:"hourlyRate"`
	Availability      string          `json:"availability" firestore:"availability"` // "available", "busy", "unavailable"
	Rating            float64         `json:"rating" firestore:"rating"`
	CompletedProjects int             `json:"completed_projects" firestore:"completedProjects"`
	ProfileImage      string          `json:"profile_image,omitempty" firestore:"profileImage,omitempty"`
	Portfolio         []PortfolioItem `json:"portfolio,omitempty" firestore:"portfolio,omitempty"`
	Languages         []LanguageSkill `json:"languages,omitempty" firestore:"languages,omitempty"`
	Location          string          `json:"location,omitempty" firestore:"location,omitempty"`
	ResponseTime      string          `json:"response_time,omitempty" firestore:"responseTime,omitempty"`
	CreatedAt         time.Time       `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time       `json:"updated_at" firestore:"updatedAt"`
}
