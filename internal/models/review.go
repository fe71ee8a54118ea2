package models

import (
	"time"
)

// Review is a rating and comment left by a reviewer on a scholarship.
// At most one review may exist per (ReviewerEmail, ScholarshipID) pair;
// the repository enforces this with a pre-insert existence check.
type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ScholarshipID  string    `gorm:"index;not null" json:"scholarshipId"`
	UniversityName string    `json:"universityName"`
	ReviewerName   string    `json:"reviewerName"`
	ReviewerImage  string    `json:"reviewerImage"`
	ReviewerEmail  string    `gorm:"index;not null" json:"reviewerEmail"`
	Rating         float64   `json:"rating"`
	Comment        string    `json:"comment"`
	ReviewDate     time.Time `json:"reviewDate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
