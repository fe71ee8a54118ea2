package models

import (
	"time"
)

// Scholarship is a listing posted by an admin or moderator account.
// JSON tags follow the client's camelCase wire format.
type Scholarship struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ScholarshipName     string    `gorm:"not null" json:"scholarshipName"`
	UniversityName      string    `gorm:"not null" json:"universityName"`
	UniversityImage     string    `json:"universityImage"`
	UniversityCountry   string    `json:"universityCountry"`
	UniversityCity      string    `json:"universityCity"`
	WorldRank           int       `json:"universityWorldRank"`
	SubjectCategory     string    `json:"subjectCategory"`
	ScholarshipCategory string    `json:"scholarshipCategory"`
	Degree              string    `json:"degree"`
	TuitionFees         float64   `json:"tuitionFees"`
	ApplicationFees     float64   `json:"applicationFees"`
	ServiceCharge       float64   `json:"serviceCharge"`
	ApplicationDeadline string    `json:"applicationDeadline"`
	PostDate            time.Time `json:"postDate"`
	PostedUserEmail     string    `json:"postedUserEmail"`
	Stipend             string    `json:"stipend"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
