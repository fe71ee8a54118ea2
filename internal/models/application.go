package models

import (
	"time"
)

// Application lifecycle states. New applications start Pending; the
// remaining states are assigned by administrators.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
	StatusRejected   = "Rejected"
)

// Application links an applicant to a scholarship. ScholarshipID is an
// opaque reference, not an enforced foreign key; deleting a scholarship
// does not cascade here.
type Application struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ScholarshipID       string    `gorm:"index;not null" json:"scholarshipId"`
	UserEmail           string    `gorm:"index;not null" json:"userEmail"`
	UserName            string    `json:"userName"`
	Phone               string    `json:"phone"`
	Photo               string    `json:"photo"`
	Address             string    `json:"address"`
	Gender              string    `json:"gender"`
	Degree              string    `json:"degree"`
	SSCResult           string    `json:"sscResult"`
	HSCResult           string    `json:"hscResult"`
	StudyGap            string    `json:"studyGap"`
	UniversityName      string    `json:"universityName"`
	ScholarshipCategory string    `json:"scholarshipCategory"`
	SubjectCategory     string    `json:"subjectCategory"`
	ApplicationFees     float64   `json:"applicationFees"`
	ServiceCharge       float64   `json:"serviceCharge"`
	ApplicationDeadline string    `json:"applicationDeadline"`
	AppliedDate         time.Time `json:"appliedDate"`
	Status              string    `gorm:"default:Pending" json:"status"`
	Feedback            string    `json:"feedback"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
