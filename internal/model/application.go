package model

import "time"

// ApplicationStatus represents the decision state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusDenied   ApplicationStatus = "denied"
)

// Application is a request to found a new society.
type Application struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	Name        string            `json:"name" gorm:"size:100;not null"`
	Description string            `json:"description" gorm:"type:text"`
	PhotoURL    string            `json:"photo_url" gorm:"size:512"`
	ApplicantID uint              `json:"applicant_id" gorm:"not null;index"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	Applicant User `json:"-" gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE"`
}
