package model

import "time"

// Event is a society-run event.
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SocietyID   uint      `json:"society_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Time        time.Time `json:"time" gorm:"not null;index"`
	Location    string    `json:"location" gorm:"size:255"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Relations
	Society Society `json:"-" gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE"`
}
