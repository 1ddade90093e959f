package model

import "time"

// Society is a student club. Societies only come into existence through an
// approved Application.
type Society struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PhotoURL    string    `json:"photo_url" gorm:"size:512"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Relations
	Members []SocietyMember `json:"-" gorm:"foreignKey:SocietyID;constraint:OnDelete:CASCADE"`
}
