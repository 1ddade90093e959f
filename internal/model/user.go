package model

import "time"

// User represents a registered student.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	NameFirst    string    `json:"nameFirst" gorm:"size:100;not null"`
	NameLast     string    `json:"nameLast" gorm:"size:100;not null"`
	ZID          string    `json:"zId" gorm:"column:z_id;uniqueIndex;size:8;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false;index"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
