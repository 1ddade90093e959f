package model

import "time"

// ResetCode is a one-time password reset credential. The code is the key.
type ResetCode struct {
	ID        string    `gorm:"size:6;primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
