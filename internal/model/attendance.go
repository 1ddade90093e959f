package model

import "time"

// EventAttending records that a user intends to go to an event.
type EventAttending struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	EventID   uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for EventAttending.
func (EventAttending) TableName() string {
	return "event_attending"
}

// EventAttended records that a user was marked present at an event.
type EventAttended struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	EventID   uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time

	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for EventAttended.
func (EventAttended) TableName() string {
	return "event_attended"
}

// AttendanceForm is a sign-in sheet entry for an event. Anyone may submit one;
// the submitter does not need an account.
type AttendanceForm struct {
	ID        uint      `gorm:"primaryKey"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_form_entry"`
	ZID       string    `gorm:"column:z_id;size:8;not null;uniqueIndex:idx_form_entry"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_form_entry"`
	NameFirst string    `gorm:"size:100"`
	NameLast  string    `gorm:"size:100"`
	CreatedAt time.Time

	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name for AttendanceForm.
func (AttendanceForm) TableName() string {
	return "attendance_forms"
}
