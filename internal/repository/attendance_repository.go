package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spark/internal/model"
)

// AttendanceRepository covers declared attendance, recorded attendance and
// attendance form entries.
type AttendanceRepository interface {
	Attend(ctx context.Context, userID, eventID uint) error
	// Unattend reports whether an attending row was removed.
	Unattend(ctx context.Context, userID, eventID uint) (bool, error)
	IsAttending(ctx context.Context, userID, eventID uint) (bool, error)
	AttendingEvents(ctx context.Context, userID uint) ([]model.Event, error)
	AttendedEvents(ctx context.Context, userID uint) ([]model.Event, error)
	RecordForm(ctx context.Context, form *model.AttendanceForm) error
	MarkAttended(ctx context.Context, userID, eventID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteByEvents(ctx context.Context, eventIDs []uint) error
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Attend(ctx context.Context, userID, eventID uint) error {
	row := model.EventAttending{UserID: userID, EventID: eventID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *attendanceRepository) Unattend(ctx context.Context, userID, eventID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&model.EventAttending{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *attendanceRepository) IsAttending(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EventAttending{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *attendanceRepository) AttendingEvents(ctx context.Context, userID uint) ([]model.Event, error) {
	return r.eventsVia(ctx, "event_attending", userID)
}

func (r *attendanceRepository) AttendedEvents(ctx context.Context, userID uint) ([]model.Event, error) {
	return r.eventsVia(ctx, "event_attended", userID)
}

func (r *attendanceRepository) eventsVia(ctx context.Context, table string, userID uint) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN "+table+" ON "+table+".event_id = events.id").
		Where(table+".user_id = ?", userID).
		Order("events.time").Order("events.id").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *attendanceRepository) RecordForm(ctx context.Context, form *model.AttendanceForm) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(form).Error
}

func (r *attendanceRepository) MarkAttended(ctx context.Context, userID, eventID uint) error {
	row := model.EventAttended{UserID: userID, EventID: eventID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *attendanceRepository) DeleteByUser(ctx context.Context, userID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&model.EventAttending{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&model.EventAttended{}).Error
}

func (r *attendanceRepository) DeleteByEvents(ctx context.Context, eventIDs []uint) error {
	if len(eventIDs) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("event_id IN ?", eventIDs).Delete(&model.EventAttending{}).Error; err != nil {
		return err
	}
	if err := db.Where("event_id IN ?", eventIDs).Delete(&model.EventAttended{}).Error; err != nil {
		return err
	}
	return db.Where("event_id IN ?", eventIDs).Delete(&model.AttendanceForm{}).Error
}
