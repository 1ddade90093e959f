package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"spark/internal/model"
)

// EventFilter narrows an event search. Zero values disable a condition.
type EventFilter struct {
	SocietyID uint
	Search    string
	From      *time.Time
	To        *time.Time
}

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) error
	// Search returns events ordered by time, name, description, id.
	Search(ctx context.Context, filter EventFilter) ([]model.Event, error)
	IDsBySociety(ctx context.Context, societyID uint) ([]uint, error)
	DeleteBySociety(ctx context.Context, societyID uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"name":        event.Name,
			"description": event.Description,
			"time":        event.Time,
			"location":    event.Location,
		}).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}

func (r *eventRepository) Search(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	query := r.db.WithContext(ctx).Model(&model.Event{})
	if filter.SocietyID != 0 {
		query = query.Where("society_id = ?", filter.SocietyID)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("name LIKE ? OR description LIKE ? OR location LIKE ?", pattern, pattern, pattern)
	}
	if filter.From != nil {
		query = query.Where("time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("time <= ?", *filter.To)
	}
	return r.ordered(query)
}

func (r *eventRepository) IDsBySociety(ctx context.Context, societyID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Where("society_id = ?", societyID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *eventRepository) DeleteBySociety(ctx context.Context, societyID uint) error {
	return r.db.WithContext(ctx).Where("society_id = ?", societyID).Delete(&model.Event{}).Error
}

func (r *eventRepository) ordered(query *gorm.DB) ([]model.Event, error) {
	var events []model.Event
	err := query.Order("time").Order("name").Order("description").Order("id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
