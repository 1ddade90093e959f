package repository

import (
	"context"

	"gorm.io/gorm"

	"spark/internal/model"
)

// SocietyRepository defines society persistence operations.
type SocietyRepository interface {
	// Create inserts the society together with any Members set on it.
	Create(ctx context.Context, society *model.Society) error
	FindByID(ctx context.Context, id uint) (*model.Society, error)
	FindByName(ctx context.Context, name string) (*model.Society, error)
	Update(ctx context.Context, id uint, name, description string) error
	Delete(ctx context.Context, id uint) error
	// Search matches search against name or description; an empty search
	// returns every society. Results are ordered by name, description, id.
	Search(ctx context.Context, search string) ([]model.Society, error)
	ListByMember(ctx context.Context, userID uint) ([]model.Society, error)
}

type societyRepository struct {
	db *gorm.DB
}

// NewSocietyRepository creates a new society repository.
func NewSocietyRepository(db *gorm.DB) SocietyRepository {
	return &societyRepository{db: db}
}

func (r *societyRepository) Create(ctx context.Context, society *model.Society) error {
	return r.db.WithContext(ctx).Create(society).Error
}

func (r *societyRepository) FindByID(ctx context.Context, id uint) (*model.Society, error) {
	var society model.Society
	if err := r.db.WithContext(ctx).First(&society, id).Error; err != nil {
		return nil, err
	}
	return &society, nil
}

func (r *societyRepository) FindByName(ctx context.Context, name string) (*model.Society, error) {
	var society model.Society
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&society).Error; err != nil {
		return nil, err
	}
	return &society, nil
}

func (r *societyRepository) Update(ctx context.Context, id uint, name, description string) error {
	return r.db.WithContext(ctx).Model(&model.Society{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "description": description}).Error
}

func (r *societyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Society{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *societyRepository) Search(ctx context.Context, search string) ([]model.Society, error) {
	query := r.db.WithContext(ctx).Model(&model.Society{})
	if search != "" {
		pattern := containsPattern(search)
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var societies []model.Society
	if err := query.Order("name").Order("description").Order("id").Find(&societies).Error; err != nil {
		return nil, err
	}
	return societies, nil
}

func (r *societyRepository) ListByMember(ctx context.Context, userID uint) ([]model.Society, error) {
	var societies []model.Society
	err := r.db.WithContext(ctx).
		Joins("JOIN society_members ON society_members.society_id = societies.id").
		Where("society_members.user_id = ?", userID).
		Order("societies.id").
		Find(&societies).Error
	if err != nil {
		return nil, err
	}
	return societies, nil
}
