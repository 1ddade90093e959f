package repository

import (
	"context"

	"gorm.io/gorm"

	"spark/internal/model"
)

// ApplicationRepository defines society application persistence operations.
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
	// Decide moves a pending application to status. It reports false when no
	// pending application with that id exists.
	Decide(ctx context.Context, id uint, status model.ApplicationStatus) (bool, error)
	DeleteByApplicant(ctx context.Context, userID uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) List(ctx context.Context) ([]model.Application, error) {
	var applications []model.Application
	if err := r.db.WithContext(ctx).Order("id").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) Decide(ctx context.Context, id uint, status model.ApplicationStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ? AND status = ?", id, model.ApplicationStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *applicationRepository) DeleteByApplicant(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("applicant_id = ?", userID).Delete(&model.Application{}).Error
}
