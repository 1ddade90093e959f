package repository

import (
	"context"

	"gorm.io/gorm"

	"spark/internal/model"
)

// ResetCodeRepository stores outstanding password reset codes.
type ResetCodeRepository interface {
	Create(ctx context.Context, code *model.ResetCode) error
	FindByCode(ctx context.Context, code string) (*model.ResetCode, error)
	Delete(ctx context.Context, code string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type resetCodeRepository struct {
	db *gorm.DB
}

// NewResetCodeRepository creates a new reset code repository.
func NewResetCodeRepository(db *gorm.DB) ResetCodeRepository {
	return &resetCodeRepository{db: db}
}

func (r *resetCodeRepository) Create(ctx context.Context, code *model.ResetCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *resetCodeRepository) FindByCode(ctx context.Context, code string) (*model.ResetCode, error) {
	var rc model.ResetCode
	if err := r.db.WithContext(ctx).Where("id = ?", code).First(&rc).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *resetCodeRepository) Delete(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).Where("id = ?", code).Delete(&model.ResetCode{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *resetCodeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ResetCode{}).Error
}
