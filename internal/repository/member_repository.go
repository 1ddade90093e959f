package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spark/internal/model"
)

// MemberRepository stores the (user, society) → role relationship.
type MemberRepository interface {
	Find(ctx context.Context, userID, societyID uint) (*model.SocietyMember, error)
	// Join inserts a member row with the default role unless one exists.
	Join(ctx context.Context, userID, societyID uint) error
	UpdateRole(ctx context.Context, userID, societyID uint, role model.Role) error
	// ListBySociety returns members with their user loaded.
	ListBySociety(ctx context.Context, societyID uint) ([]model.SocietyMember, error)
	SocietyIDsByRole(ctx context.Context, userID uint, role model.Role) ([]uint, error)
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteBySociety(ctx context.Context, societyID uint) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new membership repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Find(ctx context.Context, userID, societyID uint) (*model.SocietyMember, error) {
	var member model.SocietyMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND society_id = ?", userID, societyID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) Join(ctx context.Context, userID, societyID uint) error {
	member := model.SocietyMember{UserID: userID, SocietyID: societyID, Role: model.RoleMember}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

func (r *memberRepository) UpdateRole(ctx context.Context, userID, societyID uint, role model.Role) error {
	return r.db.WithContext(ctx).Model(&model.SocietyMember{}).
		Where("user_id = ? AND society_id = ?", userID, societyID).
		Update("role", role).Error
}

func (r *memberRepository) ListBySociety(ctx context.Context, societyID uint) ([]model.SocietyMember, error) {
	var members []model.SocietyMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("society_id = ?", societyID).
		Order("user_id").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) SocietyIDsByRole(ctx context.Context, userID uint, role model.Role) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.SocietyMember{}).
		Where("user_id = ? AND role = ?", userID, role).
		Order("society_id").
		Pluck("society_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *memberRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.SocietyMember{}).Error
}

func (r *memberRepository) DeleteBySociety(ctx context.Context, societyID uint) error {
	return r.db.WithContext(ctx).Where("society_id = ?", societyID).Delete(&model.SocietyMember{}).Error
}
