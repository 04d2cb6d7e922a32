package repository

import (
	"context"
	"errors"

	"invest-advisor/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a gorm-backed profile store.
func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

// Upsert writes the profile, replacing any existing row for the user.
func (r *userProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

// GetProfile returns the profile for the user, or nil when none exists.
func (r *userProfileRepository) GetProfile(ctx context.Context, userID int64) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
