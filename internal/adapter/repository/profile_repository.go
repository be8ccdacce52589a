package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/moa-team/moa-backend/internal/domain/entities"
)

// ProfileRepository implements the profile repository interface using GORM
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByUserID finds a profile by user ID
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile by user ID: %w", err)
	}
	return &profile, nil
}

// Update updates a profile
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// RecordActivity bumps the conversation counter and last-active timestamp
func (r *ProfileRepository) RecordActivity(ctx context.Context, userID string) error {
	now := time.Now()
	if err := r.db.WithContext(ctx).
		Model(&entities.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_conversations": gorm.Expr("total_conversations + 1"),
			"last_active_at":      now,
			"updated_at":          now,
		}).Error; err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}
