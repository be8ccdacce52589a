package repositories

import (
	"context"

	"github.com/moa-team/moa-backend/internal/domain/entities"
)

// ProfileRepository defines the interface for caregiver profile data access
type ProfileRepository interface {
	// Create creates a new profile record
	Create(ctx context.Context, profile *entities.Profile) error

	// FindByUserID retrieves a profile by its opaque user id
	FindByUserID(ctx context.Context, userID string) (*entities.Profile, error)

	// Update updates an existing profile
	Update(ctx context.Context, profile *entities.Profile) error

	// RecordActivity bumps the conversation counter and last-active timestamp
	RecordActivity(ctx context.Context, userID string) error
}
