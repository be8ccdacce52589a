package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/internal/domain/entities"
	"github.com/moa-team/moa-backend/internal/domain/repositories"
	usecaseErrors "github.com/moa-team/moa-backend/internal/usecase/errors"
)

// Onboarding status messages.
const (
	msgOnboardingComplete   = "온보딩 완료"
	msgOnboardingIncomplete = "온보딩 미완료"
)

// OnboardingInput carries the validated onboarding form.
type OnboardingInput struct {
	Name           string
	BirthYear      int
	Gender         entities.Gender
	Relationship   entities.FamilyRelationship
	DailyCareHours int

	FamilyMemberName          string
	FamilyMemberBirthYear     int
	FamilyMemberGender        entities.Gender
	FamilyMemberDementiaStage entities.DementiaStage
}

// OnboardingStatus reports whether a user finished onboarding.
type OnboardingStatus struct {
	UserID      string `json:"user_id"`
	IsOnboarded bool   `json:"is_onboarded"`
	Message     string `json:"message"`
}

// Service defines user onboarding operations
type Service interface {
	// Onboard creates a caregiver profile and returns it with its new user id.
	Onboard(ctx context.Context, input OnboardingInput) (*entities.Profile, error)

	// Status returns the onboarding state for a user.
	Status(ctx context.Context, userID string) (*OnboardingStatus, error)
}

type userService struct {
	profileRepo repositories.ProfileRepository
	logger      *zap.Logger
}

// NewService constructs the user service
func NewService(profileRepo repositories.ProfileRepository, logger *zap.Logger) Service {
	return &userService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (s *userService) Onboard(ctx context.Context, input OnboardingInput) (*entities.Profile, error) {
	profile := entities.NewProfile(input.Name, input.BirthYear, input.Gender)
	profile.FamilyRelationship = input.Relationship
	profile.DailyCareHours = input.DailyCareHours
	profile.FamilyMemberName = input.FamilyMemberName
	profile.FamilyMemberBirthYear = input.FamilyMemberBirthYear
	profile.FamilyMemberGender = input.FamilyMemberGender
	profile.FamilyMemberDementiaStage = input.FamilyMemberDementiaStage

	if err := profile.Validate(); err != nil {
		return nil, usecaseErrors.ErrInvalidInput
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("caregiver onboarded",
		zap.String("user_id", profile.UserID),
		zap.String("relationship", string(profile.FamilyRelationship)),
	)
	return profile, nil
}

func (s *userService) Status(ctx context.Context, userID string) (*OnboardingStatus, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == entities.ErrProfileNotFound {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, err
	}

	status := &OnboardingStatus{
		UserID:      profile.UserID,
		IsOnboarded: profile.IsOnboarded,
		Message:     msgOnboardingIncomplete,
	}
	if profile.IsOnboarded {
		status.Message = msgOnboardingComplete
	}
	return status, nil
}
