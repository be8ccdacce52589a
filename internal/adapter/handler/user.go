package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/errors"
	userdto "github.com/moa-team/moa-backend/internal/adapter/dto/user"
	"github.com/moa-team/moa-backend/internal/domain/entities"
	userUsecase "github.com/moa-team/moa-backend/internal/usecase/user"
)

const msgOnboardingSuccess = "온보딩이 성공적으로 완료되었습니다."

// User handles onboarding endpoints
type User struct {
	svc    userUsecase.Service
	logger *zap.Logger
}

// NewUserHandler creates a user handler
func NewUserHandler(svc userUsecase.Service, logger *zap.Logger) *User {
	return &User{svc: svc, logger: logger}
}

// Onboard handles POST /v1/users/onboarding
func (h *User) Onboard(c echo.Context) error {
	var req userdto.OnboardingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("잘못된 요청 형식입니다."))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	input := userUsecase.OnboardingInput{
		Name:           req.Name,
		BirthYear:      req.BirthYear,
		Gender:         entities.Gender(req.Gender),
		Relationship:   entities.FamilyRelationship(req.Relationship),
		DailyCareHours: req.DailyCareHours,

		FamilyMemberName:          req.FamilyMemberName,
		FamilyMemberBirthYear:     req.FamilyMemberBirthYear,
		FamilyMemberGender:        entities.Gender(req.FamilyMemberGender),
		FamilyMemberDementiaStage: entities.DementiaStage(req.FamilyMemberDementiaStage),
	}

	profile, err := h.svc.Onboard(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, userdto.OnboardingResponse{
		UserID:  profile.UserID,
		Message: msgOnboardingSuccess,
	})
}

// Status handles GET /v1/users/onboarding/:user_id
func (h *User) Status(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	status, err := h.svc.Status(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, userdto.OnboardingStatusResponse{
		UserID:      status.UserID,
		IsOnboarded: status.IsOnboarded,
		Message:     status.Message,
	})
}
