package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/errors"
	"github.com/moa-team/moa-backend/internal/usecase/report"
	"github.com/moa-team/moa-backend/pkg/timeutil"
)

// Report handles emotion report endpoints
type Report struct {
	svc    report.Service
	logger *zap.Logger
}

// NewReportHandler creates a report handler
func NewReportHandler(svc report.Service, logger *zap.Logger) *Report {
	return &Report{svc: svc, logger: logger}
}

// Monthly handles GET /v1/reports?user_id=&year=&month=
func (h *Report) Monthly(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("year must be an integer"))
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("month must be between 1 and 12"))
	}

	result, err := h.svc.Monthly(c.Request().Context(), userID, year, month)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// Daily handles GET /v1/reports/daily?user_id=&date=
func (h *Report) Daily(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	date := c.QueryParam("date")
	if date == "" {
		date = timeutil.KoreaToday()
	}

	result, err := h.svc.Daily(c.Request().Context(), userID, date)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// regenerateRequest is the body for POST /v1/reports/regenerate
type regenerateRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Date   string `json:"date"`
}

// Regenerate handles POST /v1/reports/regenerate
func (h *Report) Regenerate(c echo.Context) error {
	var req regenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("잘못된 요청 형식입니다."))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	if req.Date == "" {
		req.Date = timeutil.KoreaToday()
	}

	result, err := h.svc.Regenerate(c.Request().Context(), req.UserID, req.Date)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}
