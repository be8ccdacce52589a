package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/errors"
	"github.com/moa-team/moa-backend/internal/infrastructure/storage"
	usecaseErrors "github.com/moa-team/moa-backend/internal/usecase/errors"
	"github.com/moa-team/moa-backend/internal/usecase/question"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError maps service errors to the standardized error response
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError translates service-level sentinel errors into AppError.
// Unknown errors become internal server errors.
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrUserNotFound):
		return errors.ErrUserNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidQuestionNumber):
		return errors.ErrInvalidQuestionNumber(question.TotalQuestions)
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedAudioFormat):
		return errors.ErrUnsupportedAudioFormat("")
	case stdErrors.Is(err, usecaseErrors.ErrAudioTooLarge):
		return errors.ErrFileSizeExceeded(storage.MaxAudioSize >> 20)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument("잘못된 요청입니다.")
	case stdErrors.Is(err, usecaseErrors.ErrDayNotFound):
		return errors.ErrNotFound("day record")
	case stdErrors.Is(err, usecaseErrors.ErrReportNotFound):
		return errors.ErrNotFound("report")
	case stdErrors.Is(err, usecaseErrors.ErrNoTranscript):
		return errors.ErrInvalidArgument("해당 날짜의 답변 기록이 없습니다.")
	default:
		return errors.ErrInternal(err)
	}
}
