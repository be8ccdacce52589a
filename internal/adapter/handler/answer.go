package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/errors"
	"github.com/moa-team/moa-backend/internal/usecase/answer"
)

// Answer handles audio answer and question endpoints
type Answer struct {
	svc    answer.Service
	logger *zap.Logger
}

// NewAnswerHandler creates an answer handler
func NewAnswerHandler(svc answer.Service, logger *zap.Logger) *Answer {
	return &Answer{svc: svc, logger: logger}
}

// SubmitAudio handles POST /v1/answers/audio (multipart form)
func (h *Answer) SubmitAudio(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	questionNumber, err := strconv.Atoi(c.FormValue("question_number"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("question_number must be an integer"))
	}

	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio_file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer file.Close()

	payload := answer.AudioPayload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	result, err := h.svc.Submit(c.Request().Context(), userID, questionNumber, payload)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// Questions handles GET /v1/answers/questions
func (h *Answer) Questions(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	questions, err := h.svc.Questions(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, questions)
}

// Question handles GET /v1/answers/questions/:number
func (h *Answer) Question(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is required"))
	}

	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("question number must be an integer"))
	}

	q, err := h.svc.QuestionText(c.Request().Context(), userID, number)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, q)
}
