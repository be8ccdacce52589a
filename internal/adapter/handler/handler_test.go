package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/errors"
	"github.com/moa-team/moa-backend/internal/usecase/answer"
	usecaseErrors "github.com/moa-team/moa-backend/internal/usecase/errors"
	"github.com/moa-team/moa-backend/internal/usecase/question"
	pkgvalidator "github.com/moa-team/moa-backend/pkg/validator"
)

type stubAnswerService struct {
	submitErr error
	questions []question.Question
}

func (s *stubAnswerService) Submit(ctx context.Context, userID string, n int, p answer.AudioPayload) (*answer.SubmissionResult, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &answer.SubmissionResult{UserID: userID, QuestionNumber: n}, nil
}

func (s *stubAnswerService) Questions(ctx context.Context, userID string) ([]question.Question, error) {
	return s.questions, nil
}

func (s *stubAnswerService) QuestionText(ctx context.Context, userID string, n int) (*question.Question, error) {
	if n < 1 || n > question.TotalQuestions {
		return nil, usecaseErrors.ErrInvalidQuestionNumber
	}
	return &question.Question{Number: n, Text: "질문"}, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

// multipartAudio builds a multipart body with user_id, question_number, and a
// small wav part.
func multipartAudio(t *testing.T, userID, questionNumber string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	w.WriteField("user_id", userID)
	w.WriteField("question_number", questionNumber)
	part, err := w.CreateFormFile("audio_file", "answer.wav")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("RIFF....WAVE"))
	w.Close()
	return body, w.FormDataContentType()
}

func TestQuestionEndpoint_InvalidNumberMapsTo400(t *testing.T) {
	e := newEcho()
	h := NewAnswerHandler(&stubAnswerService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/answers/questions/9?user_id=u1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/answers/questions/:number")
	c.SetParamNames("number")
	c.SetParamValues("9")

	if err := h.Question(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if int(body["code"].(float64)) != int(errors.ErrorCode_INVALID_QUESTION_NUMBER) {
		t.Fatalf("unexpected code %v", body["code"])
	}
}

func TestSubmitAudio_UnknownUserMapsTo404(t *testing.T) {
	e := newEcho()
	h := NewAnswerHandler(&stubAnswerService{submitErr: usecaseErrors.ErrUserNotFound}, zap.NewNop())

	body, contentType := multipartAudio(t, "missing", "1")
	req := httptest.NewRequest(http.MethodPost, "/v1/answers/audio", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitAudio(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "사용자를 찾을 수 없습니다") {
		t.Fatalf("missing korean message: %s", rec.Body.String())
	}
}

func TestSubmitAudio_OversizeMapsTo400(t *testing.T) {
	e := newEcho()
	h := NewAnswerHandler(&stubAnswerService{submitErr: usecaseErrors.ErrAudioTooLarge}, zap.NewNop())

	body, contentType := multipartAudio(t, "u1", "1")
	req := httptest.NewRequest(http.MethodPost, "/v1/answers/audio", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitAudio(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "10MB") {
		t.Fatalf("missing size message: %s", rec.Body.String())
	}
}

func TestSubmitAudio_MissingQuestionNumber(t *testing.T) {
	e := newEcho()
	h := NewAnswerHandler(&stubAnswerService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/v1/answers/audio", strings.NewReader("user_id=u1"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitAudio(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmitAudio_Success(t *testing.T) {
	e := newEcho()
	h := NewAnswerHandler(&stubAnswerService{}, zap.NewNop())

	body, contentType := multipartAudio(t, "u1", "2")
	req := httptest.NewRequest(http.MethodPost, "/v1/answers/audio", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.SubmitAudio(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			QuestionNumber int `json:"question_number"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Data.QuestionNumber != 2 {
		t.Fatalf("unexpected question number %d", resp.Data.QuestionNumber)
	}
}
