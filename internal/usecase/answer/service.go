package answer

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/internal/domain/entities"
	"github.com/moa-team/moa-backend/internal/domain/repositories"
	"github.com/moa-team/moa-backend/internal/infrastructure/storage"
	usecaseErrors "github.com/moa-team/moa-backend/internal/usecase/errors"
	"github.com/moa-team/moa-backend/internal/usecase/question"
	"github.com/moa-team/moa-backend/pkg/timeutil"
)

// User-facing result messages.
const (
	msgAudioSaved  = "질문 %d 오디오가 저장되었습니다."
	msgAllComplete = "모든 답변 처리가 완료되었습니다."
)

// AudioStore abstracts the object store used for audio answers.
type AudioStore interface {
	UploadAudio(ctx context.Context, userID string, reader io.Reader, size int64, contentType string) (string, error)
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Transcriber converts a fetchable audio URL into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// ReportGenerator produces the daily report for an assembled record. It
// mutates the record (report or failure outcome) but does not persist it.
type ReportGenerator interface {
	GenerateForRecord(ctx context.Context, record *entities.DayRecord) error
}

// AudioPayload is one uploaded audio answer.
type AudioPayload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// SubmissionResult is what the handler returns after storing an answer. The
// final submission carries the combined transcript but not the generated
// report; clients fetch that from the report endpoints once it exists.
type SubmissionResult struct {
	RecordID       string         `json:"conversation_id"`
	UserID         string         `json:"user_id"`
	QuestionNumber int            `json:"question_number"`
	QuestionText   string         `json:"question_text"`
	Message        string         `json:"message"`
	AudioSlots     map[int]string `json:"audio_slots"`
	Transcript     string         `json:"user_message,omitempty"`
	Completed      bool           `json:"completed"`
}

// Service defines answer submission operations
type Service interface {
	// Submit stores one audio answer and, on the final slot, runs transcript
	// assembly and report generation synchronously.
	Submit(ctx context.Context, userID string, questionNumber int, payload AudioPayload) (*SubmissionResult, error)

	// Questions returns all daily questions personalized for the user.
	Questions(ctx context.Context, userID string) ([]question.Question, error)

	// QuestionText returns one question personalized for the user.
	QuestionText(ctx context.Context, userID string, number int) (*question.Question, error)
}

type answerService struct {
	dayRecordRepo repositories.DayRecordRepository
	profileRepo   repositories.ProfileRepository
	audioStore    AudioStore
	assembler     *Assembler
	reports       ReportGenerator
	registry      *question.Registry
	locks         *keyedLocks
	logger        *zap.Logger
}

// NewService constructs the answer service
func NewService(
	dayRecordRepo repositories.DayRecordRepository,
	profileRepo repositories.ProfileRepository,
	audioStore AudioStore,
	assembler *Assembler,
	reports ReportGenerator,
	registry *question.Registry,
	logger *zap.Logger,
) Service {
	return &answerService{
		dayRecordRepo: dayRecordRepo,
		profileRepo:   profileRepo,
		audioStore:    audioStore,
		assembler:     assembler,
		reports:       reports,
		registry:      registry,
		locks:         newKeyedLocks(),
		logger:        logger,
	}
}

func (s *answerService) Submit(ctx context.Context, userID string, questionNumber int, payload AudioPayload) (*SubmissionResult, error) {
	if !s.registry.IsValid(questionNumber) {
		return nil, usecaseErrors.ErrInvalidQuestionNumber
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == entities.ErrProfileNotFound {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, err
	}

	// Reject before touching storage. Size and format violations are client
	// errors and must not leave partial objects behind.
	if payload.Size > storage.MaxAudioSize {
		return nil, usecaseErrors.ErrAudioTooLarge
	}
	if !storage.IsAllowedAudioType(payload.ContentType) {
		return nil, usecaseErrors.ErrUnsupportedAudioFormat
	}

	objectKey, err := s.audioStore.UploadAudio(ctx, userID, payload.Reader, payload.Size, payload.ContentType)
	if err != nil {
		return nil, err
	}

	today := timeutil.KoreaToday()
	lockKey := userID + ":" + today
	s.locks.Lock(lockKey)
	defer s.locks.Unlock(lockKey)

	record, err := s.findOrCreateRecord(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	if err := record.SetSlot(questionNumber, objectKey); err != nil {
		return nil, err
	}
	if err := s.dayRecordRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("audio answer stored",
		zap.String("user_id", userID),
		zap.Int("question_number", questionNumber),
		zap.String("object_key", objectKey),
	)

	questionText, _ := s.registry.Text(questionNumber, profile)
	result := &SubmissionResult{
		RecordID:       record.ID.String(),
		UserID:         userID,
		QuestionNumber: questionNumber,
		QuestionText:   questionText,
		Message:        fmt.Sprintf(msgAudioSaved, questionNumber),
		AudioSlots:     record.AudioSlots,
	}

	if questionNumber != entities.FinalSlotNumber || record.IsProcessed {
		return result, nil
	}

	s.processRecord(ctx, record, profile)

	result.Message = msgAllComplete
	result.Transcript = record.Transcript
	result.AudioSlots = record.AudioSlots
	result.Completed = true
	return result, nil
}

// processRecord runs transcript assembly and report generation for a
// completed day. Every stage persists what it produced; later failures never
// discard earlier results.
func (s *answerService) processRecord(ctx context.Context, record *entities.DayRecord, profile *entities.Profile) {
	transcript := s.assembler.Assemble(ctx, record, profile)
	if transcript != "" {
		record.Transcript = transcript
		if err := s.dayRecordRepo.Update(ctx, record); err != nil {
			s.logger.Error("failed to save transcript",
				zap.String("user_id", record.UserID),
				zap.Error(err),
			)
		}

		if err := s.profileRepo.RecordActivity(ctx, record.UserID); err != nil {
			s.logger.Warn("failed to update user activity",
				zap.String("user_id", record.UserID),
				zap.Error(err),
			)
		}

		if err := s.reports.GenerateForRecord(ctx, record); err != nil {
			s.logger.Error("report generation failed",
				zap.String("user_id", record.UserID),
				zap.Error(err),
			)
		}
	}

	record.IsProcessed = true
	if err := s.dayRecordRepo.Update(ctx, record); err != nil {
		s.logger.Error("failed to finalize day record",
			zap.String("user_id", record.UserID),
			zap.Error(err),
		)
	}
}

func (s *answerService) findOrCreateRecord(ctx context.Context, userID, date string) (*entities.DayRecord, error) {
	record, err := s.dayRecordRepo.FindByUserAndDate(ctx, userID, date)
	if err == nil {
		return record, nil
	}
	if err != entities.ErrDayRecordNotFound {
		return nil, err
	}

	record = entities.NewDayRecord(userID, date)
	if err := s.dayRecordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info("created day record",
		zap.String("user_id", userID),
		zap.String("record_date", date),
	)
	return record, nil
}

func (s *answerService) Questions(ctx context.Context, userID string) ([]question.Question, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == entities.ErrProfileNotFound {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, err
	}
	return s.registry.All(profile), nil
}

func (s *answerService) QuestionText(ctx context.Context, userID string, number int) (*question.Question, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == entities.ErrProfileNotFound {
			return nil, usecaseErrors.ErrUserNotFound
		}
		return nil, err
	}
	text, err := s.registry.Text(number, profile)
	if err != nil {
		return nil, err
	}
	return &question.Question{Number: number, Text: text}, nil
}
