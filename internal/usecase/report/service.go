package report

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/internal/domain/entities"
	"github.com/moa-team/moa-backend/internal/domain/repositories"
	usecaseErrors "github.com/moa-team/moa-backend/internal/usecase/errors"
	"github.com/moa-team/moa-backend/pkg/ai"
	"github.com/moa-team/moa-backend/pkg/timeutil"
)

const reportFailureFormat = "리포트 생성 실패: %v"

// TextGenerator produces free-form model output for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ReportCache caches finished reports keyed by user and date. The database
// copy is canonical: entries are written only after a successful save.
type ReportCache interface {
	Get(ctx context.Context, userID, date string) (*entities.EmotionReport, bool)
	Set(ctx context.Context, userID, date string, report *entities.EmotionReport)
	Invalidate(ctx context.Context, userID, date string)
}

// ReportSummary is one line of the monthly listing.
type ReportSummary struct {
	ReportID   string `json:"report_id"`
	ReportDate string `json:"report_date"`
}

// MonthlyReports is the monthly listing result.
type MonthlyReports struct {
	TotalCount int             `json:"total_count"`
	Reports    []ReportSummary `json:"reports"`
}

// Service defines emotion report operations
type Service interface {
	// GenerateForRecord produces the report for an assembled record and
	// attaches the outcome, success or failure, without persisting it.
	GenerateForRecord(ctx context.Context, record *entities.DayRecord) error

	// Daily returns the report for one user and date.
	Daily(ctx context.Context, userID, date string) (*entities.EmotionReport, error)

	// Monthly lists report summaries for a calendar month, newest first.
	Monthly(ctx context.Context, userID string, year, month int) (*MonthlyReports, error)

	// Regenerate retries report generation for an already assembled day.
	Regenerate(ctx context.Context, userID, date string) (*entities.EmotionReport, error)
}

type reportService struct {
	dayRecordRepo repositories.DayRecordRepository
	generator     TextGenerator
	reportCache   ReportCache
	retryWindow   time.Duration
	logger        *zap.Logger
}

// NewService constructs the report service. reportCache may be nil; every
// read then falls through to the repository.
func NewService(
	dayRecordRepo repositories.DayRecordRepository,
	generator TextGenerator,
	reportCache ReportCache,
	retryWindow time.Duration,
	logger *zap.Logger,
) Service {
	return &reportService{
		dayRecordRepo: dayRecordRepo,
		generator:     generator,
		reportCache:   reportCache,
		retryWindow:   retryWindow,
		logger:        logger,
	}
}

func (s *reportService) GenerateForRecord(ctx context.Context, record *entities.DayRecord) error {
	if record.Transcript == "" {
		return usecaseErrors.ErrNoTranscript
	}

	now := time.Now()
	report, err := s.generate(ctx, record.Transcript)
	if err != nil {
		record.AttachReportFailure(fmt.Sprintf(reportFailureFormat, err), now)
		s.logger.Error("emotion report generation failed",
			zap.String("user_id", record.UserID),
			zap.String("record_date", record.RecordDate),
			zap.Error(err),
		)
		return err
	}

	if err := record.AttachReport(report, now); err != nil {
		return err
	}

	// Not cached here: the caller owns persistence, and the cache must never
	// get ahead of the database.
	s.logger.Info("emotion report generated",
		zap.String("user_id", record.UserID),
		zap.String("record_date", record.RecordDate),
		zap.Int("emotion_score", report.EmotionScore),
	)
	return nil
}

// generate calls the model with bounded retry and extracts the JSON payload.
func (s *reportService) generate(ctx context.Context, transcript string) (*entities.EmotionReport, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.retryWindow)
	defer cancel()

	prompt := buildPrompt(transcript)

	var report entities.EmotionReport
	attempt := func() error {
		raw, err := s.generator.GenerateText(callCtx, prompt)
		if err != nil {
			return err
		}
		return ai.ExtractJSON(raw, &report)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(attempt, backoff.WithContext(bo, callCtx)); err != nil {
		return nil, err
	}

	report.ApplyFallbacks()
	return &report, nil
}

func (s *reportService) Daily(ctx context.Context, userID, date string) (*entities.EmotionReport, error) {
	if s.reportCache != nil {
		if cached, ok := s.reportCache.Get(ctx, userID, date); ok {
			return cached, nil
		}
	}

	record, err := s.dayRecordRepo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if err == entities.ErrDayRecordNotFound {
			return nil, usecaseErrors.ErrDayNotFound
		}
		return nil, err
	}

	report, err := record.GetReport()
	if err != nil {
		return nil, usecaseErrors.ErrReportNotFound
	}

	if s.reportCache != nil {
		s.reportCache.Set(ctx, userID, date, report)
	}
	return report, nil
}

func (s *reportService) Monthly(ctx context.Context, userID string, year, month int) (*MonthlyReports, error) {
	monthPrefix := fmt.Sprintf("%04d-%02d", year, month)

	records, err := s.dayRecordRepo.ListByUserAndMonth(ctx, userID, monthPrefix)
	if err != nil {
		return nil, err
	}

	summaries := make([]ReportSummary, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		summaries = append(summaries, ReportSummary{
			ReportID:   record.ID.String(),
			ReportDate: timeutil.FormatDateForDisplay(record.RecordDate),
		})
	}

	return &MonthlyReports{
		TotalCount: len(summaries),
		Reports:    summaries,
	}, nil
}

func (s *reportService) Regenerate(ctx context.Context, userID, date string) (*entities.EmotionReport, error) {
	record, err := s.dayRecordRepo.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if err == entities.ErrDayRecordNotFound {
			return nil, usecaseErrors.ErrDayNotFound
		}
		return nil, err
	}

	if record.Transcript == "" {
		return nil, usecaseErrors.ErrNoTranscript
	}

	if s.reportCache != nil {
		s.reportCache.Invalidate(ctx, userID, date)
	}

	genErr := s.GenerateForRecord(ctx, record)
	if err := s.dayRecordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	if genErr != nil {
		return nil, genErr
	}

	report, err := record.GetReport()
	if err != nil {
		return nil, err
	}
	if s.reportCache != nil {
		s.reportCache.Set(ctx, userID, date, report)
	}
	return report, nil
}
