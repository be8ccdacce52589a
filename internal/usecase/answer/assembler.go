package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/internal/domain/entities"
	"github.com/moa-team/moa-backend/internal/usecase/question"
)

// sttFailureFormat is the placeholder answer line written when one slot's
// transcription fails. The batch continues with the remaining slots.
const sttFailureFormat = "음성 변환 실패: %v"

// presignExpiry bounds how long the transcription provider can fetch audio.
const presignExpiry = 1 * time.Hour

// Assembler turns a day record's audio slots into one combined Q&A transcript.
type Assembler struct {
	audioStore  AudioStore
	transcriber Transcriber
	registry    *question.Registry
	slotTimeout time.Duration
	logger      *zap.Logger
}

// NewAssembler creates a transcript assembler
func NewAssembler(
	audioStore AudioStore,
	transcriber Transcriber,
	registry *question.Registry,
	slotTimeout time.Duration,
	logger *zap.Logger,
) *Assembler {
	return &Assembler{
		audioStore:  audioStore,
		transcriber: transcriber,
		registry:    registry,
		slotTimeout: slotTimeout,
		logger:      logger,
	}
}

// Assemble transcribes every filled slot in question order and returns the
// joined "Q{n}: ..."/"A{n}: ..." transcript. Per-slot failures become
// placeholder answer lines; only an entirely empty slot set yields "".
func (a *Assembler) Assemble(ctx context.Context, record *entities.DayRecord, profile *entities.Profile) string {
	slots := record.FilledSlots()
	if len(slots) == 0 {
		a.logger.Warn("no audio slots to transcribe",
			zap.String("user_id", record.UserID),
			zap.String("record_date", record.RecordDate),
		)
		return ""
	}

	a.logger.Info("starting transcript assembly",
		zap.String("user_id", record.UserID),
		zap.String("record_date", record.RecordDate),
		zap.Int("slot_count", len(slots)),
	)

	lines := make([]string, 0, len(slots)*2)
	for _, slot := range slots {
		questionText, err := a.registry.Text(slot.Number, profile)
		if err != nil {
			continue
		}

		answerText, err := a.transcribeSlot(ctx, slot.URI)
		if err != nil {
			a.logger.Error("slot transcription failed",
				zap.String("user_id", record.UserID),
				zap.Int("question_number", slot.Number),
				zap.Error(err),
			)
			answerText = fmt.Sprintf(sttFailureFormat, err)
		}

		lines = append(lines,
			fmt.Sprintf("Q%d: %s", slot.Number, questionText),
			fmt.Sprintf("A%d: %s", slot.Number, answerText),
		)
	}

	return strings.Join(lines, "\n")
}

func (a *Assembler) transcribeSlot(ctx context.Context, objectKey string) (string, error) {
	url, err := a.audioStore.PresignedURL(ctx, objectKey, presignExpiry)
	if err != nil {
		return "", err
	}

	slotCtx, cancel := context.WithTimeout(ctx, a.slotTimeout)
	defer cancel()

	return a.transcriber.Transcribe(slotCtx, url)
}
