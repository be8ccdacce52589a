package answer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/moa-team/moa-backend/internal/domain/entities"
	usecaseErrors "github.com/moa-team/moa-backend/internal/usecase/errors"
	"github.com/moa-team/moa-backend/internal/usecase/question"
	"github.com/moa-team/moa-backend/pkg/ai"
	"github.com/moa-team/moa-backend/pkg/timeutil"
)

type fakeProfileRepo struct {
	profiles map[string]*entities.Profile
	activity int
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *entities.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, entities.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *entities.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) RecordActivity(ctx context.Context, userID string) error {
	f.activity++
	return nil
}

type fakeDayRecordRepo struct {
	records map[string]*entities.DayRecord
	creates int
	updates int
}

func recordKey(userID, date string) string { return userID + ":" + date }

func (f *fakeDayRecordRepo) Create(ctx context.Context, r *entities.DayRecord) error {
	f.creates++
	f.records[recordKey(r.UserID, r.RecordDate)] = r
	return nil
}

func (f *fakeDayRecordRepo) FindByUserAndDate(ctx context.Context, userID, date string) (*entities.DayRecord, error) {
	r, ok := f.records[recordKey(userID, date)]
	if !ok {
		return nil, entities.ErrDayRecordNotFound
	}
	return r, nil
}

func (f *fakeDayRecordRepo) Update(ctx context.Context, r *entities.DayRecord) error {
	f.updates++
	f.records[recordKey(r.UserID, r.RecordDate)] = r
	return nil
}

func (f *fakeDayRecordRepo) ListByUserAndMonth(ctx context.Context, userID, month string) ([]*entities.DayRecord, error) {
	return nil, nil
}

type fakeAudioStore struct {
	uploads  int
	presigns int
}

func (f *fakeAudioStore) UploadAudio(ctx context.Context, userID string, reader io.Reader, size int64, contentType string) (string, error) {
	f.uploads++
	return fmt.Sprintf("audio/%s/obj-%d.wav", userID, f.uploads), nil
}

func (f *fakeAudioStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	f.presigns++
	return "https://storage.test/" + objectName, nil
}

type fakeTranscriber struct {
	// fail maps object keys (substring match on the URL) to errors
	fail  map[string]error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioURL string) (string, error) {
	f.calls++
	for key, err := range f.fail {
		if strings.Contains(audioURL, key) {
			return "", err
		}
	}
	return "답변 " + audioURL[len(audioURL)-9:], nil
}

type fakeReports struct {
	calls int
	err   error
}

func (f *fakeReports) GenerateForRecord(ctx context.Context, record *entities.DayRecord) error {
	f.calls++
	if f.err != nil {
		record.AttachReportFailure("리포트 생성 실패: "+f.err.Error(), time.Now())
		return f.err
	}
	report := &entities.EmotionReport{EmotionScore: 60, Letter: "편지"}
	return record.AttachReport(report, time.Now())
}

type testEnv struct {
	svc         Service
	profiles    *fakeProfileRepo
	records     *fakeDayRecordRepo
	store       *fakeAudioStore
	transcriber *fakeTranscriber
	reports     *fakeReports
}

func newTestEnv() *testEnv {
	profiles := &fakeProfileRepo{profiles: map[string]*entities.Profile{
		"user-1": {
			UserID:             "user-1",
			Name:               "김영희",
			FamilyRelationship: entities.RelationshipParent,
			FamilyMemberGender: entities.GenderFemale,
		},
	}}
	records := &fakeDayRecordRepo{records: map[string]*entities.DayRecord{}}
	store := &fakeAudioStore{}
	transcriber := &fakeTranscriber{}
	reports := &fakeReports{}

	registry := question.NewRegistry()
	logger := zap.NewNop()
	assembler := NewAssembler(store, transcriber, registry, time.Second, logger)
	svc := NewService(records, profiles, store, assembler, reports, registry, logger)

	return &testEnv{
		svc:         svc,
		profiles:    profiles,
		records:     records,
		store:       store,
		transcriber: transcriber,
		reports:     reports,
	}
}

func wavPayload(size int64) AudioPayload {
	return AudioPayload{
		Reader:      strings.NewReader("RIFF"),
		Size:        size,
		ContentType: "audio/wav",
	}
}

func TestSubmit_InvalidQuestionNumber(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(context.Background(), "user-1", 5, wavPayload(100))
	if err != usecaseErrors.ErrInvalidQuestionNumber {
		t.Fatalf("expected ErrInvalidQuestionNumber, got %v", err)
	}
	if env.store.uploads != 0 {
		t.Fatalf("storage touched on invalid question: %d uploads", env.store.uploads)
	}
}

func TestSubmit_UnknownUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(context.Background(), "missing", 1, wavPayload(100))
	if err != usecaseErrors.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if env.store.uploads != 0 {
		t.Fatalf("storage touched for unknown user: %d uploads", env.store.uploads)
	}
}

func TestSubmit_OversizedAudioRejectedBeforeStorage(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(context.Background(), "user-1", 1, wavPayload(11<<20))
	if err != usecaseErrors.ErrAudioTooLarge {
		t.Fatalf("expected ErrAudioTooLarge, got %v", err)
	}
	if env.store.uploads != 0 {
		t.Fatalf("storage touched for oversized audio: %d uploads", env.store.uploads)
	}
}

func TestSubmit_UnsupportedFormatRejectedBeforeStorage(t *testing.T) {
	env := newTestEnv()

	payload := AudioPayload{Reader: strings.NewReader("x"), Size: 10, ContentType: "video/mp4"}
	_, err := env.svc.Submit(context.Background(), "user-1", 1, payload)
	if err != usecaseErrors.ErrUnsupportedAudioFormat {
		t.Fatalf("expected ErrUnsupportedAudioFormat, got %v", err)
	}
	if env.store.uploads != 0 {
		t.Fatalf("storage touched for unsupported format: %d uploads", env.store.uploads)
	}
}

func TestSubmit_SingleRecordPerDay(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, n := range []int{2, 1, 3} {
		if _, err := env.svc.Submit(ctx, "user-1", n, wavPayload(100)); err != nil {
			t.Fatalf("submit %d failed: %v", n, err)
		}
	}

	if env.records.creates != 1 {
		t.Fatalf("expected one record creation, got %d", env.records.creates)
	}
	record := env.records.records[recordKey("user-1", timeutil.KoreaToday())]
	if len(record.AudioSlots) != 3 {
		t.Fatalf("expected 3 filled slots, got %d", len(record.AudioSlots))
	}
}

func TestSubmit_SlotOverwrite(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.svc.Submit(ctx, "user-1", 1, wavPayload(100)); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := env.svc.Submit(ctx, "user-1", 1, wavPayload(100)); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	record := env.records.records[recordKey("user-1", timeutil.KoreaToday())]
	uri, _ := record.Slot(1)
	if uri != "audio/user-1/obj-2.wav" {
		t.Fatalf("slot not overwritten, got %q", uri)
	}
	if env.reports.calls != 0 {
		t.Fatal("non-final slot must not trigger report generation")
	}
}

func TestSubmit_FinalSlotAssemblesTranscript(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, n := range []int{1, 2, 3} {
		if _, err := env.svc.Submit(ctx, "user-1", n, wavPayload(100)); err != nil {
			t.Fatalf("submit %d failed: %v", n, err)
		}
	}

	record := env.records.records[recordKey("user-1", timeutil.KoreaToday())]
	if !record.IsProcessed {
		t.Fatal("record not marked processed")
	}

	lines := strings.Split(record.Transcript, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 transcript lines, got %d:\n%s", len(lines), record.Transcript)
	}
	for i, prefix := range []string{"Q1:", "A1:", "Q2:", "A2:", "Q3:", "A3:"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("line %d %q missing prefix %s", i, lines[i], prefix)
		}
	}

	if env.reports.calls != 1 {
		t.Fatalf("expected one report generation, got %d", env.reports.calls)
	}
	if env.profiles.activity != 1 {
		t.Fatalf("expected one activity update, got %d", env.profiles.activity)
	}
}

func TestSubmit_FinalSlotWithPartialOrder(t *testing.T) {
	// Only slots 1 and 3 are filled when the final slot arrives.
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.svc.Submit(ctx, "user-1", 1, wavPayload(100)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	result, err := env.svc.Submit(ctx, "user-1", 3, wavPayload(100))
	if err != nil {
		t.Fatalf("final submit failed: %v", err)
	}
	if !result.Completed {
		t.Fatal("final submission not marked completed")
	}

	lines := strings.Split(result.Transcript, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines for 2 slots, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Q1:") || !strings.HasPrefix(lines[2], "Q3:") {
		t.Fatalf("unexpected ordering:\n%s", result.Transcript)
	}
}

func TestSubmit_SlotFailureBecomesPlaceholder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.svc.Submit(ctx, "user-1", 1, wavPayload(100)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := env.svc.Submit(ctx, "user-1", 2, wavPayload(100)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Second upload (slot 2) fails transcription.
	env.transcriber.fail = map[string]error{"obj-2": errors.New("stt unavailable")}

	result, err := env.svc.Submit(ctx, "user-1", 3, wavPayload(100))
	if err != nil {
		t.Fatalf("final submit failed: %v", err)
	}

	lines := strings.Split(result.Transcript, "\n")
	if len(lines) != 6 {
		t.Fatalf("batch did not continue past failure, got %d lines", len(lines))
	}
	if !strings.Contains(lines[3], "음성 변환 실패") {
		t.Fatalf("failed slot missing placeholder: %q", lines[3])
	}
	if strings.Contains(lines[1], "음성 변환 실패") || strings.Contains(lines[5], "음성 변환 실패") {
		t.Fatal("healthy slots should not carry placeholders")
	}
}

func TestSubmit_TypedSlotFailureEmbedsKoreanMessage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.svc.Submit(ctx, "user-1", 1, wavPayload(100)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := env.svc.Submit(ctx, "user-1", 2, wavPayload(100)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	env.transcriber.fail = map[string]error{
		"obj-1": ai.ErrAudioNotFound,
		"obj-2": ai.ErrTranscriptionUnauthorized,
	}

	result, err := env.svc.Submit(ctx, "user-1", 3, wavPayload(100))
	if err != nil {
		t.Fatalf("final submit failed: %v", err)
	}

	lines := strings.Split(result.Transcript, "\n")
	if lines[1] != "A1: 음성 변환 실패: 오디오 파일을 찾을 수 없습니다." {
		t.Fatalf("not-found placeholder wrong: %q", lines[1])
	}
	if lines[3] != "A2: 음성 변환 실패: 음성 변환 API 키가 유효하지 않습니다." {
		t.Fatalf("unauthorized placeholder wrong: %q", lines[3])
	}
}

func TestSubmit_AllSlotsFailStillProducesTranscript(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.transcriber.fail = map[string]error{"obj-": errors.New("stt down")}

	for _, n := range []int{1, 2, 3} {
		if _, err := env.svc.Submit(ctx, "user-1", n, wavPayload(100)); err != nil {
			t.Fatalf("submit %d failed: %v", n, err)
		}
	}

	record := env.records.records[recordKey("user-1", timeutil.KoreaToday())]
	for i, line := range strings.Split(record.Transcript, "\n") {
		if i%2 == 1 && !strings.Contains(line, "음성 변환 실패") {
			t.Fatalf("answer line %d missing placeholder: %q", i, line)
		}
	}
	if env.reports.calls != 1 {
		t.Fatal("report generation should still run on placeholder transcript")
	}
}

func TestSubmit_ReportFailureDoesNotFailSubmission(t *testing.T) {
	env := newTestEnv()
	env.reports.err = errors.New("model unavailable")
	ctx := context.Background()

	var result *SubmissionResult
	var err error
	for _, n := range []int{1, 2, 3} {
		result, err = env.svc.Submit(ctx, "user-1", n, wavPayload(100))
		if err != nil {
			t.Fatalf("submit %d failed: %v", n, err)
		}
	}

	if !result.Completed {
		t.Fatal("final submission should report completion despite report failure")
	}
	record := env.records.records[recordKey("user-1", timeutil.KoreaToday())]
	if !record.IsProcessed {
		t.Fatal("record must be marked processed after failed report")
	}
	if record.ReportError == "" {
		t.Fatal("report failure outcome not recorded")
	}
}

func TestSubmit_DuplicateFinalSlotDoesNotReprocess(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for _, n := range []int{1, 2, 3} {
		if _, err := env.svc.Submit(ctx, "user-1", n, wavPayload(100)); err != nil {
			t.Fatalf("submit %d failed: %v", n, err)
		}
	}
	callsAfterFirst := env.reports.calls
	transcriberCalls := env.transcriber.calls

	if _, err := env.svc.Submit(ctx, "user-1", 3, wavPayload(100)); err != nil {
		t.Fatalf("duplicate final submit failed: %v", err)
	}

	if env.reports.calls != callsAfterFirst {
		t.Fatal("duplicate final slot re-ran report generation")
	}
	if env.transcriber.calls != transcriberCalls {
		t.Fatal("duplicate final slot re-ran transcription")
	}
}
