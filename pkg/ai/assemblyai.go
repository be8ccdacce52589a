package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/moa-team/moa-backend/pkg/config"
)

// Typed transcription failures. The messages are Korean and user-facing:
// transcript assembly embeds them verbatim in the placeholder answer line,
// so they must read as sentences, not debug strings.
var (
	// ErrAudioNotFound means the provider could not fetch the audio URL.
	ErrAudioNotFound = errors.New("오디오 파일을 찾을 수 없습니다.")
	// ErrTranscriptionTimeout means the transcription did not finish within
	// the per-slot deadline.
	ErrTranscriptionTimeout = errors.New("음성 변환 시간이 초과되었습니다.")
	// ErrTranscriptionUnauthorized means the provider rejected the API key.
	ErrTranscriptionUnauthorized = errors.New("음성 변환 API 키가 유효하지 않습니다.")
	// ErrTranscriptEmpty means the provider finished but produced no text.
	ErrTranscriptEmpty = errors.New("음성 인식 결과가 비어 있습니다.")
)

// Transcriber converts stored audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// AssemblyAIClient implements Transcriber using the official SDK. Audio is
// referenced by a presigned URL the provider fetches itself.
type AssemblyAIClient struct {
	client       *aai.Client
	languageCode string
}

// NewAssemblyAIClient creates an AssemblyAI transcriber from config
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	lang := "ko"
	if cfg != nil && cfg.LanguageCode != "" {
		lang = cfg.LanguageCode
	}
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	return &AssemblyAIClient{
		client:       aai.NewClient(apiKey),
		languageCode: lang,
	}
}

// Transcribe submits the audio URL and waits for the final transcript text.
// The caller bounds the wait through ctx.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		LanguageCode: aai.TranscriptLanguageCode(c.languageCode),
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTranscriptionTimeout
		}
		if typed := classifyTranscriptionError(err.Error()); typed != nil {
			return "", typed
		}
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		if typed := classifyTranscriptionError(msg); typed != nil {
			return "", typed
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	if transcript.Text == nil || *transcript.Text == "" {
		return "", ErrTranscriptEmpty
	}
	return *transcript.Text, nil
}

// classifyTranscriptionError maps provider error text onto the typed
// failures. Unrecognized errors stay generic and keep the raw provider
// message.
func classifyTranscriptionError(msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not found") || strings.Contains(lower, "404"):
		return ErrAudioNotFound
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "timed out"):
		return ErrTranscriptionTimeout
	case strings.Contains(lower, "api key") || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "401"):
		return ErrTranscriptionUnauthorized
	}
	return nil
}
