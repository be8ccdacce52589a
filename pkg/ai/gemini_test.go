package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moa-team/moa-backend/pkg/config"
)

func geminiResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
}

func TestGenerateText_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var payload generateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Contents) != 1 {
			t.Fatalf("expected one content block, got %d", len(payload.Contents))
		}
		json.NewEncoder(w).Encode(geminiResponse(`{"emotionScore": 80}`))
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: ts.URL,
		Model:   "gemini-1.5-pro",
		Timeout: 5 * time.Second,
	})

	got, err := client.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if got != `{"emotionScore": 80}` {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestGenerateText_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "k", BaseURL: ts.URL, Timeout: time.Second})

	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestGenerateText_EmptyCandidates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "k", BaseURL: ts.URL, Timeout: time.Second})

	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
