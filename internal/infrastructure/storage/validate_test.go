package storage

import "testing"

func TestIsAllowedAudioType(t *testing.T) {
	allowed := []string{
		"audio/wav", "audio/x-wav", "audio/mpeg", "audio/mp4", "audio/m4a",
		"audio/x-m4a", "audio/webm", "audio/ogg", "audio/aac", "audio/flac",
		"audio/3gpp",
	}
	for _, ct := range allowed {
		if !IsAllowedAudioType(ct) {
			t.Fatalf("%s should be allowed", ct)
		}
	}

	rejected := []string{"video/mp4", "text/plain", "application/json", "image/png", ""}
	for _, ct := range rejected {
		if IsAllowedAudioType(ct) {
			t.Fatalf("%s should be rejected", ct)
		}
	}
}

func TestIsAllowedAudioType_ParametersAndCase(t *testing.T) {
	if !IsAllowedAudioType("audio/webm; codecs=opus") {
		t.Fatal("parameters should be ignored")
	}
	if !IsAllowedAudioType("Audio/WAV") {
		t.Fatal("matching should be case insensitive")
	}
}

func TestExtensionForContentType(t *testing.T) {
	cases := map[string]string{
		"audio/wav":                ".wav",
		"audio/x-wav":              ".wav",
		"audio/mpeg":               ".mp3",
		"audio/mp4":                ".m4a",
		"audio/webm; codecs=opus":  ".webm",
		"application/octet-stream": ".bin",
	}
	for ct, want := range cases {
		if got := ExtensionForContentType(ct); got != want {
			t.Fatalf("%s: got %s want %s", ct, got, want)
		}
	}
}
