package storage

import "strings"

// MaxAudioSize is the per-file upload cap in bytes.
const MaxAudioSize = 10 << 20 // 10MiB

// allowedAudioTypes maps accepted MIME types to the stored file extension.
var allowedAudioTypes = map[string]string{
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/mpeg":  ".mp3",
	"audio/mp4":   ".m4a",
	"audio/m4a":   ".m4a",
	"audio/x-m4a": ".m4a",
	"audio/webm":  ".webm",
	"audio/ogg":   ".ogg",
	"audio/aac":   ".aac",
	"audio/flac":  ".flac",
	"audio/3gpp":  ".3gp",
}

// IsAllowedAudioType reports whether the MIME type is on the allow-list.
// Parameters after a semicolon (codecs etc.) are ignored.
func IsAllowedAudioType(contentType string) bool {
	_, ok := allowedAudioTypes[normalizeContentType(contentType)]
	return ok
}

// ExtensionForContentType returns the storage extension for a MIME type,
// defaulting to .bin for anything unknown.
func ExtensionForContentType(contentType string) string {
	if ext, ok := allowedAudioTypes[normalizeContentType(contentType)]; ok {
		return ext
	}
	return ".bin"
}

func normalizeContentType(contentType string) string {
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
