package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Answer errors
var (
	ErrInvalidQuestionNumber  = errors.New("invalid question number")
	ErrUnsupportedAudioFormat = errors.New("unsupported audio format")
	ErrAudioTooLarge          = errors.New("audio file exceeds size limit")
	ErrUserNotFound           = errors.New("user not found")
)

// Report errors
var (
	ErrNoTranscript   = errors.New("no transcript for this day")
	ErrReportNotFound = errors.New("report not found")
	ErrDayNotFound    = errors.New("no record for this day")
)
