package entities

import "errors"

var (
	ErrInvalidName          = errors.New("name must not be empty")
	ErrInvalidGender        = errors.New("invalid gender")
	ErrInvalidRelationship  = errors.New("invalid family relationship")
	ErrInvalidDementiaStage = errors.New("invalid dementia stage")

	ErrInvalidSlotNumber = errors.New("slot number out of range")
	ErrEmptyTranscript   = errors.New("transcript is empty")
	ErrNoReport          = errors.New("no report attached")

	ErrProfileNotFound   = errors.New("profile not found")
	ErrDayRecordNotFound = errors.New("day record not found")
)
