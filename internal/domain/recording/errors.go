package recording

import "errors"

var (
	// ErrRecordingNotFound indicates the recording doesn't exist.
	ErrRecordingNotFound = errors.New("recording not found")
	// ErrVoiceNoteNotFound indicates the voice note doesn't exist on the recording.
	ErrVoiceNoteNotFound = errors.New("voice note not found")
	// ErrInvalidInput indicates invalid recording input.
	ErrInvalidInput = errors.New("invalid recording input")
)
