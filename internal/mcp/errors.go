package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/soundxcape/internal/ai"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
	"github.com/rpggio/soundxcape/internal/geocode"
	"github.com/rpggio/soundxcape/internal/notebook"
)

// ErrInvalidArgument reports a tool argument that is missing or malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid ids"}
	case errors.Is(err, recording.ErrRecordingNotFound):
		return &APIError{Code: "RECORDING_NOT_FOUND", Message: "recording not found", RecoveryHint: "Call list_recordings for valid ids"}
	case errors.Is(err, recording.ErrVoiceNoteNotFound):
		return &APIError{Code: "VOICE_NOTE_NOT_FOUND", Message: "voice note not found", RecoveryHint: "Call get_recording for its voice notes"}
	case errors.Is(err, reminder.ErrReminderNotFound):
		return &APIError{Code: "REMINDER_NOT_FOUND", Message: "reminder not found", RecoveryHint: "Call list_reminders for valid ids"}
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, recording.ErrInvalidInput),
		errors.Is(err, reminder.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, notebook.ErrUnknownFilter),
		errors.Is(err, ErrInvalidArgument):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check required fields and formats"}
	case errors.Is(err, notebook.ErrUsageUnavailable):
		return &APIError{Code: "USAGE_UNAVAILABLE", Message: "storage usage is not available"}
	case errors.Is(err, ai.ErrUnavailable):
		return &APIError{Code: "AI_UNAVAILABLE", Message: "AI features are not available", RecoveryHint: "Configure a Gemini API key"}
	case errors.Is(err, ai.ErrInvalidJSON), errors.Is(err, ai.ErrEmptyResponse):
		return &APIError{Code: "AI_BAD_RESPONSE", Message: err.Error(), RecoveryHint: "Retry the request"}
	case errors.Is(err, geocode.ErrEmptyQuery):
		return &APIError{Code: "INVALID_INPUT", Message: "place name is empty", RecoveryHint: "Set the project location or pass place"}
	case errors.Is(err, geocode.ErrNotFound):
		return &APIError{Code: "LOCATION_NOT_FOUND", Message: "no coordinates found", RecoveryHint: "Try a more specific or different place name"}
	case errors.Is(err, geocode.ErrInvalidCoordinates):
		return &APIError{Code: "INVALID_COORDINATES", Message: "geocoder returned invalid coordinates"}
	default:
		return nil
	}
}

// toolError converts err into the error returned from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
