package mcp

import (
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
	"github.com/rpggio/soundxcape/internal/notebook"
)

type EmptyParams struct{}

type IDParams struct {
	ID string `json:"id" jsonschema:"identifier of the item"`
}

type TechnicalSheetInput struct {
	Microphone *string  `json:"microphone,omitempty" jsonschema:"microphone used"`
	Recorder   *string  `json:"recorder,omitempty" jsonschema:"recorder used"`
	Settings   *string  `json:"settings,omitempty" jsonschema:"recorder settings such as 48kHz/24bit"`
	Latitude   *float64 `json:"latitude,omitempty" jsonschema:"latitude in degrees; set together with longitude"`
	Longitude  *float64 `json:"longitude,omitempty" jsonschema:"longitude in degrees; set together with latitude"`
}

type CreateProjectParams struct {
	ID             string               `json:"id,omitempty" jsonschema:"project id; generated when omitted"`
	Name           string               `json:"name" jsonschema:"project name"`
	Location       string               `json:"location,omitempty" jsonschema:"free-text place name"`
	Theme          string               `json:"theme,omitempty" jsonschema:"theme of the expedition"`
	Date           string               `json:"date,omitempty" jsonschema:"expedition date (YYYY-MM-DD)"`
	Notes          string               `json:"notes,omitempty" jsonschema:"free-form notes"`
	TechnicalSheet *TechnicalSheetInput `json:"technical_sheet,omitempty" jsonschema:"gear and settings"`
}

type UpdateProjectParams struct {
	ID             string               `json:"id" jsonschema:"project id"`
	Name           *string              `json:"name,omitempty" jsonschema:"new name"`
	Location       *string              `json:"location,omitempty" jsonschema:"new location"`
	Theme          *string              `json:"theme,omitempty" jsonschema:"new theme"`
	Date           *string              `json:"date,omitempty" jsonschema:"new date"`
	Notes          *string              `json:"notes,omitempty" jsonschema:"new notes"`
	TechnicalSheet *TechnicalSheetInput `json:"technical_sheet,omitempty" jsonschema:"fields to change; omitted fields keep their value"`
}

type PhotoInput struct {
	ID      string `json:"id,omitempty" jsonschema:"photo id; generated when omitted"`
	URL     string `json:"url" jsonschema:"data URI or remote URL"`
	Caption string `json:"caption,omitempty" jsonschema:"caption"`
}

type VoiceNoteInput struct {
	ID            string   `json:"id,omitempty" jsonschema:"voice note id; generated when omitted"`
	Title         string   `json:"title,omitempty" jsonschema:"title"`
	AudioBase64   *string  `json:"audio_base64,omitempty" jsonschema:"base64 audio data"`
	AudioType     *string  `json:"audio_type,omitempty" jsonschema:"audio MIME type such as audio/webm"`
	Duration      *float64 `json:"duration,omitempty" jsonschema:"duration in seconds"`
	Transcription *string  `json:"transcription,omitempty" jsonschema:"transcription or summary"`
	Placeholder   *string  `json:"placeholder,omitempty" jsonschema:"placeholder text"`
}

type CreateRecordingParams struct {
	ID          string           `json:"id,omitempty" jsonschema:"recording id; generated when omitted"`
	ProjectID   string           `json:"project_id" jsonschema:"project the recording belongs to"`
	Title       string           `json:"title" jsonschema:"recording title"`
	Description string           `json:"description,omitempty" jsonschema:"description"`
	Location    string           `json:"location,omitempty" jsonschema:"where it was recorded"`
	Tags        []string         `json:"tags,omitempty" jsonschema:"tags"`
	Timestamp   string           `json:"timestamp,omitempty" jsonschema:"ISO 8601 time of the recording; now when omitted"`
	Photos      []PhotoInput     `json:"photos,omitempty" jsonschema:"attached photos"`
	VoiceNotes  []VoiceNoteInput `json:"voice_notes,omitempty" jsonschema:"attached voice notes"`
}

// UpdateRecordingParams replaces the listed fields. Omitted lists are kept;
// an empty list clears them.
type UpdateRecordingParams struct {
	ID          string           `json:"id" jsonschema:"recording id"`
	ProjectID   *string          `json:"project_id,omitempty" jsonschema:"move to another project"`
	Title       *string          `json:"title,omitempty" jsonschema:"new title"`
	Description *string          `json:"description,omitempty" jsonschema:"new description"`
	Location    *string          `json:"location,omitempty" jsonschema:"new location"`
	Timestamp   *string          `json:"timestamp,omitempty" jsonschema:"new ISO 8601 timestamp"`
	Tags        []string         `json:"tags,omitempty" jsonschema:"replaces all tags"`
	Photos      []PhotoInput     `json:"photos,omitempty" jsonschema:"replaces all photos"`
	VoiceNotes  []VoiceNoteInput `json:"voice_notes,omitempty" jsonschema:"replaces all voice notes"`
}

type ListRecordingsParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"only recordings of this project"`
}

type AddTagsParams struct {
	RecordingID string   `json:"recording_id" jsonschema:"recording id"`
	Tags        []string `json:"tags" jsonschema:"tags to add; duplicates are skipped"`
}

type AddReminderParams struct {
	Text string `json:"text" jsonschema:"what to remember"`
	Time string `json:"time,omitempty" jsonschema:"display time such as 10:00 AM"`
	Date string `json:"date,omitempty" jsonschema:"date (YYYY-MM-DD); today when omitted"`
}

type UpdateReminderParams struct {
	ID   string  `json:"id" jsonschema:"reminder id"`
	Text *string `json:"text,omitempty" jsonschema:"new text"`
	Time *string `json:"time,omitempty" jsonschema:"new display time"`
	Date *string `json:"date,omitempty" jsonschema:"new date (YYYY-MM-DD)"`
}

type MediaGalleryParams struct {
	Filter string `json:"filter,omitempty" jsonschema:"all, photos, or audio"`
}

type GeocodeProjectParams struct {
	ProjectID string `json:"project_id" jsonschema:"project to locate"`
	Place     string `json:"place,omitempty" jsonschema:"place name; the project location when omitted"`
}

type SuggestTagsParams struct {
	RecordingID string `json:"recording_id,omitempty" jsonschema:"recording to suggest tags for"`
	Title       string `json:"title,omitempty" jsonschema:"title, when no recording is given"`
	Description string `json:"description,omitempty" jsonschema:"description, when no recording is given"`
	Apply       bool   `json:"apply,omitempty" jsonschema:"add the suggestions to the recording"`
}

type SummarizeVoiceNoteParams struct {
	RecordingID string `json:"recording_id" jsonschema:"recording id"`
	VoiceNoteID string `json:"voice_note_id" jsonschema:"voice note id"`
}

type RecordingIdeasParams struct {
	ProjectID string `json:"project_id" jsonschema:"project id"`
}

type SearchSuggestionsParams struct {
	Term  string `json:"term" jsonschema:"what the user typed"`
	Scope string `json:"scope,omitempty" jsonschema:"app or map"`
}

type GetRecentActivityParams struct {
	ProjectID    string `json:"project_id,omitempty" jsonschema:"only activity for this project"`
	RecordingID  string `json:"recording_id,omitempty" jsonschema:"only activity for this recording"`
	ActivityType string `json:"activity_type,omitempty" jsonschema:"only this activity type"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum entries"`
	Offset       int    `json:"offset,omitempty" jsonschema:"entries to skip"`
}

// Results

type ProjectsResult struct {
	Projects []project.ProjectSummary `json:"projects"`
}

type ProjectResult struct {
	Project    project.Project       `json:"project"`
	Recordings []recording.Recording `json:"recordings,omitempty"`
	Persisted  *bool                 `json:"persisted,omitempty"`
}

type DeleteProjectResult struct {
	ProjectID         string `json:"project_id"`
	RecordingsDeleted int    `json:"recordings_deleted"`
	Persisted         bool   `json:"persisted"`
}

type RecordingsResult struct {
	Recordings []recording.Recording `json:"recordings"`
}

type RecordingResult struct {
	Recording recording.Recording `json:"recording"`
	Persisted *bool               `json:"persisted,omitempty"`
}

type DeleteResult struct {
	ID        string `json:"id"`
	Persisted bool   `json:"persisted"`
}

type RemindersResult struct {
	Reminders []reminder.Reminder `json:"reminders"`
}

type ReminderResult struct {
	Reminder  reminder.Reminder `json:"reminder"`
	Persisted bool              `json:"persisted"`
}

type SettingsResult struct {
	Settings  notebook.Settings `json:"settings"`
	Persisted *bool             `json:"persisted,omitempty"`
}

type GalleryResult struct {
	Filter notebook.GalleryFilter `json:"filter"`
	Items  []notebook.MediaItem   `json:"items"`
}

type MarkersResult struct {
	Markers []notebook.Marker `json:"markers"`
}

type GeocodeResult struct {
	Project     project.Project `json:"project"`
	DisplayName string          `json:"display_name,omitempty"`
	Persisted   bool            `json:"persisted"`
}

type SuggestionsResult struct {
	Suggestions []string             `json:"suggestions"`
	Recording   *recording.Recording `json:"recording,omitempty"`
	Persisted   *bool                `json:"persisted,omitempty"`
}

type SummaryResult struct {
	Summary   string              `json:"summary"`
	Recording recording.Recording `json:"recording"`
	Persisted bool                `json:"persisted"`
}

type ActivityResult struct {
	Entries []activity.ActivityEntry `json:"entries"`
}

type NoticesResult struct {
	Count int `json:"count"`
}

type StorageUsageResult struct {
	Usage notebook.Usage `json:"usage"`
}
