package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated   ActivityType = "project_created"
	TypeProjectUpdated   ActivityType = "project_updated"
	TypeProjectDeleted   ActivityType = "project_deleted"
	TypeRecordingCreated ActivityType = "recording_created"
	TypeRecordingUpdated ActivityType = "recording_updated"
	TypeRecordingDeleted ActivityType = "recording_deleted"
	TypeReminderCreated  ActivityType = "reminder_created"
	TypeReminderUpdated  ActivityType = "reminder_updated"
	TypeReminderDeleted  ActivityType = "reminder_deleted"
	TypeSettingChanged   ActivityType = "setting_changed"
	TypeStorageFull      ActivityType = "storage_full"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id,omitempty"`
	RecordingID  *string      `json:"recording_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
