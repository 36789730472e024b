package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ProjectID    string
	RecordingID  *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
