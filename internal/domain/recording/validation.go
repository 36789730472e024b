package recording

import (
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // datetime-local form input
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats the notebook has stored over time.
func ParseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Validate checks the fields a recording needs before it is stored. It does
// not check that the project exists; orphaned recordings are tolerated.
func Validate(r Recording) error {
	if strings.TrimSpace(r.ProjectID) == "" || strings.TrimSpace(r.Title) == "" {
		return ErrInvalidInput
	}
	if r.Timestamp != "" {
		if _, err := ParseTimestamp(r.Timestamp); err != nil {
			return ErrInvalidInput
		}
	}
	for _, p := range r.Photos {
		if p.ID == "" || p.URL == "" {
			return ErrInvalidInput
		}
	}
	for _, vn := range r.VoiceNotes {
		if vn.ID == "" {
			return ErrInvalidInput
		}
	}
	return nil
}
