package reminder

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the layout of Reminder.Date.
const DateLayout = "2006-01-02"

// IDPrefix marks reminder identifiers.
const IDPrefix = "rem_"

// Reminder is a free-standing field note.
type Reminder struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Time string `json:"time"` // display string, e.g. "10:00 AM"
	Date string `json:"date"`
}

// NewID returns a new reminder id.
func NewID() string {
	return IDPrefix + uuid.Must(uuid.NewV7()).String()
}

// Defaults returns the reminders a fresh notebook starts with.
func Defaults(now time.Time) []Reminder {
	today := now.UTC()
	return []Reminder{
		{ID: "1", Text: "Return to the forest", Time: "10:00 AM", Date: today.Format(DateLayout)},
		{ID: "2", Text: "Revisit the city park", Time: "2:00 PM", Date: today.Add(24 * time.Hour).Format(DateLayout)},
	}
}

// Validate checks the fields a reminder needs before it is stored.
func Validate(r Reminder) error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrInvalidInput
	}
	if r.Date != "" {
		if _, err := time.Parse(DateLayout, r.Date); err != nil {
			return ErrInvalidInput
		}
	}
	return nil
}
