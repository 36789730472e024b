package reminder_test

import (
	"testing"
	"time"

	"github.com/rpggio/soundxcape/internal/domain/reminder"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	defaults := reminder.Defaults(now)

	require.Len(t, defaults, 2)
	require.Equal(t, "2024-12-31", defaults[0].Date)
	require.Equal(t, "10:00 AM", defaults[0].Time)
	require.Equal(t, "2025-01-01", defaults[1].Date)
	require.Equal(t, "2:00 PM", defaults[1].Time)
}

func TestValidate(t *testing.T) {
	require.NoError(t, reminder.Validate(reminder.Reminder{Text: "Pack tripod", Date: "2024-06-01"}))
	require.NoError(t, reminder.Validate(reminder.Reminder{Text: "Undated"}))
	require.ErrorIs(t, reminder.Validate(reminder.Reminder{Text: "  "}), reminder.ErrInvalidInput)
	require.ErrorIs(t, reminder.Validate(reminder.Reminder{Text: "x", Date: "June 1st"}), reminder.ErrInvalidInput)
}

func TestNewID(t *testing.T) {
	a, b := reminder.NewID(), reminder.NewID()
	require.NotEqual(t, a, b)
	require.Contains(t, a, reminder.IDPrefix)
}
