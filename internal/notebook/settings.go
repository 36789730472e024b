package notebook

import (
	"context"
	"fmt"

	"github.com/rpggio/soundxcape/internal/cell"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
)

// Settings holds the two global flags.
type Settings struct {
	DarkMode       bool `json:"darkMode"`
	WelcomeVisited bool `json:"hasVisitedWelcome"`
}

// Snapshot is a point-in-time copy of the whole notebook.
type Snapshot struct {
	Projects   []project.Project     `json:"projects"`
	Recordings []recording.Recording `json:"recordings"`
	Reminders  []reminder.Reminder   `json:"reminders"`
	Settings   Settings              `json:"settings"`
}

// DarkMode reports the dark-mode flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode.Get()
}

// WelcomeVisited reports whether onboarding has been seen.
func (s *Store) WelcomeVisited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.welcome.Get()
}

// Settings returns both flags.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Settings{DarkMode: s.darkMode.Get(), WelcomeVisited: s.welcome.Get()}
}

// ToggleDarkMode flips the dark-mode flag and returns the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, cell.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.darkMode.Get()
	status := s.darkMode.Set(ctx, next)
	s.log(ctx, status, activity.ActivityEntry{
		ActivityType: activity.TypeSettingChanged,
		Summary:      fmt.Sprintf("dark mode set to %t", next),
	})
	return next, status
}

// MarkWelcomeVisited records that onboarding has been seen. Repeated calls
// are harmless.
func (s *Store) MarkWelcomeVisited(ctx context.Context) cell.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.welcome.Set(ctx, true)
	s.log(ctx, status, activity.ActivityEntry{
		ActivityType: activity.TypeSettingChanged,
		Summary:      "welcome marked as visited",
	})
	return status
}

// Snapshot copies every collection and setting.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := make([]project.Project, len(s.projects.Get()))
	for i, p := range s.projects.Get() {
		projects[i] = cloneProject(p)
	}
	return Snapshot{
		Projects:   projects,
		Recordings: cloneRecordings(s.recordings.Get(), func(recording.Recording) bool { return true }),
		Reminders:  append([]reminder.Reminder{}, s.reminders.Get()...),
		Settings:   Settings{DarkMode: s.darkMode.Get(), WelcomeVisited: s.welcome.Get()},
	}
}
