// Package notebook owns the field notebook's collections and settings and
// mirrors every change into a key-value storage medium.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/soundxcape/internal/cell"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
)

// Storage keys. The onboarding key keeps the spelling existing data was
// written under.
const (
	KeyProjects       = "soundscape_projects"
	KeyRecordings     = "soundscape_recordings"
	KeyReminders      = "soundscape_reminders"
	KeyDarkMode       = "soundscape_darkMode"
	KeyWelcomeVisited = "soundxcape_hasVisitedWelcome"
)

// schemaVersion is written into every stored envelope.
const schemaVersion = 1

// Keys names the storage key of each collection and setting.
type Keys struct {
	Projects       string
	Recordings     string
	Reminders      string
	DarkMode       string
	WelcomeVisited string
}

// DefaultKeys returns the standard storage keys.
func DefaultKeys() Keys {
	return Keys{
		Projects:       KeyProjects,
		Recordings:     KeyRecordings,
		Reminders:      KeyReminders,
		DarkMode:       KeyDarkMode,
		WelcomeVisited: KeyWelcomeVisited,
	}
}

func (k Keys) withDefaults() Keys {
	d := DefaultKeys()
	if k.Projects == "" {
		k.Projects = d.Projects
	}
	if k.Recordings == "" {
		k.Recordings = d.Recordings
	}
	if k.Reminders == "" {
		k.Reminders = d.Reminders
	}
	if k.DarkMode == "" {
		k.DarkMode = d.DarkMode
	}
	if k.WelcomeVisited == "" {
		k.WelcomeVisited = d.WelcomeVisited
	}
	return k
}

// ActivityLogger records what changed in the notebook.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}

var _ ActivityLogger = (*activity.Service)(nil)

// Options configures Open. Every field is optional.
type Options struct {
	Notifier cell.Notifier
	Logger   *slog.Logger
	Activity ActivityLogger
	Now      func() time.Time
	Keys     Keys
}

// Store is the notebook state owner. Operations are serialized; each runs to
// completion before the next starts.
type Store struct {
	mu sync.Mutex

	keys       Keys
	storage    cell.Storage
	projects   *cell.Cell[[]project.Project]
	recordings *cell.Cell[[]recording.Recording]
	reminders  *cell.Cell[[]reminder.Reminder]
	darkMode   *cell.Cell[bool]
	welcome    *cell.Cell[bool]

	activities ActivityLogger
	logger     *slog.Logger
	now        func() time.Time
}

// Open hydrates a Store from storage. Missing or unreadable values fall back
// to their defaults; Open never fails.
func Open(ctx context.Context, storage cell.Storage, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	keys := opts.Keys.withDefaults()

	b := cell.Bind(storage, opts.Notifier, logger)
	schema := cell.WithSchema(schemaVersion, nil)

	s := &Store{
		keys:       keys,
		storage:    storage,
		projects:   cell.Load(ctx, b, keys.Projects, []project.Project{}, schema),
		recordings: cell.Load(ctx, b, keys.Recordings, []recording.Recording{}, schema),
		reminders:  cell.Load(ctx, b, keys.Reminders, reminder.Defaults(now()), schema),
		darkMode:   cell.Load(ctx, b, keys.DarkMode, true, schema),
		welcome:    cell.Load(ctx, b, keys.WelcomeVisited, false, schema),
		activities: opts.Activity,
		logger:     logger,
		now:        now,
	}

	// The default reminders are dated from the first open; store them so
	// later opens see the same dates.
	if s.reminders.Missing() {
		s.reminders.Set(ctx, s.reminders.Get())
	}

	logger.Debug("notebook loaded",
		"projects", len(s.projects.Get()),
		"recordings", len(s.recordings.Get()),
		"reminders", len(s.reminders.Get()),
	)
	return s
}

// Keys returns the storage keys in use.
func (s *Store) Keys() Keys { return s.keys }

// ErrUsageUnavailable is returned when the storage medium cannot measure itself.
var ErrUsageUnavailable = errors.New("storage usage unavailable")

// Usage describes what the notebook holds in its storage medium.
type Usage struct {
	UsedBytes  int64    `json:"used_bytes"`
	QuotaBytes int64    `json:"quota_bytes"` // 0 means unlimited
	Keys       []string `json:"keys"`
}

type usageReporter interface {
	Keys(ctx context.Context) ([]string, error)
	Usage(ctx context.Context) (used, quota int64, err error)
}

// StorageUsage measures the storage medium.
func (s *Store) StorageUsage(ctx context.Context) (Usage, error) {
	r, ok := s.storage.(usageReporter)
	if !ok {
		return Usage{}, ErrUsageUnavailable
	}
	used, quota, err := r.Usage(ctx)
	if err != nil {
		return Usage{}, fmt.Errorf("measure storage: %w", err)
	}
	keys, err := r.Keys(ctx)
	if err != nil {
		return Usage{}, fmt.Errorf("list storage keys: %w", err)
	}
	return Usage{UsedBytes: used, QuotaBytes: quota, Keys: keys}, nil
}

// log appends an activity entry and, when the write it describes was rejected
// for capacity, a storage_full entry.
func (s *Store) log(ctx context.Context, status cell.Status, entry activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	entry.CreatedAt = s.now()
	if err := s.activities.LogActivity(ctx, &entry); err != nil {
		s.logger.Warn("activity log write failed", "type", entry.ActivityType, "error", err)
	}
	if status != cell.StatusQuotaExceeded {
		return
	}
	full := activity.ActivityEntry{
		ProjectID:    entry.ProjectID,
		RecordingID:  entry.RecordingID,
		ActivityType: activity.TypeStorageFull,
		Summary:      "storage full, change kept in memory only",
		CreatedAt:    s.now(),
	}
	if err := s.activities.LogActivity(ctx, &full); err != nil {
		s.logger.Warn("activity log write failed", "type", full.ActivityType, "error", err)
	}
}

// replaceAt returns a copy of items with items[i] set to v.
func replaceAt[T any](items []T, i int, v T) []T {
	out := append([]T(nil), items...)
	out[i] = v
	return out
}

// removeAt returns a copy of items without items[i].
func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func appendCopy[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}
