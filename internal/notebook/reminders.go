package notebook

import (
	"context"
	"fmt"

	"github.com/rpggio/soundxcape/internal/cell"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
)

// Reminders returns every reminder in insertion order.
func (s *Store) Reminders() []reminder.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]reminder.Reminder{}, s.reminders.Get()...)
}

// AddReminder appends r, assigning an id when r has none.
func (s *Store) AddReminder(ctx context.Context, r reminder.Reminder) (reminder.Reminder, cell.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = reminder.NewID()
	}
	status := s.reminders.Set(ctx, appendCopy(s.reminders.Get(), r))
	s.log(ctx, status, activity.ActivityEntry{
		ActivityType: activity.TypeReminderCreated,
		Summary:      fmt.Sprintf("added reminder %q", r.Text),
	})
	return r, status
}

// UpdateReminder replaces the reminder whose id matches r.ID.
func (s *Store) UpdateReminder(ctx context.Context, r reminder.Reminder) (cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.reminders.Get()
	i := indexOfReminder(items, r.ID)
	if i < 0 {
		return cell.StatusPersisted, fmt.Errorf("update reminder %s: %w", r.ID, reminder.ErrReminderNotFound)
	}
	status := s.reminders.Set(ctx, replaceAt(items, i, r))
	s.log(ctx, status, activity.ActivityEntry{
		ActivityType: activity.TypeReminderUpdated,
		Summary:      fmt.Sprintf("updated reminder %q", r.Text),
	})
	return status, nil
}

// DeleteReminder removes the reminder with the given id.
func (s *Store) DeleteReminder(ctx context.Context, id string) (cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.reminders.Get()
	i := indexOfReminder(items, id)
	if i < 0 {
		return cell.StatusPersisted, fmt.Errorf("delete reminder %s: %w", id, reminder.ErrReminderNotFound)
	}
	gone := items[i]
	status := s.reminders.Set(ctx, removeAt(items, i))
	s.log(ctx, status, activity.ActivityEntry{
		ActivityType: activity.TypeReminderDeleted,
		Summary:      fmt.Sprintf("deleted reminder %q", gone.Text),
	})
	return status, nil
}

func indexOfReminder(items []reminder.Reminder, id string) int {
	for i, r := range items {
		if r.ID == id {
			return i
		}
	}
	return -1
}
