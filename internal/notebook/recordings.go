package notebook

import (
	"context"
	"fmt"

	"github.com/rpggio/soundxcape/internal/cell"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/recording"
)

// Recordings returns every recording in insertion order.
func (s *Store) Recordings() []recording.Recording {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecordings(s.recordings.Get(), func(recording.Recording) bool { return true })
}

// RecordingsForProject returns the recordings that reference projectID, in
// collection order. The project does not have to exist.
func (s *Store) RecordingsForProject(projectID string) []recording.Recording {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecordings(s.recordings.Get(), func(r recording.Recording) bool {
		return r.ProjectID == projectID
	})
}

// Recording returns the recording with the given id.
func (s *Store) Recording(id string) (recording.Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.recordings.Get()
	i := indexOfRecording(items, id)
	if i < 0 {
		return recording.Recording{}, recording.ErrRecordingNotFound
	}
	return items[i].Clone(), nil
}

// AddRecording appends r, assigning an id when r has none. The referenced
// project is not checked.
func (s *Store) AddRecording(ctx context.Context, r recording.Recording) (recording.Recording, cell.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = recording.NewID()
	}
	r = r.Clone()
	status := s.recordings.Set(ctx, appendCopy(s.recordings.Get(), r))

	s.log(ctx, status, activity.ActivityEntry{
		ProjectID:    r.ProjectID,
		RecordingID:  &r.ID,
		ActivityType: activity.TypeRecordingCreated,
		Summary:      fmt.Sprintf("created recording %q", r.Title),
	})
	return r.Clone(), status
}

// UpdateRecording replaces the recording whose id matches r.ID, including its
// photos and voice notes.
func (s *Store) UpdateRecording(ctx context.Context, r recording.Recording) (cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateRecording(ctx, r.Clone())
}

func (s *Store) updateRecording(ctx context.Context, r recording.Recording) (cell.Status, error) {
	items := s.recordings.Get()
	i := indexOfRecording(items, r.ID)
	if i < 0 {
		return cell.StatusPersisted, fmt.Errorf("update recording %s: %w", r.ID, recording.ErrRecordingNotFound)
	}
	status := s.recordings.Set(ctx, replaceAt(items, i, r))

	s.log(ctx, status, activity.ActivityEntry{
		ProjectID:    r.ProjectID,
		RecordingID:  &r.ID,
		ActivityType: activity.TypeRecordingUpdated,
		Summary:      fmt.Sprintf("updated recording %q", r.Title),
	})
	return status, nil
}

// DeleteRecording removes the recording with the given id.
func (s *Store) DeleteRecording(ctx context.Context, id string) (cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.recordings.Get()
	i := indexOfRecording(items, id)
	if i < 0 {
		return cell.StatusPersisted, fmt.Errorf("delete recording %s: %w", id, recording.ErrRecordingNotFound)
	}
	gone := items[i]
	status := s.recordings.Set(ctx, removeAt(items, i))

	s.log(ctx, status, activity.ActivityEntry{
		ProjectID:    gone.ProjectID,
		RecordingID:  &gone.ID,
		ActivityType: activity.TypeRecordingDeleted,
		Summary:      fmt.Sprintf("deleted recording %q", gone.Title),
	})
	return status, nil
}

// AddTags merges tags into the recording's tag list, skipping blanks and tags
// it already has.
func (s *Store) AddTags(ctx context.Context, id string, tags ...string) (recording.Recording, cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.recordings.Get()
	i := indexOfRecording(items, id)
	if i < 0 {
		return recording.Recording{}, cell.StatusPersisted, fmt.Errorf("add tags to %s: %w", id, recording.ErrRecordingNotFound)
	}
	updated := items[i].Clone()
	updated.Tags = recording.MergeTags(updated.Tags, tags...)

	status, err := s.updateRecording(ctx, updated)
	if err != nil {
		return recording.Recording{}, status, err
	}
	return updated.Clone(), status, nil
}

// SetTranscription attaches text to one of the recording's voice notes.
func (s *Store) SetTranscription(ctx context.Context, recordingID, voiceNoteID, text string) (recording.Recording, cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.recordings.Get()
	i := indexOfRecording(items, recordingID)
	if i < 0 {
		return recording.Recording{}, cell.StatusPersisted, fmt.Errorf("set transcription on %s: %w", recordingID, recording.ErrRecordingNotFound)
	}
	updated := items[i].Clone()
	j := updated.VoiceNoteIndex(voiceNoteID)
	if j < 0 {
		return recording.Recording{}, cell.StatusPersisted, fmt.Errorf("set transcription on %s/%s: %w", recordingID, voiceNoteID, recording.ErrVoiceNoteNotFound)
	}
	updated.VoiceNotes[j].Transcription = &text

	status, err := s.updateRecording(ctx, updated)
	if err != nil {
		return recording.Recording{}, status, err
	}
	return updated.Clone(), status, nil
}

func indexOfRecording(items []recording.Recording, id string) int {
	for i, r := range items {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func cloneRecordings(items []recording.Recording, keep func(recording.Recording) bool) []recording.Recording {
	out := []recording.Recording{}
	for _, r := range items {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}
