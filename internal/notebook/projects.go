package notebook

import (
	"context"
	"fmt"

	"github.com/rpggio/soundxcape/internal/cell"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
)

// Projects returns every project in insertion order.
func (s *Store) Projects() []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.projects.Get()
	out := make([]project.Project, len(items))
	for i, p := range items {
		out[i] = cloneProject(p)
	}
	return out
}

// Project returns the project with the given id.
func (s *Store) Project(id string) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfProject(s.projects.Get(), id)
	if i < 0 {
		return project.Project{}, project.ErrProjectNotFound
	}
	return cloneProject(s.projects.Get()[i]), nil
}

// AddProject appends p, assigning an id when p has none. Ids are not checked
// for uniqueness.
func (s *Store) AddProject(ctx context.Context, p project.Project) (project.Project, cell.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = project.NewID()
	}
	p = cloneProject(p)
	status := s.projects.Set(ctx, appendCopy(s.projects.Get(), p))

	s.log(ctx, status, activity.ActivityEntry{
		ProjectID:    p.ID,
		ActivityType: activity.TypeProjectCreated,
		Summary:      fmt.Sprintf("created project %q", p.Name),
	})
	return cloneProject(p), status
}

// UpdateProject replaces the project whose id matches p.ID.
func (s *Store) UpdateProject(ctx context.Context, p project.Project) (cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateProject(ctx, cloneProject(p))
}

func (s *Store) updateProject(ctx context.Context, p project.Project) (cell.Status, error) {
	items := s.projects.Get()
	i := indexOfProject(items, p.ID)
	if i < 0 {
		return cell.StatusPersisted, fmt.Errorf("update project %s: %w", p.ID, project.ErrProjectNotFound)
	}
	status := s.projects.Set(ctx, replaceAt(items, i, p))

	s.log(ctx, status, activity.ActivityEntry{
		ProjectID:    p.ID,
		ActivityType: activity.TypeProjectUpdated,
		Summary:      fmt.Sprintf("updated project %q", p.Name),
	})
	return status, nil
}

// DeleteProject removes the project and every recording that references it.
// Both collections are persisted in one batch. It returns the number of
// recordings removed.
func (s *Store) DeleteProject(ctx context.Context, id string) (int, cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.projects.Get()
	i := indexOfProject(projects, id)
	if i < 0 {
		return 0, cell.StatusPersisted, fmt.Errorf("delete project %s: %w", id, project.ErrProjectNotFound)
	}
	name := projects[i].Name

	recordings := s.recordings.Get()
	kept := make([]recording.Recording, 0, len(recordings))
	for _, r := range recordings {
		if r.ProjectID != id {
			kept = append(kept, r)
		}
	}
	removed := len(recordings) - len(kept)

	changes := []*cell.Change{s.projects.Stage(removeAt(projects, i))}
	if removed > 0 {
		changes = append(changes, s.recordings.Stage(kept))
	}
	status := cell.Commit(ctx, changes...)

	s.log(ctx, status, activity.ActivityEntry{
		ProjectID:    id,
		ActivityType: activity.TypeProjectDeleted,
		Summary:      fmt.Sprintf("deleted project %q and %d recordings", name, removed),
	})
	return removed, status, nil
}

// SetProjectCoordinates stores a resolved location on the project's
// technical sheet.
func (s *Store) SetProjectCoordinates(ctx context.Context, id string, lat, lon float64) (project.Project, cell.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfProject(s.projects.Get(), id)
	if i < 0 {
		return project.Project{}, cell.StatusPersisted, fmt.Errorf("set coordinates on %s: %w", id, project.ErrProjectNotFound)
	}
	if err := project.ValidateCoordinates(&lat, &lon); err != nil {
		return project.Project{}, cell.StatusPersisted, fmt.Errorf("set coordinates on %s: %w", id, err)
	}
	updated := cloneProject(s.projects.Get()[i]).WithCoordinates(lat, lon)

	status, err := s.updateProject(ctx, updated)
	if err != nil {
		return project.Project{}, status, err
	}
	return cloneProject(updated), status, nil
}

// ProjectSummaries returns every project with its recording count.
func (s *Store) ProjectSummaries() []project.ProjectSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int{}
	for _, r := range s.recordings.Get() {
		counts[r.ProjectID]++
	}
	projects := s.projects.Get()
	out := make([]project.ProjectSummary, len(projects))
	for i, p := range projects {
		out[i] = project.ProjectSummary{Project: cloneProject(p), RecordingCount: counts[p.ID]}
	}
	return out
}

func indexOfProject(items []project.Project, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func cloneProject(p project.Project) project.Project {
	if lat := p.TechnicalSheet.Latitude; lat != nil {
		v := *lat
		p.TechnicalSheet.Latitude = &v
	}
	if lon := p.TechnicalSheet.Longitude; lon != nil {
		v := *lon
		p.TechnicalSheet.Longitude = &v
	}
	return p
}
