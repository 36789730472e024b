package notebook

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
)

// ErrUnknownFilter is returned for a gallery filter other than all, photos, or audio.
var ErrUnknownFilter = errors.New("unknown gallery filter")

// MediaKind distinguishes gallery items.
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaAudio MediaKind = "audio"
)

// GalleryFilter selects which media kinds the gallery shows.
type GalleryFilter string

const (
	FilterAll    GalleryFilter = "all"
	FilterPhotos GalleryFilter = "photos"
	FilterAudio  GalleryFilter = "audio"
)

// ParseGalleryFilter validates s. An empty string means all.
func ParseGalleryFilter(s string) (GalleryFilter, error) {
	switch f := GalleryFilter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPhotos, FilterAudio:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

func (f GalleryFilter) includes(k MediaKind) bool {
	switch f {
	case FilterPhotos:
		return k == MediaPhoto
	case FilterAudio:
		return k == MediaAudio
	default:
		return true
	}
}

// MediaItem is one photo or voice note with the context it was captured in.
// Project is nil when the recording's project no longer exists.
type MediaItem struct {
	Kind           MediaKind            `json:"type"`
	ID             string               `json:"id"`
	RecordingID    string               `json:"recordingId"`
	RecordingTitle string               `json:"recordingTitle"`
	ProjectID      string               `json:"projectId"`
	Project        *project.Project     `json:"project,omitempty"`
	Photo          *recording.Photo     `json:"photo,omitempty"`
	VoiceNote      *recording.VoiceNote `json:"voiceNote,omitempty"`
	CreatedAt      *time.Time           `json:"createdAt,omitempty"`
}

// Gallery flattens the media of every recording, newest first by the time
// embedded in each media id. Items whose id carries no time sort last in
// collection order.
func (s *Store) Gallery(filter GalleryFilter) []MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := map[string]project.Project{}
	for _, p := range s.projects.Get() {
		byID[p.ID] = p
	}

	var items []MediaItem
	for _, r := range s.recordings.Get() {
		r = r.Clone()
		base := MediaItem{RecordingID: r.ID, RecordingTitle: r.Title, ProjectID: r.ProjectID}
		if p, ok := byID[r.ProjectID]; ok {
			p = cloneProject(p)
			base.Project = &p
		}
		if filter.includes(MediaPhoto) {
			for _, ph := range r.Photos {
				item := base
				item.Kind, item.ID = MediaPhoto, ph.ID
				item.Photo = &ph
				item.CreatedAt = createdAt(ph.ID)
				items = append(items, item)
			}
		}
		if filter.includes(MediaAudio) {
			for _, vn := range r.VoiceNotes {
				item := base
				item.Kind, item.ID = MediaAudio, vn.ID
				item.VoiceNote = &vn
				item.CreatedAt = createdAt(vn.ID)
				items = append(items, item)
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].CreatedAt, items[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	if items == nil {
		items = []MediaItem{}
	}
	return items
}

func createdAt(id string) *time.Time {
	t, ok := recording.CreatedAt(id)
	if !ok {
		return nil
	}
	t = t.UTC()
	return &t
}

// Marker is a project placed on the map.
type Marker struct {
	ProjectID string  `json:"projectId"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MapMarkers returns a marker for every project that has both coordinates,
// in collection order.
func (s *Store) MapMarkers() []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Marker{}
	for _, p := range s.projects.Get() {
		if !p.HasCoordinates() {
			continue
		}
		out = append(out, Marker{
			ProjectID: p.ID,
			Name:      p.Name,
			Location:  p.Location,
			Latitude:  *p.TechnicalSheet.Latitude,
			Longitude: *p.TechnicalSheet.Longitude,
		})
	}
	return out
}
