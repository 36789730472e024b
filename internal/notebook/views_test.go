package notebook

import (
	"context"
	"testing"

	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/rpggio/soundxcape/internal/memory"
	"github.com/stretchr/testify/require"
)

func TestGallery_NewestFirstWithContext(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, memory.New(), Options{})

	p, _ := s.AddProject(ctx, project.Project{Name: "Marsh"})
	s.AddRecording(ctx, recording.Recording{
		ProjectID: p.ID,
		Title:     "Reeds",
		Photos: []recording.Photo{
			{ID: "photo_upload_1000", URL: "a"},
			{ID: "photo_upload_3000", URL: "b"},
		},
		VoiceNotes: []recording.VoiceNote{{ID: "vn_2000", Title: "wind"}},
	})
	s.AddRecording(ctx, recording.Recording{
		ProjectID: "deleted-project",
		Title:     "Orphan",
		Photos:    []recording.Photo{{ID: "photo_4000", URL: "c"}, {ID: "untimed", URL: "d"}},
	})

	all := s.Gallery(FilterAll)
	var ids []string
	for _, item := range all {
		ids = append(ids, item.ID)
	}
	require.Equal(t, []string{"photo_4000", "photo_upload_3000", "vn_2000", "photo_upload_1000", "untimed"}, ids)

	require.Nil(t, all[0].Project)
	require.Equal(t, "Orphan", all[0].RecordingTitle)
	require.NotNil(t, all[1].Project)
	require.Equal(t, "Marsh", all[1].Project.Name)
	require.Equal(t, MediaAudio, all[2].Kind)
	require.Equal(t, "wind", all[2].VoiceNote.Title)

	require.Len(t, s.Gallery(FilterPhotos), 4)
	audio := s.Gallery(FilterAudio)
	require.Len(t, audio, 1)
	require.Equal(t, "vn_2000", audio[0].ID)
}

func TestGallery_Empty(t *testing.T) {
	s := openStore(t, memory.New(), Options{})
	require.NotNil(t, s.Gallery(FilterAll))
	require.Empty(t, s.Gallery(FilterAll))
}

func TestParseGalleryFilter(t *testing.T) {
	f, err := ParseGalleryFilter("")
	require.NoError(t, err)
	require.Equal(t, FilterAll, f)

	f, err = ParseGalleryFilter("audio")
	require.NoError(t, err)
	require.Equal(t, FilterAudio, f)

	_, err = ParseGalleryFilter("video")
	require.ErrorIs(t, err, ErrUnknownFilter)
}

func TestMapMarkers_OnlyLocatedProjects(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, memory.New(), Options{})

	s.AddProject(ctx, project.Project{ID: "a", Name: "Located"}.WithCoordinates(51.5, -0.1))
	s.AddProject(ctx, project.Project{ID: "b", Name: "Unlocated"})
	half := project.Project{ID: "c", Name: "Half"}
	lat := 10.0
	half.TechnicalSheet.Latitude = &lat
	s.AddProject(ctx, half)

	markers := s.MapMarkers()
	require.Equal(t, []Marker{{ProjectID: "a", Name: "Located", Latitude: 51.5, Longitude: -0.1}}, markers)
}

func TestProjectSummaries_CountRecordings(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, memory.New(), Options{})

	s.AddProject(ctx, project.Project{ID: "a", Name: "A"})
	s.AddProject(ctx, project.Project{ID: "b", Name: "B"})
	s.AddRecording(ctx, recording.Recording{ProjectID: "a", Title: "1"})
	s.AddRecording(ctx, recording.Recording{ProjectID: "a", Title: "2"})

	summaries := s.ProjectSummaries()
	require.Len(t, summaries, 2)
	require.Equal(t, 2, summaries[0].RecordingCount)
	require.Equal(t, 0, summaries[1].RecordingCount)
}
