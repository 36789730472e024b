package recording_test

import (
	"testing"
	"time"

	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/stretchr/testify/require"
)

func TestMergeTags(t *testing.T) {
	tags := []string{"forest", "birds"}
	merged := recording.MergeTags(tags, "birds", " dawn ", "", "forest", "dawn", "wind")

	require.Equal(t, []string{"forest", "birds", "dawn", "wind"}, merged)
	require.Equal(t, []string{"forest", "birds"}, tags, "input must not change")
}

func TestCreatedAt(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, ok := recording.CreatedAt(recording.NewPhotoID())
	require.True(t, ok)
	require.True(t, ts.After(before))

	ts, ok = recording.CreatedAt("photo_upload_1715000000000")
	require.True(t, ok)
	require.Equal(t, int64(1715000000000), ts.UnixMilli())

	_, ok = recording.CreatedAt("placeholder")
	require.False(t, ok)
	_, ok = recording.CreatedAt("vn_not-a-uuid")
	require.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	text := "wind in pines"
	rec := recording.Recording{
		ID:         "rec_1",
		Tags:       []string{"forest"},
		Photos:     []recording.Photo{{ID: "photo_1", URL: "https://example.com/a.jpg"}},
		VoiceNotes: []recording.VoiceNote{{ID: "vn_1", Transcription: &text}},
	}

	clone := rec.Clone()
	clone.Tags[0] = "coast"
	clone.Photos[0].Caption = "changed"
	*clone.VoiceNotes[0].Transcription = "changed"

	require.Equal(t, "forest", rec.Tags[0])
	require.Empty(t, rec.Photos[0].Caption)
	require.Equal(t, "wind in pines", *rec.VoiceNotes[0].Transcription)
}

func TestValidate(t *testing.T) {
	valid := recording.Recording{ProjectID: "proj_1", Title: "Dawn chorus", Timestamp: "2024-05-01T06:30"}
	require.NoError(t, recording.Validate(valid))

	orphan := valid
	orphan.ProjectID = "nonexistent"
	require.NoError(t, recording.Validate(orphan))

	missingTitle := valid
	missingTitle.Title = ""
	require.ErrorIs(t, recording.Validate(missingTitle), recording.ErrInvalidInput)

	badTimestamp := valid
	badTimestamp.Timestamp = "yesterday"
	require.ErrorIs(t, recording.Validate(badTimestamp), recording.ErrInvalidInput)

	badPhoto := valid
	badPhoto.Photos = []recording.Photo{{ID: "photo_1"}}
	require.ErrorIs(t, recording.Validate(badPhoto), recording.ErrInvalidInput)
}
