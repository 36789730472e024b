package recording

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier prefixes for recordings and their media.
const (
	IDPrefix          = "rec_"
	PhotoIDPrefix     = "photo_"
	VoiceNoteIDPrefix = "vn_"
)

// NewID returns a time-ordered, collision-resistant recording id.
func NewID() string { return newID(IDPrefix) }

// NewPhotoID returns a new photo id.
func NewPhotoID() string { return newID(PhotoIDPrefix) }

// NewVoiceNoteID returns a new voice note id.
func NewVoiceNoteID() string { return newID(VoiceNoteIDPrefix) }

func newID(prefix string) string {
	return prefix + uuid.Must(uuid.NewV7()).String()
}

// CreatedAt recovers the creation time embedded in an id. It understands the
// UUIDv7 ids minted here and legacy ids ending in a millisecond timestamp
// (for example "photo_upload_1715000000000").
func CreatedAt(id string) (time.Time, bool) {
	i := strings.LastIndex(id, "_")
	if i < 0 || i == len(id)-1 {
		return time.Time{}, false
	}
	suffix := id[i+1:]

	if ms, err := strconv.ParseInt(suffix, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}

	u, err := uuid.Parse(suffix)
	if err != nil || u.Version() != 7 {
		return time.Time{}, false
	}
	var ms int64
	for _, b := range u[:6] {
		ms = ms<<8 | int64(b)
	}
	return time.UnixMilli(ms), true
}
