package recording

// Photo is an image attached to a recording. URL holds either a base64 data
// URI or a remote URL.
type Photo struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// VoiceNote is an audio clip attached to a recording.
type VoiceNote struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	AudioBase64   *string  `json:"audioBase64,omitempty"`
	AudioType     *string  `json:"audioType,omitempty"` // MIME type, e.g. audio/webm
	Duration      *float64 `json:"duration,omitempty"`  // seconds
	Transcription *string  `json:"transcription,omitempty"`
	Placeholder   *string  `json:"placeholder,omitempty"`
}

// Recording is a dated capture event within a project. Photos and voice notes
// belong to the recording and only change through whole-recording writes.
type Recording struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"projectId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Tags        []string    `json:"tags"`
	Timestamp   string      `json:"timestamp"` // ISO 8601
	Photos      []Photo     `json:"photos"`
	VoiceNotes  []VoiceNote `json:"voiceNotes"`
}

// Clone returns a deep copy of r.
func (r Recording) Clone() Recording {
	out := r
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	if r.Photos != nil {
		out.Photos = append([]Photo(nil), r.Photos...)
	}
	if r.VoiceNotes != nil {
		out.VoiceNotes = make([]VoiceNote, len(r.VoiceNotes))
		for i, vn := range r.VoiceNotes {
			out.VoiceNotes[i] = vn.clone()
		}
	}
	return out
}

// VoiceNoteIndex returns the index of the voice note with the given id, or -1.
func (r Recording) VoiceNoteIndex(id string) int {
	for i, vn := range r.VoiceNotes {
		if vn.ID == id {
			return i
		}
	}
	return -1
}

func (vn VoiceNote) clone() VoiceNote {
	out := vn
	out.AudioBase64 = cloneString(vn.AudioBase64)
	out.AudioType = cloneString(vn.AudioType)
	out.Transcription = cloneString(vn.Transcription)
	out.Placeholder = cloneString(vn.Placeholder)
	if vn.Duration != nil {
		d := *vn.Duration
		out.Duration = &d
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
