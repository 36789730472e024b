package project

// TechnicalSheet describes the gear and settings used on an expedition.
// Latitude and Longitude are set together or not at all.
type TechnicalSheet struct {
	Microphone string   `json:"microphone"`
	Recorder   string   `json:"recorder"`
	Settings   string   `json:"settings"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// Project represents a sound-recording expedition.
type Project struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Location       string         `json:"location"`
	Theme          string         `json:"theme"`
	Date           string         `json:"date"`
	Notes          string         `json:"notes"`
	TechnicalSheet TechnicalSheet `json:"technicalSheet"`
}

// ProjectSummary is a project with its recording count, for listing
type ProjectSummary struct {
	Project
	RecordingCount int `json:"recordingCount"`
}

// HasCoordinates reports whether both coordinates are present.
func (p Project) HasCoordinates() bool {
	return p.TechnicalSheet.Latitude != nil && p.TechnicalSheet.Longitude != nil
}

// WithCoordinates returns a copy of p with the given coordinates set.
func (p Project) WithCoordinates(lat, lon float64) Project {
	p.TechnicalSheet.Latitude = &lat
	p.TechnicalSheet.Longitude = &lon
	return p
}
