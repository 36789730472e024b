package project

import (
	"strings"

	"github.com/google/uuid"
)

// IDPrefix marks project identifiers.
const IDPrefix = "proj_"

// NewID returns a time-ordered, collision-resistant project id.
func NewID() string {
	return IDPrefix + uuid.Must(uuid.NewV7()).String()
}

// Validate checks the fields a project needs before it is stored.
func Validate(p Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidInput
	}
	return ValidateCoordinates(p.TechnicalSheet.Latitude, p.TechnicalSheet.Longitude)
}

// ValidateCoordinates checks that lat and lon are both set or both unset,
// and in range when set.
func ValidateCoordinates(lat, lon *float64) error {
	if (lat == nil) != (lon == nil) {
		return ErrInvalidInput
	}
	if lat != nil && (*lat < -90 || *lat > 90 || *lon < -180 || *lon > 180) {
		return ErrInvalidInput
	}
	return nil
}
