package project_test

import (
	"strings"
	"testing"

	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestNewID_PrefixedAndUnique(t *testing.T) {
	a := project.NewID()
	b := project.NewID()
	require.True(t, strings.HasPrefix(a, project.IDPrefix))
	require.NotEqual(t, a, b)
}

func TestWithCoordinates(t *testing.T) {
	p := project.Project{ID: "p1", Name: "Forest"}
	require.False(t, p.HasCoordinates())

	located := p.WithCoordinates(40.4, -3.7)
	require.True(t, located.HasCoordinates())
	require.Equal(t, 40.4, *located.TechnicalSheet.Latitude)
	require.Equal(t, -3.7, *located.TechnicalSheet.Longitude)
	require.False(t, p.HasCoordinates(), "original must not change")
}

func TestValidate(t *testing.T) {
	lat := 10.0
	tests := []struct {
		name    string
		project project.Project
		wantErr bool
	}{
		{name: "valid", project: project.Project{Name: "Coast"}},
		{name: "blank name", project: project.Project{Name: "  "}, wantErr: true},
		{name: "latitude only", project: project.Project{Name: "Coast", TechnicalSheet: project.TechnicalSheet{Latitude: &lat}}, wantErr: true},
		{name: "out of range", project: project.Project{Name: "Coast"}.WithCoordinates(91, 0), wantErr: true},
		{name: "with coordinates", project: project.Project{Name: "Coast"}.WithCoordinates(43.3, -8.4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := project.Validate(tc.project)
			if tc.wantErr {
				require.ErrorIs(t, err, project.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	lat, lon, far := 42.9, -9.26, 181.0
	require.NoError(t, project.ValidateCoordinates(nil, nil))
	require.NoError(t, project.ValidateCoordinates(&lat, &lon))
	require.ErrorIs(t, project.ValidateCoordinates(&lat, nil), project.ErrInvalidInput)
	require.ErrorIs(t, project.ValidateCoordinates(&lat, &far), project.ErrInvalidInput)

	// Validate still insists on a name; coordinate checks alone do not.
	blank := project.Project{}.WithCoordinates(lat, lon)
	require.ErrorIs(t, project.Validate(blank), project.ErrInvalidInput)
	require.NoError(t, project.ValidateCoordinates(blank.TechnicalSheet.Latitude, blank.TechnicalSheet.Longitude))
}
