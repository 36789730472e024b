package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/soundxcape/internal/ai"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
	"github.com/rpggio/soundxcape/internal/geocode"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("update project p1: %w", project.ErrProjectNotFound), "PROJECT_NOT_FOUND"},
		{reminder.ErrInvalidInput, "INVALID_INPUT"},
		{fmt.Errorf("suggesting tags: %w", ai.ErrUnavailable), "AI_UNAVAILABLE"},
		{geocode.ErrNotFound, "LOCATION_NOT_FOUND"},
	}
	for _, tt := range tests {
		apiErr := MapError(tt.err)
		require.NotNil(t, apiErr, tt.err.Error())
		require.Equal(t, tt.code, apiErr.Code)
	}

	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("disk on fire")))
}

func TestToolError_KeepsUnmappedErrors(t *testing.T) {
	boom := errors.New("boom")
	require.Same(t, boom, toolError(boom))

	err := toolError(project.ErrProjectNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, err.Error(), "PROJECT_NOT_FOUND")
}
