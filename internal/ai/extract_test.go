package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "bare", in: `["a","b"]`, want: []string{"a", "b"}},
		{name: "fenced", in: "```json\n[\"a\"]\n```", want: []string{"a"}},
		{name: "fenced without language", in: "```\n[\"x\", \"y\"]\n```", want: []string{"x", "y"}},
		{name: "surrounded by prose", in: `Here you go: ["forest", "dawn"] enjoy!`, want: []string{"forest", "dawn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			require.NoError(t, ExtractJSON(tt.in, &got))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_Object(t *testing.T) {
	var got struct {
		Tags []string `json:"tags"`
	}
	require.NoError(t, ExtractJSON("Sure. {\"tags\": [\"rain\"]}", &got))
	require.Equal(t, []string{"rain"}, got.Tags)
}

func TestExtractJSON_Invalid(t *testing.T) {
	var got []string
	require.ErrorIs(t, ExtractJSON("no json here", &got), ErrInvalidJSON)
	require.ErrorIs(t, ExtractJSON("[broken", &got), ErrInvalidJSON)
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "0:00", FormatDuration(0))
	require.Equal(t, "0:05", FormatDuration(5.7))
	require.Equal(t, "1:05", FormatDuration(65))
	require.Equal(t, "12:00", FormatDuration(720))
	require.Equal(t, "0:00", FormatDuration(-3))
}
