package ai

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rpggio/soundxcape/internal/domain/project"
)

const maxSuggestedTags = 5

// SearchScope selects the wording of search suggestions.
type SearchScope string

const (
	ScopeApp SearchScope = "app"
	ScopeMap SearchScope = "map"
)

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// SuggestTags proposes up to five tags for a recording.
func (c *Client) SuggestTags(ctx context.Context, title, description string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Based on the sound recording title %q and its description %q, suggest up to %d relevant tags. "+
			"The recording is part of a soundscape project. Prefer concise, descriptive tags. "+
			`Return a JSON array of strings. Example: ["nature", "ambience", "urban"]`,
		title, description, maxSuggestedTags)

	var raw []string
	if err := c.GenerateJSON(ctx, prompt, "", &raw); err != nil {
		return nil, fmt.Errorf("suggesting tags: %w", err)
	}
	return cleanList(raw, maxSuggestedTags), nil
}

// SummarizeVoiceNote produces a short imagined transcription or summary for
// a voice note.
func (c *Client) SummarizeVoiceNote(ctx context.Context, title string, durationSeconds float64) (string, error) {
	prompt := fmt.Sprintf(
		"For a voice note titled %q with a duration of %s, inside a soundscape project:\n"+
			"1. Provide a brief imagined transcription or a concise summary of what it might be about.\n"+
			"2. If the note is very short (e.g. under 5 seconds), it may be a specific sound rather than narration.\n"+
			"Keep the answer brief and relevant to a voice note for a sound project.",
		title, FormatDuration(durationSeconds))

	text, err := c.GenerateText(ctx, prompt, "")
	if err != nil {
		return "", fmt.Errorf("summarizing voice note: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// RecordingIdeas proposes three recording ideas for a project.
func (c *Client) RecordingIdeas(ctx context.Context, p project.Project) ([]string, error) {
	prompt := fmt.Sprintf(
		"For a soundscape recording project titled %q, set in %q with the theme %q, suggest 3 creative, "+
			"specific ideas for sound recordings. Consider unique aspects that could be captured. "+
			`Format the answer as a JSON array of strings. Example: ["The echo inside the old abandoned mill at dawn", `+
			`"Night wildlife near the hidden stream", "The local market at rush hour"]`,
		p.Name, p.Location, p.Theme)

	var raw []string
	if err := c.GenerateJSON(ctx, prompt, "", &raw); err != nil {
		return nil, fmt.Errorf("generating recording ideas: %w", err)
	}
	return cleanList(raw, 0), nil
}

// SearchSuggestions proposes related queries for term. A blank term yields
// no suggestions and no request.
func (c *Client) SearchSuggestions(ctx context.Context, term string, scope SearchScope) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []string{}, nil
	}

	var prompt string
	switch scope {
	case ScopeMap:
		prompt = fmt.Sprintf(
			"The user is searching for %q on the soundXcape project map. Suggest 3-4 search queries related to "+
				"project locations or themes they might find on a map. Return a JSON array of strings. "+
				`Example: ["projects near the coast", "recordings in national parks", "urban sounds downtown"]`,
			term)
	default:
		prompt = fmt.Sprintf(
			"The user is searching for %q in the soundXcape soundscape recording app. Suggest 3-4 more specific "+
				"queries or related content types they might be looking for (projects, recordings, locations, audio themes). "+
				`Return a JSON array of strings. Example: ["bird recordings in the forest", "coastal projects", "night city sounds"]`,
			term)
	}

	var raw []string
	if err := c.GenerateJSON(ctx, prompt, "", &raw); err != nil {
		return nil, fmt.Errorf("suggesting searches: %w", err)
	}
	return cleanList(raw, 0), nil
}

// cleanList trims entries, drops blanks, and caps the result at limit (0 means no cap).
func cleanList(items []string, limit int) []string {
	out := []string{}
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
