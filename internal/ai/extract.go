package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceRe = regexp.MustCompile("(?s)^```(\\w*)?\\s*\\n?(.*?)\\n?\\s*```$")
	spanRe  = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
)

// ExtractJSON decodes a model reply into out. A surrounding Markdown code
// fence is removed first; if the remainder still fails to parse, the first
// span from an opening brace or bracket to the last closing one is tried.
func ExtractJSON(text string, out any) error {
	s := strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(s); m != nil && m[2] != "" {
		s = strings.TrimSpace(m[2])
	}

	err := json.Unmarshal([]byte(s), out)
	if err == nil {
		return nil
	}

	span := spanRe.FindString(s)
	if span == "" {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := json.Unmarshal([]byte(span), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}
