package recording

import "strings"

// MergeTags appends the candidates to tags in order, skipping blanks and
// tags already present. The input slice is not modified.
func MergeTags(tags []string, candidates ...string) []string {
	out := append([]string(nil), tags...)
	seen := make(map[string]struct{}, len(out)+len(candidates))
	for _, t := range out {
		seen[t] = struct{}{}
	}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
