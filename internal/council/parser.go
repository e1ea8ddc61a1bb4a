// Package council parses the multi-persona AI reply format: one response
// carrying several role-labeled opinions as bracket-tagged sections.
package council

import "strings"

// Sentinel fills any section the model failed to produce. Callers must treat
// it as "unknown", never as a negative finding.
const Sentinel = "no data"

// DefaultTags are the council roles, in display order.
var DefaultTags = []string{"PRESIDENT", "REGULATORY", "ENGINEER", "DETECTIVE"}

// ParseSections splits raw on the literal '[' delimiter and prefix-matches
// each fragment against "TAG]" (case-sensitive). A section's text runs from
// its tag marker to the next delimiter, trimmed of surrounding whitespace.
//
// The function is total: every expected tag is present in the returned map
// (sentinel-filled when absent) and no input can make it fail. The second
// return value is false when no tag matched at all, in which case the caller
// should fall back to displaying raw unmodified.
func ParseSections(raw string, tags []string) (map[string]string, bool) {
	sections := make(map[string]string, len(tags))
	for _, tag := range tags {
		sections[tag] = Sentinel
	}

	structured := false
	for _, fragment := range strings.Split(raw, "[") {
		for _, tag := range tags {
			marker := tag + "]"
			if !strings.HasPrefix(fragment, marker) {
				continue
			}
			structured = true
			if body := strings.TrimSpace(fragment[len(marker):]); body != "" {
				sections[tag] = body
			}
			break
		}
	}
	return sections, structured
}
