package evidence

import (
	"strings"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// standardKeywords are the phrases whose presence in a title or snippet counts
// as a bare certification mention. "CE" is matched as a whole token to keep
// words like "certificate" or "price" from triggering it twice.
var standardKeywords = []string{"en 13594", "certified"}

// MatchDomain reports whether the result links into the target site.
func MatchDomain(res models.SearchResult, domain string) bool {
	if domain == "" {
		return false
	}
	return strings.Contains(strings.ToLower(res.Href), strings.ToLower(domain))
}

// MatchPDF reports whether the result links to a PDF document.
func MatchPDF(res models.SearchResult) bool {
	href := strings.ToLower(res.Href)
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	return strings.HasSuffix(href, ".pdf")
}

// MatchKeywords reports whether the result's title or snippet mentions a
// certification marker.
func MatchKeywords(res models.SearchResult) bool {
	text := strings.ToLower(res.Title + " " + res.Snippet)
	for _, kw := range standardKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return hasToken(text, "ce")
}

// MentionsStandard reports whether free-running page text cites EN 13594.
// Used by the verifier on fetched article bodies.
func MentionsStandard(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "en 13594") || strings.Contains(lower, "en13594")
}

// hasToken reports whether word appears as a standalone token in text.
func hasToken(text, word string) bool {
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if tok == word {
			return true
		}
	}
	return false
}
