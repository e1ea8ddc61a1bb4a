package council

import "strings"

// Display severities for the verdict section.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeveritySuccess = "success"
)

// Keyword sniffing over free text is brittle; these lists drive presentation
// only and must never feed back into scoring.
var (
	riskKeywords = []string{
		"0%", " 0 percent", "zero percent",
		"counterfeit", "fake", "not certified", "uncertified", "no evidence",
	}
	cautionKeywords = []string{
		"insufficient", "unverified", "unclear", "caution", "cannot confirm", "inconclusive",
	}
)

// SeverityOf inspects the president/verdict section and picks a display
// severity. Sentinel or empty text is a warning: the verdict is unknown.
func SeverityOf(verdict string) string {
	text := strings.ToLower(strings.TrimSpace(verdict))
	if text == "" || text == Sentinel {
		return SeverityWarning
	}
	for _, kw := range riskKeywords {
		if strings.Contains(text, kw) {
			return SeverityError
		}
	}
	for _, kw := range cautionKeywords {
		if strings.Contains(text, kw) {
			return SeverityWarning
		}
	}
	return SeveritySuccess
}
