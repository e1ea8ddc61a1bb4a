package search

import (
	"fmt"
	"net/url"
	"strings"
)

// Step identifiers for the fixed evidence queries, in execution order.
const (
	StepLabDatabase    = "lab_database"
	StepCertificatePDF = "certificate_pdf"
	StepOfficialSite   = "official_site"
	StepMarketplace    = "marketplace"
	StepReview         = "review"
)

// Query couples a templated search string with the step it serves.
type Query struct {
	Step         string
	Text         string
	TargetDomain string // set when the match predicate is domain-based
}

// QuerySet builds the fixed evidence queries for a brand/model pair.
// Templates mirror the manual research flow: lab database first, official
// paperwork second, then retail and review confirmation.
func QuerySet(brand, model string) []Query {
	full := strings.TrimSpace(brand + " " + model)
	brandSite := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(brand), " ", "")) + ".com"

	return []Query{
		{
			Step:         StepLabDatabase,
			Text:         fmt.Sprintf("site:motocap.com.au %s", full),
			TargetDomain: "motocap",
		},
		{
			Step: StepCertificatePDF,
			Text: fmt.Sprintf("%s declaration of conformity filetype:pdf", full),
		},
		{
			Step:         StepOfficialSite,
			Text:         fmt.Sprintf("site:%s %s EN 13594", brandSite, strings.TrimSpace(model)),
			TargetDomain: brandSite,
		},
		{
			Step:         StepMarketplace,
			Text:         fmt.Sprintf("site:revzilla.com %s gloves", full),
			TargetDomain: "revzilla",
		},
		{
			Step: StepReview,
			Text: fmt.Sprintf("%s motorcycle glove EN 13594 review", full),
		},
	}
}

// GoogleLink converts a query into a clickable manual search URL. Every step
// that finds nothing automatically hands the user this escape hatch.
func GoogleLink(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}
