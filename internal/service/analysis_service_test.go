package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilaldemir-collab/certificate-checker/internal/evidence"
	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/search"
)

// stubSearcher scripts outcomes per step by matching query markers.
type stubSearcher struct {
	outcomes map[string]models.SearchOutcome // step -> outcome
}

func (s *stubSearcher) Search(_ context.Context, query string, _ int) models.SearchOutcome {
	step := stepOf(query)
	if outcome, ok := s.outcomes[step]; ok {
		return outcome
	}
	return models.SearchOutcome{Status: models.SearchEmptyConfirmed}
}

func stepOf(query string) string {
	switch {
	case strings.Contains(query, "site:motocap"):
		return search.StepLabDatabase
	case strings.Contains(query, "filetype:pdf"):
		return search.StepCertificatePDF
	case strings.Contains(query, "site:revzilla"):
		return search.StepMarketplace
	case strings.Contains(query, "review"):
		return search.StepReview
	default:
		return search.StepOfficialSite
	}
}

func found(results ...models.SearchResult) models.SearchOutcome {
	return models.SearchOutcome{Status: models.SearchFound, Results: results}
}

func TestAnalyzeLabDatabaseHitIsCertifiedTier(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]models.SearchOutcome{
		search.StepLabDatabase: found(models.SearchResult{
			Title: "MotoCAP: Revit Sand 4",
			Href:  "https://www.motocap.com.au/glove/sand-4",
		}),
	}}
	svc := NewAnalysisService(searcher, nil)

	report, err := svc.Analyze(context.Background(), "Revit", "Sand 4")
	require.NoError(t, err)

	assert.Equal(t, 50, report.Score)
	assert.Equal(t, models.VerdictCertified, report.Verdict)
	require.Len(t, report.Steps, 5)
	lab := report.Steps[0]
	assert.Equal(t, search.StepLabDatabase, lab.Step)
	assert.True(t, lab.Matched)
	assert.Equal(t, evidence.PointsLabDatabase, lab.Points)
	require.NotNil(t, lab.Evidence)
	assert.Contains(t, lab.Evidence.Href, "motocap.com.au")
}

func TestAnalyzeAllBackendsFailedIsNeverScored(t *testing.T) {
	down := models.SearchOutcome{
		Status:      models.SearchAllBackendsFailed,
		Diagnostics: []string{"api backend: timeout", "html backend: timeout", "lite backend: timeout"},
	}
	searcher := &stubSearcher{outcomes: map[string]models.SearchOutcome{
		search.StepLabDatabase:    down,
		search.StepCertificatePDF: down,
		search.StepOfficialSite:   down,
		search.StepMarketplace:    down,
		search.StepReview:         down,
	}}
	svc := NewAnalysisService(searcher, nil)

	report, err := svc.Analyze(context.Background(), "Revit", "Sand 4")
	require.NoError(t, err)

	assert.Equal(t, 0, report.Score)
	assert.Equal(t, models.VerdictNotFound, report.Verdict)
	assert.True(t, report.SearchDegraded)
	for _, step := range report.Steps {
		assert.False(t, step.Matched)
		assert.Equal(t, models.SearchAllBackendsFailed, step.Status)
		assert.NotEmpty(t, step.ManualLink, "every failed step hands out an escape hatch")
	}
}

func TestAnalyzeWeakEvidenceGatedByCeiling(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]models.SearchOutcome{
		search.StepLabDatabase: found(models.SearchResult{
			Href: "https://www.motocap.com.au/glove/sand-4",
		}),
		search.StepOfficialSite: found(models.SearchResult{
			Href: "https://revit.com/sand-4",
		}),
		search.StepReview: found(models.SearchResult{
			Title:   "Sand 4 review",
			Href:    "https://example.com/review",
			Snippet: "certified to EN 13594",
		}),
	}}
	svc := NewAnalysisService(searcher, nil)

	report, err := svc.Analyze(context.Background(), "Revit", "Sand 4")
	require.NoError(t, err)

	// Lab hit establishes 50; official-site and review evidence are weaker
	// signals and cannot inflate past their ceilings.
	assert.Equal(t, 50, report.Score)
	official := report.Steps[2]
	assert.True(t, official.Matched)
	assert.Equal(t, 0, official.Points)
}

func TestAnalyzePDFPlusOfficialSiteStack(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]models.SearchOutcome{
		search.StepCertificatePDF: found(models.SearchResult{
			Title: "Declaration of conformity",
			Href:  "https://revit.com/docs/sand4-doc.pdf",
		}),
		search.StepOfficialSite: found(models.SearchResult{
			Href: "https://revit.com/sand-4",
		}),
	}}
	svc := NewAnalysisService(searcher, nil)

	report, err := svc.Analyze(context.Background(), "Revit", "Sand 4")
	require.NoError(t, err)

	// 40 (pdf) then 30 (official, still under the 50 ceiling) = 70.
	assert.Equal(t, 70, report.Score)
	assert.Equal(t, models.VerdictCertified, report.Verdict)
}

func TestAnalyzeReviewKeywordAloneIsInsufficient(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]models.SearchOutcome{
		search.StepReview: found(models.SearchResult{
			Title:   "Revit Sand 4 long-term review",
			Href:    "https://example.com/review",
			Snippet: "the label says EN 13594 level 1",
		}),
	}}
	svc := NewAnalysisService(searcher, nil)

	report, err := svc.Analyze(context.Background(), "Revit", "Sand 4")
	require.NoError(t, err)

	assert.Equal(t, 15, report.Score)
	assert.Equal(t, models.VerdictInsufficient, report.Verdict)
}

func TestAnalyzeVerifierConfirmsTruncatedSnippet(t *testing.T) {
	page := `<!DOCTYPE html><html><body><article>
<h1>Sand 4 in depth</h1>
<p>A very thorough hands-on with the Revit Sand 4 adventure glove over a full
season of commuting and weekend touring in mixed weather conditions.</p>
<p>The spec sheet confirms certification under EN 13594:2015 Level 1 with
knuckle protection, which the snippet never mentioned.</p>
<p>Overall a solid glove for warm-weather riding with real protection.</p>
</article></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	searcher := &stubSearcher{outcomes: map[string]models.SearchOutcome{
		search.StepReview: found(models.SearchResult{
			Title:   "Sand 4 in depth",
			Href:    srv.URL,
			Snippet: "a very thorough hands-on", // no keyword in the snippet
		}),
	}}
	svc := NewAnalysisService(searcher, evidence.NewVerifierWithClient(srv.Client()))

	report, err := svc.Analyze(context.Background(), "Revit", "Sand 4")
	require.NoError(t, err)

	assert.Equal(t, 15, report.Score)
	review := report.Steps[4]
	assert.True(t, review.Matched)
	assert.Contains(t, review.Notes, "standard confirmed in page text")
}

func TestAnalyzeRequiresBrandAndModel(t *testing.T) {
	svc := NewAnalysisService(&stubSearcher{outcomes: map[string]models.SearchOutcome{}}, nil)

	_, err := svc.Analyze(context.Background(), "", "Sand 4")
	assert.Error(t, err)
	_, err = svc.Analyze(context.Background(), "Revit", "")
	assert.Error(t, err)
}
