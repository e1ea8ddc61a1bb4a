package evidence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

func TestMatchDomain(t *testing.T) {
	res := models.SearchResult{Href: "https://www.motocap.com.au/gloves/revit-sand-4"}

	assert.True(t, MatchDomain(res, "motocap"))
	assert.True(t, MatchDomain(res, "MOTOCAP"))
	assert.False(t, MatchDomain(res, "revzilla"))
	assert.False(t, MatchDomain(res, ""))
}

func TestMatchPDF(t *testing.T) {
	assert.True(t, MatchPDF(models.SearchResult{Href: "https://example.com/doc/conformity.pdf"}))
	assert.True(t, MatchPDF(models.SearchResult{Href: "https://example.com/DoC.PDF?download=1"}))
	assert.False(t, MatchPDF(models.SearchResult{Href: "https://example.com/pdf-viewer"}))
	assert.False(t, MatchPDF(models.SearchResult{Href: "https://example.com/doc.html"}))
}

func TestMatchKeywords(t *testing.T) {
	assert.True(t, MatchKeywords(models.SearchResult{Title: "Glove review", Snippet: "meets EN 13594 level 1"}))
	assert.True(t, MatchKeywords(models.SearchResult{Title: "Certified riding gloves tested"}))
	assert.True(t, MatchKeywords(models.SearchResult{Snippet: "carries a CE mark on the cuff"}))
	// "ce" must be a standalone token, not a substring.
	assert.False(t, MatchKeywords(models.SearchResult{Snippet: "great price on nice gloves"}))
	assert.False(t, MatchKeywords(models.SearchResult{Title: "summer gloves", Snippet: "very comfortable"}))
}

func TestVerifierConfirmsStandard(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>Sand 4 review</title></head><body>
<article>
<h1>Revit Sand 4 long-term review</h1>
<p>These gloves have held up well over two seasons of adventure riding. The
palm slider and the knuckle armor both survived a low-speed get-off.</p>
<p>On paper they are certified to EN 13594:2015, the European standard for
motorcycle gloves, which is the main reason I bought them.</p>
<p>Ventilation is excellent in summer, though the mesh lets rain straight
through, so pack waterproof overgloves for touring.</p>
</article></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	v := NewVerifierWithClient(srv.Client())
	confirmed, err := v.ConfirmsStandard(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, confirmed)
}

func TestVerifierReportsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	v := NewVerifierWithClient(srv.Client())
	confirmed, err := v.ConfirmsStandard(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.False(t, confirmed)
}

func TestMentionsStandard(t *testing.T) {
	assert.True(t, MentionsStandard("rated under EN 13594 for impact"))
	assert.True(t, MentionsStandard("the en13594 label"))
	assert.False(t, MentionsStandard("no standards mentioned here"))
}
