package evidence

import (
	"context"
	"fmt"
	"net/http"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const maxVerifyBytes = 2 << 20

// Verifier fetches a search hit and scans its readable text for a standard
// citation. It backs the review step when titles and snippets alone are not
// conclusive; a fetch failure only means "unconfirmed", never an error for
// the analysis as a whole.
type Verifier struct {
	client *http.Client
}

// NewVerifier returns a Verifier with its own bounded HTTP client.
func NewVerifier(timeout time.Duration) *Verifier {
	return &Verifier{client: &http.Client{Timeout: timeout}}
}

// NewVerifierWithClient is the test seam.
func NewVerifierWithClient(client *http.Client) *Verifier {
	return &Verifier{client: client}
}

// ConfirmsStandard fetches pageURL, extracts the article text and reports
// whether it cites EN 13594.
func (v *Verifier) ConfirmsStandard(ctx context.Context, pageURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", userAgentVerify)

	resp, err := v.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("unexpected status %s", resp.Status)
	}

	article, err := readability.FromReader(http.MaxBytesReader(nil, resp.Body, maxVerifyBytes), nil)
	if err != nil {
		return false, fmt.Errorf("extracting content from %s: %w", pageURL, err)
	}
	return MentionsStandard(article.TextContent), nil
}

const userAgentVerify = "certificate-checker/1.0"
