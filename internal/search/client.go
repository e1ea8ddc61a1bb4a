// Package search talks to the DuckDuckGo text-search frontends. There is no
// official SDK; this is a minimal client in the spirit of a thin REST
// wrapper—just the three interchangeable backends the evidence flow needs.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// Searcher issues one query and reports the tri-state outcome. It never
// returns a Go error: transport failures are folded into the outcome so the
// caller can distinguish "nothing found" from "search unavailable".
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) models.SearchOutcome
}

// Backend identifiers, tried strictly in this order. Each one is a different
// DuckDuckGo frontend with near-identical semantics.
var defaultBackends = []string{"api", "html", "lite"}

var defaultEndpoints = map[string]string{
	"api":  "https://api.duckduckgo.com/",
	"html": "https://html.duckduckgo.com/html/",
	"lite": "https://lite.duckduckgo.com/lite/",
}

const userAgent = "certificate-checker/1.0 (+https://github.com/anilaldemir-collab/certificate-checker)"

// Client queries DuckDuckGo over a fixed list of interchangeable backends.
// A backend that errors or answers empty is skipped; alternatives are tried
// sequentially, never in parallel.
type Client struct {
	http      *http.Client
	region    string
	backends  []string
	endpoints map[string]string
}

// NewClient returns a ready-to-use search client. region is the DuckDuckGo
// locale hint ("wt-wt" for worldwide); timeout bounds each backend attempt.
func NewClient(region string, timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		region:    region,
		backends:  defaultBackends,
		endpoints: defaultEndpoints,
	}
}

// Search runs the query against each backend in priority order and returns
// the tri-state outcome. See models.SearchStatus for the semantics.
func (c *Client) Search(ctx context.Context, query string, maxResults int) models.SearchOutcome {
	if maxResults <= 0 {
		maxResults = 3
	}

	var diags []string
	answered := false

	for _, backend := range c.backends {
		results, err := c.searchBackend(ctx, backend, query, maxResults)
		if err != nil {
			diags = append(diags, fmt.Sprintf("%s backend: %v", backend, err))
			continue
		}
		answered = true
		if len(results) == 0 {
			diags = append(diags, fmt.Sprintf("%s backend: no results", backend))
			continue
		}
		log.Printf("search %q: %d result(s) via %s backend", query, len(results), backend)
		return models.SearchOutcome{
			Status:      models.SearchFound,
			Results:     results,
			Diagnostics: diags,
		}
	}

	status := models.SearchAllBackendsFailed
	if answered {
		status = models.SearchEmptyConfirmed
	}
	log.Printf("search %q: %s (%d diagnostic lines)", query, status, len(diags))
	return models.SearchOutcome{Status: status, Diagnostics: diags}
}

func (c *Client) searchBackend(ctx context.Context, backend, query string, maxResults int) ([]models.SearchResult, error) {
	endpoint, ok := c.endpoints[backend]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q", backend)
	}

	switch backend {
	case "api":
		return c.searchAPI(ctx, endpoint, query, maxResults)
	case "html":
		return c.searchHTML(ctx, endpoint, query, maxResults)
	case "lite":
		return c.searchLite(ctx, endpoint, query, maxResults)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// searchAPI uses the instant-answer JSON endpoint. It answers fewer queries
// than the HTML frontends but is the cheapest to parse.
func (c *Client) searchAPI(ctx context.Context, endpoint, query string, maxResults int) ([]models.SearchResult, error) {
	u := fmt.Sprintf("%s?q=%s&format=json&no_html=1&skip_disambig=1&kl=%s",
		endpoint, url.QueryEscape(query), url.QueryEscape(c.region))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Heading       string `json:"Heading"`
		Abstract      string `json:"Abstract"`
		AbstractURL   string `json:"AbstractURL"`
		RelatedTopics []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"RelatedTopics"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode instant-answer response: %w", err)
	}

	var results []models.SearchResult
	if payload.AbstractURL != "" {
		results = append(results, models.SearchResult{
			Title:   payload.Heading,
			Href:    payload.AbstractURL,
			Snippet: payload.Abstract,
		})
	}
	for _, topic := range payload.RelatedTopics {
		if topic.FirstURL == "" {
			continue
		}
		results = append(results, models.SearchResult{
			Title:   topic.Text,
			Href:    topic.FirstURL,
			Snippet: topic.Text,
		})
		if len(results) >= maxResults {
			break
		}
	}
	return clip(results, maxResults), nil
}

// searchHTML scrapes the html.duckduckgo.com result page.
func (c *Client) searchHTML(ctx context.Context, endpoint, query string, maxResults int) ([]models.SearchResult, error) {
	u := fmt.Sprintf("%s?q=%s&kl=%s", endpoint, url.QueryEscape(query), url.QueryEscape(c.region))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html results: %w", err)
	}

	var results []models.SearchResult
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		href, _ := link.Attr("href")
		href = decodeRedirect(href)
		if href == "" {
			return true
		}
		results = append(results, models.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			Href:    href,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
		return len(results) < maxResults
	})
	return results, nil
}

// searchLite scrapes the lite.duckduckgo.com table layout.
func (c *Client) searchLite(ctx context.Context, endpoint, query string, maxResults int) ([]models.SearchResult, error) {
	u := fmt.Sprintf("%s?q=%s&kl=%s", endpoint, url.QueryEscape(query), url.QueryEscape(c.region))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse lite results: %w", err)
	}

	var results []models.SearchResult
	doc.Find("a.result-link").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		href = decodeRedirect(href)
		if href == "" {
			return true
		}
		snippet := link.Closest("tr").Next().Find("td.result-snippet").Text()
		results = append(results, models.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			Href:    href,
			Snippet: strings.TrimSpace(snippet),
		})
		return len(results) < maxResults
	})
	return results, nil
}

// get executes the HTTP request and returns the response body.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, application/json;q=0.9, */*;q=0.1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

// decodeRedirect unwraps DuckDuckGo's /l/?uddg=<target> redirect links so the
// caller sees the destination URL. Non-redirect links pass through untouched.
func decodeRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func clip(results []models.SearchResult, max int) []models.SearchResult {
	if len(results) > max {
		return results[:max]
	}
	return results
}
