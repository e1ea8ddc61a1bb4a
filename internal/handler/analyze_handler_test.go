package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// fixedAnalysis returns a canned report.
type fixedAnalysis struct {
	report models.Report
	err    error
}

func (f *fixedAnalysis) Analyze(context.Context, string, string) (models.Report, error) {
	return f.report, f.err
}

func analyzeApp(svc *fixedAnalysis) *fiber.App {
	app := fiber.New()
	NewAnalyzeHandler(svc).Register(app.Group("/api/v1"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAnalyzeEndpointReturnsReport(t *testing.T) {
	svc := &fixedAnalysis{report: models.Report{
		Brand:   "Revit",
		Model:   "Sand 4",
		Score:   50,
		Verdict: models.VerdictCertified,
	}}
	app := analyzeApp(svc)

	resp := postJSON(t, app, "/api/v1/analyze", `{"brand":"Revit","model":"Sand 4"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 50, report.Score)
	assert.Equal(t, models.VerdictCertified, report.Verdict)
}

func TestAnalyzeEndpointValidatesInput(t *testing.T) {
	app := analyzeApp(&fixedAnalysis{})

	resp := postJSON(t, app, "/api/v1/analyze", `{"brand":"","model":"Sand 4"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
