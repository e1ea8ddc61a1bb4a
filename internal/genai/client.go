// Package genai wraps the Google generative AI API: listing the models a
// credential can use, picking one by capability keyword, and running a single
// combined prompt (text plus optional images) against it.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// ErrMissingCredential is returned when no API key is configured. Callers
// surface it as an inline notice; it must never crash a request.
var ErrMissingCredential = errors.New("missing credential: no Google API key configured")

// Generator is the consultation-facing contract. The concrete Client talks to
// the real API; tests inject fakes.
type Generator interface {
	// ListModelNames returns identifiers that support content generation.
	ListModelNames(ctx context.Context) ([]string, error)
	// Generate sends one combined prompt (plus optional images) to the model.
	Generate(ctx context.Context, model, prompt string, images []models.Image) (string, error)
}

// Client implements Generator against the Gemini API using an API key.
// A fresh API client is dialed per call; the underlying transport is cheap
// and the server holds no long-lived connection state.
type Client struct {
	apiKey string
}

// NewClient returns a Client. An empty apiKey is accepted: every call will
// then fail with ErrMissingCredential, which is the designed degraded state.
func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

// Configured reports whether a credential is present. The credential is never
// validated ahead of use—the first failing call is where invalidity surfaces.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) connect(ctx context.Context) (*gemini.Client, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}
	client, err := gemini.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create generative AI client: %w", err)
	}
	return client, nil
}

// ListModelNames fetches the identifiers this credential can access, filtered
// to those supporting content generation. The "models/" prefix is stripped so
// selection operates on bare identifiers.
func (c *Client) ListModelNames(ctx context.Context) ([]string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	var names []string
	it := client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		for _, method := range info.SupportedGenerationMethods {
			if method == "generateContent" {
				names = append(names, strings.TrimPrefix(info.Name, "models/"))
				break
			}
		}
	}
	if len(names) == 0 {
		return nil, ErrNoModels
	}
	log.Printf("credential can generate with %d model(s)", len(names))
	return names, nil
}

// Generate runs one combined request: the prompt text first, then each image
// as an additional content part. Never call this with images on a model that
// is not multimodal—selection guarantees that upstream.
func (c *Client) Generate(ctx context.Context, model, prompt string, images []models.Image) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	m := client.GenerativeModel(model)
	m.SetTemperature(0.4)
	m.SafetySettings = defaultSafetySettings()

	parts := make([]gemini.Part, 0, len(images)+1)
	parts = append(parts, gemini.Text(prompt))
	for _, img := range images {
		parts = append(parts, gemini.ImageData(imageFormat(img.MimeType), img.Data))
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", model, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model %s returned no candidates", model)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(gemini.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model %s returned no text parts", model)
	}
	return sb.String(), nil
}

func defaultSafetySettings() []*gemini.SafetySetting {
	categories := []gemini.HarmCategory{
		gemini.HarmCategoryHarassment,
		gemini.HarmCategoryHateSpeech,
		gemini.HarmCategorySexuallyExplicit,
		gemini.HarmCategoryDangerousContent,
	}
	settings := make([]*gemini.SafetySetting, 0, len(categories))
	for _, cat := range categories {
		settings = append(settings, &gemini.SafetySetting{
			Category:  cat,
			Threshold: gemini.HarmBlockMediumAndAbove,
		})
	}
	return settings
}

// imageFormat converts a MIME type ("image/jpeg") to the bare format string
// the API expects ("jpeg"). Unknown types default to jpeg.
func imageFormat(mimeType string) string {
	if format, ok := strings.CutPrefix(strings.ToLower(mimeType), "image/"); ok && format != "" {
		return format
	}
	return "jpeg"
}
