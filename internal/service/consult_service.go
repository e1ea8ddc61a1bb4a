package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anilaldemir-collab/certificate-checker/internal/genai"
	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// ---- Service interface + implementation ------------------------------------

// ConsultService answers persona-framed questions through the generative
// backend. Invocation failures are converted into user-facing diagnostic
// strings at this boundary; nothing propagates as an uncaught fault.
type ConsultService interface {
	Consult(ctx context.Context, req models.ConsultRequest) models.ConsultResponse
}

type consultService struct {
	ai       genai.Generator
	personas map[string]genai.Persona
	language string
	timeout  time.Duration
}

// NewConsultService wires the generative client, the persona table, the
// response-language directive and the per-attempt generation timeout.
// A zero timeout disables the deadline.
func NewConsultService(ai genai.Generator, personas map[string]genai.Persona, language string, timeout time.Duration) ConsultService {
	if language == "" {
		language = "English"
	}
	return &consultService{ai: ai, personas: personas, language: language, timeout: timeout}
}

// Consult selects a model for the requested mode and runs one combined
// prompt. A deep-mode failure gets a single fast-mode retry before the
// failure is reported as a diagnostic answer.
func (s *consultService) Consult(ctx context.Context, req models.ConsultRequest) models.ConsultResponse {
	mode := genai.ParseMode(req.Mode)

	answer, model, err := s.attempt(ctx, req, mode)
	if err != nil && mode == genai.ModeDeep && !errors.Is(err, genai.ErrMissingCredential) {
		log.Printf("deep consultation failed (%v); retrying in fast mode", err)
		answer, model, err = s.attempt(ctx, req, genai.ModeFast)
	}
	if err != nil {
		return models.ConsultResponse{
			Answer:   diagnostic(err),
			Degraded: true,
		}
	}
	return models.ConsultResponse{Answer: answer, Model: model}
}

// attempt runs one model selection plus generation. The configured timeout
// bounds each attempt separately so a deep-mode stall still leaves the fast
// retry its full budget.
func (s *consultService) attempt(ctx context.Context, req models.ConsultRequest, mode genai.Mode) (answer, model string, err error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	available, err := s.ai.ListModelNames(ctx)
	if err != nil {
		return "", "", err
	}

	model, err = genai.SelectModel(available, mode)
	if err != nil {
		return "", "", err
	}
	if len(req.Images) > 0 && !genai.Multimodal(model) {
		model, err = genai.SelectVisionModel(available, mode)
		if err != nil {
			return "", "", err
		}
	}
	log.Printf("consulting %s in %s mode (%d image(s))", model, mode, len(req.Images))

	prompt := s.buildPrompt(req.Persona, req.Question)
	answer, err = s.ai.Generate(ctx, model, prompt, req.Images)
	if err != nil {
		return "", "", err
	}
	return answer, model, nil
}

// buildPrompt concatenates persona instruction, task question and the
// response-language directive into a single request.
func (s *consultService) buildPrompt(persona, question string) string {
	var sb strings.Builder
	sb.WriteString(genai.Instruction(s.personas, persona))
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\nAnswer in ")
	sb.WriteString(s.language)
	sb.WriteString(".")
	return sb.String()
}

// diagnostic renders an error as the answer text the user sees.
func diagnostic(err error) string {
	if errors.Is(err, genai.ErrMissingCredential) {
		return "AI consultation unavailable: missing credential. Set GOOGLE_API_KEY to enable analysis."
	}
	return fmt.Sprintf("AI consultation failed: %v. Try again, or use the manual search links.", err)
}
