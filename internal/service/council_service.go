package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/anilaldemir-collab/certificate-checker/internal/council"
	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// ---- Service interface + implementation ------------------------------------

// CouncilService asks one multi-persona question and parses the role-labeled
// reply into sections.
type CouncilService interface {
	Convene(ctx context.Context, req models.CouncilRequest) models.CouncilResponse
}

type councilService struct {
	consult ConsultService
}

// NewCouncilService wires the underlying consultation service.
func NewCouncilService(consult ConsultService) CouncilService {
	return &councilService{consult: consult}
}

// Convene runs the council prompt in deep mode and parses the reply. Parsing
// never fails; when the reply carries no recognisable tags the raw text is
// returned with Structured=false so the caller can show it unmodified.
func (s *councilService) Convene(ctx context.Context, req models.CouncilRequest) models.CouncilResponse {
	answer := s.consult.Consult(ctx, models.ConsultRequest{
		Persona:  "council moderator",
		Question: councilQuestion(req.Brand, req.Model, len(req.Images) > 0),
		Mode:     "deep",
		Images:   req.Images,
	})

	if answer.Degraded {
		return models.CouncilResponse{
			Sections: sentinelSections(),
			Raw:      answer.Answer,
			Severity: council.SeverityWarning,
			Degraded: true,
		}
	}

	sections, structured := council.ParseSections(answer.Answer, council.DefaultTags)
	resp := models.CouncilResponse{
		Sections:   sections,
		Raw:        answer.Answer,
		Structured: structured,
		Model:      answer.Model,
	}
	if structured {
		resp.Severity = council.SeverityOf(sections["PRESIDENT"])
	} else {
		resp.Severity = council.SeverityWarning
	}
	return resp
}

// councilQuestion frames the four-role deliberation and pins the exact
// section-tag format the parser expects.
func councilQuestion(brand, model string, withImages bool) string {
	subject := "the motorcycle glove in the attached photos"
	if name := strings.TrimSpace(brand + " " + model); name != "" {
		subject = fmt.Sprintf("the motorcycle glove %q", name)
	}
	evidenceLine := "Base your assessment on your knowledge of this product."
	if withImages {
		evidenceLine = "Base your assessment on the attached photos of the product and its labels."
	}

	return fmt.Sprintf(`You chair a safety-certification council assessing %s. %s

Four council members each give a short opinion on whether this glove is genuinely EN 13594 / CE certified:
- The PRESIDENT states the overall verdict and a confidence percentage.
- The REGULATORY expert covers standards, markings and paperwork.
- The ENGINEER covers materials and protective construction.
- The DETECTIVE covers red flags: counterfeits, missing records, inconsistencies.

Reply with exactly these four sections and nothing else, each starting with its tag on its own line:
[PRESIDENT]
[REGULATORY]
[ENGINEER]
[DETECTIVE]`, subject, evidenceLine)
}

func sentinelSections() map[string]string {
	sections := make(map[string]string, len(council.DefaultTags))
	for _, tag := range council.DefaultTags {
		sections[tag] = council.Sentinel
	}
	return sections
}
