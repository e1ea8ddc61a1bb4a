package service

import (
	"context"
	"errors"
	"log"

	"github.com/anilaldemir-collab/certificate-checker/internal/evidence"
	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/search"
)

// ---- Service interface + implementation ------------------------------------

// AnalysisService runs the fixed evidence queries for a brand/model pair,
// scores the findings and produces the tier verdict.
type AnalysisService interface {
	Analyze(ctx context.Context, brand, model string) (models.Report, error)
}

type analysisService struct {
	searcher   search.Searcher
	verifier   *evidence.Verifier // nil disables page-text verification
	maxResults int
}

// NewAnalysisService wires the searcher and the optional page verifier.
func NewAnalysisService(searcher search.Searcher, verifier *evidence.Verifier) AnalysisService {
	return &analysisService{
		searcher:   searcher,
		verifier:   verifier,
		maxResults: 3,
	}
}

// Analyze walks the query set sequentially. Each step accumulates points per
// the signal table in the evidence package; weaker signals are gated so they
// never outrank evidence a stronger step already established.
func (s *analysisService) Analyze(ctx context.Context, brand, model string) (models.Report, error) {
	if brand == "" || model == "" {
		return models.Report{}, errors.New("brand and model are required")
	}

	log.Printf("analyzing %q %q", brand, model)
	scorer := evidence.NewScorer()
	report := models.Report{Brand: brand, Model: model}

	for _, q := range search.QuerySet(brand, model) {
		outcome := s.searcher.Search(ctx, q.Text, s.maxResults)

		finding := models.StepFinding{
			Step:       q.Step,
			Query:      q.Text,
			Status:     outcome.Status,
			ManualLink: search.GoogleLink(q.Text),
			Notes:      outcome.Diagnostics,
		}
		if outcome.Status == models.SearchAllBackendsFailed {
			report.SearchDegraded = true
		}

		if hit := s.matchStep(ctx, q, outcome, &finding); hit != nil {
			finding.Matched = true
			finding.Evidence = hit
			finding.Points = s.award(scorer, q.Step)
			log.Printf("step %s matched %s (+%d, score now %d)", q.Step, hit.Href, finding.Points, scorer.Score())
		}
		report.Steps = append(report.Steps, finding)
	}

	report.Score = scorer.Score()
	report.Verdict = scorer.Verdict()
	log.Printf("analysis of %q %q: score %d/100, verdict %s", brand, model, report.Score, report.Verdict)
	return report, nil
}

// matchStep applies the step's predicate to the search results and returns
// the first satisfying result, or nil.
func (s *analysisService) matchStep(ctx context.Context, q search.Query, outcome models.SearchOutcome, finding *models.StepFinding) *models.SearchResult {
	if outcome.Status != models.SearchFound {
		return nil
	}

	for i := range outcome.Results {
		res := outcome.Results[i]
		switch q.Step {
		case search.StepLabDatabase, search.StepOfficialSite, search.StepMarketplace:
			if evidence.MatchDomain(res, q.TargetDomain) {
				return &res
			}
		case search.StepCertificatePDF:
			if evidence.MatchPDF(res) {
				return &res
			}
		case search.StepReview:
			if evidence.MatchKeywords(res) {
				return &res
			}
		}
	}

	// Review snippets are often truncated before the standard number shows
	// up; read the top hit's page text before giving up on the step.
	if q.Step == search.StepReview && s.verifier != nil && len(outcome.Results) > 0 {
		top := outcome.Results[0]
		confirmed, err := s.verifier.ConfirmsStandard(ctx, top.Href)
		if err != nil {
			finding.Notes = append(finding.Notes, "page verification skipped: "+err.Error())
			return nil
		}
		if confirmed {
			finding.Notes = append(finding.Notes, "standard confirmed in page text")
			return &top
		}
	}
	return nil
}

// award maps a step onto its signal. Lab and PDF hits add unconditionally;
// the rest only count while the score is under the stronger tier's ceiling.
func (s *analysisService) award(scorer *evidence.Scorer, step string) int {
	switch step {
	case search.StepLabDatabase:
		return scorer.Add(evidence.PointsLabDatabase)
	case search.StepCertificatePDF:
		return scorer.Add(evidence.PointsCertificate)
	case search.StepOfficialSite:
		return scorer.AddBelow(evidence.CeilingOfficialSite, evidence.PointsOfficialSite)
	case search.StepMarketplace:
		return scorer.AddBelow(evidence.CeilingMarketplace, evidence.PointsMarketplace)
	case search.StepReview:
		return scorer.AddBelow(evidence.CeilingReview, evidence.PointsReview)
	}
	return 0
}
