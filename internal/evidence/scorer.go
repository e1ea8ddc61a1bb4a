// Package evidence turns search findings into a confidence score and a
// three-tier verdict.
package evidence

import (
	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// Signal point values. Strong signals add unconditionally; weaker signals are
// gated by a ceiling so they can never inflate the score past the tier a
// stronger signal already established.
const (
	PointsLabDatabase  = 50 // certification lab test record
	PointsCertificate  = 40 // official declaration-of-conformity PDF
	PointsOfficialSite = 30 // manufacturer page mentioning the standard
	PointsMarketplace  = 20 // retail listing for the exact product
	PointsReview       = 15 // bare standard mention in review text

	CeilingOfficialSite = 50
	CeilingMarketplace  = 40
	CeilingReview       = 30

	MaxScore = 100
)

// Verdict tier thresholds.
const (
	certifiedThreshold    = 50
	insufficientThreshold = 15
)

// Scorer accumulates confidence points for one analysis run. The score only
// ever goes up and is clamped to [0,MaxScore]. One Scorer per submission;
// never shared across runs.
type Scorer struct {
	score int
}

// NewScorer starts a fresh run at zero.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Add applies an unconditional signal and returns the points actually added.
func (s *Scorer) Add(points int) int {
	return s.apply(points)
}

// AddBelow applies a gated signal: points count only while the current score
// is still under ceiling. Returns the points actually added (0 when gated).
func (s *Scorer) AddBelow(ceiling, points int) int {
	if s.score >= ceiling {
		return 0
	}
	return s.apply(points)
}

func (s *Scorer) apply(points int) int {
	if points < 0 {
		return 0
	}
	added := points
	if s.score+added > MaxScore {
		added = MaxScore - s.score
	}
	s.score += added
	return added
}

// Score returns the accumulated value, always within [0,MaxScore].
func (s *Scorer) Score() int {
	return s.score
}

// Verdict maps the final score onto the three-tier classification.
func (s *Scorer) Verdict() models.Verdict {
	switch {
	case s.score >= certifiedThreshold:
		return models.VerdictCertified
	case s.score >= insufficientThreshold:
		return models.VerdictInsufficient
	default:
		return models.VerdictNotFound
	}
}
