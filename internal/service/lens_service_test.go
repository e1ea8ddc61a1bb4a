package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/search"
	"github.com/anilaldemir-collab/certificate-checker/internal/session"
)

// identifyingConsult replies to identification prompts in the BRAND:/MODEL:
// contract and records every question it was asked.
type identifyingConsult struct {
	answers   []string // popped per call
	degraded  bool
	questions []string
}

func (s *identifyingConsult) Consult(_ context.Context, req models.ConsultRequest) models.ConsultResponse {
	s.questions = append(s.questions, req.Question)
	if s.degraded {
		return models.ConsultResponse{Answer: "AI consultation unavailable: missing credential.", Degraded: true}
	}
	answer := "BRAND: Revit\nMODEL: Sand 4"
	if len(s.answers) > 0 {
		answer = s.answers[0]
		s.answers = s.answers[1:]
	}
	return models.ConsultResponse{Answer: answer, Model: "gemini-1.5-flash"}
}

func lensFixture(consult ConsultService) LensService {
	searcher := &stubSearcher{outcomes: map[string]models.SearchOutcome{
		search.StepLabDatabase: found(models.SearchResult{
			Href: "https://www.motocap.com.au/glove/sand-4",
		}),
	}}
	return NewLensService(session.NewStore(), consult, NewAnalysisService(searcher, nil))
}

func oneImage() []models.Image {
	return []models.Image{{MimeType: "image/jpeg", Data: []byte{0xff, 0xd8}}}
}

func TestLensHappyPath(t *testing.T) {
	consult := &identifyingConsult{}
	svc := lensFixture(consult)
	ctx := context.Background()

	sess, err := svc.Begin(ctx, oneImage())
	require.NoError(t, err)
	assert.Equal(t, session.StateIdentified, sess.State)
	require.NotNil(t, sess.Guess)
	assert.Equal(t, "Revit", sess.Guess.Brand)
	assert.Equal(t, "Sand 4", sess.Guess.Model)

	sess, err = svc.Confirm(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StateConfirmed, sess.State)

	sess, err = svc.Analyze(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StateDone, sess.State)
	require.NotNil(t, sess.Report)
	assert.Equal(t, models.VerdictCertified, sess.Report.Verdict)
	assert.Equal(t, 50, sess.Report.Score)
}

func TestLensRejectReidentifiesWithExclusions(t *testing.T) {
	consult := &identifyingConsult{answers: []string{
		"BRAND: Revit\nMODEL: Sand 3",
		"BRAND: Revit\nMODEL: Sand 4",
	}}
	svc := lensFixture(consult)
	ctx := context.Background()

	sess, err := svc.Begin(ctx, oneImage())
	require.NoError(t, err)
	assert.Equal(t, "Sand 3", sess.Guess.Model)

	sess, err = svc.Reject(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StateIdentified, sess.State)
	assert.Equal(t, "Sand 4", sess.Guess.Model)
	require.Len(t, sess.Rejected, 1)
	assert.Equal(t, "Sand 3", sess.Rejected[0].Model)

	// The second identification names the rejected guess as excluded.
	require.Len(t, consult.questions, 2)
	assert.Contains(t, consult.questions[1], "Revit Sand 3")
	assert.Contains(t, consult.questions[1], "NOT")
}

func TestLensEditOverridesGuess(t *testing.T) {
	consult := &identifyingConsult{answers: []string{"no idea, sorry"}}
	svc := lensFixture(consult)
	ctx := context.Background()

	sess, err := svc.Begin(ctx, oneImage())
	require.NoError(t, err)
	assert.Empty(t, sess.Guess.Brand)
	assert.Contains(t, sess.Guess.Notes, "could not identify")

	sess, err = svc.Edit(sess.ID, "Revit", "Sand 4")
	require.NoError(t, err)
	assert.Equal(t, session.StateConfirmed, sess.State)
	assert.Equal(t, "Revit", sess.Guess.Brand)

	sess, err = svc.Analyze(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.StateDone, sess.State)
}

func TestLensDegradedIdentificationStillUsable(t *testing.T) {
	consult := &identifyingConsult{degraded: true}
	svc := lensFixture(consult)

	sess, err := svc.Begin(context.Background(), oneImage())
	require.NoError(t, err)
	assert.Equal(t, session.StateIdentified, sess.State)
	assert.Contains(t, sess.Guess.Notes, "missing credential")

	// Confirming an empty guess is refused; editing works.
	_, err = svc.Confirm(sess.ID)
	assert.Error(t, err)
	_, err = svc.Edit(sess.ID, "Revit", "Sand 4")
	assert.NoError(t, err)
}

func TestLensGuardsTransitions(t *testing.T) {
	consult := &identifyingConsult{}
	svc := lensFixture(consult)
	ctx := context.Background()

	sess, err := svc.Begin(ctx, oneImage())
	require.NoError(t, err)

	// Analyze before confirm is an invalid transition.
	_, err = svc.Analyze(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrInvalidTransition)

	_, err = svc.Confirm(sess.ID)
	require.NoError(t, err)
	// Rejecting after confirmation is too late.
	_, err = svc.Reject(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrInvalidTransition)
}

func TestLensRequiresImages(t *testing.T) {
	svc := lensFixture(&identifyingConsult{})
	_, err := svc.Begin(context.Background(), nil)
	assert.Error(t, err)
}

func TestLensUnknownSession(t *testing.T) {
	svc := lensFixture(&identifyingConsult{})
	_, err := svc.Get(strings.Repeat("0", 36))
	assert.ErrorIs(t, err, session.ErrNotFound)
}
