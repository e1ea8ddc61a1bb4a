package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/session"
)

// ---- Service interface + implementation ------------------------------------

// LensService drives the photo-first wizard: identify a product from photos,
// let the user confirm, reject or correct the guess, then run the evidence
// analysis on the confirmed name.
type LensService interface {
	Begin(ctx context.Context, images []models.Image) (session.Session, error)
	Get(id string) (session.Session, error)
	Confirm(id string) (session.Session, error)
	Reject(ctx context.Context, id string) (session.Session, error)
	Edit(id, brand, model string) (session.Session, error)
	Analyze(ctx context.Context, id string) (session.Session, error)
}

type lensService struct {
	store    *session.Store
	consult  ConsultService
	analysis AnalysisService
}

// NewLensService wires the session store and the two downstream services.
func NewLensService(store *session.Store, consult ConsultService, analysis AnalysisService) LensService {
	return &lensService{store: store, consult: consult, analysis: analysis}
}

// Begin creates a session from the uploaded photos and runs the first
// identification. A failed identification still yields an Identified session
// with an empty guess so the user can type the name in via Edit.
func (s *lensService) Begin(ctx context.Context, images []models.Image) (session.Session, error) {
	if len(images) == 0 {
		return session.Session{}, errors.New("at least one image is required")
	}

	sess := s.store.Create(images)
	guess := s.identify(ctx, images, nil)
	return s.store.Mutate(sess.ID, func(cur *session.Session) error {
		if err := cur.Transition(session.StateIdentified); err != nil {
			return err
		}
		cur.Guess = &guess
		return nil
	})
}

// Get returns the current session snapshot.
func (s *lensService) Get(id string) (session.Session, error) {
	return s.store.Get(id)
}

// Confirm accepts the current guess.
func (s *lensService) Confirm(id string) (session.Session, error) {
	return s.store.Mutate(id, func(cur *session.Session) error {
		if cur.Guess == nil || cur.Guess.Brand == "" {
			return errors.New("nothing to confirm: no identification yet")
		}
		return cur.Transition(session.StateConfirmed)
	})
}

// Reject records the current guess as wrong and re-identifies, excluding
// everything rejected so far.
func (s *lensService) Reject(ctx context.Context, id string) (session.Session, error) {
	var images []models.Image
	var rejected []models.Guess

	snap, err := s.store.Mutate(id, func(cur *session.Session) error {
		if err := cur.Transition(session.StateIdentified); err != nil {
			return err
		}
		if cur.Guess != nil {
			cur.Rejected = append(cur.Rejected, *cur.Guess)
			cur.Guess = nil
		}
		images = cur.Images
		rejected = cur.Rejected
		return nil
	})
	if err != nil {
		return snap, err
	}

	guess := s.identify(ctx, images, rejected)
	return s.store.Mutate(id, func(cur *session.Session) error {
		cur.Guess = &guess
		return nil
	})
}

// Edit overrides the guess with a user-supplied brand/model and confirms it.
func (s *lensService) Edit(id, brand, model string) (session.Session, error) {
	if brand == "" || model == "" {
		return session.Session{}, errors.New("brand and model are required")
	}
	return s.store.Mutate(id, func(cur *session.Session) error {
		cur.Guess = &models.Guess{Brand: brand, Model: model, Notes: "entered by user"}
		return cur.Transition(session.StateConfirmed)
	})
}

// Analyze runs the evidence analysis on the confirmed guess.
func (s *lensService) Analyze(ctx context.Context, id string) (session.Session, error) {
	snap, err := s.store.Mutate(id, func(cur *session.Session) error {
		if cur.Guess == nil || cur.Guess.Brand == "" {
			return errors.New("no confirmed product to analyze")
		}
		return cur.Transition(session.StateAnalyzing)
	})
	if err != nil {
		return snap, err
	}

	report, err := s.analysis.Analyze(ctx, snap.Guess.Brand, snap.Guess.Model)
	if err != nil {
		return snap, err
	}
	return s.store.Mutate(id, func(cur *session.Session) error {
		if err := cur.Transition(session.StateDone); err != nil {
			return err
		}
		cur.Report = &report
		return nil
	})
}

// identify asks the label analyst persona for a machine-readable guess.
func (s *lensService) identify(ctx context.Context, images []models.Image, rejected []models.Guess) models.Guess {
	question := `Identify the motorcycle glove in these photos.
Reply with exactly two lines:
BRAND: <brand name>
MODEL: <model name>`
	if len(rejected) > 0 {
		var names []string
		for _, g := range rejected {
			names = append(names, strings.TrimSpace(g.Brand+" "+g.Model))
		}
		question += fmt.Sprintf("\nIt is NOT any of these, the user already rejected them: %s.", strings.Join(names, "; "))
	}

	answer := s.consult.Consult(ctx, models.ConsultRequest{
		Persona:  "analyst",
		Question: question,
		Mode:     "fast",
		Images:   images,
	})
	if answer.Degraded {
		return models.Guess{Notes: answer.Answer}
	}
	return parseGuess(answer.Answer)
}

// parseGuess scans the reply for the BRAND:/MODEL: lines. Anything the model
// added around them is kept as notes.
func parseGuess(answer string) models.Guess {
	guess := models.Guess{}
	var extra []string
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(line), "BRAND:"):
			guess.Brand = strings.TrimSpace(line[len("BRAND:"):])
		case strings.HasPrefix(strings.ToUpper(line), "MODEL:"):
			guess.Model = strings.TrimSpace(line[len("MODEL:"):])
		case line != "":
			extra = append(extra, line)
		}
	}
	guess.Notes = strings.Join(extra, " ")
	if guess.Brand == "" && guess.Model == "" {
		guess.Notes = strings.TrimSpace("could not identify the product. " + guess.Notes)
	}
	return guess
}
