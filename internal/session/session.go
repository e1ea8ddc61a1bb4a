// Package session holds the lens-flow wizard state: an explicit finite-state
// machine per session instead of ambient page globals. Sessions live in
// memory only and vanish at process end.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
)

// State is a lens-flow wizard position.
type State string

const (
	StateAwaitingUpload State = "awaiting_upload"
	StateIdentified     State = "identified"
	StateConfirmed      State = "confirmed"
	StateAnalyzing      State = "analyzing"
	StateDone           State = "done"
)

var (
	ErrNotFound          = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid lens state transition")
)

// transitions lists the legal moves. Identified loops to itself so a
// rejection can trigger re-identification.
var transitions = map[State][]State{
	StateAwaitingUpload: {StateIdentified},
	StateIdentified:     {StateIdentified, StateConfirmed},
	StateConfirmed:      {StateAnalyzing},
	StateAnalyzing:      {StateDone},
	StateDone:           {},
}

// Session is one user's walk through the lens flow: uploaded photos, the
// current AI guess, every rejected guess, and the final report.
type Session struct {
	ID        string         `json:"id"`
	State     State          `json:"state"`
	Images    []models.Image `json:"-"`
	Guess     *models.Guess  `json:"guess,omitempty"`
	Rejected  []models.Guess `json:"rejected,omitempty"`
	Report    *models.Report `json:"report,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Transition moves the session to the target state or fails with
// ErrInvalidTransition.
func (s *Session) Transition(to State) error {
	for _, allowed := range transitions[s.State] {
		if allowed == to {
			s.State = to
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
}

// snapshot returns a copy that shares no mutable data with the stored
// session, so callers can read it outside the store lock.
func (s *Session) snapshot() Session {
	out := *s
	if s.Images != nil {
		out.Images = append([]models.Image(nil), s.Images...)
	}
	if s.Rejected != nil {
		out.Rejected = append([]models.Guess(nil), s.Rejected...)
	}
	if s.Guess != nil {
		g := *s.Guess
		out.Guess = &g
	}
	if s.Report != nil {
		r := *s.Report
		r.Steps = append([]models.StepFinding(nil), s.Report.Steps...)
		out.Report = &r
	}
	return out
}

// Store keeps sessions in memory for the lifetime of the process.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session in AwaitingUpload with the given images.
func (st *Store) Create(images []models.Image) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		State:     StateAwaitingUpload,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a snapshot of the session.
func (st *Store) Get(id string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s.snapshot(), nil
}

// Mutate runs fn on the session under the store lock so handler actions
// (confirm, reject, analyze) update state atomically.
func (st *Store) Mutate(id string, fn func(*Session) error) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if err := fn(s); err != nil {
		return s.snapshot(), err
	}
	s.UpdatedAt = time.Now()
	return s.snapshot(), nil
}
