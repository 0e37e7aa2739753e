package store

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/timeutil"
)

// Store owns the state exclusively. All writes go through Dispatch; all
// reads elsewhere work on Snapshot copies, never on the live state.
type Store struct {
	mu    sync.Mutex
	state State

	// Clock is injected for deterministic tests.
	Clock timeutil.Clock

	// NewID mints entity ids; defaults to UUIDv4.
	NewID func() string

	log *slog.Logger
}

// New creates an empty store.
func New(clock timeutil.Clock) *Store {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Store{
		state: NewState(),
		Clock: clock,
		NewID: uuid.NewString,
		log:   slog.With(config.LogKeyComponent, config.CompStore),
	}
}

// Dispatch applies one action atomically and reports whether the state
// changed. Validation failures are silent no-ops per the store contract.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := apply(&s.state, a, s.NewID)
	if !changed {
		s.log.Debug(config.MsgActionIgnored, config.LogKeyAction, a.Kind())
	} else {
		s.log.Debug(config.MsgActionApplied, config.LogKeyAction, a.Kind())
	}
	return changed
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}
