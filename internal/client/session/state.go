// Package session holds the client's in-memory belief about who is logged
// in, mirrored into durable credential storage, plus the navigation guard
// that consumes it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// ErrStale is returned by EstablishAt when the session moved on (the user
// logged out) while the call that produced the credentials was in flight.
var ErrStale = errors.New("session changed, stale completion discarded")

// Snapshot is a consistent read-only view of the session. IsAuthenticated
// always equals "token is present"; no reader can observe one without the
// other.
type Snapshot struct {
	User            models.User
	Token           string
	IsAuthenticated bool
}

// State is the process-wide session. It is an injectable object, not a
// global: tests instantiate isolated instances. All mutation goes through
// Establish/EstablishAt/Clear, each of which updates durable storage and
// the in-memory fields within a single critical section.
type State struct {
	mu    sync.Mutex
	user  models.User
	token string
	epoch uint64

	store credentials.Store
	log   logging.Logger
}

func New(store credentials.Store, log logging.Logger) *State {
	if log == nil {
		log = logging.NewNop()
	}
	return &State{store: store, log: log}
}

// Establish stores the token durably and then flips the in-memory session
// to authenticated. If persistence fails the session is left untouched, so
// stored and in-memory credentials never diverge.
func (s *State) Establish(ctx context.Context, user models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.establishLocked(ctx, user, token)
}

// EstablishAt behaves like Establish but only applies when the session
// epoch still matches the one captured before the producing call started.
// A mismatch means a logout happened in between; the completion is dropped
// and ErrStale returned so callers can tell apart "applied" from "ignored".
func (s *State) EstablishAt(ctx context.Context, epoch uint64, user models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		s.log.Debug(ctx, "discarding stale session completion", "want_epoch", epoch, "have_epoch", s.epoch)
		return ErrStale
	}
	return s.establishLocked(ctx, user, token)
}

func (s *State) establishLocked(ctx context.Context, user models.User, token string) error {
	if err := s.store.Save(ctx, token); err != nil {
		return err
	}
	s.user = user
	s.token = token
	s.log.Info(ctx, "session established", "user", user.Email)
	return nil
}

// Clear logs the session out: removes the stored token, resets the
// in-memory fields and advances the epoch so in-flight completions are
// discarded. Idempotent.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx); err != nil {
		return err
	}
	s.user = models.User{}
	s.token = ""
	s.epoch++
	s.log.Info(ctx, "session cleared")
	return nil
}

// Snapshot returns a consistent copy for consumers (guard, UI).
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:            s.user,
		Token:           s.token,
		IsAuthenticated: s.token != "",
	}
}

// Epoch returns the current session epoch. Capture it before starting a
// call whose completion will establish credentials, then apply the result
// with EstablishAt.
func (s *State) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Token implements the transport's TokenProvider.
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
