// Package session holds the current signed-in operator identity and
// notifies observers on every transition. A Store is a plain value meant
// to be constructed once and injected wherever it is needed; there is no
// package-level instance.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/infrastructure/storage"
)

const sessionKey = "app.session.v1"

// Identity is the session's view of the signed-in operator.
type Identity struct {
	Email string      `json:"email"`
	Name  string      `json:"name,omitempty"`
	Role  domain.Role `json:"role"`
}

type observer struct {
	id int
	fn func()
}

// Store is the process-wide session state: either signed out (no identity)
// or signed in with exactly one identity. Mutations notify all subscribed
// observers synchronously, in subscription order.
type Store struct {
	mu        sync.RWMutex
	current   *Identity
	observers []observer
	nextID    int

	kv  storage.Store // optional; nil disables persistence
	log zerolog.Logger
}

// New returns an in-memory Store.
func New(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// NewPersistent returns a Store that mirrors its state into the given
// key-value store so a later Bootstrap can restore it.
func NewPersistent(kv storage.Store, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Bootstrap resolves a previously persisted session before the store is
// first read. Any failure degrades to signed out; no observers fire.
func (s *Store) Bootstrap(ctx context.Context) {
	if s.kv == nil {
		return
	}

	var ident Identity
	found, err := s.kv.Load(ctx, sessionKey, &ident)
	if err != nil {
		s.log.Warn().Err(err).Msg("session bootstrap failed, starting signed out")
		return
	}
	if !found || ident.Email == "" || !ident.Role.Valid() {
		return
	}

	s.mu.Lock()
	s.current = &ident
	s.mu.Unlock()
	s.log.Info().Str("email", ident.Email).Str("role", string(ident.Role)).Msg("session restored")
}

// SignIn replaces the current session with the given identity. A prior
// session is overwritten without requiring a sign-out first.
func (s *Store) SignIn(ctx context.Context, ident Identity) {
	s.mu.Lock()
	copy := ident
	s.current = &copy
	s.mu.Unlock()

	s.persist(ctx, &ident)
	s.notify()
}

// SignOut clears the session from any state.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.persist(ctx, nil)
	s.notify()
}

// Current returns the signed-in identity, or nil when signed out.
func (s *Store) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// Subscribe registers an observer invoked (without arguments) after every
// transition and returns a disposer that deregisters it. Observers run
// synchronously on the goroutine that issued the mutation.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// notify invokes observers outside the lock so callbacks may read Current
// or manage subscriptions. A panicking observer is isolated: it is logged
// and the remaining observers still run.
func (s *Store) notify() {
	s.mu.RLock()
	snapshot := make([]observer, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	for _, o := range snapshot {
		s.invoke(o)
	}
}

func (s *Store) invoke(o observer) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Int("observer_id", o.id).Msg("session observer panicked")
		}
	}()
	o.fn()
}

func (s *Store) persist(ctx context.Context, ident *Identity) {
	if s.kv == nil {
		return
	}

	var err error
	if ident == nil {
		err = s.kv.Delete(ctx, sessionKey)
	} else {
		err = s.kv.Save(ctx, sessionKey, ident)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session state")
	}
}
