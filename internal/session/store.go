// Package session holds the authenticated viewer for the life of a client
// session and round-trips it through a pluggable persistence backend so it
// survives restarts. A failing or corrupt backend is never fatal; it just
// means anonymous browsing.
package session

import (
	"context"
	"log"
	"sync"

	"parley/client/internal/model"
)

// Persistence is the external key-value collaborator the store saves the
// viewer through. Implementations must tolerate absence of the underlying
// storage facility by behaving as a no-op that loads nothing.
type Persistence interface {
	Save(ctx context.Context, user model.User) error
	Load(ctx context.Context) (*model.User, error)
	Clear(ctx context.Context) error
}

// Store is the session store. All methods are safe for concurrent use;
// consumers must call Current on every read rather than keeping their own
// copy, since login and logout swap the viewer underneath them.
type Store struct {
	mu      sync.RWMutex
	viewer  *model.User
	backend Persistence
}

// NewStore creates a session store backed by p and restores any persisted
// viewer. A read failure restores nothing.
func NewStore(ctx context.Context, p Persistence) *Store {
	s := &Store{backend: p}
	user, err := p.Load(ctx)
	if err != nil {
		log.Printf("session: restore failed, starting anonymous: %v", err)
		return s
	}
	if user != nil {
		user.Role = model.NormalizeRole(string(user.Role))
		s.viewer = user
	}
	return s
}

// Current returns the viewer, or nil when browsing anonymously. The
// returned value is a copy; mutating it does not affect the session.
func (s *Store) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.viewer == nil {
		return nil
	}
	u := *s.viewer
	return &u
}

// Set installs user as the viewer and persists it best-effort.
func (s *Store) Set(ctx context.Context, user model.User) {
	user.Role = model.NormalizeRole(string(user.Role))
	s.mu.Lock()
	s.viewer = &user
	s.mu.Unlock()
	if err := s.backend.Save(ctx, user); err != nil {
		log.Printf("session: persist failed: %v", err)
	}
}

// Clear forgets the viewer and removes it from the backend best-effort.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.viewer = nil
	s.mu.Unlock()
	if err := s.backend.Clear(ctx); err != nil {
		log.Printf("session: clear failed: %v", err)
	}
}
