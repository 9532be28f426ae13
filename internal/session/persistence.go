package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"parley/client/internal/model"
)

// MemoryStore keeps the viewer in process memory only. It is the backend
// for execution contexts with no durable storage facility.
type MemoryStore struct {
	mu   sync.Mutex
	user *model.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &user
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, nil
	}
	u := *m.user
	return &u, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}

// FileStore round-trips the viewer through a JSON file. A missing or
// unreadable file loads as no session; a corrupt payload is discarded the
// same way rather than surfaced.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(_ context.Context, user model.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

func (f *FileStore) Load(_ context.Context) (*model.User, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, nil
	}
	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, nil
	}
	if user.ID <= 0 || user.Username == "" {
		return nil, nil
	}
	return &user, nil
}

func (f *FileStore) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
