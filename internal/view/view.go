// Package view owns the client-side content caches. Each controller keeps
// the entities of one scope (the topic list, the posts of one topic, the
// comments of one post), applies mutations against the remote gateway with
// the server response as the authority, and suppresses the effects of
// superseded in-flight loads so an old response can never clobber a newer
// one.
package view

import (
	"errors"
	"sync"

	"parley/client/internal/gateway"
	"parley/client/internal/model"
)

// State is the lifecycle of one scope's cache.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrAuthRequired means no viewer is signed in. The caller routes to
	// authentication; there is nothing to retry.
	ErrAuthRequired = errors.New("authentication required")
	// ErrPermissionDenied means the viewer lacks rights over the content.
	// The presentation layer never offers such actions, so hitting this is
	// a defensive guard, not a normal flow.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnknownContent means the target id is not in the scope's cache.
	ErrUnknownContent = errors.New("unknown content")
)

// Sessions is the read side of the session store. Controllers read it
// fresh on every call; the viewer can change between calls without any
// entity changing.
type Sessions interface {
	Current() *model.User
}

// list is the cache core shared by all controllers: an ordered slice of
// entities plus the scope's state, last error, and load generation. The
// mutex serializes all cache access; everything between gateway
// suspension points is atomic under it.
type list[T any] struct {
	mu      sync.Mutex
	state   State
	items   []T
	lastErr string
	gen     uint64
	id      func(T) int
}

// begin starts a new load generation. Any load begun earlier becomes
// stale: its result will be computed but not applied.
func (l *list[T]) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.state = Loading
	return l.gen
}

// finish applies a load result if its generation is still current. A
// failed load keeps the previous cache so a broken refresh does not blank
// a populated view.
func (l *list[T]) finish(token uint64, items []T, err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.gen {
		return nil
	}
	if err != nil {
		l.state = Failed
		l.lastErr = gateway.Normalize(err)
		return err
	}
	l.state = Ready
	l.lastErr = ""
	l.items = items
	return nil
}

// fail records a load failure, keeping the cache.
func (l *list[T]) fail(token uint64, err error) error {
	return l.finish(token, nil, err)
}

// failClear records a load failure and drops the cache. Used when the
// scope's parent no longer exists and the children must not render.
func (l *list[T]) failClear(token uint64, err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token != l.gen {
		return nil
	}
	l.state = Failed
	l.lastErr = gateway.Normalize(err)
	l.items = nil
	return err
}

// Invalidate marks all outstanding loads stale. Call it when the scope is
// torn down; in-flight requests are not aborted, only their effects are
// suppressed.
func (l *list[T]) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
}

// setErr records a mutation failure without touching state or cache.
func (l *list[T]) setErr(err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = gateway.Normalize(err)
	return err
}

func (l *list[T]) append(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item)
}

func (l *list[T]) replace(id int, item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.id(l.items[i]) == id {
			l.items[i] = item
			return
		}
	}
}

func (l *list[T]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, item := range l.items {
		if l.id(item) != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

// find returns a copy of the cached entity with the given id.
func (l *list[T]) find(id int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if l.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// snapshot returns a copy of the cached sequence in server order.
func (l *list[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// State reports the scope's lifecycle state.
func (l *list[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// LastError reports the normalized message of the most recent failure, or
// an empty string.
func (l *list[T]) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
