package view

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window between the last keystroke and
// the search fetch.
const DefaultDebounce = 250 * time.Millisecond

// Debouncer coalesces a rapidly-changing query string into at most one
// fetch per quiescence window. Cancelling a scheduled-but-unfired fetch is
// synchronous; suppression of an already in-flight fetch is the fetch
// target's job (the controllers' load generations).
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	closed bool
	fetch  func(query string)
}

// NewDebouncer wires a debouncer to fetch. A non-positive delay uses the
// default window.
func NewDebouncer(delay time.Duration, fetch func(query string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fetch: fetch}
}

// OnQueryChange schedules a fetch for query after the quiescence window,
// replacing any pending schedule. A blank query is a valid query; it lists
// unfiltered content.
func (d *Debouncer) OnQueryChange(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fetch(query)
	})
}

// Close cancels any pending schedule and refuses further ones.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
