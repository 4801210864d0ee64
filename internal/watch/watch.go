/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch implements the debounced file-watch loop, expressed as
// the four-state machine spec.md §9 calls for: Idle, Debouncing,
// Rebuilding, Shutdown.
package watch

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind is the kind of change a WatchEvent carries.
type EventKind int

// Event kinds, per spec.md §3 WatchEvent.
const (
	Created EventKind = iota
	Modified
	Deleted
)

// Event is a coalesced, debounced change to a single path.
type Event struct {
	Kind EventKind
	Path string
}

// State is one of the watch loop's four states.
type State int

// States, per spec.md §9.
const (
	StateIdle State = iota
	StateDebouncing
	StateRebuilding
	StateShutdown
)

// Loop drives the fsnotify-backed state machine: coalescing events within
// the debounce window (latest kind wins, deletions dominate) and invoking
// Rebuild once the window elapses with no further activity.
type Loop struct {
	Debounce time.Duration
	Rebuild  func([]Event)

	watcher *fsnotify.Watcher
	state   State
	pending map[string]EventKind
	done    chan struct{}
}

// New creates a Loop with the given debounce window and rebuild callback.
// It watches nothing until the caller registers the root and each of its
// subdirectories via Add. A debounce of zero or less means 50ms.
func New(debounce time.Duration, rebuild func([]Event)) (*Loop, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 50 * time.Millisecond
	}
	return &Loop{
		Debounce: debounce,
		Rebuild:  rebuild,
		watcher:  fw,
		state:    StateIdle,
		pending:  make(map[string]EventKind),
		done:     make(chan struct{}),
	}, nil
}

// Add registers dir with the underlying fsnotify watcher.
func (l *Loop) Add(dir string) error {
	return l.watcher.Add(dir)
}

// State returns the loop's current state. Safe to call between Run ticks
// from the same goroutine only; Run is not reentrant.
func (l *Loop) State() State {
	return l.state
}

// Run drives the state machine until stop is closed. Suspension happens
// only while waiting for the debounce timer or the next watcher event, per
// spec.md §5: no other stage yields mid-cycle.
func (l *Loop) Run(stop <-chan struct{}) {
	var timer *time.Timer
	var timerC <-chan time.Time

	armTimer := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(l.Debounce)
		timerC = timer.C
		l.state = StateDebouncing
	}

	for {
		select {
		case <-stop:
			l.state = StateShutdown
			l.drain()
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				l.state = StateShutdown
				return
			}
			l.coalesce(event)
			armTimer()

		case <-l.watcher.Errors:
			// Watch registration failures are reported by the caller via
			// the IoError channel when Add fails; mid-loop errors are
			// non-fatal per spec.md §7 and simply ignored here.

		case <-timerC:
			l.flush()
		}
	}
}

// coalesce folds a raw fsnotify event into the pending-per-path map: the
// latest kind wins, with deletions dominating (spec.md §4.8). Renamed is
// split into Deleted(old)+Created(new) by fsnotify's own Rename+Create
// event pair, which this function observes as two separate calls.
func (l *Loop) coalesce(event fsnotify.Event) {
	kind, ok := classify(event)
	if !ok {
		return
	}
	if existing, exists := l.pending[event.Name]; exists && existing == Deleted {
		return
	}
	l.pending[event.Name] = kind
}

func classify(event fsnotify.Event) (EventKind, bool) {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Deleted, true
	case event.Has(fsnotify.Create):
		return Created, true
	case event.Has(fsnotify.Write):
		return Modified, true
	default:
		return 0, false
	}
}

// flush transitions to Rebuilding, runs Rebuild with the coalesced batch,
// and returns to Idle.
func (l *Loop) flush() {
	if len(l.pending) == 0 {
		l.state = StateIdle
		return
	}

	batch := make([]Event, 0, len(l.pending))
	for path, kind := range l.pending {
		batch = append(batch, Event{Kind: kind, Path: path})
	}
	l.pending = make(map[string]EventKind)

	l.state = StateRebuilding
	l.Rebuild(batch)
	l.state = StateIdle
}

// drain guarantees no write occurs after shutdown is requested: any
// already-coalesced batch is discarded rather than flushed, since a
// rebuild triggered after Run returns could race the caller's own
// cleanup.
func (l *Loop) drain() {
	l.pending = make(map[string]EventKind)
	_ = l.watcher.Close()
}

// Close releases the underlying fsnotify watcher. Safe to call after Run
// has returned.
func (l *Loop) Close() error {
	return l.watcher.Close()
}
