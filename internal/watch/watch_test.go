/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsDebounce(t *testing.T) {
	l, err := New(0, func([]Event) {})
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, 50*time.Millisecond, l.Debounce)
	assert.Equal(t, StateIdle, l.State())
}

func TestCoalesce_LatestKindWins(t *testing.T) {
	l, err := New(10*time.Millisecond, func([]Event) {})
	require.NoError(t, err)
	defer l.Close()

	l.coalesce(fsnotify.Event{Name: "a.html", Op: fsnotify.Create})
	l.coalesce(fsnotify.Event{Name: "a.html", Op: fsnotify.Write})
	assert.Equal(t, Modified, l.pending["a.html"])
}

func TestCoalesce_DeletionsDominate(t *testing.T) {
	l, err := New(10*time.Millisecond, func([]Event) {})
	require.NoError(t, err)
	defer l.Close()

	l.coalesce(fsnotify.Event{Name: "a.html", Op: fsnotify.Remove})
	l.coalesce(fsnotify.Event{Name: "a.html", Op: fsnotify.Write})
	assert.Equal(t, Deleted, l.pending["a.html"])
}

func TestClassify(t *testing.T) {
	cases := []struct {
		op   fsnotify.Op
		kind EventKind
		ok   bool
	}{
		{fsnotify.Create, Created, true},
		{fsnotify.Write, Modified, true},
		{fsnotify.Remove, Deleted, true},
		{fsnotify.Rename, Deleted, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, c := range cases {
		kind, ok := classify(fsnotify.Event{Op: c.op})
		assert.Equal(t, c.ok, ok)
		if ok {
			assert.Equal(t, c.kind, kind)
		}
	}
}

func TestRun_DebouncesAndRebuilds(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.html")
	require.NoError(t, os.WriteFile(file, []byte("<div></div>"), 0o644))

	var batches [][]Event
	l, err := New(20*time.Millisecond, func(evs []Event) {
		batches = append(batches, evs)
	})
	require.NoError(t, err)
	require.NoError(t, l.Add(dir))

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		l.Run(stop)
		close(done)
	}()

	require.NoError(t, os.WriteFile(file, []byte("<div class=\"p-4\"></div>"), 0o644))

	time.Sleep(150 * time.Millisecond)
	close(stop)
	<-done

	require.NotEmpty(t, batches)
}
