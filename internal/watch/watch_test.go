package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path         string
		ignoreHidden bool
		ignore       bool
	}{
		{"art/sunset.png", false, false},
		{"art/travel/beach.jpg", true, false},
		{"art/.hidden.png", false, false},
		{"art/.hidden.png", true, true},
		{"art/.drafts", true, true},
		{"pages/.gallery.html.123456.tmp", false, true},
		{"art/.DS_Store", false, true},
		{"art/photo.png~", false, true},
		{"art/.photo.png.swp", false, true},
		{"art/notes.swx", false, true},
		{"art/#draft#", false, true},
		{"art/Thumbs.db", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignore, shouldIgnoreEvent(tt.path, tt.ignoreHidden))
		})
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	req, trigger, stop := newDebouncer(30 * time.Millisecond)
	defer stop()

	for range 10 {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced request never fired")
	}

	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	req, trigger, stop := newDebouncer(50 * time.Millisecond)
	trigger()
	stop()

	select {
	case <-req:
		t.Fatal("request fired after stop")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestRun_RebuildsOnHiddenImageUnlessIgnored(t *testing.T) {
	for _, ignore := range []bool{false, true} {
		root := t.TempDir()
		var runs atomic.Int32
		w := New(root, 20*time.Millisecond, func(context.Context) { runs.Add(1) },
			WithMatch(func(p string) bool { return filepath.Ext(p) == ".png" }),
			WithIgnoreHidden(ignore))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(root, ".secret.png"), []byte("x"), 0o644))

		if ignore {
			time.Sleep(300 * time.Millisecond)
			assert.Zero(t, runs.Load(), "hidden change must not rebuild with ignore_hidden")
		} else {
			require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
		}

		cancel()
		require.NoError(t, <-done)
	}
}

func TestRun_MissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), 10*time.Millisecond, func(context.Context) {})
	err := w.Run(context.Background())
	require.Error(t, err)
}

func TestRun_RebuildsOnNewImage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "travel"), 0o755))

	var runs atomic.Int32
	w := New(root, 20*time.Millisecond, func(context.Context) { runs.Add(1) },
		WithMatch(func(p string) bool { return filepath.Ext(p) == ".png" }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register directories.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "travel", "beach.png"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
