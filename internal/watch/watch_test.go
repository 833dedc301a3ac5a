package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_RunsOnStartAndOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guide"), 0o750))

	var runs atomic.Int32
	ran := make(chan struct{}, 10)
	w := New(root, func(context.Context) error {
		runs.Add(1)
		ran <- struct{}{}
		return nil
	}, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	waitRun(t, ran)

	require.NoError(t, os.WriteFile(filepath.Join(root, "guide", "a.md"), []byte("# A\n"), 0o600))
	waitRun(t, ran)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestWatcher_ClosedEventsWaitsForWorker(t *testing.T) {
	var active atomic.Int32
	started := make(chan struct{})
	w := New(t.TempDir(), func(ctx context.Context) error {
		active.Add(1)
		defer active.Add(-1)
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	errCh := make(chan error, 1)
	go func() { errCh <- w.loop(context.Background(), events, errs, func(string) {}) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not start")
	}
	close(events)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not return after events closed")
	}
	assert.Zero(t, active.Load(), "run still active after loop returned")
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context) error { return nil })
	assert.Error(t, w.Run(context.Background()))
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	req, trigger, stop := debouncer(30 * time.Millisecond)
	defer stop()

	for range 5 {
		trigger()
	}
	select {
	case <-req:
	case <-time.After(2 * time.Second):
		t.Fatal("no request after burst")
	}
	select {
	case <-req:
		t.Fatal("burst produced more than one request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestShouldIgnore(t *testing.T) {
	root := t.TempDir()
	gitbook := filepath.Join(root, ".gitbook.yaml")
	w := New(root, nil, WithFiles(gitbook))

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "README.md"), false},
		{filepath.Join(root, ".hidden.md"), true},
		{filepath.Join(root, "a.md~"), true},
		{filepath.Join(root, ".a.md.swp"), true},
		{filepath.Join(root, "#a.md#"), true},
		{gitbook, false},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldIgnore(tt.path))
		})
	}
}

func waitRun(t *testing.T, ran <-chan struct{}) {
	t.Helper()
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("check did not run")
	}
}
