package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/estree/estreegen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, w *Watcher) <-chan []string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			changes <- changed
		})
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher stopped early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher not ready")
	}
	return changes
}

func waitChange(t *testing.T, changes <-chan []string) []string {
	t.Helper()
	select {
	case changed := <-changes:
		return changed
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
		return nil
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "es5.estree", "interface A {}")

	w := New([]string{src}, ".estree", testutil.NewTestLogger(t))
	w.Debounce = 50 * time.Millisecond
	changes := startWatcher(t, w)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(src, []byte("interface B {}"), 0600))
	}

	changed := waitChange(t, changes)
	wantPath, err := filepath.Abs(src)
	require.NoError(t, err)
	assert.Equal(t, []string{wantPath}, changed)

	select {
	case extra := <-changes:
		t.Fatalf("unexpected second change: %v", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "es5.estree", "interface A {}")

	w := New([]string{src}, ".estree", nil)
	w.Debounce = 20 * time.Millisecond
	changes := startWatcher(t, w)

	testutil.WriteFile(t, dir, "notes.txt", "hello")
	testutil.WriteFile(t, dir, "other.estree", "interface B {}")

	select {
	case changed := <-changes:
		t.Fatalf("unexpected change: %v", changed)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherDirectorySource(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.estree", "interface A {}")

	w := New([]string{dir}, ".estree", nil)
	w.Debounce = 20 * time.Millisecond
	changes := startWatcher(t, w)

	testutil.WriteFile(t, dir, "notes.txt", "ignored")
	created := testutil.WriteFile(t, dir, "b.estree", "interface B {}")

	changed := waitChange(t, changes)
	want, err := filepath.Abs(created)
	require.NoError(t, err)
	assert.Contains(t, changed, want)
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "x.estree", "")
	sub := filepath.Join(dir, "specs")
	require.NoError(t, os.MkdirAll(sub, 0750))

	w := New([]string{src, sub}, ".estree", nil)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"file source", src, true},
		{"sibling of file source", filepath.Join(dir, "y.estree"), false},
		{"file in directory source", filepath.Join(sub, "z.estree"), true},
		{"other extension in directory source", filepath.Join(sub, "z.md"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.path))
		})
	}
}
