package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.xml")
	require.NoError(t, os.WriteFile(path, encoded(t, scenarioXML), 0o644))

	l := New()
	w, err := NewWatcher(l, path, 20*time.Millisecond)
	require.NoError(t, err)

	reloads := make(chan *Model, 8)
	w.Reloaded = func(m *Model, err error) {
		if err == nil {
			reloads <- m
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := waitForReload(t, reloads)
	assert.Len(t, first.Graph.Horizons, 1)

	updated := strings.Replace(scenarioXML, "</Mine>", "<Horizon><Id>H2</Id></Horizon></Mine>", 1)
	require.NoError(t, os.WriteFile(path, encoded(t, updated), 0o644))

	second := waitForReload(t, reloads)
	assert.Len(t, second.Graph.Horizons, 2)
	assert.Same(t, second, l.Current())

	w.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func waitForReload(t *testing.T, reloads <-chan *Model) *Model {
	t.Helper()
	select {
	case m := <-reloads:
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
		return nil
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(New(), filepath.Join(t.TempDir(), "missing", "mine.xml"), 0)
	assert.Error(t, err)
}
