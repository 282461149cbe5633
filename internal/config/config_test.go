package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mineview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
watch:
  debounce: 1s
plan:
  format: png
metrics:
  addr: "127.0.0.1:9108"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mineview_debug.log", cfg.Log.File, "unset keys keep defaults")
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "png", cfg.Plan.Format)
	assert.Equal(t, 10.0, cfg.Plan.Width)
	assert.Equal(t, "127.0.0.1:9108", cfg.Metrics.Addr)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad level", "log:\n  level: loud\n", "Config.Log.Level"},
		{"bad format", "plan:\n  format: gif\n", "Config.Plan.Format"},
		{"zero width", "plan:\n  width: 0\n", "Config.Plan.Width"},
		{"tiny preview", "preview:\n  width: 2\n", "Config.Preview.Width"},
		{"bad address", "metrics:\n  addr: nowhere\n", "Config.Metrics.Addr"},
		{"long debounce", "watch:\n  debounce: 5m\n", "Config.Watch.Debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "log: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
