package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/invoiceflow/internal/common"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
session:
  seed_file: /tmp/seed.yaml
review:
  hold_unverified: true
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/seed.yaml", cfg.Session.SeedFile)
	assert.True(t, cfg.Review.HoldUnverified)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep defaults
	assert.Equal(t, 5, cfg.Dashboard.RecentCount)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "bad yaml", data: "review: [1, 2"},
		{name: "negative recent count", data: "dashboard:\n  recent_count: -1\n"},
		{name: "unknown level", data: "logging:\n  level: chatty\n"},
		{name: "unknown format", data: "logging:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			_, err := Load(path)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Review.HoldUnverified = true
	cfg.Logging.File = "/tmp/invoiceflow.log"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
