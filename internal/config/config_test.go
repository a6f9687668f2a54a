package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Duration(30*time.Second), cfg.Timeout)
	assert.Equal(t, "all", cfg.Pretty)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "timeout: 5s\nuser_agent: test-agent\npretty: none\nheaders:\n  - 'X-Env: staging'\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Duration(5*time.Second), cfg.Timeout)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.Equal(t, "none", cfg.Pretty)
	assert.Equal(t, []string{"X-Env: staging"}, cfg.Headers)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
