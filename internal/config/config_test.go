//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c.Settings)

	// NewConfig never writes.
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewOrExistingConfig_WritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c, err := NewOrExistingConfig(path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(b, &raw))
	assert.Equal(t, "23:59", raw["default_time"])
	assert.Equal(t, "HACKATHON TIMER", raw["title"])

	// Existing file is loaded, not overwritten.
	c.Settings.Title = "LAUNCH"
	require.NoError(t, c.Save())
	c2, err := NewOrExistingConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "LAUNCH", c2.Settings.Title)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_time: \"18:00\"\n"), 0o600))

	c, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "18:00", c.Settings.DefaultTime)
	assert.Equal(t, "HACKATHON TIMER", c.Settings.Title)
}

func TestLoad_HealsInvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Demo Day\ndefault_time: \"25:99\"\n"), 0o600))

	c, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "23:59", c.Settings.DefaultTime)
	assert.Equal(t, "Demo Day", c.Settings.Title)

	// The healed value is persisted.
	c2, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "23:59", c2.Settings.DefaultTime)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: [unterminated\n"), 0o600))

	_, err := NewConfig(path)
	require.Error(t, err)
}

func TestExpandTilde(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/.config/countdown/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "countdown", "config.yaml"), got)

	got, err = expandTilde("/etc/countdown.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/countdown.yaml", got)
}
