package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // test binary path is set in TestMain
var testBinaryPath string

// TestMain builds the CLI binary once for the entire package and reuses it.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "countdown-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1) //nolint:gocritic // Mkdir failed, nothing to cleanup
	}

	bin := filepath.Join(dir, "countdown-test")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build test binary: %v\nOutput: %s\n", err, string(out))
		os.RemoveAll(dir)
		os.Exit(1)
	}
	testBinaryPath = bin

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func buildTestBinary(t *testing.T) string {
	t.Helper()
	if testBinaryPath == "" {
		t.Fatalf("test binary not built")
	}
	return testBinaryPath
}

// newCmd wraps exec.Command to point every run at a throwaway config file.
func newCmd(t *testing.T, args ...string) *exec.Cmd {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	return exec.Command(buildTestBinary(t), append([]string{"--config", cfg}, args...)...)
}

func TestCLI_HelpOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "root help",
			args:     []string{"--help"},
			contains: []string{"countdown", "deadline", "watch", "remaining", "config", "--date", "--time", "--start", "--verbose"},
		},
		{
			name:     "watch help",
			args:     []string{"watch", "--help"},
			contains: []string{"redrawn in place", "--date", "--time"},
		},
		{
			name:     "config help",
			args:     []string{"config", "--help"},
			contains: []string{"show", "init"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := newCmd(t, tt.args...).CombinedOutput()
			require.NoError(t, err, string(out))
			for _, want := range tt.contains {
				assert.Contains(t, string(out), want)
			}
		})
	}
}

func TestCLI_Version(t *testing.T) {
	t.Parallel()

	out, err := newCmd(t, "--version").CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(out), "countdown dev")
	assert.Contains(t, string(out), "commit: none")
}

func TestCLI_RemainingFuture(t *testing.T) {
	t.Parallel()

	cmd := newCmd(t, "remaining", "--date", "2099-01-01", "--time", "12:00", "--json")
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	require.NoError(t, cmd.Run(), stderr.String())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &raw), stdout.String())
	assert.Equal(t, "counting", raw["state"])
	assert.Equal(t, "normal", raw["urgency"])
	assert.Greater(t, raw["days"], float64(365))
}

func TestCLI_RemainingPast(t *testing.T) {
	t.Parallel()

	out, err := newCmd(t, "remaining", "--date", "2000-01-01").Output()
	require.NoError(t, err)
	assert.Equal(t, "TIME'S UP! HACKATHON FINISHED!\n", string(out))
}

func TestCLI_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"bad date", []string{"remaining", "--date", "2026-02-30"}, "invalid date"},
		{"bad time", []string{"remaining", "--date", "2026-02-01", "--time", "25:00"}, "invalid time of day"},
		{"missing date", []string{"watch"}, `required flag(s) "date" not set`},
		{"json with watch", []string{"watch", "--date", "2000-01-01", "--json"}, "Cannot use --json with watch"},
		{"start without date", []string{"--start"}, "--start requires --date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := newCmd(t, tt.args...).CombinedOutput()
			require.Error(t, err)
			assert.Contains(t, string(out), tt.msg)
		})
	}
}

func TestCLI_WatchPastDeadlineExits(t *testing.T) {
	t.Parallel()

	out, err := newCmd(t, "watch", "--date", "2000-01-01").Output()
	require.NoError(t, err)
	assert.Equal(t, "TIME'S UP! HACKATHON FINISHED!\n", string(out))
}

func TestCLI_ConfigInitAndShow(t *testing.T) {
	t.Parallel()

	cfg := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := exec.Command(buildTestBinary(t), "--config", cfg, "config", "init").CombinedOutput()
	require.NoError(t, err, string(out))
	assert.Contains(t, string(out), cfg)
	_, err = os.Stat(cfg)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg, []byte("title: Demo Day\nfinished_message: Pens down\ndefault_time: \"17:00\"\n"), 0o600))

	out, err = exec.Command(buildTestBinary(t), "--config", cfg, "config", "show").Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Demo Day")
	assert.Contains(t, string(out), "17:00")

	out, err = exec.Command(buildTestBinary(t), "--config", cfg, "remaining", "--date", "2000-01-01").Output()
	require.NoError(t, err)
	assert.Equal(t, "TIME'S UP! Pens down\n", string(out))

	out, err = exec.Command(buildTestBinary(t), "--config", cfg, "config", "show", "--json").Output()
	require.NoError(t, err)
	var raw map[string]string
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, "17:00", raw["default_time"])
}

func TestWatch_StopsOnInterrupt(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := watch(ctx, &buf, time.Now().Add(2*time.Hour), "", false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "only the immediate snapshot fits before the interrupt")
	assert.Contains(t, lines[0], "[normal]")
}

func TestWatch_RedrawInPlace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := watch(context.Background(), &buf, time.Now().Add(-time.Second), "Done", true)
	require.NoError(t, err)
	assert.Equal(t, "\r\033[KTIME'S UP! Done\n", buf.String())
}
