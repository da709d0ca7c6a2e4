package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/scrollkit/internal/cli"
	"github.com/rshade/scrollkit/internal/config"
	"github.com/rshade/scrollkit/internal/virtual"
)

// setupCLITest isolates the config home and silences logging.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv("SCROLLKIT_LOGGING_LEVEL", "error")
	return home
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeConfig writes body to a config file in dir.
func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

var scenarioArgs = []string{
	"window", "--mode", "fixed", "--item-size", "20", "--items", "10000",
	"--extent", "100", "--offset", "500", "--buffer", "2",
}

func TestWindow_Table(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, scenarioArgs...)

	require.NoError(t, err)
	assert.Contains(t, out, "Items:     10,000 (content size 200,000)")
	assert.Contains(t, out, "Viewport:  offset 500, extent 100")
	assert.Contains(t, out, "Visible:   [25,29]")
	assert.Contains(t, out, "Rendered:  [23,31]")
	assert.Contains(t, out, "Slots:     9")
	assert.Contains(t, out, "SLOT")
}

func TestWindow_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, append(scenarioArgs, "--output", "json")...)
	require.NoError(t, err)

	var report struct {
		Mode   string         `json:"mode"`
		Items  int            `json:"items"`
		Total  int            `json:"total"`
		Window virtual.Window `json:"window"`
		Cells  []struct {
			Slot  int    `json:"slot"`
			Index int    `json:"index"`
			Size  int    `json:"size"`
			State string `json:"state"`
		} `json:"cells"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "fixed", report.Mode)
	assert.Equal(t, 10000, report.Items)
	assert.Equal(t, 200000, report.Total)
	assert.Equal(t, virtual.Range{Start: 25, End: 29}, report.Window.Visible)
	assert.Equal(t, virtual.Range{Start: 23, End: 31}, report.Window.Rendered)
	require.Len(t, report.Cells, 9)
	for i, c := range report.Cells {
		assert.Equal(t, 23+i, c.Index)
		assert.Equal(t, i, c.Slot, "fresh pool assigns slots in index order")
		assert.Equal(t, 20, c.Size)
		assert.Equal(t, "created", c.State)
	}
}

func TestWindow_OffsetClamped(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "window", "--mode", "fixed", "--item-size", "1", "--items", "100",
		"--extent", "10", "--offset", "1000", "--buffer", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "offset 90, extent 10")
	assert.Contains(t, out, "Visible:   [90,99]")
}

func TestWindow_EmptyList(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "window", "--items", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "Visible:   []")
	assert.NotContains(t, out, "SLOT")
}

func TestWindow_Errors(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "window", "--output", "xml")
	require.ErrorIs(t, err, cli.ErrUnsupportedOutput)

	_, err = execute(t, "window", "--buffer=-1")
	require.ErrorIs(t, err, virtual.ErrInvalidConfig)

	_, err = execute(t, "window", "--mode", "sideways")
	require.ErrorIs(t, err, config.ErrInvalidMode)
}

func TestWindow_EnvOverride(t *testing.T) {
	setupCLITest(t)
	t.Setenv("SCROLLKIT_LIST_BUFFER", "0")

	out, err := execute(t, "window", "--mode", "fixed", "--items", "100", "--extent", "10", "--offset", "20")

	require.NoError(t, err)
	assert.Contains(t, out, "Visible:   [20,29]")
	assert.Contains(t, out, "Rendered:  [20,29]")
}

func TestWindow_FlagBeatsConfigFile(t *testing.T) {
	home := setupCLITest(t)
	path := writeConfig(t, home, "list:\n  mode: fixed\n  item_size: 1\n  buffer: 5\n")

	out, err := execute(t, "--config", path, "window", "--items", "100", "--extent", "10", "--offset", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered:  [15,34]")

	out, err = execute(t, "--config", path, "window", "--items", "100", "--extent", "10", "--offset", "20", "--buffer", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered:  [19,30]")
}

func TestWindow_InvalidConfigFileFails(t *testing.T) {
	home := setupCLITest(t)
	path := writeConfig(t, home, "list:\n  mode: sideways\n")

	_, err := execute(t, "--config", path, "window")

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestBench_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "bench", "--mode", "fixed", "--items", "500", "--bursts", "2",
		"--burst-size", "20", "--debounce", "50ms", "--output", "json")
	require.NoError(t, err)

	var results []struct {
		Scenario   string `json:"scenario"`
		Events     int    `json:"events"`
		Recomputes int    `json:"recomputes"`
		Forced     int    `json:"forced"`
		Threshold  int    `json:"threshold"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	byName := map[string]int{}
	for i, r := range results {
		byName[r.Scenario] = i
		assert.Equal(t, 41, r.Events, "%s: resize plus two bursts of 20", r.Scenario)
	}

	immediate := results[byName["immediate"]]
	assert.Equal(t, immediate.Events, immediate.Recomputes)

	debounced := results[byName["debounced"]]
	assert.Less(t, debounced.Recomputes, debounced.Events)
	assert.Positive(t, debounced.Recomputes)
	assert.Zero(t, debounced.Forced)

	threshold := results[byName["threshold"]]
	assert.Equal(t, 12, threshold.Threshold)
	assert.Positive(t, threshold.Forced)
}

func TestBench_Table(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "bench", "--items", "100", "--bursts", "1", "--burst-size", "5", "--debounce", "0")

	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "immediate")
	assert.Contains(t, out, "debounced")
	assert.Contains(t, out, "threshold")
}

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, filepath.Join(home, "config.yaml"))

	written, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "level: info")
	assert.Contains(t, string(written), "debounce: 16ms")

	// Without the environment override the file loads back as the defaults.
	t.Setenv("SCROLLKIT_LOGGING_LEVEL", "")
	loaded, err := config.Load(filepath.Join(home, "config.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "nested", "scrollkit.yaml")

	_, err := execute(t, "--config", path, "config", "init")

	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestConfigShow(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "schema_version: 1.0.0")
	assert.Contains(t, out, "buffer: 2")
	assert.Contains(t, out, "debounce: 16ms")

	out, err = execute(t, "config", "show", "--buffer", "7", "--debounce", "40ms")
	require.NoError(t, err)
	assert.Contains(t, out, "buffer: 7")
	assert.Contains(t, out, "debounce: 40ms")
}

func TestConfigValidate(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "List mode: dynamic")

	writeConfig(t, home, "schema_version: 2.0.0\n")
	_, err = execute(t, "config", "validate")
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrUnsupportedSchema)
	assert.Contains(t, err.Error(), "configuration validation failed")

	writeConfig(t, home, "list:\n  mode: sideways\n")
	_, err = execute(t, "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidMode)
}
