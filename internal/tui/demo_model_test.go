package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/scrollkit/internal/config"
	"github.com/rshade/scrollkit/internal/demo"
	"github.com/rshade/scrollkit/internal/virtual"
)

func fixedConfig(size int) virtual.Config {
	return virtual.Config{Mode: virtual.Fixed{ItemSize: size}, Buffer: 2}
}

func newTestDemo(t *testing.T, rows []demo.Row, cfg virtual.Config) *DemoModel {
	t.Helper()
	m, err := NewDemoModel(DemoOptions{Rows: rows, List: cfg, Seed: 7, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewDemoModel_InvalidConfig(t *testing.T) {
	_, err := NewDemoModel(DemoOptions{List: virtual.Config{Mode: virtual.Fixed{ItemSize: 0}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, virtual.ErrInvalidConfig)
}

func TestDemoModel_StatusLine(t *testing.T) {
	rows := demo.Generate(demo.Options{Count: 1000, Seed: 1, MaxLines: 1})
	m := newTestDemo(t, rows, fixedConfig(1))

	m.Update(tea.WindowSizeMsg{Width: 160, Height: 24})
	view := m.View()

	assert.Contains(t, view, "1,000 items")
	assert.Contains(t, view, "visible [0,21]")
	assert.Contains(t, view, "rendered [0,23]")
	assert.Contains(t, view, "pool 24")
	assert.Contains(t, view, "passes 1/1 events")
	assert.Contains(t, view, "idle")
	assert.Contains(t, view, "shuffle")
	assert.Equal(t, 22, m.List().Height())
}

func TestDemoModel_Quit(t *testing.T) {
	m := newTestDemo(t, demo.Generate(demo.Options{Count: 10, Seed: 1}), fixedConfig(1))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestDemoModel_Shuffle(t *testing.T) {
	rows := demo.Generate(demo.Options{Count: 1000, Seed: 1})
	m := newTestDemo(t, rows, fixedConfig(1))
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 12})

	m.Update(keyRunes("s"))

	shuffled := m.Rows()
	require.Len(t, shuffled, len(rows))
	assert.NotEqual(t, rows, shuffled)
	assert.ElementsMatch(t, rows, shuffled)
	assert.Equal(t, 1000, m.List().ItemCount())
	assert.Contains(t, m.View(), "shuffled (#1)")

	frame := m.List().Frame()
	require.NotEmpty(t, frame.Cells)
	for _, cell := range frame.Cells {
		assert.Equal(t, shuffled[cell.Index].ID, cell.Item.ID, "cell bound to the new order")
	}
}

func TestDemoModel_NavigationForwarded(t *testing.T) {
	m := newTestDemo(t, demo.Generate(demo.Options{Count: 100, Seed: 1}), fixedConfig(1))
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 12})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(keyRunes("j"))

	assert.Equal(t, 2, m.List().Selected())
}

func TestDemoModel_ConfigReload(t *testing.T) {
	m := newTestDemo(t, demo.Generate(demo.Options{Count: 1000, Seed: 1}), fixedConfig(1))
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 24})

	cfg := config.Default()
	cfg.List.Mode = config.ModeFixed
	cfg.List.Buffer = 5
	cfg.List.Debounce = 0

	m.Update(ConfigReloadMsg{Config: cfg})

	frame := m.List().Frame()
	assert.Equal(t, virtual.Range{Start: 0, End: 26}, frame.Window.Rendered)
	assert.Contains(t, m.View(), "config reloaded: buffer 5")
}

func TestDemoModel_ConfigReloadError(t *testing.T) {
	m := newTestDemo(t, demo.Generate(demo.Options{Count: 100, Seed: 1}), fixedConfig(1))
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 12})
	before := m.List().Frame().Window

	m.Update(ConfigReloadMsg{Err: errors.New("yaml: line 3: bad indent")})

	assert.Equal(t, before, m.List().Frame().Window, "window unchanged")
	assert.Contains(t, m.View(), "config reload failed")
}

func TestDemoModel_RenderRowFixedHeight(t *testing.T) {
	m := newTestDemo(t, nil, fixedConfig(3))

	tests := []struct {
		name  string
		lines []string
	}{
		{name: "no body", lines: nil},
		{name: "short body", lines: []string{"one"}},
		{name: "long body", lines: []string{"one", "two", "three", "four"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := demo.Row{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV", Title: "title", Lines: tt.lines, Value: 1234}
			out := m.renderRow(row, false, 80)
			assert.Equal(t, 3, lipgloss.Height(out))
			assert.Contains(t, out, "1,234")
		})
	}
}

func TestDemoModel_DynamicMeasurement(t *testing.T) {
	rows := []demo.Row{
		{ID: "a", Title: "first", Lines: []string{"x"}},
		{ID: "b", Title: "second", Lines: []string{"x", "y", "z"}},
		{ID: "c", Title: "third"},
	}
	m := newTestDemo(t, rows, virtual.Config{Mode: virtual.Dynamic{Estimate: 1}})

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})

	sizes := m.List().Controller().List().Sizes()
	assert.Equal(t, 2, sizes.SizeOf(0))
	assert.Equal(t, 4, sizes.SizeOf(1))
	assert.Equal(t, 1, sizes.SizeOf(2))
	assert.Equal(t, 7, sizes.Total())
}

func TestDemoModel_EmptyRows(t *testing.T) {
	m := newTestDemo(t, nil, fixedConfig(1))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

	assert.Contains(t, m.View(), "No items to display.")
}
