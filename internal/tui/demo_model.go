package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/scrollkit/internal/config"
	"github.com/rshade/scrollkit/internal/demo"
	"github.com/rshade/scrollkit/internal/logging"
	listview "github.com/rshade/scrollkit/internal/tui/list"
	"github.com/rshade/scrollkit/internal/virtual"
)

// chromeHeight is the number of rows below the list (status and help).
const chromeHeight = 2

// ConfigReloadMsg carries a configuration reloaded from disk, or the error
// that prevented the reload.
type ConfigReloadMsg struct {
	Config *config.Config
	Err    error
}

// demoKeyMap adds the demo's own bindings to the list navigation keys.
type demoKeyMap struct {
	listview.KeyMap

	Shuffle key.Binding
	Quit    key.Binding
}

func newDemoKeyMap(list listview.KeyMap) demoKeyMap {
	return demoKeyMap{
		KeyMap: list,
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k demoKeyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Shuffle, k.Quit)
}

func (k demoKeyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Shuffle, k.Quit})
}

// DemoOptions configures NewDemoModel.
type DemoOptions struct {
	Rows   []demo.Row
	List   virtual.Config
	Seed   int64
	Logger zerolog.Logger
}

// DemoModel is the interactive demo screen: the windowed list of generated
// rows, a status line with engine counters and a help line.
//
//nolint:recvcheck // Pointer receivers; the model is shared with tea.Program.
type DemoModel struct {
	list *listview.VirtualListModel[demo.Row]
	rows []demo.Row

	// fixedSize is the row height in fixed mode, 0 in dynamic mode.
	fixedSize int

	keys    demoKeyMap
	help    help.Model
	printer *message.Printer
	logger  zerolog.Logger

	seed     int64
	shuffles int
	notice   string

	width    int
	height   int
	quitting bool
}

// NewDemoModel builds the demo screen. The list configuration is validated.
func NewDemoModel(opts DemoOptions) (*DemoModel, error) {
	m := &DemoModel{
		rows:    opts.Rows,
		help:    help.New(),
		printer: message.NewPrinter(language.English),
		logger:  logging.ComponentLogger(opts.Logger, "tui"),
		seed:    opts.Seed,
	}
	if fixed, ok := opts.List.Mode.(virtual.Fixed); ok {
		m.fixedSize = fixed.ItemSize
	}

	list, err := listview.NewVirtualListModel(
		opts.Rows,
		opts.List,
		func(r demo.Row) string { return r.ID },
		m.renderRow,
		virtual.WithLogger(logging.ComponentLogger(opts.Logger, "virtual")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}
	m.list = list
	m.keys = newDemoKeyMap(list.KeyMap())

	m.logger.Debug().
		Int("rows", len(opts.Rows)).
		Str("mode", opts.List.Mode.String()).
		Int("buffer", opts.List.Buffer).
		Dur("debounce", opts.List.Debounce).
		Msg("demo model created")
	return m, nil
}

// Init implements tea.Model.
func (m *DemoModel) Init() tea.Cmd {
	return m.list.Init()
}

// Update implements tea.Model.
func (m *DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Shuffle):
			return m, m.shuffle()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, m.list.SetSize(msg.Width, max(msg.Height-chromeHeight, 0))
	case ConfigReloadMsg:
		return m, m.applyConfig(msg)
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

// shuffle swaps in a reordered copy of the rows. Slots follow their row.
func (m *DemoModel) shuffle() tea.Cmd {
	m.shuffles++
	m.rows = demo.Shuffle(m.rows, m.seed+int64(m.shuffles))
	m.notice = fmt.Sprintf("shuffled (#%d)", m.shuffles)
	m.logger.Debug().Int("shuffle", m.shuffles).Msg("rows shuffled")
	return m.list.SetItems(m.rows)
}

// applyConfig applies buffer and timing from a reloaded configuration.
// Mode and dataset changes take effect on the next start.
func (m *DemoModel) applyConfig(msg ConfigReloadMsg) tea.Cmd {
	if msg.Err != nil {
		m.notice = "config reload failed"
		m.logger.Warn().Err(msg.Err).Msg("config reload failed")
		return nil
	}

	cfg, err := msg.Config.List.ToVirtual()
	if err != nil {
		m.notice = "config reload failed"
		m.logger.Warn().Err(err).Msg("reloaded config rejected")
		return nil
	}

	m.list.SetTiming(cfg.Debounce, cfg.Threshold)
	m.notice = fmt.Sprintf("config reloaded: buffer %d, debounce %s, threshold %d",
		cfg.Buffer, cfg.Debounce, cfg.Threshold)
	m.logger.Info().
		Int("buffer", cfg.Buffer).
		Dur("debounce", cfg.Debounce).
		Int("threshold", cfg.Threshold).
		Msg("config reloaded")
	return m.list.SetBuffer(cfg.Buffer)
}

// View implements tea.Model.
func (m *DemoModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.rows) == 0 {
		return SubtleStyle.Render("No items to display.") + "\n" + m.help.View(m.keys)
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// statusLine summarizes the last frame and the engine counters.
func (m *DemoModel) statusLine() string {
	frame := m.list.Frame()
	ctrl := m.list.Controller()
	stats := ctrl.Stats()
	renders := m.list.RenderStats()

	parts := []string{
		m.printer.Sprintf("%d items", len(m.rows)),
		"visible " + frame.Window.Visible.String(),
		"rendered " + frame.Window.Rendered.String(),
		m.printer.Sprintf("pool %d", frame.Recycler.Pool),
		m.printer.Sprintf("passes %d/%d events", stats.Recomputes, stats.Events),
		m.printer.Sprintf("reused %d/%d", renders.Reused, renders.Reused+renders.Renders),
		ctrl.State().String(),
	}

	line := LabelStyle.Render(strings.Join(parts, " | "))
	if m.notice != "" {
		line += "  " + WarningStyle.Render(m.notice)
	}
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// renderRow draws a row header and its body. Fixed mode pads or cuts the body
// to the configured height; dynamic mode wraps to the width and lets the list
// measure the result.
func (m *DemoModel) renderRow(row demo.Row, selected bool, width int) string {
	header := fmt.Sprintf("%s  %s  %s", row.ID, row.Title, m.printer.Sprintf("%d", row.Value))
	if selected {
		header = SelectedStyle.Render(header)
	} else {
		header = ValueStyle.Render(header)
	}

	lines := []string{header}
	body := row.Lines
	if m.fixedSize > 0 {
		body = body[:min(len(body), m.fixedSize-1)]
	}
	for _, l := range body {
		lines = append(lines, BodyStyle.Render(l))
	}
	for m.fixedSize > 0 && len(lines) < m.fixedSize {
		lines = append(lines, "")
	}

	out := strings.Join(lines, "\n")
	if width <= 0 {
		return out
	}
	if m.fixedSize > 0 {
		return lipgloss.NewStyle().MaxWidth(width).Render(out)
	}
	return lipgloss.NewStyle().Width(width).Render(out)
}

// List exposes the hosted list model.
func (m *DemoModel) List() *listview.VirtualListModel[demo.Row] {
	return m.list
}

// Rows returns the rows in display order.
func (m *DemoModel) Rows() []demo.Row {
	return m.rows
}
