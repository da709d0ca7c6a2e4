package listview

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/scrollkit/internal/virtual"
)

// wheelStep is the number of rows one mouse wheel notch scrolls.
const wheelStep = 3

// maxSettlePasses bounds measurement rounds in settle.
const maxSettlePasses = 4

//nolint:gochecknoglobals // Model identity counter, like bubbles components use.
var lastID atomic.Int64

// RenderFunc renders an item. The selected parameter indicates whether this item
// is currently selected; width is the available width in columns.
type RenderFunc[T any] func(item T, selected bool, width int) string

// KeyFunc returns the stable identifier of an item.
type KeyFunc[T any] func(item T) string

// recomputeMsg delivers a debounced pass back into Update.
type recomputeMsg struct {
	id  int64
	tag uint64
}

// slotRender is the last output of a slot.
type slotRender struct {
	key      string
	selected bool
	width    int
	lines    []string
}

// RenderStats counts item renders and renders avoided through slot reuse.
type RenderStats struct {
	Renders int
	Reused  int
}

// VirtualListModel implements virtual scrolling for large lists.
// It renders only the rows inside the viewport plus the overscan buffer and
// keeps one cached render per recycled slot.
type VirtualListModel[T any] struct {
	id int64

	// items contains all list items
	items []T

	keyOf      KeyFunc[T]
	renderFunc RenderFunc[T]

	ctrl *virtual.Controller

	// selected is the currently selected item index (0-based)
	selected int

	// width and height of the viewport in columns and rows
	width  int
	height int

	keys  KeyMap
	cache map[int]slotRender
	stats RenderStats
}

// NewVirtualListModel creates a new virtual list model.
// items: the complete list of items to display.
// cfg: window engine configuration; it is validated here.
// keyOf: stable identifier of an item.
// renderFunc: function to render each item.
func NewVirtualListModel[T any](
	items []T,
	cfg virtual.Config,
	keyOf KeyFunc[T],
	renderFunc RenderFunc[T],
	opts ...virtual.Option,
) (*VirtualListModel[T], error) {
	m := &VirtualListModel[T]{
		id:         lastID.Add(1),
		items:      items,
		keyOf:      keyOf,
		renderFunc: renderFunc,
		keys:       DefaultKeyMap(),
		cache:      make(map[int]slotRender),
	}

	list, err := virtual.NewList(cfg, m.listItems(), opts...)
	if err != nil {
		return nil, err
	}
	m.ctrl = virtual.NewController(list, opts...)
	return m, nil
}

// Init initializes the model (required for tea.Model interface).
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard, mouse, resize and debounced recompute messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	case tea.MouseMsg:
		return m, m.handleMouseMsg(msg)
	case tea.WindowSizeMsg:
		return m, m.SetSize(msg.Width, msg.Height)
	case recomputeMsg:
		if msg.id != m.id || !m.ctrl.Fire(msg.tag) {
			return m, nil
		}
		return m, m.measure()
	}

	return m, nil
}

// handleKeyMsg processes keyboard input for navigation.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}

	page := max(m.ctrl.Frame().Window.Visible.Len(), 1)

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.selectIndex(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		return m.selectIndex(m.selected + 1)
	case key.Matches(msg, m.keys.PageUp):
		return m.selectIndex(m.selected - page)
	case key.Matches(msg, m.keys.PageDown):
		return m.selectIndex(m.selected + page)
	case key.Matches(msg, m.keys.Home):
		return m.selectIndex(0)
	case key.Matches(msg, m.keys.End):
		return m.selectIndex(len(m.items) - 1)
	}
	return nil
}

// handleMouseMsg scrolls the viewport without moving the selection.
func (m *VirtualListModel[T]) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	//nolint:exhaustive // Only wheel events scroll the list.
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.schedule(m.ctrl.ScrollBy(-wheelStep))
	case tea.MouseButtonWheelDown:
		return m.schedule(m.ctrl.ScrollBy(wheelStep))
	}
	return nil
}

// selectIndex moves the selection, clamped to the list, and scrolls just
// enough to keep the selected item fully visible.
func (m *VirtualListModel[T]) selectIndex(index int) tea.Cmd {
	m.selected = max(0, min(index, len(m.items)-1))

	sizes := m.ctrl.List().Sizes()
	top := sizes.OffsetOf(m.selected)
	bottom := top + sizes.SizeOf(m.selected)
	vp := m.ctrl.Viewport()

	switch {
	case top < vp.Offset:
		return m.schedule(m.ctrl.Scroll(top))
	case bottom > vp.Offset+vp.Extent:
		return m.schedule(m.ctrl.Scroll(bottom - vp.Extent))
	}
	return nil
}

// schedule turns a pending pass into a tea.Tick carrying its tag.
func (m *VirtualListModel[T]) schedule(p virtual.Pending, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	id, tag := m.id, p.Tag
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return recomputeMsg{id: id, tag: tag}
	})
}

// measure records the rendered height of every unmeasured item in the last frame.
// It is a no-op in fixed mode.
func (m *VirtualListModel[T]) measure() tea.Cmd {
	sizes := m.ctrl.List().Sizes()
	if sizes.IsFixed() || m.width <= 0 {
		return nil
	}

	var (
		pending   virtual.Pending
		scheduled bool
	)
	for _, cell := range m.ctrl.Frame().Cells {
		if sizes.Measured(cell.Index) {
			continue
		}
		h := lipgloss.Height(m.renderFunc(m.items[cell.Index], cell.Index == m.selected, m.width))
		if p, ok := m.ctrl.SetSize(cell.Index, h); ok {
			pending, scheduled = p, true
		}
	}
	return m.schedule(pending, scheduled)
}

// SetSize resizes the viewport. A width change in dynamic mode discards every
// measurement because wrapped rows change height.
func (m *VirtualListModel[T]) SetSize(width, height int) tea.Cmd {
	widthChanged := width != m.width
	firstLayout := m.ctrl.Viewport().Extent == 0

	m.width = width
	m.height = max(height, 0)

	if widthChanged {
		clear(m.cache)
		if !m.ctrl.List().Sizes().IsFixed() {
			m.ctrl.SetItems(m.listItems())
		}
	}

	p, ok := m.ctrl.Resize(m.height)
	if ok && firstLayout {
		// Nothing is on screen yet, so there is nothing to debounce.
		m.ctrl.Flush()
		ok = false
	}
	return tea.Batch(m.schedule(p, ok), m.measure())
}

// View renders the rows inside the current viewport.
//
// Rows come from the last computed frame positioned against the latest
// viewport, so scrolling moves content before the next pass completes.
func (m *VirtualListModel[T]) View() string {
	vp := m.ctrl.Viewport()
	if len(m.items) == 0 || vp.Extent == 0 {
		return ""
	}

	rows := make([]string, vp.Extent)
	for _, cell := range m.ctrl.Frame().Cells {
		lines := m.renderSlot(cell)
		for j := 0; j < cell.Size && j < len(lines); j++ {
			row := cell.Offset + j - vp.Offset
			if row >= 0 && row < len(rows) {
				rows[row] = lines[j]
			}
		}
	}

	return strings.Join(rows, "\n")
}

// renderSlot returns the slot's cached render when it still shows the same
// item in the same state, and renders the item otherwise.
func (m *VirtualListModel[T]) renderSlot(cell virtual.Cell) []string {
	selected := cell.Index == m.selected
	if cached, ok := m.cache[cell.Slot]; ok &&
		cached.key == cell.Item.ID && cached.selected == selected && cached.width == m.width {
		m.stats.Reused++
		return cached.lines
	}

	m.stats.Renders++
	lines := strings.Split(m.renderFunc(m.items[cell.Index], selected, m.width), "\n")
	m.cache[cell.Slot] = slotRender{key: cell.Item.ID, selected: selected, width: m.width, lines: lines}
	return lines
}

func (m *VirtualListModel[T]) listItems() []virtual.Item {
	out := make([]virtual.Item, len(m.items))
	for i, it := range m.items {
		out[i] = virtual.Item{ID: m.keyOf(it)}
	}
	return out
}

// SetItems replaces the list. The selection is clamped and slots keep showing
// items whose identifier survived.
func (m *VirtualListModel[T]) SetItems(items []T) tea.Cmd {
	m.items = items
	m.ctrl.SetItems(m.listItems())
	m.selected = max(0, min(m.selected, len(items)-1))
	return m.measure()
}

// SetBuffer changes the overscan.
func (m *VirtualListModel[T]) SetBuffer(buffer int) tea.Cmd {
	m.ctrl.SetBuffer(buffer)
	return m.measure()
}

// SetTiming changes the debounce interval and forced-pass threshold.
func (m *VirtualListModel[T]) SetTiming(debounce time.Duration, threshold int) {
	m.ctrl.SetTiming(debounce, threshold)
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds, and
// brings it into view without waiting for the debounce.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selectIndex(index)
	m.settle()
}

// settle runs pending passes and measurements synchronously until the frame
// is stable, for callers outside the Bubble Tea loop.
func (m *VirtualListModel[T]) settle() {
	m.ctrl.Flush()
	for pass := 0; pass < maxSettlePasses; pass++ {
		m.measure()
		if !m.ctrl.Flush() {
			return
		}
	}
}

// GetSelectedItem returns the currently selected item.
// Returns nil if list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// Frame returns the last computed frame.
func (m *VirtualListModel[T]) Frame() virtual.Frame {
	return m.ctrl.Frame()
}

// Controller exposes the scroll controller.
func (m *VirtualListModel[T]) Controller() *virtual.Controller {
	return m.ctrl
}

// RenderStats returns render counters.
func (m *VirtualListModel[T]) RenderStats() RenderStats {
	return m.stats
}

// KeyMap returns the navigation bindings.
func (m *VirtualListModel[T]) KeyMap() KeyMap {
	return m.keys
}
