package listview_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVirtualListModel_ViewRendersOnlyVisibleRows tests that only visible rows are drawn.
func TestVirtualListModel_ViewRendersOnlyVisibleRows(t *testing.T) {
	m := newModel(t, names(1000), fixedConfig(0), renderPlain)
	m.SetSize(80, 20)

	lines := strings.Split(m.View(), "\n")

	assert.Len(t, lines, 20)
	assert.Equal(t, "> item-0", lines[0])
	assert.Equal(t, "  item-19", lines[19])
	assert.NotContains(t, m.View(), "item-20\n")
	assert.Equal(t, 22, m.RenderStats().Renders, "visible rows plus the trailing buffer")
}

// TestVirtualListModel_ViewUpdatesWithScroll tests that the view follows the selection.
func TestVirtualListModel_ViewUpdatesWithScroll(t *testing.T) {
	m := newModel(t, names(100), fixedConfig(0), renderPlain)
	m.SetSize(80, 20)

	before := m.View()
	m.SetSelected(50)
	after := m.View()

	assert.NotEqual(t, before, after)
	assert.Contains(t, after, "> item-50")
	assert.NotContains(t, after, "item-0\n")
}

// TestVirtualListModel_ViewSelectedMarker tests the selected item is visually marked.
func TestVirtualListModel_ViewSelectedMarker(t *testing.T) {
	m := newModel(t, []string{"apple", "banana", "cherry"}, fixedConfig(0), renderPlain)
	m.SetSize(80, 20)

	m.SetSelected(1)
	view := m.View()

	assert.Contains(t, view, "> banana")
	assert.Contains(t, view, "  apple")
	assert.Contains(t, view, "  cherry")
}

// TestVirtualListModel_ViewEmpty tests rendering with no items or no layout.
func TestVirtualListModel_ViewEmpty(t *testing.T) {
	empty := newModel(t, nil, fixedConfig(0), renderPlain)
	empty.SetSize(80, 20)
	assert.Empty(t, empty.View())

	unmeasured := newModel(t, names(10), fixedConfig(0), renderPlain)
	assert.Empty(t, unmeasured.View(), "no rows before the first WindowSizeMsg")
}

// TestVirtualListModel_ViewBoundaryConditions tests edge cases in rendering.
func TestVirtualListModel_ViewBoundaryConditions(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		height     int
		selected   int
	}{
		{name: "exactly viewport height items", totalItems: 20, height: 20, selected: 10},
		{name: "one item", totalItems: 1, height: 20, selected: 0},
		{name: "selected at start", totalItems: 100, height: 20, selected: 0},
		{name: "selected at end", totalItems: 100, height: 20, selected: 99},
		{name: "selection past the end", totalItems: 100, height: 20, selected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, names(tt.totalItems), fixedConfig(0), renderPlain)
			m.SetSize(80, tt.height)
			m.SetSelected(tt.selected)

			want := min(tt.selected, tt.totalItems-1)
			assert.Equal(t, want, m.Selected())
			assert.Contains(t, m.View(), "> item-"+strconv.Itoa(want))
		})
	}
}
