// Package listview provides virtual scrolling components for Bubble Tea TUI applications.
//
// This package hosts a virtual.Controller inside a Bubble Tea model so large lists
// (10,000+ items) only render the rows inside the viewport plus an overscan buffer.
// Key features:
//   - Keyboard (up/down, pgup/pgdn, home/end, j/k) and mouse wheel scrolling
//   - Debounced recompute passes scheduled with tea.Tick and superseded by tag
//   - Fixed or measured row heights; measurement uses lipgloss.Height
//   - Slot recycling: a slot still showing the same item reuses its last render
//
// Scrolling shifts the already rendered rows immediately, so the view stays
// responsive while the full window pass waits for the debounce interval.
package listview
