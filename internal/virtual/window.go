package virtual

import "fmt"

// Range is an inclusive span of item indices. End < Start means empty.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// EmptyRange is the canonical empty range.
//
//nolint:gochecknoglobals // Read-only sentinel value.
var EmptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool { return r.End < r.Start }

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index lies inside the range.
func (r Range) Contains(index int) bool {
	return !r.Empty() && index >= r.Start && index <= r.End
}

func (r Range) String() string {
	if r.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// Viewport is the visible region of the scroll container.
type Viewport struct {
	// Offset is the scroll position of the viewport top, in cells.
	Offset int `json:"offset"`

	// Extent is the visible size in cells. Zero means not measured yet.
	Extent int `json:"extent"`
}

// Window is the result of a window calculation.
type Window struct {
	// Visible is the range of items intersecting the viewport.
	Visible Range `json:"visible"`

	// Rendered is Visible widened by the buffer on both ends.
	Rendered Range `json:"rendered"`
}

// ClampOffset limits offset to [0, max(0, total-extent)].
func ClampOffset(m *SizeModel, offset, extent int) int {
	return clamp(offset, 0, max(0, m.Total()-extent))
}

// Calculate returns the visible and rendered ranges for vp over the items in m.
//
// An empty list or an unmeasured viewport yields empty ranges. Content that
// fits in the viewport yields the full range. Calculate does not mutate the
// observable state of m, so identical inputs always give identical windows.
func Calculate(m *SizeModel, vp Viewport, buffer int) Window {
	n := m.Len()
	if n == 0 || vp.Extent <= 0 {
		return Window{Visible: EmptyRange, Rendered: EmptyRange}
	}

	total := m.Total()
	if total <= vp.Extent {
		full := Range{Start: 0, End: n - 1}
		return Window{Visible: full, Rendered: full}
	}

	top := ClampOffset(m, vp.Offset, vp.Extent)
	bottom := top + vp.Extent

	// Both lookups land inside the content because bottom <= total.
	visible := Range{
		Start: m.IndexAt(top),
		End:   m.IndexAt(bottom - 1),
	}

	buffer = max(buffer, 0)
	rendered := Range{
		Start: max(0, visible.Start-buffer),
		End:   min(n-1, visible.End+buffer),
	}

	return Window{Visible: visible, Rendered: rendered}
}
