//go:build property
// +build property

package virtual_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rshade/scrollkit/internal/virtual"
)

// TestWindowProperties checks window and recycler invariants over random lists.
func TestWindowProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	dynamicModel := func(sizes []int) *virtual.SizeModel {
		m := virtual.NewSizeModel(virtual.Dynamic{Estimate: 1}, makeItems(len(sizes), 0))
		for i, s := range sizes {
			m.SetSize(i, s)
		}
		return m
	}

	// Property: the visible range covers the whole viewport when it lies inside the content
	properties.Property("visible range covers viewport", prop.ForAll(
		func(sizes []int, offset, extent int) bool {
			m := dynamicModel(sizes)
			total := m.Total()
			if extent <= 0 || offset+extent > total {
				return true // Viewport not fully inside content
			}
			w := virtual.Calculate(m, virtual.Viewport{Offset: offset, Extent: extent}, 0)
			start := m.OffsetOf(w.Visible.Start)
			end := m.OffsetOf(w.Visible.End + 1)
			return start <= offset && end >= offset+extent && end-start >= extent
		},
		gen.SliceOfN(60, gen.IntRange(0, 9)),
		gen.IntRange(0, 300),
		gen.IntRange(1, 80),
	))

	// Property: Calculate is idempotent
	properties.Property("calculate idempotence", prop.ForAll(
		func(sizes []int, offset, extent, buffer int) bool {
			m := dynamicModel(sizes)
			vp := virtual.Viewport{Offset: offset, Extent: extent}
			return virtual.Calculate(m, vp, buffer) == virtual.Calculate(m, vp, buffer)
		},
		gen.SliceOfN(40, gen.IntRange(0, 9)),
		gen.IntRange(-20, 400),
		gen.IntRange(-5, 60),
		gen.IntRange(0, 5),
	))

	// Property: rendered range is always within bounds and contains the visible range
	properties.Property("rendered range bounds", prop.ForAll(
		func(n, offset, extent, buffer int) bool {
			m := virtual.NewSizeModel(virtual.Fixed{ItemSize: 3}, makeItems(n, 0))
			w := virtual.Calculate(m, virtual.Viewport{Offset: offset, Extent: extent}, buffer)
			if n == 0 {
				return w.Rendered.Empty() && w.Visible.Empty()
			}
			if w.Visible.Empty() {
				return w.Rendered.Empty()
			}
			return w.Rendered.Start >= 0 && w.Rendered.End <= n-1 &&
				w.Rendered.Start <= w.Visible.Start && w.Rendered.End >= w.Visible.End
		},
		gen.IntRange(0, 200),
		gen.IntRange(-10, 800),
		gen.IntRange(0, 50),
		gen.IntRange(0, 6),
	))

	// Property: the recycler never binds two slots to one index and binds every live index
	properties.Property("recycler never double-assigns", prop.ForAll(
		func(offsets []int, extent, buffer int) bool {
			list, err := virtual.NewList(
				virtual.Config{Mode: virtual.Fixed{ItemSize: 2}, Buffer: buffer},
				makeItems(500, 0),
			)
			if err != nil {
				return false
			}
			for _, offset := range offsets {
				vp := virtual.Viewport{Offset: offset, Extent: extent}
				frame := list.Render(vp)
				seen := map[int]bool{}
				slots := map[int]bool{}
				for _, cell := range frame.Cells {
					if seen[cell.Index] || slots[cell.Slot] {
						return false
					}
					seen[cell.Index] = true
					slots[cell.Slot] = true
				}
				for _, s := range list.Recycler().Slots() {
					if !s.Free() && !frame.Window.Rendered.Contains(s.Index) {
						return false
					}
				}
				if len(seen) != frame.Window.Rendered.Len() {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(20, gen.IntRange(0, 1000)),
		gen.IntRange(1, 40),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
