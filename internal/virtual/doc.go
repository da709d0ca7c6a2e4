// Package virtual implements windowed rendering for large lists.
//
// Only the items that intersect the viewport, plus an overscan buffer, are
// handed to the host for painting. The package is split into four pieces:
//   - SizeModel tracks per-item sizes and cumulative offsets (fixed or measured)
//   - Calculate turns a viewport and scroll offset into a visible and rendered range
//   - Recycler binds rendered indices to a small pool of reusable slots
//   - Controller debounces scroll/resize events and drives full recompute passes
//
// None of the types are safe for concurrent use. They are meant to be driven
// from a single event loop, either a Bubble Tea Update method or Loop.Run.
package virtual
