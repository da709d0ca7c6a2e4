package virtual

import (
	"time"

	"github.com/rs/zerolog"
)

// State is the scroll controller state.
type State int

const (
	// Idle means the last frame reflects the current viewport.
	Idle State = iota
	// Scrolling means a debounced pass is pending.
	Scrolling
)

func (s State) String() string {
	if s == Scrolling {
		return "scrolling"
	}
	return "idle"
}

// Pending asks the host to call Fire(Tag) after Delay. A newer Pending
// supersedes older ones, whose tags Fire then ignores.
type Pending struct {
	Tag   uint64
	Delay time.Duration
}

// ControllerStats counts events and passes since the controller was created.
type ControllerStats struct {
	Events     int `json:"events"`
	Recomputes int `json:"recomputes"`
	Forced     int `json:"forced"`
	Dropped    int `json:"dropped"`
}

// Controller turns scroll, resize and measurement events into render passes.
//
// The viewport is updated on every event, so hosts can shift already painted
// rows right away, while the full window and recycling pass waits until the
// debounce interval passes without another event or the offset has jumped
// at least Threshold cells since the last pass.
type Controller struct {
	list   *List
	vp     Viewport
	state  State
	seq    uint64
	tag    uint64
	last   int
	frame  Frame
	stats  ControllerStats
	logger zerolog.Logger
	onPass func(Frame)
}

// NewController wraps list. The initial frame is computed for an unmeasured viewport.
func NewController(list *List, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Controller{
		list:   list,
		logger: o.logger,
		onPass: o.onPass,
	}
	c.frame = list.Render(c.vp)
	return c
}

// List returns the controlled list.
func (c *Controller) List() *List { return c.list }

// Viewport returns the latest viewport, which may be ahead of Frame().
func (c *Controller) Viewport() Viewport { return c.vp }

// State returns Idle or Scrolling.
func (c *Controller) State() State { return c.state }

// Frame returns the last computed frame.
func (c *Controller) Frame() Frame { return c.frame }

// Stats returns event and pass counters.
func (c *Controller) Stats() ControllerStats { return c.stats }

// Scroll moves the viewport top to offset, clamped to the content.
func (c *Controller) Scroll(offset int) (Pending, bool) {
	c.vp.Offset = ClampOffset(c.list.sizes, offset, c.vp.Extent)
	return c.event()
}

// ScrollBy moves the viewport by delta cells.
func (c *Controller) ScrollBy(delta int) (Pending, bool) {
	return c.Scroll(c.vp.Offset + delta)
}

// Resize sets the viewport extent. Negative extents are treated as unmeasured.
func (c *Controller) Resize(extent int) (Pending, bool) {
	c.vp.Extent = max(extent, 0)
	c.vp.Offset = ClampOffset(c.list.sizes, c.vp.Offset, c.vp.Extent)
	return c.event()
}

// SetSize records a measurement. Unchanged or out-of-range measurements are
// ignored; changes are coalesced like scroll events.
func (c *Controller) SetSize(index, size int) (Pending, bool) {
	if !c.list.SetSize(index, size) {
		return Pending{}, false
	}
	return c.event()
}

// SetItems replaces the backing list and recomputes immediately, so no slot
// stays bound to an index of the old list.
func (c *Controller) SetItems(items []Item) {
	c.list.SetItems(items)
	c.vp.Offset = ClampOffset(c.list.sizes, c.vp.Offset, c.vp.Extent)
	c.stats.Events++
	c.recompute()
}

// SetBuffer changes the overscan and recomputes immediately.
func (c *Controller) SetBuffer(buffer int) {
	c.list.SetBuffer(buffer)
	c.recompute()
}

// SetTiming changes the debounce interval and forced-pass threshold.
// Negative values are ignored.
func (c *Controller) SetTiming(debounce time.Duration, threshold int) {
	if debounce >= 0 {
		c.list.cfg.Debounce = debounce
	}
	if threshold >= 0 {
		c.list.cfg.Threshold = threshold
	}
}

// ScrollToIndex puts index at the viewport top and recomputes immediately.
func (c *Controller) ScrollToIndex(index int) {
	c.vp.Offset = ClampOffset(c.list.sizes, c.list.OffsetOf(index), c.vp.Extent)
	c.stats.Events++
	c.recompute()
}

// Fire runs the pending pass for tag. Stale tags are dropped and reported false.
func (c *Controller) Fire(tag uint64) bool {
	if tag == 0 || tag != c.tag {
		c.stats.Dropped++
		c.logger.Debug().Uint64("tag", tag).Uint64("current", c.tag).Msg("superseded pass dropped")
		return false
	}
	c.recompute()
	return true
}

// Flush runs the pending pass, if any, without waiting for its timer.
func (c *Controller) Flush() bool {
	if c.tag == 0 {
		return false
	}
	c.recompute()
	return true
}

func (c *Controller) event() (Pending, bool) {
	c.stats.Events++
	cfg := c.list.cfg

	if cfg.Debounce == 0 {
		c.recompute()
		return Pending{}, false
	}
	if cfg.Threshold > 0 && abs(c.vp.Offset-c.last) >= cfg.Threshold {
		c.stats.Forced++
		c.logger.Debug().Int("offset", c.vp.Offset).Int("last", c.last).Msg("threshold exceeded, forcing pass")
		c.recompute()
		return Pending{}, false
	}

	c.seq++
	c.tag = c.seq
	c.state = Scrolling
	return Pending{Tag: c.tag, Delay: cfg.Debounce}, true
}

func (c *Controller) recompute() {
	c.tag = 0
	c.state = Idle
	c.frame = c.list.Render(c.vp)
	c.last = c.vp.Offset
	c.stats.Recomputes++
	if c.onPass != nil {
		c.onPass(c.frame)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
