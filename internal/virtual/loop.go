package virtual

import (
	"context"
	"time"
)

// EventKind identifies a host event fed to Loop.
type EventKind int

const (
	// EventScroll sets the absolute scroll offset.
	EventScroll EventKind = iota
	// EventScrollBy moves the scroll offset by a delta.
	EventScrollBy
	// EventResize sets the viewport extent.
	EventResize
	// EventMeasure records a measured size for Index.
	EventMeasure
)

// Event is a host event. Value is the offset, delta, extent or size.
type Event struct {
	Kind  EventKind
	Index int
	Value int
}

// Loop drives a Controller from a channel on a single goroutine, arming a
// timer for each pending pass. A newer event stops the previous timer.
type Loop struct {
	c *Controller
}

// NewLoop returns a loop for c.
func NewLoop(c *Controller) *Loop {
	return &Loop{c: c}
}

// Run consumes events until the channel closes or ctx is done. A pending pass
// is flushed when the channel closes. Run returns ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context, events <-chan Event) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
		tag    uint64
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				l.c.Flush()
				return nil
			}
			p, scheduled := l.apply(ev)
			if scheduled || l.c.State() == Idle {
				stop()
			}
			if scheduled {
				tag = p.Tag
				timer = time.NewTimer(p.Delay)
				timerC = timer.C
			}

		case <-timerC:
			timer, timerC = nil, nil
			l.c.Fire(tag)
		}
	}
}

func (l *Loop) apply(ev Event) (Pending, bool) {
	switch ev.Kind {
	case EventScroll:
		return l.c.Scroll(ev.Value)
	case EventScrollBy:
		return l.c.ScrollBy(ev.Value)
	case EventResize:
		return l.c.Resize(ev.Value)
	case EventMeasure:
		return l.c.SetSize(ev.Index, ev.Value)
	default:
		return Pending{}, false
	}
}
