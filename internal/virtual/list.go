package virtual

import (
	"github.com/rs/zerolog"
)

// Cell is one entry of a rendered frame: which slot paints which item where.
type Cell struct {
	Slot   int       `json:"slot"`
	Index  int       `json:"index"`
	Item   Item      `json:"item"`
	Offset int       `json:"offset"`
	Size   int       `json:"size"`
	State  BindState `json:"state"`
}

// Frame is the output of one render pass.
type Frame struct {
	Viewport Viewport      `json:"viewport"`
	Window   Window        `json:"window"`
	Cells    []Cell        `json:"cells"`
	Total    int           `json:"total"`
	Recycler RecyclerStats `json:"recycler"`
}

// Option configures a List or Controller.
type Option func(*options)

type options struct {
	logger zerolog.Logger
	onPass func(Frame)
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithLogger sets the logger used for debug output of render passes.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOnPass registers a callback invoked with every frame a Controller computes.
func WithOnPass(fn func(Frame)) Option {
	return func(o *options) { o.onPass = fn }
}

// List owns the items, their sizes and the slot pool of one windowed list.
type List struct {
	cfg      Config
	items    []Item
	sizes    *SizeModel
	recycler *Recycler
	logger   zerolog.Logger
}

// NewList validates cfg and builds a list over items.
func NewList(cfg Config, items []Item, opts ...Option) (*List, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &List{
		cfg:      cfg,
		items:    items,
		sizes:    NewSizeModel(cfg.Mode, items),
		recycler: NewRecycler(),
		logger:   o.logger,
	}, nil
}

// Config returns the list configuration.
func (l *List) Config() Config { return l.cfg }

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Item returns the item at index.
func (l *List) Item(index int) (Item, bool) {
	if index < 0 || index >= len(l.items) {
		return Item{}, false
	}
	return l.items[index], true
}

// Sizes exposes the size model.
func (l *List) Sizes() *SizeModel { return l.sizes }

// Recycler exposes the slot pool.
func (l *List) Recycler() *Recycler { return l.recycler }

// SetItems replaces the backing list. Measurements are discarded; slots keep
// their item where the identifier survives the swap.
func (l *List) SetItems(items []Item) {
	l.items = items
	l.sizes.Reset(items)
}

// SetSize records a measured size; see SizeModel.SetSize.
func (l *List) SetSize(index, size int) bool {
	return l.sizes.SetSize(index, size)
}

// OffsetOf returns the cumulative offset of index.
func (l *List) OffsetOf(index int) int { return l.sizes.OffsetOf(index) }

// SetBuffer changes the overscan used by subsequent passes.
func (l *List) SetBuffer(buffer int) {
	if buffer >= 0 {
		l.cfg.Buffer = buffer
	}
}

// Window computes the ranges for vp without touching the slot pool.
func (l *List) Window(vp Viewport) Window {
	if vp.Extent <= 0 && l.cfg.Prerender > 0 && len(l.items) > 0 {
		pre := Range{Start: 0, End: min(l.cfg.Prerender, len(l.items)) - 1}
		return Window{Visible: EmptyRange, Rendered: pre}
	}
	return Calculate(l.sizes, vp, l.cfg.Buffer)
}

// Render runs a full pass: window calculation followed by slot assignment.
func (l *List) Render(vp Viewport) Frame {
	w := l.Window(vp)
	bindings := l.recycler.Assign(w.Rendered, func(i int) string { return l.items[i].ID })

	cells := make([]Cell, len(bindings))
	for i, b := range bindings {
		cells[i] = Cell{
			Slot:   b.Slot,
			Index:  b.Index,
			Item:   l.items[b.Index],
			Offset: l.sizes.OffsetOf(b.Index),
			Size:   l.sizes.SizeOf(b.Index),
			State:  b.State,
		}
	}

	stats := l.recycler.Stats()
	l.logger.Debug().
		Int("offset", vp.Offset).
		Int("extent", vp.Extent).
		Stringer("visible", w.Visible).
		Stringer("rendered", w.Rendered).
		Int("pool", stats.Pool).
		Int("created", stats.Created).
		Int("rebound", stats.Rebound).
		Msg("render pass")

	return Frame{
		Viewport: vp,
		Window:   w,
		Cells:    cells,
		Total:    l.sizes.Total(),
		Recycler: stats,
	}
}
