package cli

import (
	"github.com/spf13/pflag"

	"github.com/rshade/scrollkit/internal/config"
)

// addListFlags registers the list engine overrides. Names match config.FlagKeys.
func addListFlags(fs *pflag.FlagSet) {
	d := config.Default().List
	fs.String("mode", d.Mode, "size mode: fixed or dynamic")
	fs.Int("item-size", d.ItemSize, "row height of every item in fixed mode")
	fs.Int("estimate", d.Estimate, "assumed height of unmeasured items in dynamic mode")
	fs.Int("buffer", d.Buffer, "items rendered beyond each edge of the viewport")
	fs.Int("prerender", d.Prerender, "items rendered before the viewport is measured")
	fs.Duration("debounce", d.Debounce, "quiet period before a recompute pass (0 recomputes on every event)")
	fs.Int("threshold", d.Threshold, "rows of scrolling that force a pass during a burst (0 disables)")
}

// addDatasetFlags registers the generated dataset overrides.
func addDatasetFlags(fs *pflag.FlagSet) {
	d := config.Default().Demo
	fs.Int("items", d.Items, "number of generated rows")
	fs.Int64("seed", d.Seed, "seed for the generated rows")
	fs.Int("max-lines", d.MaxLines, "maximum body lines per row")
}
