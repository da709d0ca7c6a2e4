// Package demo generates reproducible datasets for the list demo and benchmarks.
package demo

import (
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/scrollkit/internal/virtual"
)

// epoch anchors generated ULID timestamps so identifiers only depend on the seed.
//
//nolint:gochecknoglobals // Fixed reference time.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

//nolint:gochecknoglobals // Word list for generated text.
var words = strings.Fields(`alpha bravo window buffer slot scroll offset viewport
	frame pass cache measure render item list page overscan debounce throttle
	recycle prefix search clamp index range key stable pool lazy height width`)

// Row is one generated demo entry.
type Row struct {
	// ID is a ULID, unique and stable for a given seed.
	ID string
	// Title is a short single-line label.
	Title string
	// Lines holds the body text; its length varies per row.
	Lines []string
	// Value is an arbitrary number shown in the row.
	Value int
}

// Options controls Generate.
type Options struct {
	Count    int
	Seed     int64
	MaxLines int
}

// Generate builds opts.Count rows. Equal options always produce equal rows.
func Generate(opts Options) []Row {
	if opts.Count <= 0 {
		return nil
	}
	maxLines := max(opts.MaxLines, 1)

	rng := rand.New(rand.NewSource(opts.Seed)) //nolint:gosec // Demo data, not security sensitive.
	entropy := ulid.Monotonic(rng, 0)

	rows := make([]Row, opts.Count)
	for i := range rows {
		ts := ulid.Timestamp(epoch.Add(time.Duration(i) * time.Millisecond))
		lines := make([]string, rng.Intn(maxLines)+1)
		for j := range lines {
			lines[j] = sentence(rng, 4+rng.Intn(8))
		}
		rows[i] = Row{
			ID:    ulid.MustNew(ts, entropy).String(),
			Title: sentence(rng, 2+rng.Intn(3)),
			Lines: lines,
			Value: rng.Intn(100_000),
		}
	}
	return rows
}

// Items converts rows to list items keyed by row ID. Sizes are left unknown so
// fixed mode uses the configured size and dynamic mode measures on render.
func Items(rows []Row) []virtual.Item {
	items := make([]virtual.Item, len(rows))
	for i, r := range rows {
		items[i] = virtual.Item{ID: r.ID}
	}
	return items
}

// MeasuredItems converts rows to list items whose size is the row's line
// count: one header line plus its body. Headless callers use it in place of
// rendering and measuring.
func MeasuredItems(rows []Row) []virtual.Item {
	items := make([]virtual.Item, len(rows))
	for i, r := range rows {
		items[i] = virtual.Item{ID: r.ID, Size: 1 + len(r.Lines)}
	}
	return items
}

// Shuffle returns a copy of rows with a few entries moved, used to show that
// slots follow their item across a list swap.
func Shuffle(rows []Row, seed int64) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Demo data, not security sensitive.
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func sentence(rng *rand.Rand, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rng.Intn(len(words))]
	}
	return strings.Join(parts, " ")
}
