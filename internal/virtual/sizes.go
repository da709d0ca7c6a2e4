package virtual

import "sort"

// Item is one entry of the backing list.
type Item struct {
	// ID is the stable, unique key used to keep slots bound to the same item.
	ID string `json:"id"`

	// Size is the explicit size in cells. Zero means unknown: fixed mode uses the
	// configured item size and dynamic mode uses the estimate until measured.
	Size int `json:"size"`
}

// SizeModel tracks per-item sizes and answers cumulative offset queries.
//
// In dynamic mode offsets come from a prefix-sum slice that is rebuilt lazily:
// a size change only lowers the valid watermark, and the next lookup extends
// the prefix up to the requested index.
type SizeModel struct {
	// fixed is the item size in fixed mode, zero in dynamic mode.
	fixed int

	// estimate is the size of unmeasured items in dynamic mode.
	estimate int

	// count is the number of items.
	count int

	// sizes holds the current size of each item (dynamic mode only).
	sizes []int

	// measured marks items whose size is known rather than estimated.
	measured []bool

	// prefix[i] is the offset of item i; prefix[count] is the total size.
	prefix []int

	// valid is the highest index whose prefix entry is up to date.
	valid int
}

// NewSizeModel builds a size model for items under the given mode.
func NewSizeModel(mode SizeMode, items []Item) *SizeModel {
	m := &SizeModel{}
	switch v := mode.(type) {
	case Fixed:
		m.fixed = v.ItemSize
	case Dynamic:
		m.estimate = v.Estimate
	}
	if m.fixed == 0 && m.estimate <= 0 {
		m.estimate = DefaultEstimate
	}
	m.Reset(items)
	return m
}

// Reset replaces the backing items, discarding every previous measurement.
func (m *SizeModel) Reset(items []Item) {
	m.count = len(items)
	if m.fixed > 0 {
		m.sizes, m.measured, m.prefix = nil, nil, nil
		return
	}

	m.sizes = make([]int, len(items))
	m.measured = make([]bool, len(items))
	for i, it := range items {
		if it.Size > 0 {
			m.sizes[i] = it.Size
			m.measured[i] = true
			continue
		}
		m.sizes[i] = m.estimate
	}
	m.prefix = make([]int, len(items)+1)
	m.valid = 0
}

// IsFixed reports whether the model runs in fixed-size mode.
func (m *SizeModel) IsFixed() bool { return m.fixed > 0 }

// Len returns the number of items.
func (m *SizeModel) Len() int { return m.count }

// SetSize records a measured size for index. It is a no-op in fixed mode, for
// out-of-range indices and for negative sizes, and reports whether anything changed.
func (m *SizeModel) SetSize(index, size int) bool {
	if m.fixed > 0 || index < 0 || index >= m.count || size < 0 {
		return false
	}
	m.measured[index] = true
	if m.sizes[index] == size {
		return false
	}
	m.sizes[index] = size
	// prefix[index] only depends on items before index, so it stays valid.
	if index < m.valid {
		m.valid = index
	}
	return true
}

// SizeOf returns the size of index, or zero when out of range.
func (m *SizeModel) SizeOf(index int) int {
	if index < 0 || index >= m.count {
		return 0
	}
	if m.fixed > 0 {
		return m.fixed
	}
	return m.sizes[index]
}

// Measured reports whether index has a known size. Fixed-mode items are always measured.
func (m *SizeModel) Measured(index int) bool {
	if index < 0 || index >= m.count {
		return false
	}
	return m.fixed > 0 || m.measured[index]
}

// OffsetOf returns the cumulative offset of index. Indices are clamped to
// [0, Len()], so OffsetOf(Len()) is the total content size.
func (m *SizeModel) OffsetOf(index int) int {
	index = clamp(index, 0, m.count)
	if m.fixed > 0 {
		return index * m.fixed
	}
	m.extend(index)
	return m.prefix[index]
}

// Total returns the summed size of all items.
func (m *SizeModel) Total() int {
	return m.OffsetOf(m.count)
}

// IndexAt returns the index of the item that contains offset. Zero-size items
// never contain an offset. Offsets past the end return Len().
func (m *SizeModel) IndexAt(offset int) int {
	if offset < 0 {
		offset = 0
	}
	if m.fixed > 0 {
		return min(offset/m.fixed, m.count)
	}
	m.extend(m.count)
	return sort.Search(m.count, func(i int) bool {
		return m.prefix[i+1] > offset
	})
}

// extend brings prefix entries up to date through index.
func (m *SizeModel) extend(index int) {
	for m.valid < index {
		m.prefix[m.valid+1] = m.prefix[m.valid] + m.sizes[m.valid]
		m.valid++
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
