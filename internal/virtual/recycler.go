package virtual

// BindState describes what happened to a slot during the last Assign.
type BindState int

const (
	// Kept means the slot still shows the same item; the host only repositions it.
	Kept BindState = iota
	// Rebound means an existing slot now shows a different item.
	Rebound
	// Created means the pool grew to cover this index.
	Created
)

func (s BindState) String() string {
	switch s {
	case Kept:
		return "kept"
	case Rebound:
		return "rebound"
	case Created:
		return "created"
	default:
		return "unknown"
	}
}

// Slot is a reusable render target. Index is -1 while the slot is free.
type Slot struct {
	ID    int
	Index int
	Key   string
}

// Free reports whether the slot is unbound.
func (s Slot) Free() bool { return s.Index < 0 }

// Binding pairs a slot with the index it renders after an Assign.
type Binding struct {
	Slot  int
	Index int
	Key   string
	State BindState
}

// RecyclerStats summarizes the last Assign call. Every bound slot is counted
// once as Kept, Rebound or Created. Released counts slots that were bound
// before the call and are free after it; a slot emptied and refilled within
// the same call is only Rebound.
type RecyclerStats struct {
	Pool     int `json:"pool"`
	Bound    int `json:"bound"`
	Kept     int `json:"kept"`
	Rebound  int `json:"rebound"`
	Created  int `json:"created"`
	Released int `json:"released"`
}

// Recycler maps a range of item indices onto a pool of slots, reusing slots
// whose index scrolled out of range for indices that scrolled in.
//
// The pool grows lazily to the largest range seen and never shrinks.
type Recycler struct {
	slots []Slot
	stats RecyclerStats
}

// NewRecycler returns an empty recycler.
func NewRecycler() *Recycler {
	return &Recycler{}
}

// Assign binds every index in rendered to exactly one slot and returns the
// bindings ordered by index. keyOf returns the item identifier of an index.
//
// A slot whose key is still in range follows its key, even when the item moved
// to a different index. Otherwise a slot whose index is still in range keeps
// the index. Every other slot is released, and indices left without a slot
// take the lowest free slot ID in ascending order.
func (r *Recycler) Assign(rendered Range, keyOf func(int) string) []Binding {
	if rendered.Empty() {
		r.Release()
		return nil
	}

	r.stats = RecyclerStats{}
	span := rendered.Len()

	// First occurrence of a key owns it; duplicates are treated as new items.
	keys := make(map[string]int, span)
	newKeys := make([]string, span)
	for i := 0; i < span; i++ {
		k := keyOf(rendered.Start + i)
		newKeys[i] = k
		if _, dup := keys[k]; !dup {
			keys[k] = rendered.Start + i
		}
	}

	owner := make([]int, span)
	for i := range owner {
		owner[i] = -1
	}
	states := make([]BindState, span)

	pending := make([]bool, len(r.slots))
	wasBound := make([]bool, len(r.slots))
	for id := range r.slots {
		wasBound[id] = !r.slots[id].Free()
	}

	// Pass 1: key stability.
	for id := range r.slots {
		s := &r.slots[id]
		if s.Free() {
			continue
		}
		idx, ok := keys[s.Key]
		if !ok || owner[idx-rendered.Start] != -1 {
			pending[id] = true
			continue
		}
		s.Index = idx
		owner[idx-rendered.Start] = id
		states[idx-rendered.Start] = Kept
		r.stats.Kept++
	}

	// Pass 2: a slot whose item vanished but whose index is still live keeps the index.
	for id := range r.slots {
		if !pending[id] {
			continue
		}
		s := &r.slots[id]
		if rendered.Contains(s.Index) && owner[s.Index-rendered.Start] == -1 {
			pos := s.Index - rendered.Start
			s.Key = newKeys[pos]
			owner[pos] = id
			states[pos] = Rebound
			r.stats.Rebound++
			continue
		}
		s.Index, s.Key = -1, ""
	}

	// Pass 3: fill the gaps, lowest free slot to lowest index.
	next := 0
	for pos := 0; pos < span; pos++ {
		if owner[pos] != -1 {
			continue
		}
		for next < len(r.slots) && !r.slots[next].Free() {
			next++
		}
		state := Rebound
		if next == len(r.slots) {
			r.slots = append(r.slots, Slot{ID: next, Index: -1})
			state = Created
			r.stats.Created++
		} else {
			r.stats.Rebound++
		}
		r.slots[next].Index = rendered.Start + pos
		r.slots[next].Key = newKeys[pos]
		owner[pos] = next
		states[pos] = state
	}

	bindings := make([]Binding, span)
	for pos, id := range owner {
		bindings[pos] = Binding{
			Slot:  id,
			Index: rendered.Start + pos,
			Key:   newKeys[pos],
			State: states[pos],
		}
	}

	for id, bound := range wasBound {
		if bound && r.slots[id].Free() {
			r.stats.Released++
		}
	}
	r.stats.Pool = len(r.slots)
	r.stats.Bound = span
	return bindings
}

// Release unbinds every slot. The pool keeps its size.
func (r *Recycler) Release() {
	released := 0
	for i := range r.slots {
		if !r.slots[i].Free() {
			released++
		}
		r.slots[i].Index, r.slots[i].Key = -1, ""
	}
	r.stats = RecyclerStats{Pool: len(r.slots), Released: released}
}

// Slots returns a copy of the pool.
func (r *Recycler) Slots() []Slot {
	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Stats returns counters for the last Assign or Release.
func (r *Recycler) Stats() RecyclerStats {
	return r.stats
}

// MarshalText encodes the state by name.
func (s BindState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
