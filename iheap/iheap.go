// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iheap implements a bounded indexed heap: an array of (key,
// value) pairs maintaining the heap property under a configurable
// ordering, plus a side map from key to array position for O(1) lookup.
//
// It generalizes a kernel indexed-heap design's btree64 side index to a
// plain Go map, and its min_heap callbacks to direct sift routines.
package iheap

// Pair is the unit stored in a Heap: key is typically a page frame
// number, value is the ranking metric (an SDS count).
type Pair struct {
	Key   uint64
	Value uint64
}

// Kind identifies which case an Outcome represents.
type Kind int

const (
	// Inserted: a new key was appended because the heap had spare
	// capacity.
	Inserted Kind = iota
	// Updated: an existing key's value changed in place.
	Updated
	// Replaced: the heap was full and elem outranked the root, which was
	// evicted.
	Replaced
	// Rejected: the heap was full and elem did not outrank the root;
	// nothing changed.
	Rejected
	// Unchanged: the key already existed with the same value.
	Unchanged
)

// Outcome is the result of Insert. Pair carries the evicted or
// previously-stored pair for Updated, Replaced, and Unchanged; it is the
// zero Pair for Inserted and Rejected.
type Outcome struct {
	Kind Kind
	Pair Pair
}

// Heap is a bounded indexed heap. The zero value is not ready for use;
// construct with New.
//
// Heap is not safe for concurrent use; callers serialize access (in this
// module, the engine's single mutex covers both heaps alongside the
// sketch).
type Heap struct {
	data     []Pair
	index    map[uint64]int // key -> position in data
	capacity int
	min      bool // true: min-heap (root = least value); false: max-heap
}

// New creates a Heap of the given capacity ordered as a min-heap (min
// true) or max-heap (min false). Promotion candidates use a min-heap so
// the weakest candidate sits at the root and is the first evicted;
// demotion candidates use a max-heap symmetrically.
//
// Panics if capacity == 0.
func New(capacity int, min bool) *Heap {
	if capacity == 0 {
		panic("iheap: capacity must be > 0")
	}
	return &Heap{
		data:     make([]Pair, 0, capacity),
		index:    make(map[uint64]int, capacity),
		capacity: capacity,
		min:      min,
	}
}

// Len returns the current number of stored pairs.
func (h *Heap) Len() int { return len(h.data) }

// Cap returns the heap's fixed capacity.
func (h *Heap) Cap() int { return h.capacity }

// less reports whether a outranks b for eviction purposes: in a min-heap
// the smaller value is "less" (closer to the root); in a max-heap the
// larger value is "less".
func (h *Heap) less(a, b Pair) bool {
	if h.min {
		return a.Value < b.Value
	}
	return a.Value > b.Value
}

func (h *Heap) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
	h.index[h.data[i].Key] = i
	h.index[h.data[j].Key] = j
}

func (h *Heap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.data[i], h.data[parent]) {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *Heap) siftDown(i int) {
	n := len(h.data)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.less(h.data[left], h.data[smallest]) {
			smallest = left
		}
		if right < n && h.less(h.data[right], h.data[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

// Get returns the pair stored under key, and whether it was found.
func (h *Heap) Get(key uint64) (Pair, bool) {
	pos, ok := h.index[key]
	if !ok {
		return Pair{}, false
	}
	return h.data[pos], true
}

// Root returns the pair at the heap root without removing it: the least
// value for a min-heap, the greatest for a max-heap.
func (h *Heap) Root() (Pair, bool) {
	if len(h.data) == 0 {
		return Pair{}, false
	}
	return h.data[0], true
}

// Insert tracks a new key or updates an existing key's value.
//
//   - If key already exists and elem.Value equals the stored value,
//     Insert makes no change and returns Outcome{Unchanged, oldPair}.
//   - If key already exists with a different value, the stored value is
//     overwritten and the heap is resifted (up if the change makes it
//     outrank its parent more, down otherwise); returns
//     Outcome{Updated, oldPair}.
//   - If key is new and the heap has spare capacity, elem is appended and
//     sifted up; returns Outcome{Inserted, Pair{}}.
//   - If key is new and the heap is full, elem is compared against the
//     root: if the root is out-ranked by elem, the root is evicted and
//     elem replaces it (pop-push, sift down); returns
//     Outcome{Replaced, rootPair}. Otherwise nothing changes and Insert
//     returns Outcome{Rejected, Pair{}}.
func (h *Heap) Insert(elem Pair) Outcome {
	if pos, ok := h.index[elem.Key]; ok {
		old := h.data[pos]
		if old.Value == elem.Value {
			return Outcome{Kind: Unchanged, Pair: old}
		}
		h.data[pos].Value = elem.Value
		if h.less(h.data[pos], old) {
			h.siftUp(pos)
		} else {
			h.siftDown(pos)
		}
		return Outcome{Kind: Updated, Pair: old}
	}

	if len(h.data) < h.capacity {
		h.data = append(h.data, elem)
		pos := len(h.data) - 1
		h.index[elem.Key] = pos
		h.siftUp(pos)
		return Outcome{Kind: Inserted}
	}

	root := h.data[0]
	if h.less(root, elem) {
		delete(h.index, root.Key)
		h.data[0] = elem
		h.index[elem.Key] = 0
		h.siftDown(0)
		return Outcome{Kind: Replaced, Pair: root}
	}
	return Outcome{Kind: Rejected}
}

// PopBack removes and returns the pair in the last array slot — not the
// heap root. This is the primitive the migration worker uses to take
// candidates off the bottom of the heap without disturbing the ordering
// invariant at the top; it is not a canonical heap-pop.
func (h *Heap) PopBack() (Pair, bool) {
	n := len(h.data)
	if n == 0 {
		return Pair{}, false
	}
	back := h.data[n-1]
	h.data = h.data[:n-1]
	delete(h.index, back.Key)
	return back, true
}
