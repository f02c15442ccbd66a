// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iheap_test

import (
	"testing"

	"code.hybscloud.com/tiermem/iheap"
)

func TestInsertedUntilCapacity(t *testing.T) {
	h := iheap.New(3, true)

	pairs := []iheap.Pair{{Key: 1, Value: 10}, {Key: 2, Value: 20}, {Key: 3, Value: 30}}
	for _, p := range pairs {
		out := h.Insert(p)
		if out.Kind != iheap.Inserted {
			t.Fatalf("Insert(%v): got %v, want Inserted", p, out.Kind)
		}
	}
	if h.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", h.Len())
	}
}

func TestUnchangedOnSameValue(t *testing.T) {
	h := iheap.New(4, true)
	h.Insert(iheap.Pair{Key: 1, Value: 5})

	out := h.Insert(iheap.Pair{Key: 1, Value: 5})
	if out.Kind != iheap.Unchanged {
		t.Fatalf("got %v, want Unchanged", out.Kind)
	}
	if out.Pair.Value != 5 {
		t.Fatalf("old pair value: got %d, want 5", out.Pair.Value)
	}
}

func TestUpdatedOnDifferentValue(t *testing.T) {
	h := iheap.New(4, true)
	h.Insert(iheap.Pair{Key: 1, Value: 5})

	out := h.Insert(iheap.Pair{Key: 1, Value: 50})
	if out.Kind != iheap.Updated {
		t.Fatalf("got %v, want Updated", out.Kind)
	}
	if out.Pair.Value != 5 {
		t.Fatalf("old pair value: got %d, want 5", out.Pair.Value)
	}
	p, ok := h.Get(1)
	if !ok || p.Value != 50 {
		t.Fatalf("Get after update: got %v, ok=%v", p, ok)
	}
}

// TestReplaceOnFullHeap reproduces the canonical scenario: a 3-slot
// min-heap receiving {A:1, B:2, C:3} then {D:0} (rejected, root unchanged)
// then {E:5} (root A:1 replaced, new root B:2, side map drops A, gains E).
func TestReplaceOnFullHeap(t *testing.T) {
	h := iheap.New(3, true)

	h.Insert(iheap.Pair{Key: 'A', Value: 1})
	h.Insert(iheap.Pair{Key: 'B', Value: 2})
	h.Insert(iheap.Pair{Key: 'C', Value: 3})

	out := h.Insert(iheap.Pair{Key: 'D', Value: 0})
	if out.Kind != iheap.Rejected {
		t.Fatalf("insert D:0: got %v, want Rejected", out.Kind)
	}
	if root, ok := h.Get('A'); !ok || root.Value != 1 {
		t.Fatalf("root after rejection: got %v, ok=%v, want A:1", root, ok)
	}

	out = h.Insert(iheap.Pair{Key: 'E', Value: 5})
	if out.Kind != iheap.Replaced {
		t.Fatalf("insert E:5: got %v, want Replaced", out.Kind)
	}
	if out.Pair.Key != 'A' || out.Pair.Value != 1 {
		t.Fatalf("evicted pair: got %v, want A:1", out.Pair)
	}
	if _, ok := h.Get('A'); ok {
		t.Fatal("side map still contains evicted key A")
	}
	if _, ok := h.Get('E'); !ok {
		t.Fatal("side map missing newly inserted key E")
	}
	root, ok := h.Root()
	if !ok {
		t.Fatal("heap root missing")
	}
	if root.Key != 'B' || root.Value != 2 {
		t.Fatalf("new root: got %v, want B:2", root)
	}
}

func TestPopBackRemovesLastSlotNotRoot(t *testing.T) {
	h := iheap.New(4, true)
	h.Insert(iheap.Pair{Key: 1, Value: 10})
	h.Insert(iheap.Pair{Key: 2, Value: 20})
	h.Insert(iheap.Pair{Key: 3, Value: 30})

	lenBefore := h.Len()
	p, ok := h.PopBack()
	if !ok {
		t.Fatal("PopBack on non-empty heap returned false")
	}
	if h.Len() != lenBefore-1 {
		t.Fatalf("Len after PopBack: got %d, want %d", h.Len(), lenBefore-1)
	}
	if _, ok := h.Get(p.Key); ok {
		t.Fatalf("side map still contains popped key %d", p.Key)
	}
}

func TestPopBackOnEmptyHeap(t *testing.T) {
	h := iheap.New(2, true)
	if _, ok := h.PopBack(); ok {
		t.Fatal("PopBack on empty heap returned ok=true")
	}
}

func TestGetMissingKey(t *testing.T) {
	h := iheap.New(2, true)
	if _, ok := h.Get(999); ok {
		t.Fatal("Get on missing key returned ok=true")
	}
}

func TestPanicsOnZeroCapacity(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for zero capacity")
		}
	}()
	iheap.New(0, true)
}

// TestMinHeapRootIsLeast checks the root-is-least invariant for a min-heap
// after an arbitrary sequence of inserts, including replaces that evict
// the previous root.
func TestMinHeapRootIsLeast(t *testing.T) {
	h := iheap.New(5, true)
	values := []uint64{50, 10, 40, 20, 5, 60, 1, 30}

	for i, v := range values {
		h.Insert(iheap.Pair{Key: uint64(i) + 1, Value: v})
	}

	root, ok := h.Root()
	if !ok {
		t.Fatal("expected a root after inserts")
	}

	for key := uint64(1); key <= uint64(len(values)); key++ {
		p, ok := h.Get(key)
		if !ok {
			continue
		}
		if p.Value < root.Value {
			t.Fatalf("root %v is not the minimum: found %v", root, p)
		}
	}
}

// TestMaxHeapRootIsGreatest mirrors TestMinHeapRootIsLeast for a max-heap,
// used by demotion candidates: the root holds the greatest value, so a
// full max-heap keeps the smallest values and evicts its root.
func TestMaxHeapRootIsGreatest(t *testing.T) {
	h := iheap.New(3, false)
	h.Insert(iheap.Pair{Key: 1, Value: 1})
	h.Insert(iheap.Pair{Key: 2, Value: 2})
	h.Insert(iheap.Pair{Key: 3, Value: 3})

	if root, ok := h.Root(); !ok || root.Value != 3 {
		t.Fatalf("max-heap root: got %v, ok=%v, want value 3", root, ok)
	}

	// Inserting a smaller value than the current max-heap root (the
	// maximum of the three) evicts the root.
	out := h.Insert(iheap.Pair{Key: 4, Value: 0})
	if out.Kind != iheap.Replaced {
		t.Fatalf("insert below max-heap root: got %v, want Replaced", out.Kind)
	}

	out = h.Insert(iheap.Pair{Key: 5, Value: 10})
	if out.Kind != iheap.Rejected {
		t.Fatalf("insert above max-heap root: got %v, want Rejected", out.Kind)
	}
}
