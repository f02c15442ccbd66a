// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "math/bits"

// histogramBuckets holds one bucket for a zero count plus one bucket per
// bit width of a uint16 sketch count (1..16).
const histogramBuckets = 17

// Histogram is a logarithmic access-count histogram: each drain pass
// buckets every surviving sample's sketch count by bit length, giving a
// cheap approximation of the count distribution without storing per-pfn
// history.
//
// Histogram is not safe for concurrent use on its own; the policy worker
// only touches it while holding Engine.mu.
type Histogram struct {
	buckets [histogramBuckets]uint64
}

func (h *Histogram) observe(count uint16) {
	if count == 0 {
		h.buckets[0]++
		return
	}
	b := bits.Len16(count)
	h.buckets[b]++
}

// Buckets returns the bucket counts: index 0 is the zero-count bucket,
// index i (1..16) is the count of observations whose value needed
// exactly i bits to represent.
func (h *Histogram) Buckets() [histogramBuckets]uint64 {
	return h.buckets
}
