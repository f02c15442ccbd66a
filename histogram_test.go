// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "testing"

func TestHistogramZeroBucket(t *testing.T) {
	var h Histogram
	h.observe(0)
	h.observe(0)
	buckets := h.Buckets()
	if buckets[0] != 2 {
		t.Fatalf("bucket[0]: got %d, want 2", buckets[0])
	}
}

func TestHistogramBucketsByBitLength(t *testing.T) {
	var h Histogram
	h.observe(1) // 1 bit
	h.observe(2) // 2 bits
	h.observe(3) // 2 bits
	h.observe(255) // 8 bits
	buckets := h.Buckets()
	if buckets[1] != 1 {
		t.Fatalf("bucket[1]: got %d, want 1", buckets[1])
	}
	if buckets[2] != 2 {
		t.Fatalf("bucket[2]: got %d, want 2", buckets[2])
	}
	if buckets[8] != 1 {
		t.Fatalf("bucket[8]: got %d, want 1", buckets[8])
	}
}

func TestHistogramMaxCount(t *testing.T) {
	var h Histogram
	h.observe(0xffff)
	buckets := h.Buckets()
	if buckets[16] != 1 {
		t.Fatalf("bucket[16]: got %d, want 1", buckets[16])
	}
}
