// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import (
	"testing"

	"code.hybscloud.com/tiermem/tier"
)

func TestIngestPushesIntoRing(t *testing.T) {
	mem := tier.NewMemory()
	e := Build(NewOptions().Async(false), mem, mem, mem, mem)

	e.Ingest(0, 1, Sample{PhysAddr: 0x1000})

	entry := e.ringFor(ringKey{cpu: 0, event: 1})
	var buf [sampleSize]byte
	if err := entry.ring.Pop(buf[:]); err != nil {
		t.Fatalf("Pop after Ingest: unexpected err %v", err)
	}
	got := unmarshalSample(buf[:])
	if got.PhysAddr != 0x1000 {
		t.Fatalf("PhysAddr: got %#x, want %#x", got.PhysAddr, 0x1000)
	}
}

func TestIngestDropsOnFullRingAndCounts(t *testing.T) {
	mem := tier.NewMemory()
	e := Build(NewOptions().Async(false).RingCapacity(2), mem, mem, mem, mem)

	for i := 0; i < 10; i++ {
		e.Ingest(0, 0, Sample{PhysAddr: uint64(i + 1)})
	}

	if got := e.counters.Dropped(); got == 0 {
		t.Fatal("Dropped(): expected at least one dropped sample")
	}
}

func TestIngestDifferentKeysGetDifferentRings(t *testing.T) {
	mem := tier.NewMemory()
	e := Build(NewOptions().Async(false), mem, mem, mem, mem)

	e.Ingest(0, 0, Sample{PhysAddr: 1})
	e.Ingest(1, 0, Sample{PhysAddr: 2})

	a := e.ringFor(ringKey{cpu: 0, event: 0})
	b := e.ringFor(ringKey{cpu: 1, event: 0})
	if a == b {
		t.Fatal("expected distinct rings for distinct (cpu,event) keys")
	}
}

func TestAsyncIngestEnqueuesPolicyOnDecimation(t *testing.T) {
	mem := tier.NewMemory()
	e := Build(NewOptions().Async(true).SamplePeriod(3), mem, mem, mem, mem)
	a := e.scheduler.(*asyncScheduler)

	e.Ingest(0, 0, Sample{PhysAddr: 1})
	e.Ingest(0, 0, Sample{PhysAddr: 2})
	if len(a.queue) != 0 {
		t.Fatalf("queue: got %d items before decimation fires, want 0", len(a.queue))
	}
	e.Ingest(0, 0, Sample{PhysAddr: 3})
	if len(a.queue) != 1 {
		t.Fatalf("queue: got %d items after decimation fires, want 1", len(a.queue))
	}
}
