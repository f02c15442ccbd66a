// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import (
	"code.hybscloud.com/tiermem/iheap"
	"code.hybscloud.com/tiermem/tier"
)

// drainAllRings is one policy-worker drain pass: every per-(cpu,event)
// ring is drained to empty, each surviving sample is folded into the
// sketch and the appropriate candidate heap, and the pass's local
// counter triple is merged into the shared counters exactly once at the
// end.
func (e *Engine) drainAllRings() {
	e.ringsMu.RLock()
	entries := make([]*ringEntry, 0, len(e.rings))
	for _, entry := range e.rings {
		entries = append(entries, entry)
	}
	e.ringsMu.RUnlock()

	var local localCounters
	var buf [sampleSize]byte

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, entry := range entries {
		for entry.ring.Pop(buf[:]) == nil {
			e.classifyLocked(unmarshalSample(buf[:]), &local)
		}
	}
	e.counters.merge(local)
}

// classifyLocked classifies one sample: resolve its pfn, look up its
// tier, fold it into the sketch and histogram, and file it into the
// matching candidate heap. Engine.mu must be held.
func (e *Engine) classifyLocked(s Sample, local *localCounters) {
	if s.PhysAddr == 0 {
		return
	}

	physAddr := s.PhysAddr
	if shift := e.opts.hugePageShift; shift != 0 {
		physAddr &^= (uint64(1) << shift) - 1
	}
	pfn := pfnOf(physAddr)

	t := e.tierSource.TierOf(pfn)
	count := e.sketch.Push(pfn)
	e.histogram.observe(count)
	if e.debugSamples != nil {
		e.debugSamples.record(s)
	}
	if e.migrationLatency != nil {
		e.migrationLatency.observeSample(pfn, s.TimeNs)
	}

	pair := iheap.Pair{Key: pfn, Value: uint64(count)}
	if t == tier.DRAM {
		e.demotionHeap.Insert(pair)
		local.observeDRAM()
	} else {
		e.promotionHeap.Insert(pair)
		local.observePMEM()
	}
}
