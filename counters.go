// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "code.hybscloud.com/atomix"

// counters holds the shared, monotonically non-decreasing sample
// counters. They are updated with atomic increments rather than under
// Engine.mu: correctness only requires dram+pmem ≤ total, not
// an exact monotonic read of any single field.
type counters struct {
	total    atomix.Uint64
	dram     atomix.Uint64
	pmem     atomix.Uint64
	dropped  atomix.Uint64
	promoted atomix.Uint64
	demoted  atomix.Uint64
}

func (c *counters) Total() uint64    { return c.total.LoadAcquire() }
func (c *counters) DRAM() uint64     { return c.dram.LoadAcquire() }
func (c *counters) PMEM() uint64     { return c.pmem.LoadAcquire() }
func (c *counters) Dropped() uint64  { return c.dropped.LoadAcquire() }
func (c *counters) Promoted() uint64 { return c.promoted.LoadAcquire() }
func (c *counters) Demoted() uint64  { return c.demoted.LoadAcquire() }

func (c *counters) merge(l localCounters) {
	if l.total == 0 {
		return
	}
	c.total.AddAcqRel(l.total)
	c.dram.AddAcqRel(l.dram)
	c.pmem.AddAcqRel(l.pmem)
}

// localCounters accumulates one policy drain pass's classification
// before a single atomic merge into the shared counters
// (local-accumulate then merge, to keep the drain loop lock-cheap).
type localCounters struct {
	total, dram, pmem uint64
}

func (l *localCounters) observeDRAM() {
	l.total++
	l.dram++
}

func (l *localCounters) observePMEM() {
	l.total++
	l.pmem++
}
