// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tier

import "sync"

// Memory is an in-memory reference implementation of Source, Watermarks,
// Reclaimer, and Migrator, intended for tests and for exercising the
// engine's end-to-end scenarios without real hardware tiers.
//
// Memory is safe for concurrent use.
type Memory struct {
	mu sync.Mutex

	tierOf   map[uint64]Tier
	isolated map[uint64]bool

	freePages  [2]uint64
	watermarks [2][2]uint64 // [Tier][WatermarkKind]

	// IsolationFailures, when set true for a pfn, makes the next
	// TryIsolate for that pfn fail and then clears the entry, so the
	// failure is one-shot (tests simulate unevictable pages).
	IsolationFailures map[uint64]bool
	// MigrationFailures, when set true for a pfn, makes MigratePages
	// report that pfn as failed instead of succeeded.
	MigrationFailures map[uint64]bool
}

// NewMemory creates a Memory with unbounded free pages and zero
// watermarks (migration never blocks on watermarks unless configured).
func NewMemory() *Memory {
	return &Memory{
		tierOf:            make(map[uint64]Tier),
		isolated:          make(map[uint64]bool),
		IsolationFailures: make(map[uint64]bool),
		MigrationFailures: make(map[uint64]bool),
		freePages:         [2]uint64{^uint64(0), ^uint64(0)},
	}
}

// SetTier records that pfn currently resides in t. Pages default to DRAM
// if never set.
func (m *Memory) SetTier(pfn uint64, t Tier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tierOf[pfn] = t
}

// TierOf implements Source.
func (m *Memory) TierOf(pfn uint64) Tier {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tierOf[pfn]
}

// SetFreePages sets the simulated free-page count for t.
func (m *Memory) SetFreePages(t Tier, n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.freePages[t] = n
}

// FreePages implements Watermarks.
func (m *Memory) FreePages(t Tier) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.freePages[t]
}

// SetWatermark sets the simulated watermark threshold for (t, kind).
func (m *Memory) SetWatermark(t Tier, kind WatermarkKind, n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watermarks[t][kind] = n
}

// Watermark implements Watermarks.
func (m *Memory) Watermark(t Tier, kind WatermarkKind) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watermarks[t][kind]
}

// TryIsolate implements Reclaimer.
func (m *Memory) TryIsolate(pfn uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsolationFailures[pfn] {
		delete(m.IsolationFailures, pfn)
		return false
	}
	m.isolated[pfn] = true
	return true
}

// Putback implements Reclaimer.
func (m *Memory) Putback(pfn uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.isolated, pfn)
}

// MigratePages implements Migrator: every pfn not marked as a configured
// failure moves to target and is un-isolated; failures are left isolated
// for the caller to Putback.
func (m *Memory) MigratePages(pfns []uint64, target Tier) (succeeded, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pfn := range pfns {
		if m.MigrationFailures[pfn] {
			delete(m.MigrationFailures, pfn)
			failed++
			continue
		}
		m.tierOf[pfn] = target
		delete(m.isolated, pfn)
		succeeded++
	}
	return succeeded, failed
}
