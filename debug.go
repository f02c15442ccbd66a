// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "sync"

// sampleTrace is a bounded ring of recently ingested samples, enabled via
// Options.DebugSamples for post-hoc inspection in tests. Off by default.
type sampleTrace struct {
	mu     sync.Mutex
	buf    []Sample
	next   int
	filled bool
}

func newSampleTrace(capacity int) *sampleTrace {
	return &sampleTrace{buf: make([]Sample, capacity)}
}

func (t *sampleTrace) record(s Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = s
	t.next++
	if t.next == len(t.buf) {
		t.next = 0
		t.filled = true
	}
}

// Recent returns the trace's contents in insertion order, oldest first.
func (t *sampleTrace) Recent() []Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.filled {
		out := make([]Sample, t.next)
		copy(out, t.buf[:t.next])
		return out
	}
	out := make([]Sample, len(t.buf))
	n := copy(out, t.buf[t.next:])
	copy(out[n:], t.buf[:t.next])
	return out
}

// migrationLatencyTracker records the elapsed time between a pfn's first
// sketch observation and its successful migration. Off by default.
type migrationLatencyTracker struct {
	mu        sync.Mutex
	firstSeen map[uint64]uint64 // pfn -> TimeNs of first observation
	latencies []uint64          // completed latencies, in migration order
}

func newMigrationLatencyTracker() *migrationLatencyTracker {
	return &migrationLatencyTracker{firstSeen: make(map[uint64]uint64)}
}

func (m *migrationLatencyTracker) observeSample(pfn, timeNs uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.firstSeen[pfn]; !ok {
		m.firstSeen[pfn] = timeNs
	}
}

func (m *migrationLatencyTracker) recordMigration(pfn, nowNs uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	first, ok := m.firstSeen[pfn]
	if !ok {
		return
	}
	delete(m.firstSeen, pfn)
	if nowNs >= first {
		m.latencies = append(m.latencies, nowNs-first)
	}
}

// Latencies returns the completed pfn migration latencies recorded so
// far, in completion order.
func (m *migrationLatencyTracker) Latencies() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint64, len(m.latencies))
	copy(out, m.latencies)
	return out
}
