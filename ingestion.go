// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "github.com/rs/zerolog"

// ringKey identifies the per-(cpu,event) ring a hardware sample belongs
// to: one ring per event-counter per CPU.
type ringKey struct {
	cpu   uint32
	event uint32
}

// Ingest is the hardware sampling facility's overflow callback (component
// D): it copies s into the ring keyed by (cpu, event), never blocking and
// never allocating beyond a stack-local marshal buffer. On a full ring
// the sample is dropped, counted, and a rate-limited warning is logged.
//
// cpu and event together select the ring; Ingest is safe to call
// concurrently from many goroutines as long as each (cpu, event) pair has
// exactly one caller, matching ring.Ring's single-producer contract.
func (e *Engine) Ingest(cpu, event uint32, s Sample) {
	entry := e.ringFor(ringKey{cpu: cpu, event: event})

	var buf [sampleSize]byte
	s.marshal(buf[:])
	if err := entry.ring.Push(buf[:]); err != nil {
		e.counters.dropped.AddAcqRel(1)
		e.warnf("ring_full", func(ev *zerolog.Event) {
			ev.Uint32("cpu", cpu).Uint32("event", event).Msg("sample dropped: ring full")
		})
		return
	}

	if e.opts.async {
		e.maybeEnqueuePolicy(entry)
	}
}

// maybeEnqueuePolicy advances entry's decimation counter and, once every
// SamplePeriod samples, kicks the async scheduler's policy work item.
func (e *Engine) maybeEnqueuePolicy(entry *ringEntry) {
	period := e.opts.samplePeriod
	if period == 0 {
		period = 1
	}
	if entry.decimation.AddAcqRel(1)%period != 0 {
		return
	}
	if a, ok := e.scheduler.(*asyncScheduler); ok {
		a.enqueuePolicy()
	}
}
