// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tiermem implements a tiered-memory placement engine: it
// observes hardware performance-monitoring samples, tracks per-page
// access intensity in bounded memory, and migrates hot pages up to a
// fast ("DRAM") tier and cold pages down to a slow ("PMEM") tier so that
// a configurable fraction of accesses land in the fast tier.
//
// # Quick Start
//
//	mem := tier.NewMemory() // or a real tier.Source/Watermarks/Reclaimer/Migrator
//	eng := tiermem.Build(tiermem.NewOptions(), mem, mem, mem, mem)
//
//	ctx, cancel := context.WithCancel(context.Background())
//	eng.Start(ctx)
//	defer func() {
//	    cancel()
//	    eng.Stop()
//	}()
//
//	eng.Ingest(cpu, event, tiermem.Sample{
//	    TaskID:      tid,
//	    ThreadID:    tgid,
//	    TimeNs:      ts,
//	    VirtualAddr: vaddr,
//	    Weight:      weight,
//	    PhysAddr:    paddr,
//	})
//
// # Basic Usage
//
// Ingest is the hardware sampling facility's overflow callback. It never
// blocks and never allocates beyond a stack-local copy: a full ring drops
// the sample, counts it, and logs a rate-limited warning.
//
//	eng.Ingest(cpu, event, sample)
//
// The policy and migration workers run on whatever schedule Options.Async
// selects; call Engine.Stats for a point-in-time snapshot of the shared
// counters:
//
//	stats := eng.Stats()
//	hitFraction := float64(stats.DRAMSamples) / float64(stats.TotalSamples)
//
// # Common Patterns
//
// Threaded scheduler (predictable latency):
//
//	eng := tiermem.Build(tiermem.NewOptions().Async(false), mem, mem, mem, mem)
//
// Async scheduler (lower CPU cost, the default):
//
//	eng := tiermem.Build(tiermem.NewOptions().Async(true), mem, mem, mem, mem)
//
// Deriving sizing from spanned pages instead of fixing them by hand:
//
//	eng := tiermem.Build(
//	    tiermem.NewOptions().
//	        TotalSpannedPages(totalPages).
//	        DRAMSpannedPages(dramPages),
//	    mem, mem, mem, mem,
//	)
//
// # Error Handling
//
// The hot path never returns an error: Ingest counts and drops on a full
// ring instead. The migration pass returns [ErrAgain] when a tier is at or
// below its low watermark — this is not a failure, it means "try again
// next tick".
//
// Invariant violations in the sketch or the indexed heaps panic rather
// than return an error, consistent with this module's own
// construction-time panics (e.g. iheap.New on zero capacity).
//
// # Thread Safety
//
// Ingest is safe to call concurrently from many goroutines, each the sole
// producer for its own (cpu, event) pair — this mirrors the constraint on
// a ring.Ring: one producer, one consumer (the policy worker) per ring.
// Engine.Stats is safe for concurrent use from any goroutine. Engine.Start
// and Engine.Stop share an unsynchronized cancel function and are not
// safe to call concurrently with each other.
//
// # Race Detection
//
// The ring package uses the same cached-index Lamport technique used by
// lock-free SPSC ring implementations generally: sequence numbers with
// acquire-release semantics protect non-atomic payload bytes. Go's race
// detector cannot observe that ordering and treats the busy-spin retry
// loops in ring-level stress tests as slow rather than unsafe; those
// tests consult internal/raceflag to shrink their iteration count under
// -race instead of skipping outright.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for the shared counters'
// explicit-ordering atomics, [code.hybscloud.com/iox] (via the ring
// package) for semantic would-block errors, [code.hybscloud.com/spin] for
// the migration worker's scoped isolation-guard backoff,
// [github.com/rs/zerolog] for structured diagnostic logging, and
// [github.com/joeycumines/go-catrate] to rate-limit those diagnostics.
package tiermem
