// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import (
	"context"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/rs/zerolog"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/tiermem/iheap"
	"code.hybscloud.com/tiermem/ring"
	"code.hybscloud.com/tiermem/sketch"
	"code.hybscloud.com/tiermem/tier"
)

// defaultSketchSeed seeds the per-engine Sketch's MT19937-64 decay
// source. It has no correctness significance beyond determinism within
// one process; two Engines seeded identically decay identically.
const defaultSketchSeed = 0x9e3779b97f4a7c15

// ringEntry is one per-(cpu,event) ring plus its decimation counter,
// which the async scheduler uses to decide when to enqueue a policy
// work item.
type ringEntry struct {
	ring       *ring.Ring
	decimation atomix.Uint64
}

// Engine is the control loop: it owns the sketch, both candidate heaps,
// the shared counters, one ring per (cpu, event), and the scheduler
// driving the policy and migration workers.
//
// Engine.mu protects the sketch and both heaps together; the per-ring
// traffic and the shared counters are lock-free and need no mutex.
type Engine struct {
	opts *Options

	tierSource tier.Source
	watermarks tier.Watermarks
	reclaimer  tier.Reclaimer
	migrator   tier.Migrator

	mu            sync.Mutex
	sketch        *sketch.Sketch
	demotionHeap  *iheap.Heap
	promotionHeap *iheap.Heap
	histogram     *Histogram

	debugSamples     *sampleTrace
	migrationLatency *migrationLatencyTracker

	counters       counters
	migrationGuard migrationGuard

	ringsMu sync.RWMutex
	rings   map[ringKey]*ringEntry

	rateLimiter *catrate.Limiter
	logger      zerolog.Logger

	scheduler scheduler
	cancel    context.CancelFunc
}

// Build constructs an Engine from opts and its four external
// collaborators, deriving SDSWidth/CandidateSize from the configured
// spanned-page counts when left unset.
//
// opts may be nil, in which case NewOptions()'s defaults apply.
func Build(opts *Options, tierSource tier.Source, watermarks tier.Watermarks, reclaimer tier.Reclaimer, migrator tier.Migrator) *Engine {
	if opts == nil {
		opts = NewOptions()
	}

	e := &Engine{
		opts:          opts,
		tierSource:    tierSource,
		watermarks:    watermarks,
		reclaimer:     reclaimer,
		migrator:      migrator,
		sketch:        sketch.New(opts.deriveSDSWidth(), opts.sdsDepth, defaultSketchSeed),
		demotionHeap:  iheap.New(opts.deriveCandidateSize(), false), // max-heap: coldest DRAM page at the back
		promotionHeap: iheap.New(opts.deriveCandidateSize(), true),  // min-heap: hottest PMEM page at the back
		histogram:     &Histogram{},
		rings:         make(map[ringKey]*ringEntry),
		rateLimiter: catrate.NewLimiter(map[time.Duration]int{
			time.Second: 1,
		}),
		logger: opts.logger,
	}

	if opts.debugSamples {
		e.debugSamples = newSampleTrace(debugSampleTraceCapacity)
	}
	if opts.debugMigrationLatency {
		e.migrationLatency = newMigrationLatencyTracker()
	}

	if opts.async {
		e.scheduler = newAsyncScheduler(e)
	} else {
		e.scheduler = newThreadedScheduler(e)
	}
	return e
}

const debugSampleTraceCapacity = 4096

// Start begins the policy and migration workers under ctx. Canceling ctx
// or calling Stop triggers cooperative shutdown.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.scheduler.Start(ctx)
}

// Stop cancels any context passed to Start and blocks until both workers
// have returned, draining any outstanding work item first (cooperative
// shutdown).
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	e.scheduler.Stop()
}

// Stats is a point-in-time snapshot of the engine's observability
// surface: the shared counters plus the access-count histogram.
type Stats struct {
	TotalSamples   uint64
	DRAMSamples    uint64
	PMEMSamples    uint64
	DroppedSamples uint64
	Promoted       uint64
	Demoted        uint64
	Histogram      [histogramBuckets]uint64
}

// Stats returns a Stats snapshot.
func (e *Engine) Stats() Stats {
	s := Stats{
		TotalSamples:   e.counters.Total(),
		DRAMSamples:    e.counters.DRAM(),
		PMEMSamples:    e.counters.PMEM(),
		DroppedSamples: e.counters.Dropped(),
		Promoted:       e.counters.Promoted(),
		Demoted:        e.counters.Demoted(),
	}
	e.mu.Lock()
	s.Histogram = e.histogram.Buckets()
	e.mu.Unlock()
	return s
}

// warnf logs a rate-limited structured warning under category (e.g.
// "ring_full", "isolation_failed"). It is a no-op when the category is
// currently rate-limited or Options.Logger was left at its default
// disabled logger.
func (e *Engine) warnf(category string, build func(ev *zerolog.Event)) {
	if _, ok := e.rateLimiter.Allow(category); !ok {
		return
	}
	ev := e.logger.Warn().Str("category", category)
	build(ev)
}

// ringFor returns the ring entry for key, creating it on first use.
func (e *Engine) ringFor(key ringKey) *ringEntry {
	e.ringsMu.RLock()
	entry, ok := e.rings[key]
	e.ringsMu.RUnlock()
	if ok {
		return entry
	}

	e.ringsMu.Lock()
	defer e.ringsMu.Unlock()
	if entry, ok = e.rings[key]; ok {
		return entry
	}
	entry = &ringEntry{ring: ring.New(sampleSize, e.opts.ringCapacity)}
	e.rings[key] = entry
	return entry
}
