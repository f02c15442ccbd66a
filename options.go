// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "github.com/rs/zerolog"

// Options configures Engine construction and scheduler selection.
//
// Options is built fluently: zero or more chained setters followed by a
// call to Build, which derives any unset sizing parameter from the
// configured spanned-page counts, the way a kernel tiered-memory
// module's own parameter-update routines do.
type Options struct {
	sdsWidth             uint64
	sdsDepth             int
	candidateSize        int
	targetPercentile     uint64
	batchSize            int
	samplePeriod         uint64
	loadLatencyThreshold uint64
	hugePageShift        uint
	ringCapacity         int
	async                bool

	totalSpannedPages uint64
	dramSpannedPages  uint64

	logger                zerolog.Logger
	debugSamples          bool
	debugMigrationLatency bool
}

// NewOptions creates an Options with the default tunables. SDSWidth and
// CandidateSize are left at zero, meaning "derive from spanned pages at
// Build time", unless overridden.
func NewOptions() *Options {
	return &Options{
		sdsDepth:             4,
		targetPercentile:     95,
		batchSize:            4096,
		samplePeriod:         17,
		loadLatencyThreshold: 64,
		ringCapacity:         4096,
		async:                true,
		logger:               zerolog.Nop(),
	}
}

// SDSWidth overrides the sketch's column count W. Zero (the default)
// means "derive from TotalSpannedPages at Build time".
func (o *Options) SDSWidth(n uint64) *Options {
	o.sdsWidth = n
	return o
}

// SDSDepth sets the sketch's row count D. Default 4.
func (o *Options) SDSDepth(n int) *Options {
	o.sdsDepth = n
	return o
}

// CandidateSize overrides both I-Heaps' capacity. Zero (the default)
// means "derive from DRAMSpannedPages at Build time".
func (o *Options) CandidateSize(n int) *Options {
	o.candidateSize = n
	return o
}

// TargetPercentile sets the desired DRAM hit fraction, ×100. Default 95.
func (o *Options) TargetPercentile(p uint64) *Options {
	o.targetPercentile = p
	return o
}

// BatchSize sets the number of pages isolated per migration call.
// Default 4096.
func (o *Options) BatchSize(n int) *Options {
	o.batchSize = n
	return o
}

// SamplePeriod sets the hardware-sampler decimation divisor: under the
// async scheduler, Ingest enqueues the policy work item once every
// SamplePeriod samples per (cpu,event). Default 17.
func (o *Options) SamplePeriod(n uint64) *Options {
	o.samplePeriod = n
	return o
}

// LoadLatencyThreshold sets the minimum latency, in whatever unit the
// hardware sampling facility reports, for a read sample to fire. Carried
// through for configuration parity with the hardware sampler; tiermem
// itself does not filter on it, since sample generation is external to
// the engine.
func (o *Options) LoadLatencyThreshold(n uint64) *Options {
	o.loadLatencyThreshold = n
	return o
}

// HugePageShift, when non-zero, rounds a sample's physical address down
// to a 1<<shift boundary before it is used as the sketch and heap key, so
// every sub-page access within one huge page folds into a single
// candidate. Physical address is used rather than virtual address since
// page identity and tier membership are both physical-address concepts;
// a sample's virtual address has no tier of its own to round.
func (o *Options) HugePageShift(shift uint) *Options {
	o.hugePageShift = shift
	return o
}

// RingCapacity sets the per-(cpu,event) ring's capacity in records.
// Rounds up to the next power of two, per ring.New's own invariant.
func (o *Options) RingCapacity(n int) *Options {
	o.ringCapacity = n
	return o
}

// Async selects the work-queue scheduler when true (the default) and the
// two-goroutine ticker scheduler when false.
func (o *Options) Async(enabled bool) *Options {
	o.async = enabled
	return o
}

// TotalSpannedPages feeds the derived default for SDSWidth
// (⌊0.07% × total_spanned_pages⌋).
func (o *Options) TotalSpannedPages(n uint64) *Options {
	o.totalSpannedPages = n
	return o
}

// DRAMSpannedPages feeds the derived default for CandidateSize
// (⌊DRAM_spanned_pages / 10⌋).
func (o *Options) DRAMSpannedPages(n uint64) *Options {
	o.dramSpannedPages = n
	return o
}

// Logger sets the structured logger used for rate-limited diagnostics.
// Defaults to a disabled logger so the engine is silent unless a caller
// opts in.
func (o *Options) Logger(l zerolog.Logger) *Options {
	o.logger = l
	return o
}

// DebugSamples enables the bounded debug sample trace.
func (o *Options) DebugSamples(enabled bool) *Options {
	o.debugSamples = enabled
	return o
}

// DebugMigrationLatency enables per-pfn first-observation-to-migration
// latency tracking.
func (o *Options) DebugMigrationLatency(enabled bool) *Options {
	o.debugMigrationLatency = enabled
	return o
}

// deriveSDSWidth computes the sketch column count when SDSWidth was left
// unset.
func (o *Options) deriveSDSWidth() uint64 {
	if o.sdsWidth != 0 {
		return o.sdsWidth
	}
	w := o.totalSpannedPages * 7 / 10000 // 0.07%
	if w == 0 {
		w = 1
	}
	return w
}

// deriveCandidateSize computes the I-Heap capacity when CandidateSize was
// left unset.
func (o *Options) deriveCandidateSize() int {
	if o.candidateSize != 0 {
		return o.candidateSize
	}
	c := int(o.dramSpannedPages / 10)
	if c == 0 {
		c = 1
	}
	return c
}
