// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tier declares the external collaborators a placement engine
// consumes: tier identity, free-page watermarks, page isolation/reclaim,
// and the page-migration primitive itself. The engine in package tiermem
// is written entirely against these interfaces; nothing in tiermem reaches
// into an allocator or a real hardware tier directly.
//
// A kernel tiered-memory module names these as folio-list/node-descriptor
// operations against the buddy allocator and LRU lists; here they are
// plain interfaces so tests can supply an in-memory double.
package tier

// Tier identifies one of the two memory tiers.
type Tier int

const (
	// DRAM is the fast near tier — the first online memory node in the
	// original kernel module.
	DRAM Tier = iota
	// PMEM is the slow far tier — the last online memory node.
	PMEM
)

func (t Tier) String() string {
	switch t {
	case DRAM:
		return "DRAM"
	case PMEM:
		return "PMEM"
	default:
		return "unknown"
	}
}

// WatermarkKind selects which free-page threshold to query.
type WatermarkKind int

const (
	// Low is the watermark at or below which migration into a tier must
	// not proceed at all (returns the Again error class).
	Low WatermarkKind = iota
	// Promo is the watermark that gates promotion specifically: when DRAM
	// free pages are below this, the demotion pass runs ahead of
	// promotion.
	Promo
)

// Source answers "which tier contains this pfn?" — the core never
// computes tier membership itself.
type Source interface {
	TierOf(pfn uint64) Tier
}

// Watermarks reports free-page counts and configured thresholds per tier.
type Watermarks interface {
	FreePages(t Tier) uint64
	Watermark(t Tier, kind WatermarkKind) uint64
}

// Reclaimer removes a page from its tier's reclaim (LRU) list so it is
// safe to migrate, and returns it on migration failure.
type Reclaimer interface {
	// TryIsolate removes pfn from its reclaim list if it is currently
	// evictable, reporting whether isolation succeeded.
	TryIsolate(pfn uint64) bool
	// Putback returns pfn to its reclaim list after a failed migration
	// attempt.
	Putback(pfn uint64)
}

// Migrator moves a batch of already-isolated pages to target and reports
// how many succeeded.
type Migrator interface {
	// MigratePages attempts to migrate every pfn in pfns to target,
	// returning the count that succeeded and the count that failed.
	MigratePages(pfns []uint64, target Tier) (succeeded, failed int)
}
