// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import (
	"time"

	"github.com/rs/zerolog"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"code.hybscloud.com/tiermem/iheap"
	"code.hybscloud.com/tiermem/tier"
)

// direction names which way a migration pass moves pages: a closed
// two-value sum type rather than a dispatch table.
type direction int

const (
	directionDown direction = iota // demotion: DRAM -> PMEM
	directionUp                    // promotion: PMEM -> DRAM
)

// migrationGuard is a scoped "LRU-disable" guard: it disables the
// per-CPU LRU pagevec cache for the duration of one migration batch so
// isolated pages cannot be re-added to a reclaim list mid-flight. It is a
// single exclusive section guarded by a spin-backoff acquire, using
// code.hybscloud.com/spin's CPU-pause primitive.
type migrationGuard struct {
	held atomix.Uint64
}

func (g *migrationGuard) acquire() {
	var backoff spin.Wait
	for !g.held.CompareAndSwapAcqRel(0, 1) {
		backoff.Once()
	}
}

func (g *migrationGuard) release() {
	g.held.StoreRelease(0)
}

// candidateQualifies applies the do_migration filter predicate:
// "(value > 1) XOR (dir == down)". Demotion candidates must be truly
// cold (value <= 1); promotion candidates must be hot (value > 1).
func candidateQualifies(value uint64, dir direction) bool {
	hot := value > 1
	return hot != (dir == directionDown)
}

// doMigrationLocked runs one do_migration pass against heap. Engine.mu
// must be held by the caller, which releases it afterwards; this call
// does not release it.
func (e *Engine) doMigrationLocked(heap *iheap.Heap, dir direction, target tier.Tier) (succeeded, failed int, err error) {
	if e.watermarks.FreePages(target) <= e.watermarks.Watermark(target, tier.Low) {
		return 0, 0, ErrAgain
	}

	e.migrationGuard.acquire()
	defer e.migrationGuard.release()

	batchSize := e.opts.batchSize
	pairs := make([]iheap.Pair, 0, batchSize)
	for len(pairs) < batchSize {
		p, ok := heap.PopBack()
		if !ok {
			break
		}
		pairs = append(pairs, p)
	}

	isolated := make([]uint64, 0, len(pairs))
	qualified := 0
	for _, p := range pairs {
		if !candidateQualifies(p.Value, dir) {
			continue
		}
		qualified++
		if e.reclaimer.TryIsolate(p.Key) {
			isolated = append(isolated, p.Key)
		} else {
			failed++
		}
	}
	if qualified == 0 {
		return 0, 0, ErrAgain
	}
	if failed > 0 {
		e.warnf("isolation_failed", func(ev *zerolog.Event) {
			ev.Int("failed", failed).Str("target", target.String()).Msg("pages could not be isolated for migration")
		})
	}
	if len(isolated) == 0 {
		return 0, failed, nil
	}

	succ, fail := e.migrator.MigratePages(isolated, target)
	// The Migrator interface reports only aggregate counts; pages that
	// failed are assumed to be the trailing fail entries of the batch
	// (reference implementations process isolated in order), so only
	// those are returned to the reclaim list.
	for i := len(isolated) - fail; i < len(isolated); i++ {
		e.reclaimer.Putback(isolated[i])
	}
	if e.migrationLatency != nil {
		now := uint64(time.Now().UnixNano())
		for i := 0; i < succ; i++ {
			e.migrationLatency.recordMigration(isolated[i], now)
		}
	}

	succeeded = succ
	failed += fail
	if succeeded > 0 {
		if dir == directionDown {
			e.counters.demoted.AddAcqRel(uint64(succeeded))
		} else {
			e.counters.promoted.AddAcqRel(uint64(succeeded))
		}
	}
	return succeeded, failed, nil
}

// migrationTick runs one per-pass gating decision:
//
//  1. Compute has = dram*100/max(1,total); yield if has >= target.
//  2. If DRAM free pages are below the promotion watermark, demote.
//  3. Unconditionally promote.
//
// total == 0 (no samples observed yet) is treated as "nothing to do" and
// yields without migrating; a nonzero total with zero DRAM hits still
// proceeds to promotion, since a workload that never touches DRAM must
// still be able to promote its hottest pages.
func (e *Engine) migrationTick() error {
	total := e.counters.Total()
	if total == 0 {
		return nil
	}
	dram := e.counters.DRAM()
	has := dram * 100 / total
	if has >= e.opts.targetPercentile {
		return nil
	}

	if e.watermarks.FreePages(tier.DRAM) < e.watermarks.Watermark(tier.DRAM, tier.Promo) {
		e.mu.Lock()
		_, _, err := e.doMigrationLocked(e.demotionHeap, directionDown, tier.PMEM)
		e.mu.Unlock()
		if err != nil && !IsAgain(err) {
			return err
		}
	}

	e.mu.Lock()
	_, _, err := e.doMigrationLocked(e.promotionHeap, directionUp, tier.DRAM)
	e.mu.Unlock()
	if err != nil && !IsAgain(err) {
		return err
	}
	return nil
}
