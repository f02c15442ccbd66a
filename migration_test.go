// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import (
	"testing"

	"code.hybscloud.com/tiermem/iheap"
	"code.hybscloud.com/tiermem/tier"
)

func TestCandidateQualifiesDemotionWantsCold(t *testing.T) {
	if !candidateQualifies(1, directionDown) {
		t.Fatal("value=1 should qualify for demotion (truly cold)")
	}
	if !candidateQualifies(0, directionDown) {
		t.Fatal("value=0 should qualify for demotion")
	}
	if candidateQualifies(2, directionDown) {
		t.Fatal("value=2 (hot) should not qualify for demotion")
	}
}

func TestCandidateQualifiesPromotionWantsHot(t *testing.T) {
	if !candidateQualifies(2, directionUp) {
		t.Fatal("value=2 should qualify for promotion (hot)")
	}
	if candidateQualifies(1, directionUp) {
		t.Fatal("value=1 (cold) should not qualify for promotion")
	}
}

func newTestEngine(t *testing.T) (*Engine, *tier.Memory) {
	t.Helper()
	mem := tier.NewMemory()
	e := Build(NewOptions().CandidateSize(8).SDSWidth(256), mem, mem, mem, mem)
	return e, mem
}

func TestDoMigrationAgainWhenAtOrBelowLowWatermark(t *testing.T) {
	e, mem := newTestEngine(t)
	mem.SetFreePages(tier.PMEM, 10)
	mem.SetWatermark(tier.PMEM, tier.Low, 10)

	e.demotionHeap.Insert(iheap.Pair{Key: 1, Value: 0})

	e.mu.Lock()
	_, _, err := e.doMigrationLocked(e.demotionHeap, directionDown, tier.PMEM)
	e.mu.Unlock()
	if !IsAgain(err) {
		t.Fatalf("doMigrationLocked: got err=%v, want ErrAgain", err)
	}
}

func TestDoMigrationMigratesQualifyingCandidates(t *testing.T) {
	e, mem := newTestEngine(t)
	mem.SetFreePages(tier.PMEM, 1000)
	mem.SetWatermark(tier.PMEM, tier.Low, 0)
	mem.SetTier(1, tier.DRAM)
	mem.SetTier(2, tier.DRAM)

	e.demotionHeap.Insert(iheap.Pair{Key: 1, Value: 0}) // cold: qualifies
	e.demotionHeap.Insert(iheap.Pair{Key: 2, Value: 5}) // hot: filtered out

	e.mu.Lock()
	succeeded, failed, err := e.doMigrationLocked(e.demotionHeap, directionDown, tier.PMEM)
	e.mu.Unlock()
	if err != nil {
		t.Fatalf("doMigrationLocked: unexpected err %v", err)
	}
	if succeeded != 1 || failed != 0 {
		t.Fatalf("doMigrationLocked: got succeeded=%d failed=%d, want 1,0", succeeded, failed)
	}
	if got := mem.TierOf(1); got != tier.PMEM {
		t.Fatalf("TierOf(1): got %v, want PMEM", got)
	}
	if got := mem.TierOf(2); got != tier.DRAM {
		t.Fatalf("TierOf(2): got %v, want DRAM (not migrated)", got)
	}
	if e.counters.Demoted() != 1 {
		t.Fatalf("Demoted(): got %d, want 1", e.counters.Demoted())
	}
}

func TestDoMigrationCountsIsolationFailures(t *testing.T) {
	e, mem := newTestEngine(t)
	mem.SetFreePages(tier.DRAM, 1000)
	mem.SetWatermark(tier.DRAM, tier.Low, 0)
	mem.SetTier(3, tier.PMEM)
	mem.IsolationFailures[3] = true

	e.promotionHeap.Insert(iheap.Pair{Key: 3, Value: 5}) // hot: qualifies but isolation fails

	e.mu.Lock()
	succeeded, failed, err := e.doMigrationLocked(e.promotionHeap, directionUp, tier.DRAM)
	e.mu.Unlock()
	if err != nil {
		t.Fatalf("doMigrationLocked: unexpected err %v", err)
	}
	if succeeded != 0 || failed != 1 {
		t.Fatalf("doMigrationLocked: got succeeded=%d failed=%d, want 0,1", succeeded, failed)
	}
}

func TestMigrationTickYieldsWhenTargetMet(t *testing.T) {
	e, _ := newTestEngine(t)
	var l localCounters
	for i := 0; i < 97; i++ {
		l.observeDRAM()
	}
	for i := 0; i < 3; i++ {
		l.observePMEM()
	}
	e.counters.merge(l)

	e.demotionHeap.Insert(iheap.Pair{Key: 1, Value: 0})
	if err := e.migrationTick(); err != nil {
		t.Fatalf("migrationTick: unexpected err %v", err)
	}
	if e.counters.Demoted() != 0 || e.counters.Promoted() != 0 {
		t.Fatalf("migrationTick should not have migrated anything when target is met")
	}
}
