// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tier_test

import (
	"testing"

	"code.hybscloud.com/tiermem/tier"
)

func TestMemoryDefaultsToDRAM(t *testing.T) {
	m := tier.NewMemory()
	if got := m.TierOf(42); got != tier.DRAM {
		t.Fatalf("TierOf unset pfn: got %v, want DRAM", got)
	}
}

func TestMemorySetAndQueryTier(t *testing.T) {
	m := tier.NewMemory()
	m.SetTier(7, tier.PMEM)
	if got := m.TierOf(7); got != tier.PMEM {
		t.Fatalf("TierOf: got %v, want PMEM", got)
	}
}

func TestMemoryWatermarksAndFreePages(t *testing.T) {
	m := tier.NewMemory()
	m.SetFreePages(tier.DRAM, 100)
	m.SetWatermark(tier.DRAM, tier.Low, 10)
	m.SetWatermark(tier.DRAM, tier.Promo, 20)

	if got := m.FreePages(tier.DRAM); got != 100 {
		t.Fatalf("FreePages: got %d, want 100", got)
	}
	if got := m.Watermark(tier.DRAM, tier.Low); got != 10 {
		t.Fatalf("Watermark(Low): got %d, want 10", got)
	}
	if got := m.Watermark(tier.DRAM, tier.Promo); got != 20 {
		t.Fatalf("Watermark(Promo): got %d, want 20", got)
	}
}

func TestMemoryIsolateAndPutback(t *testing.T) {
	m := tier.NewMemory()
	if !m.TryIsolate(1) {
		t.Fatal("TryIsolate: expected success")
	}
	m.Putback(1)
	if !m.TryIsolate(1) {
		t.Fatal("TryIsolate after putback: expected success again")
	}
}

func TestMemoryIsolationFailureInjection(t *testing.T) {
	m := tier.NewMemory()
	m.IsolationFailures[5] = true
	if m.TryIsolate(5) {
		t.Fatal("TryIsolate: expected injected failure")
	}
	// The injected failure is one-shot.
	if !m.TryIsolate(5) {
		t.Fatal("TryIsolate: expected success on retry")
	}
}

func TestMemoryMigratePages(t *testing.T) {
	m := tier.NewMemory()
	m.SetTier(1, tier.PMEM)
	m.SetTier(2, tier.PMEM)
	m.MigrationFailures[2] = true

	succeeded, failed := m.MigratePages([]uint64{1, 2}, tier.DRAM)
	if succeeded != 1 || failed != 1 {
		t.Fatalf("MigratePages: got succeeded=%d failed=%d, want 1,1", succeeded, failed)
	}
	if got := m.TierOf(1); got != tier.DRAM {
		t.Fatalf("TierOf(1) after migration: got %v, want DRAM", got)
	}
	if got := m.TierOf(2); got != tier.PMEM {
		t.Fatalf("TierOf(2) after failed migration: got %v, want PMEM", got)
	}
}

func TestTierString(t *testing.T) {
	if tier.DRAM.String() != "DRAM" {
		t.Fatalf("DRAM.String(): got %q", tier.DRAM.String())
	}
	if tier.PMEM.String() != "PMEM" {
		t.Fatalf("PMEM.String(): got %q", tier.PMEM.String())
	}
}

// Interface compliance checks.
var (
	_ tier.Source     = (*tier.Memory)(nil)
	_ tier.Watermarks = (*tier.Memory)(nil)
	_ tier.Reclaimer  = (*tier.Memory)(nil)
	_ tier.Migrator   = (*tier.Memory)(nil)
)
