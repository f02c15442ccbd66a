// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sketch implements a streaming decaying sketch (SDS): a W×D
// fingerprint+counter table that approximates per-key access counts over
// an unbounded key space in bounded memory, using probabilistic geometric
// decay to evict stale fingerprints on collision.
//
// It generalizes a page-address-keyed kernel hotness tracker into a
// plain uint64-keyed Go type.
package sketch

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"code.hybscloud.com/tiermem/sketch/internal/mt19937"
)

// seeds are the per-row hash seeds, reproduced verbatim from sdh.c's SEEDS
// table. Depth is capped at len(seeds).
var seeds = [32]uint64{
	0x33196aa8cc858657, 0x6179cbf6b196383b, 0xa1610262ded8fa0b,
	0xd8c952cb2ef31ba9, 0xe114c80821dc3c2d, 0xa84c339b589fba0d,
	0x5fad4f73926745a7, 0x4ab127efa48fb499, 0x766edfff707a4be7,
	0xd50e23f52f5ca7a9, 0x4958c180e1b0b4cd, 0x596dd0e6afa981d1,
	0x5fb76b53d26960fd, 0x926593c357ed5b57, 0xb82d62310fdca4b5,
	0xa8dffd9f432c0941, 0x183ac9a532e05, 0xc9360c116079424d,
	0x96af9ff5b0d48419, 0x9b73fd5c6b166797, 0x41da1caf8189081f,
	0x3db6cc2ab5dd26f, 0xdb576c830463e579, 0x614028bdc177e407,
	0xb4fe2dd598d7fd1, 0x1fba31ef9b3c2fe3, 0xa9508a700af534c9,
	0x8fa0e730fb408885, 0x153cdbe1464d8ff3, 0x52df1d0c030b94ab,
	0x90466ff586985b87, 0x92d6a332fad149f7,
}

const maxCount = 0xffff

// slot is a {fingerprint, count} pair, both 16 bits, the unit of the
// W×D table of u16 slots.
type slot struct {
	fingerprint uint16
	count       uint16
}

// Sketch is a W×D streaming decaying sketch. The zero value is not ready
// for use; construct with New.
type Sketch struct {
	width uint64 // W
	depth int    // D
	table []slot // width*depth, row-major: table[i*width+j]
	rng   *mt19937.Source
}

// New creates a Sketch with the given width (columns) and depth (rows,
// capped at len(seeds)). seed initializes the MT19937-64 decay source.
//
// Panics if width == 0, depth <= 0, or depth exceeds the number of
// available hash seeds.
func New(width uint64, depth int, seed uint64) *Sketch {
	if width == 0 {
		panic("sketch: width must be > 0")
	}
	if depth <= 0 {
		panic("sketch: depth must be > 0")
	}
	if depth > len(seeds) {
		panic("sketch: depth exceeds available hash seeds")
	}
	return &Sketch{
		width: width,
		depth: depth,
		table: make([]slot, width*uint64(depth)),
		rng:   mt19937.New(seed),
	}
}

// Width returns W.
func (s *Sketch) Width() uint64 { return s.width }

// Depth returns D.
func (s *Sketch) Depth() int { return s.depth }

func (s *Sketch) rowHash(key uint64, row int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seeds[row])
	binary.LittleEndian.PutUint64(buf[8:16], key)
	return xxhash.Sum64(buf[:])
}

func fingerprint16(h uint64) uint16 {
	return uint16(h & 0xffff)
}

// Push records one observation of key and returns the sketch's current
// estimate of key's count after applying the update.
//
// For each row i: j = hash(key,i) mod W, fp = low16(hash(key,i)). If the
// slot (i,j) already stores fp, its counter is incremented (saturating).
// Otherwise the slot decays: a uniform draw r in [0, b^c) — b^c read from
// the precomputed power table — triggers a decrement when r == 0; once the
// counter reaches 0 the slot is overwritten with fp and its counter set to
// 1. Push returns the maximum, over all D rows, of the resulting counter
// value among slots now holding fp (rows still holding a different
// fingerprint contribute 0).
func (s *Sketch) Push(key uint64) uint16 {
	var count uint16
	for i := 0; i < s.depth; i++ {
		h := s.rowHash(key, i)
		j := h % s.width
		rowFP := fingerprint16(h)
		sl := &s.table[uint64(i)*s.width+j]

		if sl.fingerprint == rowFP && sl.count > 0 {
			if sl.count < maxCount {
				sl.count++
			}
			if sl.count > count {
				count = sl.count
			}
			continue
		}

		if s.rng.Uint64()%powB(sl.count) == 0 {
			if sl.count <= 1 {
				sl.fingerprint = rowFP
				sl.count = 1
				if count < 1 {
					count = 1
				}
			} else {
				sl.count--
			}
		}
	}
	return count
}

// Get returns the current estimate of key's count without mutating any
// slot: the maximum, over all D rows, of the counter stored in the slot
// key hashes to, among rows whose stored fingerprint matches key's.
func (s *Sketch) Get(key uint64) uint16 {
	var count uint16
	for i := 0; i < s.depth; i++ {
		h := s.rowHash(key, i)
		j := h % s.width
		rowFP := fingerprint16(h)
		sl := s.table[uint64(i)*s.width+j]
		if sl.fingerprint == rowFP && sl.count > count {
			count = sl.count
		}
	}
	return count
}
