// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mt19937 implements the 64-bit Mersenne Twister (MT19937-64)
// pseudo-random generator, used by package sketch as the decay coin-flip
// source. It is a direct port of the reference generator with no
// package-level state: no ecosystem Go library implements this exact variant, and
// Go's math/rand family is a different generator, so this is ported rather
// than substituted.
package mt19937

const (
	nn       = 312
	mm       = 156
	matrixA  = 0xB5026F5AA96619E9
	upperMask = 0xFFFFFFFF80000000
	lowerMask = 0x7FFFFFFF
)

// Source is an MT19937-64 generator. The zero value is not ready for use;
// construct with New.
type Source struct {
	mt  [nn]uint64
	mti int // index of the next word of mt to temper; nn means regenerate mt first
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed (re)initializes the generator state from seed.
func (s *Source) Seed(seed uint64) {
	s.mt[0] = seed
	for i := 1; i < nn; i++ {
		s.mt[i] = 6364136223846793005*(s.mt[i-1]^(s.mt[i-1]>>62)) + uint64(i)
	}
	s.mti = nn
}

var mag01 = [2]uint64{0, matrixA}

// Uint64 returns the next pseudo-random 64-bit value.
func (s *Source) Uint64() uint64 {
	if s.mti >= nn {
		var i int
		for i = 0; i < nn-mm; i++ {
			x := (s.mt[i] & upperMask) | (s.mt[i+1] & lowerMask)
			s.mt[i] = s.mt[i+mm] ^ (x >> 1) ^ mag01[x&1]
		}
		for ; i < nn-1; i++ {
			x := (s.mt[i] & upperMask) | (s.mt[i+1] & lowerMask)
			s.mt[i] = s.mt[i+(mm-nn)] ^ (x >> 1) ^ mag01[x&1]
		}
		x := (s.mt[nn-1] & upperMask) | (s.mt[0] & lowerMask)
		s.mt[nn-1] = s.mt[mm-1] ^ (x >> 1) ^ mag01[x&1]
		s.mti = 0
	}

	x := s.mt[s.mti]
	s.mti++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43

	return x
}
