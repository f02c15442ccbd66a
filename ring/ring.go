// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring provides a lock-free single-producer single-consumer byte
// ring for fixed-size records.
//
// Unlike a generic value queue, Ring moves raw bytes: records are copied in
// and out of a backing buffer whose capacity is a multiple of the record
// size. This matches the contract of a hardware sample ring, where the
// producer (an interrupt-like callback) must push-and-return in bounded
// time without allocating, and the consumer drains whole records in FIFO
// order.
//
// Ring follows the same cached-index technique as a Lamport ring buffer:
// the producer caches the consumer's last-seen position and vice versa, so
// the common case touches only local state and avoids cross-core traffic
// on every operation.
package ring

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates Push or Pop cannot proceed immediately.
//
// For Push: the ring is full (backpressure).
// For Pop: the ring is empty (no data available).
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency with
// other lock-free queue packages built on code.hybscloud.com/iox.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal, not a failure.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// Ring is a lock-free SPSC byte ring carrying fixed-size records.
//
// Exactly one goroutine may call Push; exactly one (possibly different)
// goroutine may call Pop. Violating this constraint causes undefined
// behavior including data corruption and races.
type Ring struct {
	_          pad
	head       atomix.Uint64 // consumer reads from here
	_          pad
	cachedTail uint64 // consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // producer writes here
	_          pad
	cachedHead uint64 // producer's cached view of head
	_          pad
	buffer     []byte
	recordSize uint64
	capMask    uint64 // capacity in records, minus one
}

// New creates a Ring holding capacityRecords fixed-size records of
// recordSize bytes each. capacityRecords rounds up to the next power of 2.
//
// Panics if recordSize == 0 or capacityRecords < 2.
func New(recordSize int, capacityRecords int) *Ring {
	if recordSize <= 0 {
		panic("ring: recordSize must be > 0")
	}
	if capacityRecords < 2 {
		panic("ring: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacityRecords))
	return &Ring{
		buffer:     make([]byte, n*uint64(recordSize)),
		recordSize: uint64(recordSize),
		capMask:    n - 1,
	}
}

// Cap returns the ring capacity in records.
func (r *Ring) Cap() int {
	return int(r.capMask + 1)
}

// RecordSize returns the fixed record size in bytes.
func (r *Ring) RecordSize() int {
	return int(r.recordSize)
}

// Push copies the record in payload into the ring (producer only).
// len(payload) must equal RecordSize(); a mismatch panics. Returns
// ErrWouldBlock if the ring is full.
//
// Never blocks, never allocates.
func (r *Ring) Push(payload []byte) error {
	if uint64(len(payload)) != r.recordSize {
		panic("ring: payload size mismatch")
	}

	tail := r.tail.LoadRelaxed()
	if tail-r.cachedHead > r.capMask {
		r.cachedHead = r.head.LoadAcquire()
		if tail-r.cachedHead > r.capMask {
			return ErrWouldBlock
		}
	}

	off := (tail & r.capMask) * r.recordSize
	copy(r.buffer[off:off+r.recordSize], payload)
	r.tail.StoreRelease(tail + 1)
	return nil
}

// Pop copies the next record into out (consumer only). out must have
// length RecordSize(). Returns ErrWouldBlock if the ring is empty.
func (r *Ring) Pop(out []byte) error {
	if uint64(len(out)) != r.recordSize {
		panic("ring: output buffer size mismatch")
	}

	head := r.head.LoadRelaxed()
	if head >= r.cachedTail {
		r.cachedTail = r.tail.LoadAcquire()
		if head >= r.cachedTail {
			return ErrWouldBlock
		}
	}

	off := (head & r.capMask) * r.recordSize
	copy(out, r.buffer[off:off+r.recordSize])
	r.head.StoreRelease(head + 1)
	return nil
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
