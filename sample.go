// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "encoding/binary"

// sampleSize is the wire size of a Sample record in the ring: six uint64
// fields, fixed and immutable once produced.
const sampleSize = 8 * 6

// Sample is a fixed hardware performance-monitoring sample, copied into
// a per-(cpu,event) ring by the ingestion path and consumed once by the
// policy worker.
//
// A Sample with PhysAddr == 0 is kept in the ring to preserve FIFO
// ordering but skipped by the policy worker.
type Sample struct {
	TaskID     uint64
	ThreadID   uint64
	TimeNs     uint64
	VirtualAddr uint64
	Weight     uint64
	PhysAddr   uint64

	// seq is a slot for a debug sequence number. Nothing in this package
	// assigns it and marshal does not carry it through the ring, so it is
	// zero in every Sample the policy worker sees. It plays no part in the
	// correctness model.
	seq uint64
}

func (s *Sample) marshal(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], s.TaskID)
	binary.LittleEndian.PutUint64(buf[8:16], s.ThreadID)
	binary.LittleEndian.PutUint64(buf[16:24], s.TimeNs)
	binary.LittleEndian.PutUint64(buf[24:32], s.VirtualAddr)
	binary.LittleEndian.PutUint64(buf[32:40], s.Weight)
	binary.LittleEndian.PutUint64(buf[40:48], s.PhysAddr)
}

func unmarshalSample(buf []byte) Sample {
	return Sample{
		TaskID:      binary.LittleEndian.Uint64(buf[0:8]),
		ThreadID:    binary.LittleEndian.Uint64(buf[8:16]),
		TimeNs:      binary.LittleEndian.Uint64(buf[16:24]),
		VirtualAddr: binary.LittleEndian.Uint64(buf[24:32]),
		Weight:      binary.LittleEndian.Uint64(buf[32:40]),
		PhysAddr:    binary.LittleEndian.Uint64(buf[40:48]),
	}
}

// pageShift is the assumed page size shift (4 KiB pages), used to derive
// a pfn from a physical address.
const pageShift = 12

func pfnOf(physAddr uint64) uint64 {
	return physAddr >> pageShift
}
