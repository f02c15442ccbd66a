// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

// Package raceflag exposes whether the race detector is active, so
// concurrency stress tests (ring's SPSC test) can shrink their busy-spin
// iteration count under -race.
package raceflag

// Enabled is true when the race detector is active.
const Enabled = true
