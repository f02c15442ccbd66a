// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tiermem

import "errors"

// ErrAgain is the "again" error class: the target tier is at or below
// its low watermark, no candidate survived filtering, or the migration
// pass otherwise has nothing useful to do this tick. A tick returning
// ErrAgain is expected to retry on the next tick; it is not a failure.
//
// This is a local sentinel: code.hybscloud.com/iox documents ErrWouldBlock
// for hot-path backpressure but not a distinct "retry next tick" signal,
// so tiermem defines its own in the same style.
var ErrAgain = errors.New("tiermem: again")

// IsAgain reports whether err is ErrAgain.
func IsAgain(err error) bool {
	return errors.Is(err, ErrAgain)
}
