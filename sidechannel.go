// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package kevlar

import (
	"sync/atomic"

	"github.com/kevlar-labs/kevlar/internal/diag"
)

// scLatch is the process-wide side-channel warning latch described by
// spec.md §4.6: raised once, the first time any operation whose result
// type is plaintext (or whose control flow branches on a decrypted value)
// is observed, and cleared only by an explicit ResetWarnings call.
//
// A bare bool would be faithful to the original design's single-threaded
// model (see SPEC_FULL.md §5), but an exported-effect process global is the
// one place in this package where a Go reviewer would expect atomic
// hygiene regardless of the surrounding single-threaded cipher-state
// discipline, so this uses atomic.Bool.
var scLatch atomic.Bool

// raiseSideChannelWarning raises the latch and logs a one-shot warning the
// first time it is called after construction or after a ResetWarnings
// call. Subsequent calls while the latch is already raised are silent.
func raiseSideChannelWarning() {
	if scLatch.CompareAndSwap(false, true) {
		diag.Warnf("program behaviors are likely leaking secrets")
	}
}

// ResetWarnings clears the side-channel latch and logs the reset. It is the
// only way client code can lower the latch once raised.
func ResetWarnings() {
	scLatch.Store(false)
	diag.Infof("resetting leaky behavior detectors")
}

// sideChannelWarned reports whether the latch is currently raised. Exposed
// to tests in-package; not part of the public API surface described by
// spec.md §6.
func sideChannelWarned() bool {
	return scLatch.Load()
}
