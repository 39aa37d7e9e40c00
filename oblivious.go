// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package kevlar

import "crypto/subtle"

// Cmov selects between x and y without branching on p, per spec.md §4.7.
// The selection itself is performed byte-wise with crypto/subtle's
// constant-time primitives rather than an if/else on p, so the ciphertext
// bytes returned do not depend on a data-dependent branch. Converting the
// Go bool p into the 0/1 int subtle.ConstantTimeSelect expects is itself a
// branch, matching every other constant-time Go library's boundary between
// "secret condition" (handled branchlessly) and "plumbing" (ordinary Go).
//
// Calling Cmov forces the side-channel latch on for its duration: a caller
// reaching for an oblivious select is, by definition, about to make a
// decision that depends on previously-decrypted material.
func Cmov(p bool, x, y EncU64) EncU64 {
	prev := scLatch.Swap(true)
	defer scLatch.Store(prev)

	sel := boolToInt(p)
	var out EncU64
	for i := range out.packet {
		out.packet[i] = byte(subtle.ConstantTimeSelect(sel, int(x.packet[i]), int(y.packet[i])))
	}
	return out
}

// CmovBool is Cmov's plaintext-bool analogue, used when the two candidate
// results are themselves booleans rather than encrypted values.
func CmovBool(p, x, y bool) bool {
	prev := scLatch.Swap(true)
	defer scLatch.Store(prev)

	sel := boolToInt(p)
	return subtle.ConstantTimeSelect(sel, boolToInt(x), boolToInt(y)) == 1
}

// CmovLT selects between x and y according to whether a is less than b,
// without exposing the comparison's outcome through a separate branch: the
// comparison and the select both run under a single latch raise.
func CmovLT(a, b EncU64, x, y bool) bool {
	prev := scLatch.Swap(true)
	defer scLatch.Store(prev)

	lt := a.lessRaw(b)
	sel := boolToInt(lt)
	return subtle.ConstantTimeSelect(sel, boolToInt(x), boolToInt(y)) == 1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
