// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cipher128

import "github.com/kevlar-labs/kevlar/internal/diag"

// Recover implements the single-bit-flip authentication recovery walk from
// spec.md §4.5: it tries flipping each of the 128 bit positions of *p in
// turn, attempting a decrypt after each flip, until one succeeds or the
// space is exhausted. On success it leaves *p with the corrected bit
// flipped in place (so a caller's retried decrypt now authenticates) and
// returns the corrected bit index. On exhaustion it restores *p to its
// original bytes and returns ok=false.
func Recover(p *Packet) (fixedBit int, ok bool) {
	diag.Warnf("decryption authentication failure")
	diag.Infof("attempting recovery of corrupted ciphertext")

	original := *p
	for bit := 0; bit < 128; bit++ {
		byteIdx := bit / 8
		mask := byte(1) << uint(bit%8)

		p[byteIdx] ^= mask
		if _, authOK := Decrypt(*p); authOK {
			diag.Infof("ciphertext fixed, flipped bit %d", bit)
			return bit, true
		}
		p[byteIdx] ^= mask // undo and keep searching
	}

	*p = original
	diag.Infof("ciphertext was not fixed, too many bit flips")
	return 0, false
}
