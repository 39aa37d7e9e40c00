// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cipher128

import (
	"fmt"
	"sync"

	"github.com/kevlar-labs/kevlar/internal/diag"
	"github.com/kevlar-labs/kevlar/x/crypto/entropy"
	"github.com/zeebo/blake3"
)

// The following package-level variables are kevlar's Go-native stand-in for
// the original design's permanently-pinned XMM registers (see SPEC_FULL.md
// §3's "Go representation of pinned registers" note): they are written
// exactly once at Bootstrap (round keys, increment) or exactly once per
// Encrypt (the salt register), are never returned by value or pointer to
// any caller outside this package, and nothing in this package ever
// re-derives them from a stored copy elsewhere.
var (
	rK0, rK1, rK2, rK3, rK4, rK5, rK6, rK10 Packet
	rInc, rSalt                             Packet
)

var (
	bootstrapOnce   sync.Once
	bootstrapErr    error
	bootstrapActive bool
)

// expandKey128 runs the standard AES-128 key expansion, producing round
// keys 0..10 from a 128-bit master key. The recurrence is grounded
// directly on SnellerInc/sneller's internal/aes/aes_generic.go
// auxExpandFromKey128, reworked to operate on this package's 4-uint32 word
// shape.
func expandKey128(master [4]uint32) [11][4]uint32 {
	var p [11][4]uint32
	p[0] = master
	for i := 4; i < 44; i++ {
		t := p[(i-1)/4][(i-1)%4]
		if i%4 == 0 {
			t = subWord(rotWord(t)) ^ roundConstant[(i/4)-1]
		}
		p[i/4][i%4] = p[(i-4)/4][(i-4)%4] ^ t
	}
	return p
}

// wordsToPacket packs four key-schedule words into a Packet using the same
// lane convention Encrypt/Decrypt use for the ciphertext block.
func wordsToPacket(w [4]uint32) Packet {
	var p Packet
	for i, v := range w {
		p.SetLane(i, v)
	}
	return p
}

// Bootstrap performs the one-time load-time initialization described by
// spec.md §4.2 and §4.8: it draws a single hardware seed, expands it into a
// 128-bit master key, runs the AES-128 key schedule, and pins round keys
// 0..6 and 10, the salt increment, and the initial salt value into the
// package-level state above. It is idempotent — later calls are no-ops —
// and safe to call from multiple goroutines, though the cipher state it
// installs is not itself safe for concurrent use afterward (see
// SPEC_FULL.md §5).
func Bootstrap() error {
	bootstrapOnce.Do(func() {
		if err := checkHardware(); err != nil {
			bootstrapErr = err
			return
		}

		stream, err := entropy.NewStream()
		if err != nil {
			bootstrapErr = fmt.Errorf("cipher128: entropy unavailable: %w", err)
			return
		}

		// Concatenate four PRNG draws into a 128-bit master key seed, then
		// whiten it through a blake3 XOF draw for better diffusion before
		// key expansion, per SPEC_FULL.md §4.2.
		var seed [16]byte
		for i := 0; i < 4; i++ {
			var w [4]byte
			v := stream.Next()
			w[0], w[1], w[2], w[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
			copy(seed[4*i:4*i+4], w[:])
		}
		whitened := blake3.Sum256(seed[:])

		var master [4]uint32
		for i := 0; i < 4; i++ {
			master[i] = uint32(whitened[4*i]) | uint32(whitened[4*i+1])<<8 |
				uint32(whitened[4*i+2])<<16 | uint32(whitened[4*i+3])<<24
		}

		schedule := expandKey128(master)
		rK0 = wordsToPacket(schedule[0])
		rK1 = wordsToPacket(schedule[1])
		rK2 = wordsToPacket(schedule[2])
		rK3 = wordsToPacket(schedule[3])
		rK4 = wordsToPacket(schedule[4])
		rK5 = wordsToPacket(schedule[5])
		rK6 = wordsToPacket(schedule[6])
		rK10 = wordsToPacket(schedule[10])

		rInc = Packet{}
		rInc.SetLane(1, 1)

		rSalt = Packet{}
		rSalt.SetLane(1, stream.Next())

		bootstrapActive = true
		diag.Infof("cipher128 bootstrap complete, round-key schedule pinned")
	})
	return bootstrapErr
}

// requireBootstrapped panics if Bootstrap has not yet successfully
// completed. Every exported encrypt/decrypt entry point in this package
// calls it, matching spec.md §4.8's "must complete before any encrypted
// integer operation can run".
func requireBootstrapped() {
	if !bootstrapActive {
		panic("cipher128: Encrypt/Decrypt called before Bootstrap completed")
	}
}
