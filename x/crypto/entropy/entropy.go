// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package entropy is the sole source of true randomness used by kevlar's
// key schedule. It exposes a single hardware-backed 64-bit seed draw and a
// deterministic stream derived from exactly one such draw, matching the
// "poll the true-random seed instruction once, then synthesize the rest
// from a seeded PRNG" discipline required of the register-resident key
// schedule.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/dchest/siphash"
)

// Seed64 returns a hardware-backed random 64-bit word. On every supported
// platform this polls the operating system's true-random seed source
// (crypto/rand.Reader, which itself blocks on RDSEED/getrandom-class
// instructions until they report success) and only returns an error if
// that source is unavailable — the Go-visible equivalent of the original
// design's "fails fatally only if the instruction is unsupported".
func Seed64() (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Stream is a deterministic 32-bit draw stream seeded from a single Seed64
// call. It plays the role of the original design's seeded PRNG used to
// synthesize the 128-bit master key and the initial salt word without
// consuming additional true entropy per draw.
//
// Stream is not safe for concurrent use; callers that need concurrent
// streams should construct one Stream per goroutine.
type Stream struct {
	k0, k1  uint64
	counter uint64
}

// NewStream draws one Seed64 word and expands it into a keyed siphash
// stream. siphash is used here purely as a fast, well-diffused keyed PRF —
// the same "one true-random draw seeds many deterministic words" shape the
// teacher package uses for its DRBG personalization, reimplemented here with
// a keyed hash instead of AES-CTR since kevlar's own AES primitive is the
// thing being bootstrapped and must not depend on itself.
func NewStream() (*Stream, error) {
	seed, err := Seed64()
	if err != nil {
		return nil, err
	}
	// Fill both 64-bit halves of the siphash key from the single seed: the
	// second half is the bitwise complement of the first.
	return &Stream{k0: seed, k1: ^seed}, nil
}

// Next returns the next pseudo-random 32-bit word in the stream.
func (s *Stream) Next() uint32 {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], s.counter)
	s.counter++
	h := siphash.Hash(s.k0, s.k1, msg[:])
	return uint32(h)
}

// Next64 returns the next pseudo-random 64-bit word in the stream.
func (s *Stream) Next64() uint64 {
	return uint64(s.Next())<<32 | uint64(s.Next())
}
