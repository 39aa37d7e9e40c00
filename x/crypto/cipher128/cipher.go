// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package cipher128 implements the register-resident reduced-round AES-128
// cipher primitive kevlar's encrypted integer type is built on: a register
// binding discipline for the round-key schedule and salt (see doc.go), a
// forward encrypt that mixes in a monotonically increasing salt, a matching
// decrypt that verifies a fixed authentication cookie, and the single-bit
// recovery walk used when authentication fails.
package cipher128

import "encoding/binary"

// Packet is a 128-bit AES state / ciphertext block, laid out as four
// 32-bit little-endian lanes (lane i occupies bytes [4i:4i+4]), matching
// the four-lane plaintext packet described by the data model: lane 0 is the
// authentication cookie, lane 1 is the reserved/salt lane, lanes 2 and 3
// are the low and high halves of the 64-bit value.
type Packet [16]byte

// Lane returns the 32-bit value of lane i (0..3).
func (p Packet) Lane(i int) uint32 {
	return binary.LittleEndian.Uint32(p[4*i : 4*i+4])
}

// SetLane sets the 32-bit value of lane i (0..3).
func (p *Packet) SetLane(i int, v uint32) {
	binary.LittleEndian.PutUint32(p[4*i:4*i+4], v)
}

// addLanes performs the "paddd"-style lane-wise 32-bit arithmetic addition
// spec.md describes for mixing the salt into the plaintext packet: each
// lane is added independently and mod-2^32 wraps, there is no carry between
// lanes.
func addLanes(a, b Packet) Packet {
	var out Packet
	for i := 0; i < 4; i++ {
		out.SetLane(i, a.Lane(i)+b.Lane(i))
	}
	return out
}

const authCookie uint32 = 42

// cookiePacket builds the pre-salt plaintext packet for value v: cookie in
// lane 0, the reserved hash field zeroed in lane 1, and the low/high halves
// of v in lanes 2 and 3.
func cookiePacket(v uint64) Packet {
	var p Packet
	p.SetLane(0, authCookie)
	p.SetLane(1, 0)
	p.SetLane(2, uint32(v))
	p.SetLane(3, uint32(v>>32))
	return p
}

// encryptBlock runs the fixed six-forward-round / last-round-with-K10
// AES-128 variant over state, using the currently pinned round keys. It is
// the Go equivalent of the original's inline AESENC/AESENCLAST chain.
func encryptBlock(state Packet) Packet {
	state = addRoundKey(state, rK0)
	state = aesEncRound(state, rK1)
	state = aesEncRound(state, rK2)
	state = aesEncRound(state, rK3)
	state = aesEncRound(state, rK4)
	state = aesEncRound(state, rK5)
	state = aesEncRound(state, rK6)
	state = aesEncLastRound(state, rK10)
	return state
}

// decryptBlock runs the matching inverse cipher over state, using the
// currently pinned round keys, the standard (non-equivalent-form) AES
// inverse cipher structure: InvShiftRows, InvSubBytes, AddRoundKey with the
// plain forward round key, then InvMixColumns, repeated per round, with no
// InvMixColumns on the very first or very last key application. This
// reproduces spec.md's decrypt contract (XOR K10, six inverse rounds K6..K1,
// inverse last round with K0) without needing a separately
// InvMixColumns-transformed key schedule: the two formulations are
// algebraically identical because InvMixColumns distributes over XOR, and
// this one maps directly onto FIPS-197's reference Inverse Cipher.
func decryptBlock(state Packet) Packet {
	state = addRoundKey(state, rK10)
	state = aesDecRound(state, rK6)
	state = aesDecRound(state, rK5)
	state = aesDecRound(state, rK4)
	state = aesDecRound(state, rK3)
	state = aesDecRound(state, rK2)
	state = aesDecRound(state, rK1)
	state = aesDecLastRound(state, rK0)
	return state
}

// aesEncRound reproduces the AESENC instruction semantics: ShiftRows,
// SubBytes, MixColumns, then XOR the round key.
func aesEncRound(state, key Packet) Packet {
	state = shiftRows(state)
	state = subBytes(state)
	state = mixColumns(state)
	return addRoundKey(state, key)
}

// aesEncLastRound reproduces AESENCLAST: ShiftRows, SubBytes, then XOR the
// round key, with no MixColumns.
func aesEncLastRound(state, key Packet) Packet {
	state = shiftRows(state)
	state = subBytes(state)
	return addRoundKey(state, key)
}

// aesDecRound is one round of the straightforward inverse cipher:
// InvShiftRows, InvSubBytes, XOR the plain round key, then InvMixColumns.
// This differs from AESDEC, which applies InvMixColumns before the key XOR
// and so expects an InvMixColumns-transformed key.
func aesDecRound(state, key Packet) Packet {
	state = invShiftRows(state)
	state = invSubBytes(state)
	state = addRoundKey(state, key)
	return invMixColumns(state)
}

// aesDecLastRound reproduces AESDECLAST: InvShiftRows, InvSubBytes, then
// XOR the round key, with no InvMixColumns.
func aesDecLastRound(state, key Packet) Packet {
	state = invShiftRows(state)
	state = invSubBytes(state)
	return addRoundKey(state, key)
}

// Encrypt forms a fresh ciphertext packet for value, incrementing the
// pinned salt register first so that every call (even for the same value)
// produces a distinct ciphertext. It panics if Bootstrap has not yet run;
// callers in package kevlar only ever reach Encrypt after the package init
// bootstrap has completed.
func Encrypt(value uint64) Packet {
	requireBootstrapped()
	rSalt = addLanes(rSalt, rInc)
	plain := cookiePacket(value)
	plain = addLanes(plain, rSalt)
	return encryptBlock(plain)
}

// Decrypt recovers the plaintext value and authentication status from a
// ciphertext packet. authOK is true exactly when the decrypted cookie lane
// equals the fixed authentication constant.
func Decrypt(p Packet) (value uint64, authOK bool) {
	requireBootstrapped()
	out := decryptBlock(p)
	authOK = out.Lane(0) == authCookie
	value = uint64(out.Lane(3))<<32 | uint64(out.Lane(2))
	return value, authOK
}
