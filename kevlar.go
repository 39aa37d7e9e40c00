// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package kevlar provides a 64-bit integer type whose value is never held
// in the clear except transiently inside an operation. See SPEC_FULL.md
// for the full design this package implements.
package kevlar

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kevlar-labs/kevlar/internal/diag"
	"github.com/kevlar-labs/kevlar/x/crypto/cipher128"
)

// EncU64 holds a 64-bit unsigned value as a salted, authenticated AES-128
// ciphertext packet (spec.md §4.4). The zero value is not a valid EncU64;
// use New or NewFromValue.
type EncU64 struct {
	packet cipher128.Packet
}

// New returns an EncU64 encrypting the value 0.
func New() EncU64 {
	return NewFromValue(0)
}

// NewFromValue encrypts v under the process's bootstrapped key schedule,
// with a fresh monotonic salt.
func NewFromValue(v uint64) EncU64 {
	return EncU64{packet: cipher128.Encrypt(v)}
}

// fromCiphertext adopts an already-encrypted packet as-is, without
// re-salting. No operation in this package or its tests calls it; every
// operation encrypts its result afresh through NewFromValue.
func fromCiphertext(p cipher128.Packet) EncU64 {
	return EncU64{packet: p}
}

// Clone is the named copy constructor spec.md §4.4 requires for languages
// without operator overloading: it decrypts (recovering from a single
// corrupted bit if necessary) and re-encrypts under a fresh salt, exactly
// as the original design's copy constructor does. Plain Go assignment
// (b := a) instead performs a raw struct copy sharing the same salted
// ciphertext bytes; that is harmless for an otherwise-immutable value but
// is not the semantic copy constructor spec.md describes, so Clone exists
// as the named equivalent.
func (a EncU64) Clone() EncU64 {
	v := a.decryptSelf()
	return NewFromValue(v)
}

// decryptSelf decrypts this value's own packet, attempting single-bit
// recovery in place on authentication failure, and returns the plaintext
// without touching the side-channel latch. Internal helper shared by every
// operation.
func (a *EncU64) decryptSelf() uint64 {
	v, ok := cipher128.Decrypt(a.packet)
	if !ok {
		if _, fixed := cipher128.Recover(&a.packet); fixed {
			v, _ = cipher128.Decrypt(a.packet)
		}
	}
	return v
}

// Value decrypts and returns the plaintext value, raising the side-channel
// latch: spec.md §4.4 classifies get_value as an operation whose result
// leaves the encrypted domain.
func (a EncU64) Value() uint64 {
	v := a.decryptSelf()
	raiseSideChannelWarning()
	return v
}

// PrintValue decrypts and returns the plaintext value without raising the
// side-channel latch, matching spec.md §4.4's print_value: intended for
// diagnostics, not for driving program logic.
func (a EncU64) PrintValue() uint64 {
	return a.decryptSelf()
}

// Uint64 is the explicit conversion to uint64 described by spec.md §4.4;
// it raises the side-channel latch like Value.
func (a EncU64) Uint64() uint64 {
	return a.Value()
}

// Int64 is the explicit conversion to int64; it raises the side-channel
// latch like Value.
func (a EncU64) Int64() int64 {
	return int64(a.Value())
}

// Bool is the explicit conversion to bool (nonzero test); it raises the
// side-channel latch like Value.
func (a EncU64) Bool() bool {
	return a.Value() != 0
}

// Add returns a new EncU64 holding a+b (mod 2^64), encrypted under a fresh
// salt. Neither operand's latch state is affected.
func (a EncU64) Add(b EncU64) EncU64 {
	return NewFromValue(a.decryptSelf() + b.decryptSelf())
}

// Sub returns a new EncU64 holding a-b (mod 2^64).
func (a EncU64) Sub(b EncU64) EncU64 {
	return NewFromValue(a.decryptSelf() - b.decryptSelf())
}

// Mul returns a new EncU64 holding a*b (mod 2^64).
func (a EncU64) Mul(b EncU64) EncU64 {
	return NewFromValue(a.decryptSelf() * b.decryptSelf())
}

// Div returns a new EncU64 holding a/b. It panics on division by zero,
// matching unsigned integer division's undefined behavior rather than
// inventing a saturating or encrypted-error convention spec.md does not
// specify.
func (a EncU64) Div(b EncU64) EncU64 {
	bv := b.decryptSelf()
	return NewFromValue(a.decryptSelf() / bv)
}

// Mod returns a new EncU64 holding a%b. See Div for the zero-divisor note.
func (a EncU64) Mod(b EncU64) EncU64 {
	bv := b.decryptSelf()
	return NewFromValue(a.decryptSelf() % bv)
}

// AddAssign mutates a to hold a+b, matching spec.md §4.4's compound
// assignment operators.
func (a *EncU64) AddAssign(b EncU64) {
	*a = NewFromValue(a.decryptSelf() + b.decryptSelf())
}

// SubAssign mutates a to hold a-b.
func (a *EncU64) SubAssign(b EncU64) {
	*a = NewFromValue(a.decryptSelf() - b.decryptSelf())
}

// MulAssign mutates a to hold a*b.
func (a *EncU64) MulAssign(b EncU64) {
	*a = NewFromValue(a.decryptSelf() * b.decryptSelf())
}

// DivAssign mutates a to hold a/b.
func (a *EncU64) DivAssign(b EncU64) {
	bv := b.decryptSelf()
	*a = NewFromValue(a.decryptSelf() / bv)
}

// ModAssign mutates a to hold a%b.
func (a *EncU64) ModAssign(b EncU64) {
	bv := b.decryptSelf()
	*a = NewFromValue(a.decryptSelf() % bv)
}

// lessRaw decrypts both operands and compares them without touching the
// side-channel latch. Shared by Less and CmovLT.
func (a EncU64) lessRaw(b EncU64) bool {
	av := a.decryptSelf()
	bv := b.decryptSelf()
	return av < bv
}

// Less decrypts both operands, compares them, and raises the side-channel
// latch: spec.md §4.4 classifies relational operators the same way it
// classifies get_value, since the plaintext result of the comparison
// escapes into ordinary (non-oblivious) control flow.
func (a EncU64) Less(b EncU64) bool {
	result := a.lessRaw(b)
	raiseSideChannelWarning()
	return result
}

// FlipBits XORs hiMask into the high 64 bits and loMask into the low 64
// bits of the stored ciphertext packet, per spec.md §4.4's flip_bits. This
// corrupts the ciphertext directly; it does not decrypt, so it neither
// touches the side-channel latch nor attempts recovery — recovery happens
// lazily, the next time a decrypting operation observes the corruption.
func (a *EncU64) FlipBits(hiMask, loMask uint64) {
	for i := 0; i < 8; i++ {
		a.packet[i] ^= byte(loMask >> (8 * i))
		a.packet[8+i] ^= byte(hiMask >> (8 * i))
	}
}

// PrintState logs the raw ciphertext packet under the given name for
// diagnostic purposes, matching spec.md §4.4's print_state. It does not
// decrypt and does not touch the side-channel latch. If name is empty, a
// random identifier is generated so repeated calls in a log stream remain
// distinguishable.
func (a EncU64) PrintState(name string) {
	if name == "" {
		name = uuid.NewString()
	}
	diag.Infof("%s: %x", name, a.packet)
}

// String implements fmt.Stringer for diagnostics; it never decrypts.
func (a EncU64) String() string {
	return fmt.Sprintf("EncU64{%x}", a.packet)
}
