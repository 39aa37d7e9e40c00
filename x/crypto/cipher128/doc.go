// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Register binding, Go-native.
//
// The original kevlar design pins its round-key schedule, salt, and salt
// increment into named CPU vector registers (xmm5..xmm15) for the lifetime
// of the process, using inline assembly and a compiler register-reservation
// directive so the values are never spilled to memory. Go's ABI and
// runtime (cooperative preemption, stack-copying GC, no user-controllable
// register classes) make that literal guarantee inexpressible from Go
// source.
//
// This package's equivalent is the unexported package-level Packet
// variables declared in keyschedule.go: rK0..rK6, rK10, rInc, and rSalt.
// They preserve the three properties that make the original design's
// pinning meaningful rather than the specific mechanism:
//
//  1. Single writer, single lifecycle. Every round key and rInc are
//     written exactly once, by Bootstrap, and never reassigned afterward.
//     rSalt is written once at Bootstrap and then mutated exactly once per
//     Encrypt call, in strict program order — matching spec.md §3's "every
//     ciphertext packet was produced with a strictly monotonically
//     increasing salt" invariant.
//  2. No escape to callers. Nothing in this package's exported surface
//     (Encrypt, Decrypt, Recover) returns a round key, the salt register,
//     or a pointer into this state. A caller can observe only ciphertext
//     packets and plaintext values/auth booleans, the same boundary
//     spec.md §3's "pinned plaintext carriers" describes for R_VAL/R_AUTH.
//  3. No secondary copy. The key schedule is expanded once inside
//     Bootstrap's closure and moved directly into the package-level
//     variables; no slice or struct holding the full 11-entry table is
//     retained after Bootstrap returns.
//
// On amd64, checkHardware additionally requires the host to actually offer
// the AES-NI and RDRAND instruction families the original design's inline
// assembly depended on (see hardware_amd64.go), so that even though this
// package's round function is implemented in portable Go rather than
// machine-specific assembly, the library still refuses to run on hardware
// the design was never meant to target.
package cipher128
