// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build amd64

package cipher128

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// checkHardware enforces the CPU family assumption spec.md §1 and §6 make
// explicit non-goals/requirements of: a host offering hardware AES
// round instructions and a true-random seed instruction. cpu.X86.HasAES and
// cpu.X86.HasRDRAND are the Go-visible proxies for those two instruction
// families. This gate does not change how the cipher computes — the round
// function is the portable Go implementation in aes_tables.go/cipher.go on
// every architecture — it only refuses to run at all on a host that could
// never have backed the original design's inline-assembly primitives,
// consistent with spec.md's non-goal of cross-architecture portability.
func checkHardware() error {
	if !cpu.X86.HasAES {
		return fmt.Errorf("cipher128: host CPU lacks AES-NI; this design assumes hardware AES round instructions")
	}
	if !cpu.X86.HasRDRAND {
		return fmt.Errorf("cipher128: host CPU lacks RDRAND; this design assumes a true-random seed instruction")
	}
	return nil
}
