// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package kevlar

import "github.com/kevlar-labs/kevlar/x/crypto/cipher128"

// init bootstraps the process-wide key schedule and salt registers before
// any EncU64 can be constructed, per spec.md §4.8. A host that cannot
// supply the entropy or hardware features cipher128.Bootstrap requires is
// not a host this package can run correctly on, so failure here panics
// rather than leaving the package in a partially-initialized state that
// later calls would need to check for on every operation.
func init() {
	if err := cipher128.Bootstrap(); err != nil {
		panic("kevlar: bootstrap failed: " + err.Error())
	}
}
