// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeed64_DrawsDoNotRepeat(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	// Entropy is allowed to occasionally draw zero, but across many draws
	// we should never see the same word twice, which is a much stronger
	// and more deterministic check than "is nonzero".
	seen := make(map[uint64]bool)
	for i := 0; i < 32; i++ {
		v, err := Seed64()
		is.NoError(err)
		is.False(seen[v], "Seed64 repeated a value across independent draws")
		seen[v] = true
	}
}

func TestStream_ConsecutiveNextDrawsDiffer(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s, err := NewStream()
	is.NoError(err)

	a := s.Next()
	b := s.Next()
	is.NotEqual(a, b, "consecutive stream draws should not repeat")
}

func TestStream_Next64IsNonZero(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s, err := NewStream()
	is.NoError(err)

	v := s.Next64()
	is.NotZero(v)
}

func TestStream_TwoStreamsDiffer(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s1, err := NewStream()
	is.NoError(err)
	s2, err := NewStream()
	is.NoError(err)

	// Overwhelmingly likely to differ since each stream is seeded from an
	// independent hardware draw.
	is.NotEqual(s1.Next64(), s2.Next64())
}
