// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMUTF8ASCII(t *testing.T) {
	s, count, err := decodeMUTF8([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, 5, count)
}

func TestDecodeMUTF8EmbeddedNUL(t *testing.T) {
	// U+0000 is encoded as the two-byte overlong sequence C0 80, never as
	// a literal zero byte (which terminates the string).
	s, count, err := decodeMUTF8([]byte{0xc0, 0x80})
	require.NoError(t, err)
	assert.Equal(t, "\x00", s)
	assert.Equal(t, 1, count)
}

func TestDecodeMUTF8SupplementaryPlaneSurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) as a CESU-8-style surrogate pair: high
	// surrogate D83D, low surrogate DE00, each three-byte encoded.
	b := []byte{0xed, 0xa0, 0xbd, 0xed, 0xb8, 0x80}
	s, count, err := decodeMUTF8(b)
	require.NoError(t, err)
	require.Len(t, []rune(s), 1)
	assert.Equal(t, rune(0x1F600), []rune(s)[0])
	assert.Equal(t, 2, count) // occupies two UTF-16 code units
}

func TestDecodeMUTF8TruncatedSequence(t *testing.T) {
	_, _, err := decodeMUTF8([]byte{0xe0, 0x80})
	require.Error(t, err)
	assert.True(t, IsEncoding(err))
}
