// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorFixedWidthReads(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	c := newCursor(buf, binary.LittleEndian)

	u8, err := c.readU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), u8)

	u16, err := c.readU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0302), u16)

	u32, err := c.readU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x07060504), u32)
}

func TestCursorEndedEarly(t *testing.T) {
	c := newCursor([]byte{0x01}, binary.LittleEndian)
	_, err := c.readU32()
	require.Error(t, err)
	assert.True(t, IsEndedEarly(err))
}

func TestCursorULEB128(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 0x7f},
		{[]byte{0x80, 0x01}, 0x80},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xffffffff},
	}
	for _, tc := range cases {
		c := newCursor(tc.bytes, binary.LittleEndian)
		got, err := c.readULEB128()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestCursorULEB128p1(t *testing.T) {
	// uleb128p1 of 0 decodes to -1, the "absent" sentinel.
	c := newCursor([]byte{0x00}, binary.LittleEndian)
	got, err := c.readULEB128p1()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)

	c = newCursor([]byte{0x01}, binary.LittleEndian)
	got, err = c.readULEB128p1()
	require.NoError(t, err)
	assert.Equal(t, int32(0), got)
}

func TestCursorSLEB128(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  int32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x02}, 2},
		{[]byte{0x7e}, -2},
		{[]byte{0xff, 0x00}, 0x7f},
		{[]byte{0x81, 0x7f}, -127},
	}
	for _, tc := range cases {
		c := newCursor(tc.bytes, binary.LittleEndian)
		got, err := c.readSLEB128()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}
