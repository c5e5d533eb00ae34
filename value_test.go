// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(kind ValueKind, arg int) byte {
	return byte(kind) | byte(arg<<5)
}

func TestParseEncodedValueByte(t *testing.T) {
	buf := []byte{tag(ValueByte, 0), 0xfe}
	c := newCursor(buf, binary.LittleEndian)
	v, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.Equal(t, ValueByte, v.Kind)
	assert.Equal(t, int64(-2), v.Int)
}

func TestParseEncodedValueIntVariableWidth(t *testing.T) {
	// A 2-byte-wide VALUE_INT: value_arg = 1 (two bytes follow), bytes
	// 0x34 0x12 little-endian -> 0x1234, sign bit clear so no extension.
	buf := []byte{tag(ValueInt, 1), 0x34, 0x12}
	c := newCursor(buf, binary.LittleEndian)
	v, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.Equal(t, int64(0x1234), v.Int)
}

func TestParseEncodedValueIntSignExtends(t *testing.T) {
	// 1-byte-wide VALUE_INT carrying 0xff must sign-extend to -1, not
	// zero-extend to 255.
	buf := []byte{tag(ValueInt, 0), 0xff}
	c := newCursor(buf, binary.LittleEndian)
	v, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v.Int)
}

func TestParseEncodedValueCharZeroExtends(t *testing.T) {
	buf := []byte{tag(ValueChar, 0), 0xff}
	c := newCursor(buf, binary.LittleEndian)
	v, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.Equal(t, int64(0xff), v.Int)
}

func TestParseEncodedValueFloatRightZeroExtended(t *testing.T) {
	// A single byte 0x3f occupies the low-order byte of the 4-byte word,
	// giving bits 0x0000003f: a tiny subnormal float, not 0.5.
	buf := []byte{tag(ValueFloat, 0), 0x3f}
	c := newCursor(buf, binary.LittleEndian)
	v, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.Equal(t, float64(math.Float32frombits(0x0000003f)), v.Float64)
}

func TestParseEncodedValueFloatTwoByteRightZeroExtended(t *testing.T) {
	// tag 0x30 decodes to kind ValueFloat (0x30&0x1f=0x10) with value_arg 1
	// (0x30>>5&0x7=1), so two payload bytes follow. 0x33,0x33 little-endian
	// is 0x3333, occupying the low-order two bytes of the 4-byte word:
	// bits 0x00003333.
	buf := []byte{0x30, 0x33, 0x33}
	c := newCursor(buf, binary.LittleEndian)
	v, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.Equal(t, ValueFloat, v.Kind)
	assert.Equal(t, float64(math.Float32frombits(0x00003333)), v.Float64)
}

func TestParseEncodedValueNullAndBoolean(t *testing.T) {
	c := newCursor([]byte{tag(ValueNull, 0)}, binary.LittleEndian)
	v, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.Equal(t, ValueNull, v.Kind)

	c = newCursor([]byte{tag(ValueBoolean, 1)}, binary.LittleEndian)
	v, err = parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.True(t, v.Bool)

	c = newCursor([]byte{tag(ValueBoolean, 0)}, binary.LittleEndian)
	v, err = parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	assert.False(t, v.Bool)
}

func TestParseEncodedValueArray(t *testing.T) {
	// encoded_array: uleb128 size=2, then two VALUE_BYTE entries.
	buf := []byte{0x02, tag(ValueByte, 0), 0x01, tag(ValueByte, 0), 0x02}
	c := newCursor(buf, binary.LittleEndian)
	arr, err := parseEncodedArray(c, 0, defaultMaxAnnotationDepth)
	require.NoError(t, err)
	require.Len(t, arr, 2)
	assert.Equal(t, int64(1), arr[0].Int)
	assert.Equal(t, int64(2), arr[1].Int)
}

func TestParseEncodedValueRejectsBadValueArg(t *testing.T) {
	// VALUE_NULL requires value_arg 0; here it is 1.
	c := newCursor([]byte{tag(ValueNull, 1)}, binary.LittleEndian)
	_, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}

func TestParseEncodedValueDepthLimit(t *testing.T) {
	// A VALUE_ARRAY tag whose single element is itself a VALUE_ARRAY,
	// repeated past the recursion cap, must fail rather than overflow
	// the call stack.
	var buf []byte
	for i := 0; i < defaultMaxAnnotationDepth+2; i++ {
		buf = append(buf, tag(ValueArray, 0), 0x01)
	}
	buf = append(buf, tag(ValueByte, 0), 0x00)
	c := newCursor(buf, binary.LittleEndian)
	_, err := parseEncodedValue(c, 0, defaultMaxAnnotationDepth)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}
