// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "encoding/binary"

// cursor is the bounds-checked byte reader every higher layer builds on. It
// mirrors the teacher's ReadUint8/16/32/64 family, but tracks a moving
// position instead of taking an explicit offset on every call, and is
// endian-aware since a dex file's own header determines whether the rest
// of the file is little- or big-endian.
type cursor struct {
	buf   []byte
	pos   int64
	order binary.ByteOrder
}

func newCursor(buf []byte, order binary.ByteOrder) *cursor {
	return &cursor{buf: buf, order: order}
}

// at returns a cursor over the same buffer and order, repositioned to
// offset. It does not validate offset; the reads that follow check bounds
// via require.
func (c *cursor) at(offset int64) *cursor {
	return &cursor{buf: c.buf, pos: offset, order: c.order}
}

func (c *cursor) len() int64 { return int64(len(c.buf)) }

func (c *cursor) tell() int64 { return c.pos }

func (c *cursor) seek(offset int64) { c.pos = offset }

// require checks that n more bytes are available starting at the current
// position, returning an ErrEndedEarly DecodeError if not.
func (c *cursor) require(n int64) error {
	if c.pos < 0 || c.pos+n > c.len() {
		return errEndedEarly(c.pos, n)
	}
	return nil
}

func (c *cursor) readBytes(n int64) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) peekBytes(n int64) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	return c.buf[c.pos : c.pos+n], nil
}

func (c *cursor) readU8() (uint8, error) {
	b, err := c.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readU16() (uint16, error) {
	b, err := c.readBytes(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

func (c *cursor) readU32() (uint32, error) {
	b, err := c.readBytes(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

func (c *cursor) readU64() (uint64, error) {
	b, err := c.readBytes(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

func (c *cursor) readI8() (int8, error) {
	v, err := c.readU8()
	return int8(v), err
}

func (c *cursor) readI16() (int16, error) {
	v, err := c.readU16()
	return int16(v), err
}

func (c *cursor) readI32() (int32, error) {
	v, err := c.readU32()
	return int32(v), err
}

func (c *cursor) readI64() (int64, error) {
	v, err := c.readU64()
	return int64(v), err
}

// readULEB128 decodes an unsigned LEB128 value: little-endian base-128
// varint, continuation bit 0x80, at most 5 bytes for a 32-bit result.
func (c *cursor) readULEB128() (uint32, error) {
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b, err := c.readU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errMalformed(c.pos, "uleb128 did not terminate within 5 bytes")
}

// readULEB128p1 decodes a uleb128p1: the decoded value plus one, with -1
// represented by 0. Used for fields that are allowed to be absent (such as
// a debug_info_item parameter name) without a reserved sentinel clashing
// with 0.
func (c *cursor) readULEB128p1() (int32, error) {
	v, err := c.readULEB128()
	if err != nil {
		return 0, err
	}
	return int32(v) - 1, nil
}

// readSLEB128 decodes a signed LEB128: little-endian base-128 varint with
// sign extension from the last group's highest set value bit.
func (c *cursor) readSLEB128() (int32, error) {
	var result int32
	var shift uint
	var b uint8
	var err error
	for {
		b, err = c.readU8()
		if err != nil {
			return 0, err
		}
		result |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
		if shift >= 32 {
			return 0, errMalformed(c.pos, "sleb128 did not terminate within 5 bytes")
		}
	}
	if shift < 32 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, nil
}
