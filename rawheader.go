// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"bytes"
	"encoding/binary"
)

// Magic bytes every dex file begins with: "dex\n" followed by a three
// digit format version and a trailing NUL.
var dexMagicPrefix = []byte("dex\n")

const (
	// endianConstant and reverseEndianConstant are read as a little-endian
	// u32 from the endian_tag field at offset 40. Which one is present
	// determines how every multi-byte field after the header is read.
	endianConstant        uint32 = 0x12345678
	reverseEndianConstant uint32 = 0x78563412

	headerSize = 0x70
	noIndex    = 0xffffffff
)

// rawHeader is the fixed 0x70-byte header verbatim, before any
// interpretation beyond endianness and magic validation.
type rawHeader struct {
	Magic       [8]byte
	Checksum    uint32
	Signature   [20]byte
	FileSize    uint32
	HeaderSize  uint32
	EndianTag   uint32
	LinkSize    uint32
	LinkOff     uint32
	MapOff      uint32
	StringIDsSize uint32
	StringIDsOff  uint32
	TypeIDsSize   uint32
	TypeIDsOff    uint32
	ProtoIDsSize  uint32
	ProtoIDsOff   uint32
	FieldIDsSize  uint32
	FieldIDsOff   uint32
	MethodIDsSize uint32
	MethodIDsOff  uint32
	ClassDefsSize uint32
	ClassDefsOff  uint32
	DataSize      uint32
	DataOff       uint32
}

// parseHeader reads and validates the fixed header, then returns both the
// header and a cursor positioned at offset 0 using the byte order the
// header itself prescribes. Every subsequent field in the file -- string
// offsets, indices, code items -- is read using that same order.
func parseHeader(buf []byte) (*rawHeader, *cursor, error) {
	if int64(len(buf)) < headerSize {
		return nil, nil, errEndedEarly(int64(len(buf)), headerSize-int64(len(buf)))
	}

	// The endian tag governs everything, including the header fields after
	// it, but we must peek it before we know which order to use for them.
	// Per format, the tag itself is always readable as a little-endian
	// u32 regardless of overall file endianness.
	probe := newCursor(buf, binary.LittleEndian)
	probe.seek(40)
	tag, err := probe.readU32()
	if err != nil {
		return nil, nil, err
	}

	var order binary.ByteOrder
	switch tag {
	case endianConstant:
		order = binary.BigEndian
	case reverseEndianConstant:
		order = binary.LittleEndian
	default:
		return nil, nil, errMalformed(40, "endian_tag 0x%08x is neither ENDIAN_CONSTANT nor REVERSE_ENDIAN_CONSTANT", tag)
	}

	c := newCursor(buf, order)

	var h rawHeader
	magic, err := c.readBytes(8)
	if err != nil {
		return nil, nil, err
	}
	copy(h.Magic[:], magic)
	if !bytes.HasPrefix(h.Magic[:], dexMagicPrefix) {
		return nil, nil, errMalformed(0, "magic %q does not begin with %q", h.Magic[:], dexMagicPrefix)
	}

	if h.Checksum, err = c.readU32(); err != nil {
		return nil, nil, err
	}
	sig, err := c.readBytes(20)
	if err != nil {
		return nil, nil, err
	}
	copy(h.Signature[:], sig)

	fields := []*uint32{
		&h.FileSize, &h.HeaderSize, &h.EndianTag,
		&h.LinkSize, &h.LinkOff, &h.MapOff,
		&h.StringIDsSize, &h.StringIDsOff,
		&h.TypeIDsSize, &h.TypeIDsOff,
		&h.ProtoIDsSize, &h.ProtoIDsOff,
		&h.FieldIDsSize, &h.FieldIDsOff,
		&h.MethodIDsSize, &h.MethodIDsOff,
		&h.ClassDefsSize, &h.ClassDefsOff,
		&h.DataSize, &h.DataOff,
	}
	for _, f := range fields {
		v, err := c.readU32()
		if err != nil {
			return nil, nil, err
		}
		*f = v
	}

	if h.HeaderSize != headerSize {
		return nil, nil, errMalformed(8+4+20+4, "header_size %d, want %d", h.HeaderSize, headerSize)
	}
	if int64(h.FileSize) != int64(len(buf)) {
		return nil, nil, errMalformed(8+4+20, "file_size %d does not match actual length %d", h.FileSize, len(buf))
	}

	c.seek(0)
	return &h, c, nil
}
