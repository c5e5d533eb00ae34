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

// buf is a tiny byte-slice builder used to hand-assemble minimal dex
// files for tests, since the corpus carries no binary fixtures to decode
// against. Multi-byte fields are written in the order set on the buf.
type buf struct {
	b     []byte
	order binary.ByteOrder
}

func (x *buf) off() uint32 { return uint32(len(x.b)) }
func (x *buf) u8(v uint8)  { x.b = append(x.b, v) }
func (x *buf) u16(v uint16) {
	var tmp [2]byte
	x.order.PutUint16(tmp[:], v)
	x.b = append(x.b, tmp[:]...)
}
func (x *buf) u32(v uint32) {
	var tmp [4]byte
	x.order.PutUint32(tmp[:], v)
	x.b = append(x.b, tmp[:]...)
}
// u32tag writes the endian_tag field itself, which parseHeader always
// probes as little-endian regardless of the order the rest of the header
// is written in.
func (x *buf) u32tag(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	x.b = append(x.b, tmp[:]...)
}
func (x *buf) bytes(v []byte) { x.b = append(x.b, v...) }
func (x *buf) uleb(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			x.b = append(x.b, b|0x80)
		} else {
			x.b = append(x.b, b)
			return
		}
	}
}

func (x *buf) stringData(s string) uint32 {
	off := x.off()
	x.uleb(uint32(len([]rune(s))))
	x.bytes([]byte(s))
	x.u8(0x00)
	return off
}

// buildMinimalDex assembles a one-class dex file: a single public class
// "LMain;" extending "Ljava/lang/Object;", with no members.
func buildMinimalDex(t *testing.T) []byte {
	t.Helper()
	return buildMinimalDexOrdered(t, false)
}

// buildMinimalDexOrdered is buildMinimalDex with the content byte order
// selectable, so the big-endian path through the header probe can be
// exercised too.
func buildMinimalDexOrdered(t *testing.T, bigEndian bool) []byte {
	t.Helper()

	const headerSz = 0x70

	order := binary.ByteOrder(binary.LittleEndian)
	tagValue := reverseEndianConstant
	if bigEndian {
		order = binary.BigEndian
		tagValue = endianConstant
	}

	// Lay out everything after the header first, so offsets are known
	// before the header itself is written.
	body := &buf{order: order}

	stringIDsOff := headerSz
	strMainOff := uint32(0) // patched below once string data is placed
	strObjOff := uint32(0)

	// Reserve string_id_item slots; patch their offsets once string data
	// is written further down.
	stringIDPatch := len(body.b)
	body.u32(0) // string_id[0] -> "LMain;"
	body.u32(0) // string_id[1] -> "Ljava/lang/Object;"

	typeIDsOff := body.off()
	body.u32(0) // type_id[0] -> string 0
	body.u32(1) // type_id[1] -> string 1

	classDefsOff := body.off()
	body.u32(0)          // class_idx
	body.u32(uint32(AccPublic)) // access_flags
	body.u32(1)          // superclass_idx
	body.u32(0)          // interfaces_off
	body.u32(noIndex)    // source_file_idx
	body.u32(0)          // annotations_off
	body.u32(0)          // class_data_off
	body.u32(0)          // static_values_off

	strMainOff = body.off()
	body.stringData("LMain;")
	strObjOff = body.off()
	body.stringData("Ljava/lang/Object;")

	mapOff := body.off()
	type entry struct {
		typ mapItemType
		sz  uint32
		off uint32
	}
	entries := []entry{
		{typeHeaderItem, 1, 0},
		{typeStringIDItem, 2, uint32(stringIDsOff)},
		{typeTypeIDItem, 2, headerSz + typeIDsOff},
		{typeClassDefItem, 1, headerSz + classDefsOff},
		{typeStringDataItem, 2, headerSz + strMainOff},
		{typeMapList, 1, headerSz + mapOff},
	}
	body.u32(uint32(len(entries)))
	for _, e := range entries {
		body.u16(uint16(e.typ))
		body.u16(0)
		body.u32(e.sz)
		body.u32(e.off)
	}

	// Patch the string_id_item offsets now that string data placement is
	// known; string_id_item stores an absolute file offset, not one
	// relative to the start of the body this builder assembles first.
	order.PutUint32(body.b[stringIDPatch:], headerSz+strMainOff)
	order.PutUint32(body.b[stringIDPatch+4:], headerSz+strObjOff)

	fileSize := uint32(headerSz) + body.off()

	h := &buf{order: order}
	h.bytes([]byte("dex\n035\x00"))
	h.u32(0)                          // checksum, unvalidated
	h.bytes(make([]byte, 20))         // signature, unvalidated
	h.u32(fileSize)                   // file_size
	h.u32(headerSz)                   // header_size
	h.u32tag(tagValue)                // endian_tag, always probed little-endian
	h.u32(0)                          // link_size
	h.u32(0)                          // link_off
	h.u32(uint32(headerSz) + mapOff)  // map_off
	h.u32(2)                          // string_ids_size
	h.u32(uint32(stringIDsOff))       // string_ids_off
	h.u32(2)                          // type_ids_size
	h.u32(uint32(headerSz) + typeIDsOff) // type_ids_off
	h.u32(0)                          // proto_ids_size
	h.u32(0)                          // proto_ids_off
	h.u32(0)                          // field_ids_size
	h.u32(0)                          // field_ids_off
	h.u32(0)                          // method_ids_size
	h.u32(0)                          // method_ids_off
	h.u32(1)                          // class_defs_size
	h.u32(uint32(headerSz) + classDefsOff) // class_defs_off
	h.u32(body.off())                 // data_size
	h.u32(uint32(headerSz))           // data_off

	require.Equal(t, headerSz, len(h.b))

	out := append(h.b, body.b...)
	require.Equal(t, int(fileSize), len(out))
	return out
}

func TestDecodeMinimalDexFile(t *testing.T) {
	data := buildMinimalDex(t)
	df, err := Decode(data, nil)
	require.NoError(t, err)

	assert.True(t, df.LittleEndian)
	require.Len(t, df.ClassDefs, 1)

	cls := df.ClassDefs[0]
	assert.Equal(t, "LMain;", cls.Type.String())
	assert.Equal(t, "Ljava/lang/Object;", cls.Superclass.String())
	assert.True(t, cls.AccessFlags.IsPublic())
	assert.Nil(t, cls.SourceFile)
	assert.Empty(t, df.Anomalies)
}

func TestDecodeMinimalDexFileBigEndian(t *testing.T) {
	data := buildMinimalDexOrdered(t, true)
	df, err := Decode(data, nil)
	require.NoError(t, err)

	assert.False(t, df.LittleEndian)
	require.Len(t, df.ClassDefs, 1)

	cls := df.ClassDefs[0]
	assert.Equal(t, "LMain;", cls.Type.String())
	assert.Equal(t, "Ljava/lang/Object;", cls.Superclass.String())
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := buildMinimalDex(t)
	data[0] = 'X'
	_, err := Decode(data, nil)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x02}, nil)
	require.Error(t, err)
	assert.True(t, IsEndedEarly(err))
}

func TestDecodeFastSkipsClassData(t *testing.T) {
	data := buildMinimalDex(t)
	df, err := Decode(data, &Options{Fast: true})
	require.NoError(t, err)
	require.Len(t, df.ClassDefs, 1)
	assert.Nil(t, df.ClassDefs[0].ClassData)
}
