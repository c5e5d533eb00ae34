// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// readStringData reads one string_data_item at off: a uleb128 utf16_size
// (the number of UTF-16 code units, not bytes) followed by a modified
// UTF-8 byte sequence terminated by a single NUL byte.
func readStringData(c *cursor, off uint32) (string, error) {
	sc := c.at(int64(off))
	utf16Size, err := sc.readULEB128()
	if err != nil {
		return "", err
	}

	start := sc.tell()
	for {
		b, err := sc.peekBytes(1)
		if err != nil {
			return "", err
		}
		if b[0] == 0x00 {
			break
		}
		n := mutf8SequenceLen(b[0])
		if n == 0 {
			return "", errEncoding(sc.tell(), "invalid modified-UTF-8 lead byte 0x%02x", b[0])
		}
		if _, err := sc.readBytes(int64(n)); err != nil {
			return "", err
		}
	}
	raw := c.buf[start:sc.tell()]
	// consume the terminating NUL
	if _, err := sc.readBytes(1); err != nil {
		return "", err
	}

	s, count, err := decodeMUTF8(raw)
	if err != nil {
		return "", err
	}
	if count != int(utf16Size) {
		return "", errMalformed(start, "string_data_item declares utf16_size %d but decodes to %d UTF-16 code units", utf16Size, count)
	}
	return s, nil
}

// mutf8SequenceLen returns the number of bytes (including lead) in the
// modified-UTF-8 sequence starting with lead, or 0 if lead cannot start a
// valid sequence.
func mutf8SequenceLen(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xe0 == 0xc0:
		return 2
	case lead&0xf0 == 0xe0:
		return 3
	default:
		return 0
	}
}

// decodeMUTF8 decodes a modified-UTF-8 byte string (as used in dex
// string_data_item payloads) into a Go string, and reports the number of
// UTF-16 code units the source would occupy. Modified UTF-8 differs from
// standard UTF-8 in two ways: U+0000 is encoded as the two-byte sequence
// C0 80 instead of a single zero byte, and characters outside the basic
// multilingual plane are encoded as a surrogate pair of two three-byte
// sequences (CESU-8 style) rather than one four-byte sequence.
func decodeMUTF8(b []byte) (string, int, error) {
	var out []rune
	utf16Count := 0
	i := 0
	for i < len(b) {
		lead := b[i]
		switch {
		case lead&0x80 == 0x00:
			out = append(out, rune(lead))
			utf16Count++
			i++
		case lead&0xe0 == 0xc0:
			if i+1 >= len(b) || b[i+1]&0xc0 != 0x80 {
				return "", 0, errEncoding(int64(i), "truncated 2-byte modified-UTF-8 sequence")
			}
			r := (rune(lead&0x1f) << 6) | rune(b[i+1]&0x3f)
			out = append(out, r)
			utf16Count++
			i += 2
		case lead&0xf0 == 0xe0:
			if i+2 >= len(b) || b[i+1]&0xc0 != 0x80 || b[i+2]&0xc0 != 0x80 {
				return "", 0, errEncoding(int64(i), "truncated 3-byte modified-UTF-8 sequence")
			}
			r := (rune(lead&0x0f) << 12) | (rune(b[i+1]&0x3f) << 6) | rune(b[i+2]&0x3f)
			i += 3
			if r >= 0xd800 && r <= 0xdbff && i+2 < len(b) {
				// Possible high surrogate: look for a following low
				// surrogate encoded the same three-byte way and combine
				// them via a UTF-16 decode rather than hand-rolling the
				// surrogate arithmetic.
				lead2 := b[i]
				if lead2&0xf0 == 0xe0 && i+2 < len(b) && b[i+1]&0xc0 == 0x80 && b[i+2]&0xc0 == 0x80 {
					low := (rune(lead2&0x0f) << 12) | (rune(b[i+1]&0x3f) << 6) | rune(b[i+2]&0x3f)
					if low >= 0xdc00 && low <= 0xdfff {
						combined, err := decodeSurrogatePair(uint16(r), uint16(low))
						if err != nil {
							return "", 0, errEncoding(int64(i), "invalid surrogate pair: %v", err)
						}
						out = append(out, combined)
						utf16Count += 2
						i += 3
						continue
					}
				}
			}
			out = append(out, r)
			utf16Count++
		default:
			return "", 0, errEncoding(int64(i), "invalid modified-UTF-8 lead byte 0x%02x", lead)
		}
	}
	return string(out), utf16Count, nil
}

// decodeSurrogatePair combines a UTF-16 high/low surrogate pair into a
// single supplementary-plane rune, the same way the teacher's own
// DecodeUTF16String leans on golang.org/x/text/encoding/unicode rather
// than hand-rolling the 0x10000 + ... arithmetic.
func decodeSurrogatePair(high, low uint16) (rune, error) {
	var units [4]byte
	binary.LittleEndian.PutUint16(units[0:2], high)
	binary.LittleEndian.PutUint16(units[2:4], low)

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(units[:])
	if err != nil {
		return 0, err
	}
	r := []rune(string(decoded))
	if len(r) != 1 {
		return 0, errEncoding(0, "surrogate pair decoded to %d runes, want 1", len(r))
	}
	return r[0], nil
}
