// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "math"

// ValueKind discriminates the eighteen encoded_value variants. The low 5
// bits of a value's leading tag byte select one of these; the high 3 bits
// (value_arg) then carry either a byte count minus one or, for the two
// variants that need no payload bytes, the value itself.
type ValueKind uint8

const (
	ValueByte         ValueKind = 0x00
	ValueShort        ValueKind = 0x02
	ValueChar         ValueKind = 0x03
	ValueInt          ValueKind = 0x04
	ValueLong         ValueKind = 0x06
	ValueFloat        ValueKind = 0x10
	ValueDouble       ValueKind = 0x11
	ValueMethodType   ValueKind = 0x15
	ValueMethodHandle ValueKind = 0x16
	ValueString       ValueKind = 0x17
	ValueType         ValueKind = 0x18
	ValueField        ValueKind = 0x19
	ValueMethod       ValueKind = 0x1a
	ValueEnum         ValueKind = 0x1b
	ValueArray        ValueKind = 0x1c
	ValueAnnotation   ValueKind = 0x1d
	ValueNull         ValueKind = 0x1e
	ValueBoolean      ValueKind = 0x1f
)

// rawEncodedValue is the L3-level decode of one encoded_value: a
// discriminant plus whichever payload field the kind populates. Indices
// (string/type/field/method/methodType/methodHandle/enum) are left
// unresolved here; the L4 resolver turns them into pointers into the
// owned object graph.
type rawEncodedValue struct {
	Kind       ValueKind
	Int        int64   // byte/short/char/int/long, or an index for the pool-referencing kinds
	Float64    float64 // float (widened) or double
	Bool       bool
	Array      []rawEncodedValue
	Annotation *rawAnnotation
}

// rawAnnotationElement is one name/value pair inside an encoded_annotation.
type rawAnnotationElement struct {
	NameIdx uint32
	Value   rawEncodedValue
}

// rawAnnotation is an encoded_annotation: a type index plus an ordered
// list of name/value elements.
type rawAnnotation struct {
	TypeIdx  uint32
	Elements []rawAnnotationElement
}

// parseEncodedValue reads one tagged encoded_value from c. depth guards
// against unbounded recursion through VALUE_ARRAY / VALUE_ANNOTATION,
// which can nest arbitrarily in a crafted file; maxDepth is the caller's
// configured ceiling (see Options.MaxAnnotationDepth).
func parseEncodedValue(c *cursor, depth, maxDepth int) (rawEncodedValue, error) {
	if depth > maxDepth {
		return rawEncodedValue{}, errMalformed(c.tell(), "encoded_value nesting exceeds %d levels", maxDepth)
	}

	tag, err := c.readU8()
	if err != nil {
		return rawEncodedValue{}, err
	}
	kind := ValueKind(tag & 0x1f)
	valueArg := int((tag >> 5) & 0x07)

	switch kind {
	case ValueByte:
		if valueArg != 0 {
			return rawEncodedValue{}, errMalformed(c.tell(), "VALUE_BYTE requires value_arg 0, got %d", valueArg)
		}
		b, err := c.readU8()
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Int: int64(int8(b))}, nil

	case ValueShort:
		v, err := readSignedSized(c, valueArg+1)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Int: v}, nil

	case ValueChar:
		v, err := readUnsignedSized(c, valueArg+1)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Int: int64(v)}, nil

	case ValueInt:
		v, err := readSignedSized(c, valueArg+1)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Int: v}, nil

	case ValueLong:
		v, err := readSignedSized(c, valueArg+1)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Int: v}, nil

	case ValueFloat:
		// The bytes present are the low-order bytes of the 4-byte IEEE-754
		// representation; any omitted high-order bytes are zero.
		raw, err := readUnsignedSized(c, valueArg+1)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Float64: float64(math.Float32frombits(uint32(raw)))}, nil

	case ValueDouble:
		// Same right-zero-extension, into the 8-byte double representation.
		raw, err := readUnsignedSized(c, valueArg+1)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Float64: math.Float64frombits(raw)}, nil

	case ValueMethodType, ValueMethodHandle, ValueString, ValueType, ValueField, ValueMethod, ValueEnum:
		v, err := readUnsignedSized(c, valueArg+1)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Int: int64(v)}, nil

	case ValueArray:
		if valueArg != 0 {
			return rawEncodedValue{}, errMalformed(c.tell(), "VALUE_ARRAY requires value_arg 0, got %d", valueArg)
		}
		arr, err := parseEncodedArray(c, depth+1, maxDepth)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Array: arr}, nil

	case ValueAnnotation:
		if valueArg != 0 {
			return rawEncodedValue{}, errMalformed(c.tell(), "VALUE_ANNOTATION requires value_arg 0, got %d", valueArg)
		}
		ann, err := parseEncodedAnnotation(c, depth+1, maxDepth)
		if err != nil {
			return rawEncodedValue{}, err
		}
		return rawEncodedValue{Kind: kind, Annotation: ann}, nil

	case ValueNull:
		if valueArg != 0 {
			return rawEncodedValue{}, errMalformed(c.tell(), "VALUE_NULL requires value_arg 0, got %d", valueArg)
		}
		return rawEncodedValue{Kind: kind}, nil

	case ValueBoolean:
		return rawEncodedValue{Kind: kind, Bool: valueArg != 0}, nil

	default:
		return rawEncodedValue{}, errMalformed(c.tell()-1, "unrecognized encoded_value tag 0x%02x", tag)
	}
}

// parseEncodedArray reads an encoded_array: a uleb128 element count
// followed by that many encoded_values.
func parseEncodedArray(c *cursor, depth, maxDepth int) ([]rawEncodedValue, error) {
	size, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	out := make([]rawEncodedValue, 0, size)
	for i := uint32(0); i < size; i++ {
		v, err := parseEncodedValue(c, depth, maxDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseEncodedAnnotation reads an encoded_annotation: a uleb128 type
// index, a uleb128 element count, and that many name-index/value pairs.
func parseEncodedAnnotation(c *cursor, depth, maxDepth int) (*rawAnnotation, error) {
	typeIdx, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	size, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	elems := make([]rawAnnotationElement, 0, size)
	for i := uint32(0); i < size; i++ {
		nameIdx, err := c.readULEB128()
		if err != nil {
			return nil, err
		}
		v, err := parseEncodedValue(c, depth, maxDepth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, rawAnnotationElement{NameIdx: nameIdx, Value: v})
	}
	return &rawAnnotation{TypeIdx: typeIdx, Elements: elems}, nil
}

// readUnsignedSized reads n little-endian bytes (1 <= n <= 8) and
// zero-extends them into a uint64.
func readUnsignedSized(c *cursor, n int) (uint64, error) {
	b, err := c.readBytes(int64(n))
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// readSignedSized reads n little-endian bytes (1 <= n <= 8) and
// sign-extends them from the sign bit of the most significant byte read.
func readSignedSized(c *cursor, n int) (int64, error) {
	b, err := c.readBytes(int64(n))
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	if n < 8 && b[n-1]&0x80 != 0 {
		v |= ^uint64(0) << uint(8*n)
	}
	return int64(v), nil
}

