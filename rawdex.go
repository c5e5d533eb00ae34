// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// rawStringIDItem is an offset into the data section where a
// string_data_item (a uleb128 length followed by MUTF-8 bytes) lives.
type rawStringIDItem struct {
	StringDataOff uint32
}

// rawTypeIDItem indexes the string pool for a type descriptor.
type rawTypeIDItem struct {
	DescriptorIdx uint32
}

// rawProtoIDItem describes a method prototype: a shorty string index, a
// return type index, and an offset to a type_list of parameter types (0 if
// there are none).
type rawProtoIDItem struct {
	ShortyIdx     uint32
	ReturnTypeIdx uint32
	ParametersOff uint32
}

// rawFieldIDItem names a field by declaring class, type, and name.
type rawFieldIDItem struct {
	ClassIdx uint16
	TypeIdx  uint16
	NameIdx  uint32
}

// rawMethodIDItem names a method by declaring class, prototype, and name.
type rawMethodIDItem struct {
	ClassIdx uint16
	ProtoIdx uint16
	NameIdx  uint32
}

// rawClassDefItem is one class definition: identity, modifiers, and
// offsets to its interfaces, class data, and static initial values.
type rawClassDefItem struct {
	ClassIdx        uint32
	AccessFlags     uint32
	SuperclassIdx   uint32
	InterfacesOff   uint32
	SourceFileIdx   uint32
	AnnotationsOff  uint32
	ClassDataOff    uint32
	StaticValuesOff uint32
}

// rawCallSiteIDItem points at an encoded_array_item describing a call
// site's bootstrap arguments.
type rawCallSiteIDItem struct {
	CallSiteOff uint32
}

// rawMethodHandleItem names the kind of a method handle and the field or
// method it refers to.
type rawMethodHandleItem struct {
	MethodHandleType uint16
	FieldOrMethodIdx uint16
}

// rawTypeItem is one entry of a type_list: a single type index, widened
// in-file to 16 bits.
type rawTypeItem struct {
	TypeIdx uint16
}

// rawDexFile holds every pool at the raw, index-and-offset level: nothing
// has been cross-referenced or resolved into an object graph yet. This is
// the direct output of the L2 parser and the sole input to the L4
// resolver.
type rawDexFile struct {
	buf    []byte
	c      *cursor
	Header *rawHeader
	Map    []mapItem

	StringIDs []rawStringIDItem
	TypeIDs   []rawTypeIDItem
	ProtoIDs  []rawProtoIDItem
	FieldIDs  []rawFieldIDItem
	MethodIDs []rawMethodIDItem
	ClassDefs []rawClassDefItem

	CallSiteIDs    []rawCallSiteIDItem
	MethodHandles  []rawMethodHandleItem
}

// parseRawDexFile runs the full L2 pass: header, the six fixed-size index
// pools, the map list, and the two version-gated pools whose sizes are
// only discoverable by scanning the map list.
func parseRawDexFile(buf []byte) (*rawDexFile, error) {
	h, c, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	items, err := parseMapList(c, h.MapOff)
	if err != nil {
		return nil, err
	}

	r := &rawDexFile{buf: buf, c: c, Header: h, Map: items}

	if r.StringIDs, err = readStringIDs(c, h); err != nil {
		return nil, err
	}
	if r.TypeIDs, err = readTypeIDs(c, h); err != nil {
		return nil, err
	}
	if r.ProtoIDs, err = readProtoIDs(c, h); err != nil {
		return nil, err
	}
	if r.FieldIDs, err = readFieldIDs(c, h); err != nil {
		return nil, err
	}
	if r.MethodIDs, err = readMethodIDs(c, h); err != nil {
		return nil, err
	}
	if r.ClassDefs, err = readClassDefs(c, h); err != nil {
		return nil, err
	}

	if item, ok := findMapItem(items, typeCallSiteIDItem); ok {
		if r.CallSiteIDs, err = readCallSiteIDs(c, item); err != nil {
			return nil, err
		}
	}
	if item, ok := findMapItem(items, typeMethodHandleItem); ok {
		if r.MethodHandles, err = readMethodHandles(c, item); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func readStringIDs(c *cursor, h *rawHeader) ([]rawStringIDItem, error) {
	pc := c.at(int64(h.StringIDsOff))
	out := make([]rawStringIDItem, h.StringIDsSize)
	for i := range out {
		v, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = rawStringIDItem{StringDataOff: v}
	}
	return out, nil
}

func readTypeIDs(c *cursor, h *rawHeader) ([]rawTypeIDItem, error) {
	pc := c.at(int64(h.TypeIDsOff))
	out := make([]rawTypeIDItem, h.TypeIDsSize)
	for i := range out {
		v, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = rawTypeIDItem{DescriptorIdx: v}
	}
	return out, nil
}

func readProtoIDs(c *cursor, h *rawHeader) ([]rawProtoIDItem, error) {
	pc := c.at(int64(h.ProtoIDsOff))
	out := make([]rawProtoIDItem, h.ProtoIDsSize)
	for i := range out {
		shorty, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		ret, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		params, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = rawProtoIDItem{ShortyIdx: shorty, ReturnTypeIdx: ret, ParametersOff: params}
	}
	return out, nil
}

func readFieldIDs(c *cursor, h *rawHeader) ([]rawFieldIDItem, error) {
	pc := c.at(int64(h.FieldIDsOff))
	out := make([]rawFieldIDItem, h.FieldIDsSize)
	for i := range out {
		classIdx, err := pc.readU16()
		if err != nil {
			return nil, err
		}
		typeIdx, err := pc.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = rawFieldIDItem{ClassIdx: classIdx, TypeIdx: typeIdx, NameIdx: nameIdx}
	}
	return out, nil
}

func readMethodIDs(c *cursor, h *rawHeader) ([]rawMethodIDItem, error) {
	pc := c.at(int64(h.MethodIDsOff))
	out := make([]rawMethodIDItem, h.MethodIDsSize)
	for i := range out {
		classIdx, err := pc.readU16()
		if err != nil {
			return nil, err
		}
		protoIdx, err := pc.readU16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = rawMethodIDItem{ClassIdx: classIdx, ProtoIdx: protoIdx, NameIdx: nameIdx}
	}
	return out, nil
}

func readClassDefs(c *cursor, h *rawHeader) ([]rawClassDefItem, error) {
	pc := c.at(int64(h.ClassDefsOff))
	out := make([]rawClassDefItem, h.ClassDefsSize)
	for i := range out {
		fields := make([]uint32, 8)
		for j := range fields {
			v, err := pc.readU32()
			if err != nil {
				return nil, err
			}
			fields[j] = v
		}
		out[i] = rawClassDefItem{
			ClassIdx:        fields[0],
			AccessFlags:     fields[1],
			SuperclassIdx:   fields[2],
			InterfacesOff:   fields[3],
			SourceFileIdx:   fields[4],
			AnnotationsOff:  fields[5],
			ClassDataOff:    fields[6],
			StaticValuesOff: fields[7],
		}
	}
	return out, nil
}

func readCallSiteIDs(c *cursor, item mapItem) ([]rawCallSiteIDItem, error) {
	pc := c.at(int64(item.Offset))
	out := make([]rawCallSiteIDItem, item.Size)
	for i := range out {
		v, err := pc.readU32()
		if err != nil {
			return nil, err
		}
		out[i] = rawCallSiteIDItem{CallSiteOff: v}
	}
	return out, nil
}

func readMethodHandles(c *cursor, item mapItem) ([]rawMethodHandleItem, error) {
	pc := c.at(int64(item.Offset))
	out := make([]rawMethodHandleItem, item.Size)
	for i := range out {
		kind, err := pc.readU16()
		if err != nil {
			return nil, err
		}
		if _, err := pc.readU16(); err != nil { // unused
			return nil, err
		}
		idx, err := pc.readU16()
		if err != nil {
			return nil, err
		}
		if _, err := pc.readU16(); err != nil { // unused
			return nil, err
		}
		out[i] = rawMethodHandleItem{MethodHandleType: kind, FieldOrMethodIdx: idx}
	}
	return out, nil
}

// readTypeList reads a type_list at off: a u32 count followed by that many
// u16 type indices, or nil if off is 0 (the "absent" sentinel for
// parameter/interface lists).
func readTypeList(c *cursor, off uint32) ([]rawTypeItem, error) {
	if off == 0 {
		return nil, nil
	}
	pc := c.at(int64(off))
	size, err := pc.readU32()
	if err != nil {
		return nil, err
	}
	out := make([]rawTypeItem, size)
	for i := range out {
		v, err := pc.readU16()
		if err != nil {
			return nil, err
		}
		out[i] = rawTypeItem{TypeIdx: v}
	}
	return out, nil
}
