// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// mapItemType enumerates the type codes used in the file's map list, one
// entry per distinct structure kind present in the data section (plus the
// header and the index pools that precede it).
type mapItemType uint16

const (
	typeHeaderItem               mapItemType = 0x0000
	typeStringIDItem              mapItemType = 0x0001
	typeTypeIDItem                 mapItemType = 0x0002
	typeProtoIDItem                mapItemType = 0x0003
	typeFieldIDItem                mapItemType = 0x0004
	typeMethodIDItem               mapItemType = 0x0005
	typeClassDefItem               mapItemType = 0x0006
	typeCallSiteIDItem             mapItemType = 0x0007
	typeMethodHandleItem           mapItemType = 0x0008
	typeMapList                    mapItemType = 0x1000
	typeTypeList                   mapItemType = 0x1001
	typeAnnotationSetRefList       mapItemType = 0x1002
	typeAnnotationSetItem          mapItemType = 0x1003
	typeClassDataItem              mapItemType = 0x2000
	typeCodeItem                   mapItemType = 0x2001
	typeStringDataItem             mapItemType = 0x2002
	typeDebugInfoItem              mapItemType = 0x2003
	typeAnnotationItem             mapItemType = 0x2004
	typeEncodedArrayItem           mapItemType = 0x2005
	typeAnnotationsDirectoryItem   mapItemType = 0x2006
)

func (t mapItemType) String() string {
	switch t {
	case typeHeaderItem:
		return "header_item"
	case typeStringIDItem:
		return "string_id_item"
	case typeTypeIDItem:
		return "type_id_item"
	case typeProtoIDItem:
		return "proto_id_item"
	case typeFieldIDItem:
		return "field_id_item"
	case typeMethodIDItem:
		return "method_id_item"
	case typeClassDefItem:
		return "class_def_item"
	case typeCallSiteIDItem:
		return "call_site_id_item"
	case typeMethodHandleItem:
		return "method_handle_item"
	case typeMapList:
		return "map_list"
	case typeTypeList:
		return "type_list"
	case typeAnnotationSetRefList:
		return "annotation_set_ref_list"
	case typeAnnotationSetItem:
		return "annotation_set_item"
	case typeClassDataItem:
		return "class_data_item"
	case typeCodeItem:
		return "code_item"
	case typeStringDataItem:
		return "string_data_item"
	case typeDebugInfoItem:
		return "debug_info_item"
	case typeAnnotationItem:
		return "annotation_item"
	case typeEncodedArrayItem:
		return "encoded_array_item"
	case typeAnnotationsDirectoryItem:
		return "annotations_directory_item"
	default:
		return "unknown_item"
	}
}

// mapItem is one entry of the map list: a type tag plus the count and
// file offset of a contiguous run of items of that type.
type mapItem struct {
	Type   mapItemType
	Size   uint32
	Offset uint32
}

// parseMapList reads the map list at the header's map_off. Its size is
// self-describing (a leading u32 item count) so, unlike the other pools,
// it is not bounded by anything in the fixed header.
func parseMapList(c *cursor, mapOff uint32) ([]mapItem, error) {
	mc := c.at(int64(mapOff))
	size, err := mc.readU32()
	if err != nil {
		return nil, err
	}
	items := make([]mapItem, 0, size)
	for i := uint32(0); i < size; i++ {
		typeTag, err := mc.readU16()
		if err != nil {
			return nil, err
		}
		if _, err := mc.readU16(); err != nil { // unused, padding
			return nil, err
		}
		itemSize, err := mc.readU32()
		if err != nil {
			return nil, err
		}
		itemOff, err := mc.readU32()
		if err != nil {
			return nil, err
		}
		items = append(items, mapItem{Type: mapItemType(typeTag), Size: itemSize, Offset: itemOff})
	}
	return items, nil
}

// findMapItem returns the first map-list entry of the given type, and
// false if none is present. Used to discover the size of the
// version-gated call-site and method-handle pools, which the fixed header
// does not describe.
func findMapItem(items []mapItem, t mapItemType) (mapItem, bool) {
	for _, it := range items {
		if it.Type == t {
			return it, true
		}
	}
	return mapItem{}, false
}
