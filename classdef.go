// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// ClassDefinition is the resolved class_def_item: a class's identity,
// modifiers, lineage, member data, and any static initial values and
// annotations attached to it.
type ClassDefinition struct {
	Type            *TypeIdentifier
	AccessFlags     AccessFlags
	Superclass      *TypeIdentifier // nil when superclass_idx is NO_INDEX (java.lang.Object)
	Interfaces      []*TypeIdentifier
	SourceFile      *StringData // nil if not recorded
	Annotations     *AnnotationsDirectory
	ClassData       *ClassData
	StaticValues    []*EncodedValue
}

func (rs *resolver) resolveClassDefinition(raw rawClassDefItem) (*ClassDefinition, error) {
	typ, err := rs.resolveType(raw.ClassIdx)
	if err != nil {
		return nil, err
	}
	super, err := rs.resolveType(raw.SuperclassIdx)
	if err != nil {
		return nil, err
	}
	items, err := readTypeList(rs.raw.c, raw.InterfacesOff)
	if err != nil {
		return nil, err
	}
	var ifaces []*TypeIdentifier
	if items != nil {
		ifaces = make([]*TypeIdentifier, len(items))
		for i, it := range items {
			if ifaces[i], err = rs.resolveType(uint32(it.TypeIdx)); err != nil {
				return nil, err
			}
		}
	}
	sourceFile, err := rs.resolveString(raw.SourceFileIdx)
	if err != nil {
		return nil, err
	}

	var dir *AnnotationsDirectory
	if raw.AnnotationsOff != 0 {
		if dir, err = rs.parseAnnotationsDirectory(raw.AnnotationsOff); err != nil {
			return nil, err
		}
	}

	var cd *ClassData
	if raw.ClassDataOff != 0 {
		if cd, err = rs.parseClassData(raw.ClassDataOff); err != nil {
			return nil, err
		}
	}

	var statics []*EncodedValue
	if raw.StaticValuesOff != 0 {
		c := rs.raw.c.at(int64(raw.StaticValuesOff))
		rawVals, err := parseEncodedArray(c, 0, rs.maxAnnotationDepth)
		if err != nil {
			return nil, err
		}
		statics = make([]*EncodedValue, len(rawVals))
		for i := range rawVals {
			if statics[i], err = rs.resolveValue(&rawVals[i]); err != nil {
				return nil, err
			}
		}
	}

	return &ClassDefinition{
		Type: typ, AccessFlags: AccessFlags(raw.AccessFlags), Superclass: super,
		Interfaces: ifaces, SourceFile: sourceFile, Annotations: dir,
		ClassData: cd, StaticValues: statics,
	}, nil
}

// parseClassData reads a class_data_item: four uleb128 member counts
// followed by that many encoded_field / encoded_method rows, each naming
// its member only as a difference from the previous absolute index in
// that list, which the running cumulative sum below reconstructs.
func (rs *resolver) parseClassData(off uint32) (*ClassData, error) {
	c := rs.raw.c.at(int64(off))

	staticFieldsSize, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	instanceFieldsSize, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	directMethodsSize, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	virtualMethodsSize, err := c.readULEB128()
	if err != nil {
		return nil, err
	}

	staticFields, err := rs.readEncodedFields(c, staticFieldsSize)
	if err != nil {
		return nil, err
	}
	instanceFields, err := rs.readEncodedFields(c, instanceFieldsSize)
	if err != nil {
		return nil, err
	}
	directMethods, err := rs.readEncodedMethods(c, directMethodsSize)
	if err != nil {
		return nil, err
	}
	virtualMethods, err := rs.readEncodedMethods(c, virtualMethodsSize)
	if err != nil {
		return nil, err
	}

	return &ClassData{
		StaticFields: staticFields, InstanceFields: instanceFields,
		DirectMethods: directMethods, VirtualMethods: virtualMethods,
	}, nil
}

func (rs *resolver) readEncodedFields(c *cursor, count uint32) ([]*EncodedField, error) {
	out := make([]*EncodedField, 0, count)
	var runningIdx uint64
	var prevIdx int64 = -1
	for i := uint32(0); i < count; i++ {
		diff, err := c.readULEB128()
		if err != nil {
			return nil, err
		}
		runningIdx += uint64(diff)
		flags, err := c.readULEB128()
		if err != nil {
			return nil, err
		}
		if int64(runningIdx) <= prevIdx {
			return nil, errMalformed(c.tell(), "encoded_field indices must strictly increase: got %d after %d", runningIdx, prevIdx)
		}
		prevIdx = int64(runningIdx)
		field, err := rs.resolveField(uint32(runningIdx))
		if err != nil {
			return nil, err
		}
		out = append(out, &EncodedField{Field: field, AccessFlags: AccessFlags(flags)})
	}
	return out, nil
}

func (rs *resolver) readEncodedMethods(c *cursor, count uint32) ([]*EncodedMethod, error) {
	out := make([]*EncodedMethod, 0, count)
	var runningIdx uint64
	var prevIdx int64 = -1
	for i := uint32(0); i < count; i++ {
		diff, err := c.readULEB128()
		if err != nil {
			return nil, err
		}
		runningIdx += uint64(diff)
		flags, err := c.readULEB128()
		if err != nil {
			return nil, err
		}
		codeOff, err := c.readULEB128()
		if err != nil {
			return nil, err
		}
		if int64(runningIdx) <= prevIdx {
			return nil, errMalformed(c.tell(), "encoded_method indices must strictly increase: got %d after %d", runningIdx, prevIdx)
		}
		prevIdx = int64(runningIdx)
		method, err := rs.resolveMethod(uint32(runningIdx))
		if err != nil {
			return nil, err
		}
		var code *Code
		if codeOff != 0 && !rs.skipCodeItems {
			if code, err = rs.parseCode(codeOff); err != nil {
				return nil, err
			}
		}
		out = append(out, &EncodedMethod{Method: method, AccessFlags: AccessFlags(flags), Code: code})
	}
	return out, nil
}
