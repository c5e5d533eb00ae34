// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// resolver turns a rawDexFile's index-and-offset pools into the owned,
// shared-handle object graph a DexFile exposes. Every pool entry is
// resolved at most once; repeat references to the same index return the
// same pointer (except strings left uncached once
// Options.MaxStringCacheSize is reached), mirroring the teacher's approach of resolving the CLR
// metadata tables into a single in-memory struct graph rather than
// re-reading bytes at every reference site.
type resolver struct {
	raw *rawDexFile

	maxAnnotationDepth int
	skipCodeItems      bool
	maxStringCacheSize int
	stringCacheLen     int

	strings       []*StringData
	types         []*TypeIdentifier
	protos        []*Prototype
	fields        []*Field
	methods       []*Method
	methodHandles []*MethodHandle
	callSites     []*CallSite

	resolvingProtos  map[uint32]bool
	resolvingMH      map[uint32]bool
	resolvingCS      map[uint32]bool
}

func newResolver(raw *rawDexFile, opts *Options) *resolver {
	return &resolver{
		raw:                raw,
		maxAnnotationDepth: opts.MaxAnnotationDepth,
		skipCodeItems:      opts.SkipCodeItems,
		maxStringCacheSize: opts.MaxStringCacheSize,
		strings:            make([]*StringData, len(raw.StringIDs)),
		types:              make([]*TypeIdentifier, len(raw.TypeIDs)),
		protos:             make([]*Prototype, len(raw.ProtoIDs)),
		fields:             make([]*Field, len(raw.FieldIDs)),
		methods:            make([]*Method, len(raw.MethodIDs)),
		methodHandles:      make([]*MethodHandle, len(raw.MethodHandles)),
		callSites:          make([]*CallSite, len(raw.CallSiteIDs)),
		resolvingProtos:    make(map[uint32]bool),
		resolvingMH:        make(map[uint32]bool),
		resolvingCS:        make(map[uint32]bool),
	}
}

// cachesStrings reports whether the string memoization cache still has
// room, per Options.MaxStringCacheSize. A zero limit means unbounded.
func (rs *resolver) cachesStrings() bool {
	return rs.maxStringCacheSize == 0 || rs.stringCacheLen < rs.maxStringCacheSize
}

func (rs *resolver) resolveString(idx uint32) (*StringData, error) {
	if idx == noIndex {
		return nil, nil
	}
	if int(idx) >= len(rs.raw.StringIDs) {
		return nil, errMalformed(0, "string index %d out of range (pool has %d entries)", idx, len(rs.raw.StringIDs))
	}
	if rs.strings[idx] != nil {
		return rs.strings[idx], nil
	}
	off := rs.raw.StringIDs[idx].StringDataOff
	s, err := readStringData(rs.raw.c, off)
	if err != nil {
		return nil, err
	}
	sd := &StringData{Value: s}
	if rs.cachesStrings() {
		rs.strings[idx] = sd
		rs.stringCacheLen++
	}
	return sd, nil
}

func (rs *resolver) resolveType(idx uint32) (*TypeIdentifier, error) {
	if idx == noIndex {
		return nil, nil
	}
	if int(idx) >= len(rs.raw.TypeIDs) {
		return nil, errMalformed(0, "type index %d out of range (pool has %d entries)", idx, len(rs.raw.TypeIDs))
	}
	if rs.types[idx] != nil {
		return rs.types[idx], nil
	}
	sd, err := rs.resolveString(rs.raw.TypeIDs[idx].DescriptorIdx)
	if err != nil {
		return nil, err
	}
	t := &TypeIdentifier{Descriptor: sd}
	rs.types[idx] = t
	return t, nil
}

func (rs *resolver) resolveProto(idx uint32) (*Prototype, error) {
	if int(idx) >= len(rs.raw.ProtoIDs) {
		return nil, errMalformed(0, "proto index %d out of range (pool has %d entries)", idx, len(rs.raw.ProtoIDs))
	}
	if rs.protos[idx] != nil {
		return rs.protos[idx], nil
	}
	if rs.resolvingProtos[idx] {
		return nil, errMalformed(0, "cyclic proto reference at index %d", idx)
	}
	rs.resolvingProtos[idx] = true
	defer delete(rs.resolvingProtos, idx)

	raw := rs.raw.ProtoIDs[idx]
	shorty, err := rs.resolveString(raw.ShortyIdx)
	if err != nil {
		return nil, err
	}
	ret, err := rs.resolveType(raw.ReturnTypeIdx)
	if err != nil {
		return nil, err
	}
	items, err := readTypeList(rs.raw.c, raw.ParametersOff)
	if err != nil {
		return nil, err
	}
	var params []*TypeIdentifier
	if items != nil {
		params = make([]*TypeIdentifier, len(items))
		for i, it := range items {
			if params[i], err = rs.resolveType(uint32(it.TypeIdx)); err != nil {
				return nil, err
			}
		}
	}
	p := &Prototype{Shorty: shorty, ReturnType: ret, Parameters: params}
	rs.protos[idx] = p
	return p, nil
}

func (rs *resolver) resolveField(idx uint32) (*Field, error) {
	if int(idx) >= len(rs.raw.FieldIDs) {
		return nil, errMalformed(0, "field index %d out of range (pool has %d entries)", idx, len(rs.raw.FieldIDs))
	}
	if rs.fields[idx] != nil {
		return rs.fields[idx], nil
	}
	raw := rs.raw.FieldIDs[idx]
	class, err := rs.resolveType(uint32(raw.ClassIdx))
	if err != nil {
		return nil, err
	}
	typ, err := rs.resolveType(uint32(raw.TypeIdx))
	if err != nil {
		return nil, err
	}
	name, err := rs.resolveString(raw.NameIdx)
	if err != nil {
		return nil, err
	}
	f := &Field{Class: class, Type: typ, Name: name}
	rs.fields[idx] = f
	return f, nil
}

func (rs *resolver) resolveMethod(idx uint32) (*Method, error) {
	if int(idx) >= len(rs.raw.MethodIDs) {
		return nil, errMalformed(0, "method index %d out of range (pool has %d entries)", idx, len(rs.raw.MethodIDs))
	}
	if rs.methods[idx] != nil {
		return rs.methods[idx], nil
	}
	raw := rs.raw.MethodIDs[idx]
	class, err := rs.resolveType(uint32(raw.ClassIdx))
	if err != nil {
		return nil, err
	}
	proto, err := rs.resolveProto(uint32(raw.ProtoIdx))
	if err != nil {
		return nil, err
	}
	name, err := rs.resolveString(raw.NameIdx)
	if err != nil {
		return nil, err
	}
	m := &Method{Class: class, Proto: proto, Name: name}
	rs.methods[idx] = m
	return m, nil
}

func (rs *resolver) resolveMethodHandle(idx uint32) (*MethodHandle, error) {
	if int(idx) >= len(rs.raw.MethodHandles) {
		return nil, errMalformed(0, "method handle index %d out of range (pool has %d entries)", idx, len(rs.raw.MethodHandles))
	}
	if rs.methodHandles[idx] != nil {
		return rs.methodHandles[idx], nil
	}
	raw := rs.raw.MethodHandles[idx]
	kind := MethodHandleKind(raw.MethodHandleType)
	mh := &MethodHandle{Kind: kind}
	var err error
	if kind.isFieldKind() {
		if mh.Field, err = rs.resolveField(uint32(raw.FieldOrMethodIdx)); err != nil {
			return nil, err
		}
	} else {
		if mh.Method, err = rs.resolveMethod(uint32(raw.FieldOrMethodIdx)); err != nil {
			return nil, err
		}
	}
	rs.methodHandles[idx] = mh
	return mh, nil
}

func (rs *resolver) resolveCallSite(idx uint32) (*CallSite, error) {
	if int(idx) >= len(rs.raw.CallSiteIDs) {
		return nil, errMalformed(0, "call site index %d out of range (pool has %d entries)", idx, len(rs.raw.CallSiteIDs))
	}
	if rs.callSites[idx] != nil {
		return rs.callSites[idx], nil
	}
	off := rs.raw.CallSiteIDs[idx].CallSiteOff
	c := rs.raw.c.at(int64(off))
	rawArgs, err := parseEncodedArray(c, 0, rs.maxAnnotationDepth)
	if err != nil {
		return nil, err
	}
	args := make([]*EncodedValue, len(rawArgs))
	for i, ra := range rawArgs {
		if args[i], err = rs.resolveValue(&ra); err != nil {
			return nil, err
		}
	}
	cs := &CallSite{Arguments: args}
	rs.callSites[idx] = cs
	return cs, nil
}

// resolveValue turns a rawEncodedValue (which holds only numeric indices)
// into a fully resolved EncodedValue whose pool-referencing fields are
// pointers.
func (rs *resolver) resolveValue(rv *rawEncodedValue) (*EncodedValue, error) {
	v := &EncodedValue{Kind: rv.Kind, Int: rv.Int, Float64: rv.Float64, Bool: rv.Bool}
	var err error
	switch rv.Kind {
	case ValueString:
		v.StringRef, err = rs.resolveString(uint32(rv.Int))
	case ValueType:
		v.TypeRef, err = rs.resolveType(uint32(rv.Int))
	case ValueField, ValueEnum:
		v.FieldRef, err = rs.resolveField(uint32(rv.Int))
	case ValueMethod:
		v.MethodRef, err = rs.resolveMethod(uint32(rv.Int))
	case ValueMethodType:
		v.MethodTypeRef, err = rs.resolveProto(uint32(rv.Int))
	case ValueMethodHandle:
		v.MethodHandleRef, err = rs.resolveMethodHandle(uint32(rv.Int))
	case ValueArray:
		v.Array = make([]*EncodedValue, len(rv.Array))
		for i := range rv.Array {
			if v.Array[i], err = rs.resolveValue(&rv.Array[i]); err != nil {
				return nil, err
			}
		}
	case ValueAnnotation:
		v.Annotation, err = rs.resolveAnnotation(rv.Annotation, VisibilityBuild)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (rs *resolver) resolveAnnotation(ra *rawAnnotation, vis Visibility) (*Annotation, error) {
	typ, err := rs.resolveType(ra.TypeIdx)
	if err != nil {
		return nil, err
	}
	elems := make([]AnnotationElement, len(ra.Elements))
	for i, e := range ra.Elements {
		name, err := rs.resolveString(e.NameIdx)
		if err != nil {
			return nil, err
		}
		val, err := rs.resolveValue(&e.Value)
		if err != nil {
			return nil, err
		}
		elems[i] = AnnotationElement{Name: name, Value: val}
	}
	return &Annotation{Visibility: vis, Type: typ, Elements: elems}, nil
}
