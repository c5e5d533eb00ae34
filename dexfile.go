// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"encoding/binary"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	dlog "github.com/go-dex/dexparser/log"
)

// DexFile is a fully resolved dex file: every pool turned into its own
// owned slice of shared-handle structs, cross-referenced by pointer
// rather than by raw index.
type DexFile struct {
	Checksum    uint32
	Signature   [20]byte
	LittleEndian bool

	Strings       []*StringData
	Types         []*TypeIdentifier
	Protos        []*Prototype
	Fields        []*Field
	Methods       []*Method
	MethodHandles []*MethodHandle
	CallSites     []*CallSite
	ClassDefs     []*ClassDefinition

	// Anomalies holds non-fatal diagnostics. Parse does not append to it,
	// so it is empty after a successful Parse. Resolution errors are never
	// recorded here: a class_def_item that fails to resolve fails the
	// whole Parse call instead.
	Anomalies []string

	raw    *rawDexFile
	data   []byte
	mm     mmap.MMap
	f      *os.File
	opts   *Options
	logger *dlog.Helper
}

// Open memory-maps the file at name and parses it.
func Open(name string, opts *Options) (*DexFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("dex: %s is empty", name)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	opts = opts.orDefault()
	df := &DexFile{
		data:   m,
		mm:     m,
		f:      f,
		opts:   opts,
		logger: dlog.NewHelper(opts.Logger),
	}
	if err := df.Parse(); err != nil {
		df.Close()
		return nil, err
	}
	return df, nil
}

// Decode parses an in-memory dex file. The returned DexFile does not
// retain data after Parse completes beyond what it has already copied
// out (strings, structs); callers may discard or reuse the buffer
// afterward.
func Decode(data []byte, opts *Options) (*DexFile, error) {
	opts = opts.orDefault()
	df := &DexFile{
		data:   data,
		opts:   opts,
		logger: dlog.NewHelper(opts.Logger),
	}
	if err := df.Parse(); err != nil {
		return nil, err
	}
	df.data = nil
	df.raw = nil
	return df, nil
}

// Close unmaps and closes the underlying file, if Open was used to create
// this DexFile. It is a no-op for a DexFile created with Decode.
func (d *DexFile) Close() error {
	if d.mm != nil {
		if err := d.mm.Unmap(); err != nil {
			return err
		}
		d.mm = nil
	}
	if d.f != nil {
		return d.f.Close()
	}
	return nil
}

// Parse runs the full decode pipeline: raw header and pools, then every
// pool resolved into the owned object graph.
func (d *DexFile) Parse() error {
	raw, err := parseRawDexFile(d.data)
	if err != nil {
		return err
	}
	d.raw = raw
	d.Checksum = raw.Header.Checksum
	copy(d.Signature[:], raw.Header.Signature[:])
	d.LittleEndian = raw.c.order == binary.LittleEndian

	rs := newResolver(raw, d.opts)

	d.Strings = make([]*StringData, len(raw.StringIDs))
	for i := range raw.StringIDs {
		s, err := rs.resolveString(uint32(i))
		if err != nil {
			return err
		}
		d.Strings[i] = s
	}

	d.Types = make([]*TypeIdentifier, len(raw.TypeIDs))
	for i := range raw.TypeIDs {
		t, err := rs.resolveType(uint32(i))
		if err != nil {
			return err
		}
		d.Types[i] = t
	}

	d.Protos = make([]*Prototype, len(raw.ProtoIDs))
	for i := range raw.ProtoIDs {
		p, err := rs.resolveProto(uint32(i))
		if err != nil {
			return err
		}
		d.Protos[i] = p
	}

	d.Fields = make([]*Field, len(raw.FieldIDs))
	for i := range raw.FieldIDs {
		f, err := rs.resolveField(uint32(i))
		if err != nil {
			return err
		}
		d.Fields[i] = f
	}

	d.Methods = make([]*Method, len(raw.MethodIDs))
	for i := range raw.MethodIDs {
		m, err := rs.resolveMethod(uint32(i))
		if err != nil {
			return err
		}
		d.Methods[i] = m
	}

	d.MethodHandles = make([]*MethodHandle, len(raw.MethodHandles))
	for i := range raw.MethodHandles {
		mh, err := rs.resolveMethodHandle(uint32(i))
		if err != nil {
			return err
		}
		d.MethodHandles[i] = mh
	}

	d.CallSites = make([]*CallSite, len(raw.CallSiteIDs))
	for i := range raw.CallSiteIDs {
		cs, err := rs.resolveCallSite(uint32(i))
		if err != nil {
			return err
		}
		d.CallSites[i] = cs
	}

	d.ClassDefs = make([]*ClassDefinition, 0, len(raw.ClassDefs))
	for i, rc := range raw.ClassDefs {
		if d.opts.Fast {
			stub := rc
			stub.AnnotationsOff = 0
			stub.ClassDataOff = 0
			stub.StaticValuesOff = 0
			cd, err := rs.resolveClassDefinition(stub)
			if err != nil {
				return err
			}
			d.ClassDefs = append(d.ClassDefs, cd)
			continue
		}
		cd, err := d.parseOneClass(rs, i, rc)
		if err != nil {
			return err
		}
		d.ClassDefs = append(d.ClassDefs, cd)
	}

	return nil
}

// parseOneClass resolves a single class_def_item, recovering from a panic
// in the resolver and re-raising it as a typed error rather than letting
// it escape as a bare panic. A malformed class still fails the whole
// parse: no partial DexFile is ever returned, so this only turns a panic
// into an error with the same severity a plain resolveClassDefinition
// error already has.
func (d *DexFile) parseOneClass(rs *resolver, index int, rc rawClassDefItem) (cd *ClassDefinition, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errMalformed(0, "class_def_item[%d]: recovered from panic: %v", index, r)
			d.logger.Errorf("class_def_item[%d]: recovered from panic: %v", index, r)
			cd = nil
		}
	}()

	cd, err = rs.resolveClassDefinition(rc)
	if err != nil {
		d.logger.Errorf("class_def_item[%d]: %v", index, err)
		return nil, fmt.Errorf("class_def_item[%d]: %w", index, err)
	}
	return cd, nil
}
