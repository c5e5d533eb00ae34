// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// EncodedValue is the resolved form of a rawEncodedValue: any index into
// a pool has been turned into a pointer at the pool entry itself, so
// callers never see a bare uint32 they'd have to look up themselves.
type EncodedValue struct {
	Kind ValueKind

	Int     int64
	Float64 float64
	Bool    bool

	StringRef       *StringData
	TypeRef         *TypeIdentifier
	FieldRef        *Field
	MethodRef       *Method
	MethodTypeRef   *Prototype
	MethodHandleRef *MethodHandle

	Array      []*EncodedValue
	Annotation *Annotation
}
