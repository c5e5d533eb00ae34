// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Method is a resolved method reference: the class that declares it, its
// prototype, and its name.
type Method struct {
	Class *TypeIdentifier
	Proto *Prototype
	Name  *StringData
}

// MethodHandleKind says what a method handle invokes or accesses. The
// numeric values match the method_handle_type field of a
// method_handle_item.
type MethodHandleKind uint16

const (
	MethodHandleStaticPut       MethodHandleKind = 0x00
	MethodHandleStaticGet       MethodHandleKind = 0x01
	MethodHandleInstancePut     MethodHandleKind = 0x02
	MethodHandleInstanceGet     MethodHandleKind = 0x03
	MethodHandleInvokeStatic    MethodHandleKind = 0x04
	MethodHandleInvokeInstance  MethodHandleKind = 0x05
	MethodHandleInvokeConstructor MethodHandleKind = 0x06
	MethodHandleInvokeDirect    MethodHandleKind = 0x07
	MethodHandleInvokeInterface MethodHandleKind = 0x08
)

func (k MethodHandleKind) isFieldKind() bool {
	switch k {
	case MethodHandleStaticPut, MethodHandleStaticGet, MethodHandleInstancePut, MethodHandleInstanceGet:
		return true
	default:
		return false
	}
}

// MethodHandle is a resolved method_handle_item: a kind plus the single
// field or method it refers to, never both. This is a fuller structural
// resolution than a flat index; the format ties a specific kind to
// either a field accessor or a method invocation, never to an unresolved
// bare index.
type MethodHandle struct {
	Kind   MethodHandleKind
	Field  *Field  // set when Kind.isFieldKind()
	Method *Method // set otherwise
}

// CallSite is a resolved call_site_id_item: the bootstrap arguments
// recorded as an encoded_array, already resolved to EncodedValue.
type CallSite struct {
	Arguments []*EncodedValue
}
