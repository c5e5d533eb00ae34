// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// EncodedField is a resolved encoded_field: a field reference plus its
// access flags. The owning class_data_item stores only an index delta
// from the previous entry; the resolver reconstructs the absolute index
// by running a cumulative sum before looking the field up.
type EncodedField struct {
	Field       *Field
	AccessFlags AccessFlags
}

// EncodedMethod is a resolved encoded_method: a method reference, its
// access flags, and its code (nil for abstract or native methods, which
// carry no code_item).
type EncodedMethod struct {
	Method      *Method
	AccessFlags AccessFlags
	Code        *Code
}

// ClassData is a resolved class_data_item: the four member lists a class
// declares, each already in ascending-index order as the differential
// encoding guarantees.
type ClassData struct {
	StaticFields   []*EncodedField
	InstanceFields []*EncodedField
	DirectMethods  []*EncodedMethod
	VirtualMethods []*EncodedMethod
}
