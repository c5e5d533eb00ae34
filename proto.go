// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Prototype is a resolved method signature: an abbreviated "shorty"
// descriptor, a return type, and an ordered parameter type list.
type Prototype struct {
	Shorty     *StringData
	ReturnType *TypeIdentifier
	Parameters []*TypeIdentifier
}
