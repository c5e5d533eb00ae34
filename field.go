// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Field is a resolved field reference: the class that declares it, its
// type, and its name.
type Field struct {
	Class *TypeIdentifier
	Type  *TypeIdentifier
	Name  *StringData
}
