// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// StringData is one resolved entry of the string pool: a decoded modified
// UTF-8 string. Every other resolved structure that needs a name or
// descriptor holds a pointer into this pool rather than a copy, so two
// class members that share a name share the same *StringData.
type StringData struct {
	Value string
}

func (s *StringData) String() string {
	if s == nil {
		return ""
	}
	return s.Value
}

// TypeIdentifier is one resolved entry of the type pool: a type
// descriptor string, shared by every field, method, or class that
// references the same type.
type TypeIdentifier struct {
	Descriptor *StringData
}

func (t *TypeIdentifier) String() string {
	if t == nil {
		return ""
	}
	return t.Descriptor.String()
}
