// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// AccessFlags is the raw access_flags bitmask carried by a class, field,
// or method definition. A handful of bit positions mean different things
// depending on which of the three it decorates; Strings takes an
// AccessFlagContext so callers get the right label.
type AccessFlags uint32

const (
	AccPublic              AccessFlags = 0x1
	AccPrivate             AccessFlags = 0x2
	AccProtected           AccessFlags = 0x4
	AccStatic              AccessFlags = 0x8
	AccFinal               AccessFlags = 0x10
	AccSynchronized        AccessFlags = 0x20
	AccVolatileOrBridge     AccessFlags = 0x40
	AccTransientOrVarargs   AccessFlags = 0x80
	AccNative              AccessFlags = 0x100
	AccInterface           AccessFlags = 0x200
	AccAbstract            AccessFlags = 0x400
	AccStrict              AccessFlags = 0x800
	AccSynthetic           AccessFlags = 0x1000
	AccAnnotation          AccessFlags = 0x2000
	AccEnum                AccessFlags = 0x4000
	AccConstructor         AccessFlags = 0x10000
	AccDeclaredSynchronized AccessFlags = 0x20000
)

// AccessFlagContext says which of the three definition kinds an
// AccessFlags value decorates, since bits 0x40, 0x80, and 0x20000 are
// reused with different meanings across them.
type AccessFlagContext int

const (
	ContextClass AccessFlagContext = iota
	ContextField
	ContextMethod
)

// Has reports whether bit is set in f.
func (f AccessFlags) Has(bit AccessFlags) bool { return f&bit != 0 }

// IsPublic, IsPrivate, IsProtected, IsStatic, and IsFinal hold the same
// meaning regardless of context.
func (f AccessFlags) IsPublic() bool    { return f.Has(AccPublic) }
func (f AccessFlags) IsPrivate() bool   { return f.Has(AccPrivate) }
func (f AccessFlags) IsProtected() bool { return f.Has(AccProtected) }
func (f AccessFlags) IsStatic() bool    { return f.Has(AccStatic) }
func (f AccessFlags) IsFinal() bool     { return f.Has(AccFinal) }

// IsVolatile is meaningful only in ContextField.
func (f AccessFlags) IsVolatile() bool { return f.Has(AccVolatileOrBridge) }

// IsBridge is meaningful only in ContextMethod.
func (f AccessFlags) IsBridge() bool { return f.Has(AccVolatileOrBridge) }

// IsTransient is meaningful only in ContextField.
func (f AccessFlags) IsTransient() bool { return f.Has(AccTransientOrVarargs) }

// IsVarargs is meaningful only in ContextMethod.
func (f AccessFlags) IsVarargs() bool { return f.Has(AccTransientOrVarargs) }

// IsDeclaredSynchronized is meaningful only in ContextMethod.
func (f AccessFlags) IsDeclaredSynchronized() bool { return f.Has(AccDeclaredSynchronized) }

var accessFlagNames = []struct {
	bit     AccessFlags
	name    string
	context AccessFlagContext // -1 means valid in every context
}{
	{AccPublic, "PUBLIC", -1},
	{AccPrivate, "PRIVATE", -1},
	{AccProtected, "PROTECTED", -1},
	{AccStatic, "STATIC", -1},
	{AccFinal, "FINAL", -1},
	{AccSynchronized, "SYNCHRONIZED", ContextMethod},
	{AccVolatileOrBridge, "VOLATILE", ContextField},
	{AccVolatileOrBridge, "BRIDGE", ContextMethod},
	{AccTransientOrVarargs, "TRANSIENT", ContextField},
	{AccTransientOrVarargs, "VARARGS", ContextMethod},
	{AccNative, "NATIVE", ContextMethod},
	{AccInterface, "INTERFACE", ContextClass},
	{AccAbstract, "ABSTRACT", -1},
	{AccStrict, "STRICTFP", ContextMethod},
	{AccSynthetic, "SYNTHETIC", -1},
	{AccAnnotation, "ANNOTATION", ContextClass},
	{AccEnum, "ENUM", -1},
	{AccConstructor, "CONSTRUCTOR", ContextMethod},
	{AccDeclaredSynchronized, "DECLARED_SYNCHRONIZED", ContextMethod},
}

// Strings renders the set bits of f as their context-appropriate names, in
// declaration order. Bits that carry no meaning in ctx are not reported,
// even when set.
func (f AccessFlags) Strings(ctx AccessFlagContext) []string {
	var out []string
	for _, e := range accessFlagNames {
		if !f.Has(e.bit) {
			continue
		}
		if e.context != -1 && e.context != ctx {
			continue
		}
		out = append(out, e.name)
	}
	return out
}
