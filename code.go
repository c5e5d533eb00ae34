// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// CatchTypeAddr pairs an exception type with the bytecode address of the
// handler that catches it.
type CatchTypeAddr struct {
	Type *TypeIdentifier
	Addr uint32
}

// CatchHandler is one resolved encoded_catch_handler: a list of typed
// handlers, plus an optional catch-all handler address.
type CatchHandler struct {
	Handlers     []CatchTypeAddr
	CatchAllAddr *uint32
}

// TryItem is one resolved try_item: the instruction range it guards and
// the handler set invoked when an exception escapes that range.
type TryItem struct {
	StartAddr uint32
	InsnCount uint16
	Handler   *CatchHandler
}

// Code is a resolved code_item: register/argument bookkeeping, the raw
// instruction stream (left undecoded; instruction-level disassembly is
// out of scope), try/catch metadata, and optional debug info.
type Code struct {
	RegistersSize uint16
	InsSize       uint16
	OutsSize      uint16
	Insns         []uint16
	Tries         []TryItem
	DebugInfo     *DebugInfo
}
