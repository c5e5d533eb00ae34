// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// debug info bytecode opcodes, per the debug_info_item state machine.
const (
	dbgEndSequence      = 0x00
	dbgAdvancePC        = 0x01
	dbgAdvanceLine      = 0x02
	dbgStartLocal       = 0x03
	dbgStartLocalExt    = 0x04
	dbgEndLocal         = 0x05
	dbgRestartLocal     = 0x06
	dbgSetPrologueEnd   = 0x07
	dbgSetEpilogueBegin = 0x08
	dbgSetFile          = 0x09
	dbgFirstSpecial     = 0x0a
	dbgLineBase         = -4
	dbgLineRange        = 15
)

// PositionEntry records that bytecode address Address maps to source Line.
type PositionEntry struct {
	Address uint32
	Line    uint32
}

// LocalEvent is one local-variable lifecycle event: a variable starting,
// restarting, or ending at a register and address.
type LocalEvent int

const (
	LocalStart LocalEvent = iota
	LocalRestart
	LocalEnd
)

// LocalEntry records a local variable's name and type becoming visible,
// invisible, or visible-again in a particular register starting at a
// given address.
type LocalEntry struct {
	Event     LocalEvent
	Address   uint32
	Register  uint32
	Name      *StringData // nil for LocalEnd / LocalRestart
	Type      *TypeIdentifier
	Signature *StringData // generic signature, may be nil
}

// DebugInfo is the resolved debug_info_item: the line-number and local
// variable tables produced by running its bytecode state machine to
// completion, plus the per-parameter name list.
type DebugInfo struct {
	LineStart      uint32
	ParameterNames []*StringData
	Positions      []PositionEntry
	Locals         []LocalEntry
	PrologueEnd    *uint32 // address where the prologue ends, if recorded
	EpilogueBegin  *uint32
}

// parseDebugInfo reads and fully executes the debug info bytecode at off,
// resolving string and type indices as it goes.
func (rs *resolver) parseDebugInfo(off uint32) (*DebugInfo, error) {
	if off == 0 {
		return nil, nil
	}
	c := rs.raw.c.at(int64(off))

	lineStart, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	paramCount, err := c.readULEB128()
	if err != nil {
		return nil, err
	}
	params := make([]*StringData, paramCount)
	for i := range params {
		idx, err := c.readULEB128p1()
		if err != nil {
			return nil, err
		}
		if idx < 0 {
			continue
		}
		s, err := rs.resolveString(uint32(idx))
		if err != nil {
			return nil, err
		}
		params[i] = s
	}

	info := &DebugInfo{LineStart: lineStart, ParameterNames: params}
	address := uint32(0)
	line := lineStart

	for {
		op, err := c.readU8()
		if err != nil {
			return nil, err
		}
		switch {
		case op == dbgEndSequence:
			return info, nil

		case op == dbgAdvancePC:
			diff, err := c.readULEB128()
			if err != nil {
				return nil, err
			}
			address += diff

		case op == dbgAdvanceLine:
			diff, err := c.readSLEB128()
			if err != nil {
				return nil, err
			}
			line = uint32(int64(line) + int64(diff))

		case op == dbgStartLocal || op == dbgStartLocalExt:
			reg, err := c.readULEB128()
			if err != nil {
				return nil, err
			}
			nameIdx, err := c.readULEB128p1()
			if err != nil {
				return nil, err
			}
			typeIdx, err := c.readULEB128p1()
			if err != nil {
				return nil, err
			}
			var sig *StringData
			if op == dbgStartLocalExt {
				sigIdx, err := c.readULEB128p1()
				if err != nil {
					return nil, err
				}
				if sigIdx >= 0 {
					if sig, err = rs.resolveString(uint32(sigIdx)); err != nil {
						return nil, err
					}
				}
			}
			var name *StringData
			var typ *TypeIdentifier
			if nameIdx >= 0 {
				if name, err = rs.resolveString(uint32(nameIdx)); err != nil {
					return nil, err
				}
			}
			if typeIdx >= 0 {
				if typ, err = rs.resolveType(uint32(typeIdx)); err != nil {
					return nil, err
				}
			}
			info.Locals = append(info.Locals, LocalEntry{
				Event: LocalStart, Address: address, Register: reg,
				Name: name, Type: typ, Signature: sig,
			})

		case op == dbgEndLocal:
			reg, err := c.readULEB128()
			if err != nil {
				return nil, err
			}
			info.Locals = append(info.Locals, LocalEntry{Event: LocalEnd, Address: address, Register: reg})

		case op == dbgRestartLocal:
			reg, err := c.readULEB128()
			if err != nil {
				return nil, err
			}
			info.Locals = append(info.Locals, LocalEntry{Event: LocalRestart, Address: address, Register: reg})

		case op == dbgSetPrologueEnd:
			a := address
			info.PrologueEnd = &a

		case op == dbgSetEpilogueBegin:
			a := address
			info.EpilogueBegin = &a

		case op == dbgSetFile:
			// The new source file index is read and discarded; source
			// file changes are not tracked. The file a class declares via
			// source_file_idx is the one surfaced on ClassDefinition.
			if _, err := c.readULEB128p1(); err != nil {
				return nil, err
			}

		default: // DBG_SPECIAL
			adjusted := int(op) - dbgFirstSpecial
			line = uint32(int64(line) + int64(dbgLineBase+adjusted%dbgLineRange))
			address += uint32(adjusted / dbgLineRange)
			info.Positions = append(info.Positions, PositionEntry{Address: address, Line: line})
		}
	}
}
