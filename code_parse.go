// Copyright 2026 The go-dex Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// parseCode reads a code_item: the fixed register/argument header, the
// raw instruction stream, and (if present) the try/catch tables and
// debug info.
func (rs *resolver) parseCode(off uint32) (*Code, error) {
	c := rs.raw.c.at(int64(off))

	registersSize, err := c.readU16()
	if err != nil {
		return nil, err
	}
	insSize, err := c.readU16()
	if err != nil {
		return nil, err
	}
	outsSize, err := c.readU16()
	if err != nil {
		return nil, err
	}
	triesSize, err := c.readU16()
	if err != nil {
		return nil, err
	}
	debugInfoOff, err := c.readU32()
	if err != nil {
		return nil, err
	}
	insnsSize, err := c.readU32()
	if err != nil {
		return nil, err
	}

	insns := make([]uint16, insnsSize)
	for i := range insns {
		v, err := c.readU16()
		if err != nil {
			return nil, err
		}
		insns[i] = v
	}

	code := &Code{RegistersSize: registersSize, InsSize: insSize, OutsSize: outsSize, Insns: insns}

	if triesSize > 0 {
		if insnsSize%2 != 0 {
			if _, err := c.readU16(); err != nil { // 2-byte alignment pad
				return nil, err
			}
		}

		type pendingTry struct {
			startAddr uint32
			insnCount uint16
			handlerOf uint32
		}
		pending := make([]pendingTry, triesSize)
		for i := range pending {
			start, err := c.readU32()
			if err != nil {
				return nil, err
			}
			count, err := c.readU16()
			if err != nil {
				return nil, err
			}
			handlerOff, err := c.readU16()
			if err != nil {
				return nil, err
			}
			pending[i] = pendingTry{startAddr: start, insnCount: count, handlerOf: uint32(handlerOff)}
		}

		handlersByOffset, err := rs.parseCatchHandlerList(c)
		if err != nil {
			return nil, err
		}

		code.Tries = make([]TryItem, triesSize)
		for i, p := range pending {
			h, ok := handlersByOffset[p.handlerOf]
			if !ok {
				return nil, errMalformed(c.tell(), "try_item references handler offset %d with no matching encoded_catch_handler", p.handlerOf)
			}
			code.Tries[i] = TryItem{StartAddr: p.startAddr, InsnCount: p.insnCount, Handler: h}
		}
	}

	if debugInfoOff != 0 {
		di, err := rs.parseDebugInfo(debugInfoOff)
		if err != nil {
			return nil, err
		}
		code.DebugInfo = di
	}

	return code, nil
}

// parseCatchHandlerList reads the encoded_catch_handler_list that follows
// a code_item's try_item array, returning every handler indexed by its
// byte offset from the start of the list (the same offsets try_item's
// handler_off field uses to refer back to them).
func (rs *resolver) parseCatchHandlerList(c *cursor) (map[uint32]*CatchHandler, error) {
	listStart := c.tell()
	handlersSize, err := c.readULEB128()
	if err != nil {
		return nil, err
	}

	out := make(map[uint32]*CatchHandler, handlersSize)
	for i := uint32(0); i < handlersSize; i++ {
		entryOff := uint32(c.tell() - listStart)
		size, err := c.readSLEB128()
		if err != nil {
			return nil, err
		}
		count := size
		if count < 0 {
			count = -count
		}
		h := &CatchHandler{}
		for j := int32(0); j < count; j++ {
			typeIdx, err := c.readULEB128()
			if err != nil {
				return nil, err
			}
			addr, err := c.readULEB128()
			if err != nil {
				return nil, err
			}
			typ, err := rs.resolveType(typeIdx)
			if err != nil {
				return nil, err
			}
			h.Handlers = append(h.Handlers, CatchTypeAddr{Type: typ, Addr: addr})
		}
		if size <= 0 {
			addr, err := c.readULEB128()
			if err != nil {
				return nil, err
			}
			h.CatchAllAddr = &addr
		}
		out[entryOff] = h
	}
	return out, nil
}
