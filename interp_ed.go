// interp_ed.go - the ED-prefixed table: I/O, 16-bit ALU, block ops, R800 multiply

package cpucore

// execED dispatches an ED-prefixed opcode. Any byte outside the documented
// ED ranges is an emulated two-byte NOP (spec §4.4 "Failure semantics"),
// except the R800 MULUB/MULUW encodings this core assigns within that same
// otherwise-undefined space (see DESIGN.md).
func (c *Core[P]) execED() {
	op := c.fetchByte()

	if c.Pol.HasMultiply() {
		if op >= 0xC1 && op <= 0xF9 && (op&0x07) == 0x01 {
			c.mulub((op - 0xC1) / 8)
			return
		}
		if op >= 0xC3 && op <= 0xF3 && (op&0x0F) == 0x03 {
			c.muluw((op - 0xC3) / 0x10)
			return
		}
	}

	x, y, z, p, q := xOf(op), yOf(op), zOf(op), pOf(op), qOf(op)

	switch {
	case x == 1:
		c.execEDx1(y, z, p, q)
	case x == 2 && y >= 4 && z <= 3:
		c.execEDBlock(y, z)
	default:
		c.tick(8) // undefined ED opcode: two-byte NOP equivalent
	}
}

func (c *Core[P]) execEDx1(y, z, p, q byte) {
	switch z {
	case 0:
		v := c.in(c.Regs.C)
		c.Regs.WZ = c.Regs.BC() + 1
		flags := ZSPXY(v)
		c.Regs.SetFlags(0xFF&^FlagC, flags)
		if y != 6 {
			c.reg8Set(y, idxNone, v)
		}
		c.tick(12)
	case 1:
		var v byte
		if y != 6 {
			v = c.reg8Get(y, idxNone)
		}
		c.out(c.Regs.C, v)
		c.Regs.WZ = c.Regs.BC() + 1
		c.tick(12)
	case 2:
		hl := c.Regs.HL()
		rp := c.reg16Get(p, idxNone)
		if q == 0 {
			c.Regs.SetHL(c.sbc16(hl, rp))
		} else {
			c.Regs.SetHL(c.adc16(hl, rp))
		}
		c.tick(15)
	case 3:
		addr := c.fetchOperandWord()
		if q == 0 {
			c.writeMemWord(addr, c.reg16Get(p, idxNone))
		} else {
			c.reg16Set(p, idxNone, c.readMemWord(addr))
		}
		c.Regs.WZ = addr + 1
		c.tick(20)
	case 4:
		c.Regs.A = c.sub8(0, c.Regs.A, false)
		c.tick(8)
	case 5:
		c.Regs.PC = c.pop()
		if y != 1 {
			c.Regs.IFF1 = c.Regs.IFF2 // RETN; RETI (y==1) leaves IFF alone
		}
		c.Regs.WZ = c.Regs.PC
		c.tick(14)
	case 6:
		im := [8]byte{0, 0, 1, 2, 0, 0, 1, 2}[y]
		c.Regs.IM = im
		c.tick(8)
	case 7:
		c.execEDz7(y)
	}
}

func (c *Core[P]) execEDz7(y byte) {
	switch y {
	case 0:
		c.Regs.I = c.Regs.A
		c.tick(9)
	case 1:
		c.Regs.SetR7(c.Regs.A)
		c.tick(9)
	case 2:
		c.Regs.A = c.Regs.I
		c.ldAISRFlags()
		c.tick(9)
	case 3:
		c.Regs.A = c.Regs.R7()
		c.ldAISRFlags()
		c.tick(9)
	case 4:
		c.rrd()
		c.tick(18)
	case 5:
		c.rld()
		c.tick(18)
	default:
		c.tick(8) // undefined
	}
}

func (c *Core[P]) ldAISRFlags() {
	flags := ZS(c.Regs.A) | c.xyFlagsFor(c.Regs.A)
	if c.Regs.IFF2 {
		flags |= FlagPV
	}
	c.Regs.SetFlags(0xFF&^FlagC, flags)
	c.Regs.PrevWasLDAI = true
}

func (c *Core[P]) rrd() {
	hl := c.Regs.HL()
	memVal := c.readMem(hl)
	newMem := (c.Regs.A&0x0F)<<4 | (memVal >> 4)
	c.Regs.A = (c.Regs.A & 0xF0) | (memVal & 0x0F)
	c.writeMem(hl, newMem)
	c.Regs.WZ = hl + 1
	c.Regs.SetFlags(0xFF&^FlagC, ZSP(c.Regs.A)|c.xyFlagsFor(c.Regs.A))
}

func (c *Core[P]) rld() {
	hl := c.Regs.HL()
	memVal := c.readMem(hl)
	newMem := (memVal << 4) | (c.Regs.A & 0x0F)
	c.Regs.A = (c.Regs.A & 0xF0) | (memVal >> 4)
	c.writeMem(hl, newMem)
	c.Regs.WZ = hl + 1
	c.Regs.SetFlags(0xFF&^FlagC, ZSP(c.Regs.A)|c.xyFlagsFor(c.Regs.A))
}

// execEDBlock implements LDI/LDD/LDIR/LDDR, CPI/CPD/CPIR/CPDR,
// INI/IND/INIR/INDR, OUTI/OUTD/OTIR/OTDR. y>=6 means the repeating form;
// y&1==1 means the decrementing direction (spec §4.4 block instructions).
func (c *Core[P]) execEDBlock(y, z byte) {
	decrement := y&1 == 1
	repeat := y >= 6
	switch z {
	case 0:
		c.blockLD(decrement, repeat)
	case 1:
		c.blockCP(decrement, repeat)
	case 2:
		c.blockIO(decrement, repeat, true)
	case 3:
		c.blockIO(decrement, repeat, false)
	}
}

func stepOf(decrement bool) int16 {
	if decrement {
		return -1
	}
	return 1
}

func (c *Core[P]) blockLD(decrement, repeat bool) {
	hl, de, bc := c.Regs.HL(), c.Regs.DE(), c.Regs.BC()
	v := c.readMem(hl)
	c.writeMem(de, v)
	step := stepOf(decrement)
	c.Regs.SetHL(uint16(int32(hl) + int32(step)))
	c.Regs.SetDE(uint16(int32(de) + int32(step)))
	bc--
	c.Regs.SetBC(bc)

	n := v + c.Regs.A
	flags := n & FlagX
	if n&0x02 != 0 {
		flags |= FlagY
	}
	if bc != 0 {
		flags |= FlagPV
	}
	c.Regs.SetFlags(FlagH|FlagN|FlagX|FlagY|FlagPV, flags)

	if repeat && bc != 0 {
		c.Regs.PC -= 2
		c.Regs.WZ = c.Regs.PC + 1
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *Core[P]) blockCP(decrement, repeat bool) {
	hl, bc := c.Regs.HL(), c.Regs.BC()
	v := c.readMem(hl)
	step := stepOf(decrement)
	c.Regs.SetHL(uint16(int32(hl) + int32(step)))
	bc--
	c.Regs.SetBC(bc)

	a := c.Regs.A
	result := a - v
	halfBorrow := int(a&0xF)-int(v&0xF) < 0
	var hBit byte
	if halfBorrow {
		hBit = 1
	}
	n := result - hBit
	flags := ZS(result)
	if halfBorrow {
		flags |= FlagH
	}
	if bc != 0 {
		flags |= FlagPV
	}
	flags |= FlagN
	flags |= n & FlagX
	if n&0x02 != 0 {
		flags |= FlagY
	}
	c.Regs.SetFlags(0xFF&^FlagC, flags)

	terminate := bc == 0 || result == 0
	if repeat && !terminate {
		c.Regs.PC -= 2
		c.Regs.WZ = c.Regs.PC + 1
		c.tick(21)
	} else {
		if decrement {
			c.Regs.WZ--
		} else {
			c.Regs.WZ++
		}
		c.tick(16)
	}
}

func (c *Core[P]) blockIO(decrement, repeat bool, isIn bool) {
	hl := c.Regs.HL()
	step := stepOf(decrement)
	var v byte
	var hc int

	if isIn {
		v = c.in(c.Regs.C)
		c.writeMem(hl, v)
		c.Regs.SetHL(uint16(int32(hl) + int32(step)))
		hc = int(v) + int((int32(c.Regs.C)+int32(step))&0xFF)
	} else {
		v = c.readMem(hl)
		c.out(c.Regs.C, v)
		c.Regs.SetHL(uint16(int32(hl) + int32(step)))
		hc = int(v) + int(c.Regs.HL()&0xFF)
	}
	c.Regs.B--
	b := c.Regs.B

	flags := ZS(b) | (b & (FlagX | FlagY))
	if v&0x80 != 0 {
		flags |= FlagN
	}
	if hc > 0xFF {
		flags |= FlagH | FlagC
	}
	if Parity(byte(hc&7)^b) != 0 {
		flags |= FlagPV
	}
	c.Regs.SetFlags(0xFF, flags)

	if repeat && b != 0 {
		c.Regs.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

// mulub/muluw implement the R800-only ED C1/C9/.../F9 (MULUB A,r) and ED
// C3/D3/E3/F3 (MULUW HL,ss) opcodes. The exact encoding is not pinned down
// by any surviving reference in this module's grounding material, so it is
// assigned within the ED range the documented Z80 leaves undefined,
// following the same p/y-indexed table shape as the rest of this file
// (see DESIGN.md).
func (c *Core[P]) mulub(r byte) {
	operand := c.reg8Get(r, idxNone)
	result := uint16(c.Regs.A) * uint16(operand)
	c.Regs.SetHL(result)
	flags := byte(0)
	if result == 0 {
		flags |= FlagZ
	}
	if result > 0xFF {
		flags |= FlagC
	}
	c.Regs.SetFlags(FlagS|FlagZ|FlagPV|FlagN|FlagC, flags)
	c.tick(14)
}

func (c *Core[P]) muluw(p byte) {
	operand := c.reg16Get(p, idxNone)
	result := uint32(c.Regs.HL()) * uint32(operand)
	c.Regs.SetDE(uint16(result >> 16))
	c.Regs.SetHL(uint16(result))
	flags := byte(0)
	if result == 0 {
		flags |= FlagZ
	}
	if result > 0xFFFF {
		flags |= FlagC
	}
	c.Regs.SetFlags(FlagS|FlagZ|FlagPV|FlagN|FlagC, flags)
	c.tick(36)
}
