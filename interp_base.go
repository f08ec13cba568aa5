// interp_base.go - instruction-boundary dispatch and the unprefixed opcode table

package cpucore

// index selects which pair DD/FD substitutes for HL in the base, CB, and
// ED tables.
type index int

const (
	idxNone index = iota
	idxIX
	idxIY
)

// executeInstruction fetches and runs exactly one instruction, including
// any DD/FD prefix chain and dispatch into the CB/ED tables. Called only
// from Step, never directly, so that HALT/interrupt acceptance always go
// through the state machine in interrupt.go.
func (c *Core[P]) executeInstruction() {
	c.Regs.PrevWasEI = false
	c.Regs.PrevWasLDAI = false
	prevCall := c.Regs.Prev2WasCall
	c.Regs.Prev2WasCall = false
	c.dispReset()

	opcode := c.fetchByte()
	idx := idxNone
	for opcode == 0xDD || opcode == 0xFD {
		if opcode == 0xDD {
			idx = idxIX
		} else {
			idx = idxIY
		}
		c.tick(c.Pol.CCIndexPrefix())
		opcode = c.fetchByte()
	}

	if prevCall && !isPopOrRetOpcode(opcode) {
		c.tick(c.callChainPenalty())
	}
	c.Regs.PrevWasPopRet = isPopOrRetOpcode(opcode)

	switch opcode {
	case 0xCB:
		if idx == idxNone {
			c.execCB()
		} else {
			c.execIndexedCB(idx)
		}
	case 0xED:
		c.execED()
	default:
		c.execBase(opcode, idx)
	}
}

// callChainPenalty is the R800-only "CALL followed by anything but
// POP/RET costs one extra cycle" quirk (spec §8 test-suite item); Z80
// policies report 0.
func (c *Core[P]) callChainPenalty() int {
	if c.Pol.Name() == "R800" {
		return 1
	}
	return 0
}

func isPopOrRetOpcode(op byte) bool {
	if op == 0xC9 { // RET
		return true
	}
	if op&0xC7 == 0xC0 { // RET cc
		return true
	}
	if op&0xCF == 0xC1 { // POP rp2
		return true
	}
	return false
}

// --- decode field helpers (x/y/z/p/q), grounded on the teacher's own
// opcode-byte decomposition in debug_disasm_z80.go ---

func xOf(op byte) byte { return op >> 6 }
func yOf(op byte) byte { return (op >> 3) & 7 }
func zOf(op byte) byte { return op & 7 }
func pOf(op byte) byte { return yOf(op) >> 1 }
func qOf(op byte) byte { return yOf(op) & 1 }

// checkCond evaluates condition y against the current flags.
func (c *Core[P]) checkCond(y byte) bool {
	switch y {
	case 0:
		return !c.Regs.Flag(FlagZ)
	case 1:
		return c.Regs.Flag(FlagZ)
	case 2:
		return !c.Regs.Flag(FlagC)
	case 3:
		return c.Regs.Flag(FlagC)
	case 4:
		return !c.Regs.Flag(FlagPV)
	case 5:
		return c.Regs.Flag(FlagPV)
	case 6:
		return !c.Regs.Flag(FlagS)
	case 7:
		return c.Regs.Flag(FlagS)
	}
	panic("cpucore: invalid condition code")
}

// dispReset clears the per-instruction displacement cache; called once at
// the start of every instruction (spec: the displacement is fetched at
// most once per instruction, immediately before the first operand that
// needs it).
func (c *Core[P]) dispReset() {
	c.dispHave = false
}

// indexedAddr returns IX/IY + sign-extended displacement, fetching and
// caching the displacement byte (and charging CCIndexedDisp) on first use
// within the current instruction.
func (c *Core[P]) indexedAddr(idx index) uint16 {
	if !c.dispHave {
		d := int8(c.fetchOperandByte())
		c.dispValue = d
		c.dispHave = true
		c.tick(c.Pol.CCIndexedDisp())
	}
	base := c.indexReg(idx)
	addr := uint16(int32(base) + int32(c.dispValue))
	c.Regs.WZ = addr
	return addr
}

func (c *Core[P]) indexReg(idx index) uint16 {
	switch idx {
	case idxIX:
		return c.Regs.IX
	case idxIY:
		return c.Regs.IY
	}
	return c.Regs.HL()
}

func (c *Core[P]) setIndexReg(idx index, v uint16) {
	switch idx {
	case idxIX:
		c.Regs.IX = v
	case idxIY:
		c.Regs.IY = v
	default:
		c.Regs.SetHL(v)
	}
}

// reg8Get/reg8Set implement the r[z] table: 0=B 1=C 2=D 3=E 4=H 5=L
// 6=(HL) 7=A, with H/L/(HL) substituted by IXh/IXl/(IX+d) (or IY) when idx
// is active - except the CB-prefixed table under a prefix, which always
// targets (IX+d)/(IY+d) regardless of z (handled separately in
// interp_ddfd.go).
func (c *Core[P]) reg8Get(z byte, idx index) byte {
	switch z {
	case 0:
		return c.Regs.B
	case 1:
		return c.Regs.C
	case 2:
		return c.Regs.D
	case 3:
		return c.Regs.E
	case 4:
		if idx == idxIX {
			return hiOf(c.Regs.IX)
		} else if idx == idxIY {
			return hiOf(c.Regs.IY)
		}
		return c.Regs.H
	case 5:
		if idx == idxIX {
			return loOf(c.Regs.IX)
		} else if idx == idxIY {
			return loOf(c.Regs.IY)
		}
		return c.Regs.L
	case 6:
		if idx == idxNone {
			return c.readMem(c.Regs.HL())
		}
		return c.readMem(c.indexedAddr(idx))
	case 7:
		return c.Regs.A
	}
	panic("cpucore: invalid register field")
}

func (c *Core[P]) reg8Set(z byte, idx index, v byte) {
	switch z {
	case 0:
		c.Regs.B = v
	case 1:
		c.Regs.C = v
	case 2:
		c.Regs.D = v
	case 3:
		c.Regs.E = v
	case 4:
		if idx == idxIX {
			c.Regs.IX = pair(v, loOf(c.Regs.IX))
		} else if idx == idxIY {
			c.Regs.IY = pair(v, loOf(c.Regs.IY))
		} else {
			c.Regs.H = v
		}
	case 5:
		if idx == idxIX {
			c.Regs.IX = pair(hiOf(c.Regs.IX), v)
		} else if idx == idxIY {
			c.Regs.IY = pair(hiOf(c.Regs.IY), v)
		} else {
			c.Regs.L = v
		}
	case 6:
		if idx == idxNone {
			c.writeMem(c.Regs.HL(), v)
		} else {
			c.writeMem(c.indexedAddr(idx), v)
		}
	case 7:
		c.Regs.A = v
	default:
		panic("cpucore: invalid register field")
	}
}

// reg16Get/reg16Set implement the rp table (BC,DE,HL,SP), substituting
// IX/IY for HL under a prefix.
func (c *Core[P]) reg16Get(p byte, idx index) uint16 {
	switch p {
	case 0:
		return c.Regs.BC()
	case 1:
		return c.Regs.DE()
	case 2:
		return c.indexReg(idx)
	case 3:
		return c.Regs.SP
	}
	panic("cpucore: invalid register-pair field")
}

func (c *Core[P]) reg16Set(p byte, idx index, v uint16) {
	switch p {
	case 0:
		c.Regs.SetBC(v)
	case 1:
		c.Regs.SetDE(v)
	case 2:
		c.setIndexReg(idx, v)
	case 3:
		c.Regs.SP = v
	}
}

// reg16Get2/reg16Set2 implement rp2 (PUSH/POP table: BC,DE,HL,AF).
func (c *Core[P]) reg16Get2(p byte, idx index) uint16 {
	if p == 3 {
		return c.Regs.AF()
	}
	return c.reg16Get(p, idx)
}

func (c *Core[P]) reg16Set2(p byte, idx index, v uint16) {
	if p == 3 {
		c.Regs.SetAF(v)
		return
	}
	c.reg16Set(p, idx, v)
}

// aluOp applies ALU operation y to A and operand, leaving the result in A
// except for CP (y==7), which only sets flags.
func (c *Core[P]) aluOp(y byte, operand byte) {
	a := c.Regs.A
	switch y {
	case 0:
		c.Regs.A = c.add8(a, operand, false)
	case 1:
		c.Regs.A = c.add8(a, operand, c.Regs.Flag(FlagC))
	case 2:
		c.Regs.A = c.sub8(a, operand, false)
	case 3:
		c.Regs.A = c.sub8(a, operand, c.Regs.Flag(FlagC))
	case 4:
		c.Regs.A = c.and8(a, operand)
	case 5:
		c.Regs.A = c.xor8(a, operand)
	case 6:
		c.Regs.A = c.or8(a, operand)
	case 7:
		c.cp8(a, operand)
	}
}

func (c *Core[P]) jumpRelative(idx index, disp int8) {
	from := c.Regs.PC
	to := uint16(int32(from) + int32(disp))
	c.Regs.PC = to
	c.Regs.WZ = to
	c.tick(c.Pol.PageBreakPenalty(from, to))
}

// execBase dispatches one unprefixed opcode, using standard Z80 opcode
// decomposition (x=op>>6, y=(op>>3)&7, z=op&7, p=y>>1, q=y&1), the same
// structure the teacher's disassembler decodes by (debug_disasm_z80.go).
func (c *Core[P]) execBase(op byte, idx index) {
	x, y, z, p, q := xOf(op), yOf(op), zOf(op), pOf(op), qOf(op)

	switch x {
	case 0:
		c.execBaseX0(op, y, z, p, q, idx)
	case 1:
		if z == 6 && y == 6 {
			c.Regs.Halted = true
			c.tick(4)
			return
		}
		v := c.reg8Get(z, idx)
		c.reg8Set(y, idx, v)
		c.tick(ldCycles(y, z, idx))
	case 2:
		operand := c.reg8Get(z, idx)
		c.aluOp(y, operand)
		c.tick(aluCycles(z, idx))
	case 3:
		c.execBaseX3(op, y, z, p, q, idx)
	}
}

func ldCycles(y, z byte, idx index) int {
	if z == 6 || y == 6 {
		if idx == idxNone {
			return 7
		}
		return 19
	}
	return 4
}

func aluCycles(z byte, idx index) int {
	if z == 6 {
		if idx == idxNone {
			return 7
		}
		return 19
	}
	return 4
}

func (c *Core[P]) execBaseX0(op byte, y, z, p, q byte, idx index) {
	switch z {
	case 0:
		switch y {
		case 0:
			c.tick(4) // NOP
		case 1:
			c.Regs.ExAF()
			c.tick(4)
		case 2:
			c.Regs.B--
			disp := int8(c.fetchOperandByte())
			if c.Regs.B != 0 {
				c.jumpRelative(idx, disp)
				c.tick(13)
			} else {
				c.tick(8)
			}
		case 3:
			disp := int8(c.fetchOperandByte())
			c.jumpRelative(idx, disp)
			c.tick(12)
		default: // 4-7: JR cc,d
			disp := int8(c.fetchOperandByte())
			if c.checkCond(y - 4) {
				c.jumpRelative(idx, disp)
				c.tick(12)
			} else {
				c.tick(7)
			}
		}
	case 1:
		if q == 0 {
			v := c.fetchOperandWord()
			c.reg16Set(p, idx, v)
			c.tick(10)
		} else {
			hl := c.indexReg(idx)
			v := c.reg16Get(p, idx)
			c.setIndexReg(idx, c.add16(hl, v))
			c.tick(11)
		}
	case 2:
		switch y {
		case 0:
			c.writeMem(c.Regs.BC(), c.Regs.A)
			c.Regs.WZ = (c.Regs.BC() + 1) & 0xFF
			c.Regs.WZ |= uint16(c.Regs.A) << 8
			c.tick(7)
		case 1:
			c.Regs.A = c.readMem(c.Regs.BC())
			c.Regs.WZ = c.Regs.BC() + 1
			c.tick(7)
		case 2:
			c.writeMem(c.Regs.DE(), c.Regs.A)
			c.Regs.WZ = (c.Regs.DE() + 1) & 0xFF
			c.Regs.WZ |= uint16(c.Regs.A) << 8
			c.tick(7)
		case 3:
			c.Regs.A = c.readMem(c.Regs.DE())
			c.Regs.WZ = c.Regs.DE() + 1
			c.tick(7)
		case 4:
			addr := c.fetchOperandWord()
			c.writeMemWord(addr, c.indexReg(idx))
			c.Regs.WZ = addr + 1
			c.tick(16)
		case 5:
			addr := c.fetchOperandWord()
			c.setIndexReg(idx, c.readMemWord(addr))
			c.Regs.WZ = addr + 1
			c.tick(16)
		case 6:
			addr := c.fetchOperandWord()
			c.writeMem(addr, c.Regs.A)
			c.Regs.WZ = (addr + 1) & 0xFF
			c.Regs.WZ |= uint16(c.Regs.A) << 8
			c.tick(13)
		case 7:
			addr := c.fetchOperandWord()
			c.Regs.A = c.readMem(addr)
			c.Regs.WZ = addr + 1
			c.tick(13)
		}
	case 3:
		v := c.reg16Get(p, idx)
		if q == 0 {
			c.reg16Set(p, idx, v+1)
		} else {
			c.reg16Set(p, idx, v-1)
		}
		c.tick(6)
	case 4:
		c.reg8Set(y, idx, c.inc8(c.reg8Get(y, idx)))
		c.tick(incDecCycles(y, idx))
	case 5:
		c.reg8Set(y, idx, c.dec8(c.reg8Get(y, idx)))
		c.tick(incDecCycles(y, idx))
	case 6:
		if y == 6 && idx != idxNone {
			addr := c.indexedAddr(idx)
			v := c.fetchOperandByte()
			c.writeMem(addr, v)
			c.tick(19)
			return
		}
		v := c.fetchOperandByte()
		c.reg8Set(y, idx, v)
		c.tick(ldImmCycles(y, idx))
	case 7:
		switch y {
		case 0:
			c.Regs.A = c.rotateShiftAcc(rotRLC, c.Regs.A)
		case 1:
			c.Regs.A = c.rotateShiftAcc(rotRRC, c.Regs.A)
		case 2:
			c.Regs.A = c.rotateShiftAcc(rotRL, c.Regs.A)
		case 3:
			c.Regs.A = c.rotateShiftAcc(rotRR, c.Regs.A)
		case 4:
			c.daa()
		case 5:
			c.cpl()
		case 6:
			c.scf()
		case 7:
			c.ccf()
		}
		c.tick(4)
	}
}

func incDecCycles(y byte, idx index) int {
	if y == 6 {
		if idx == idxNone {
			return 11
		}
		return 23
	}
	return 4
}

func ldImmCycles(y byte, idx index) int {
	if y == 6 {
		if idx == idxNone {
			return 10
		}
		return 19
	}
	return 7
}

func (c *Core[P]) execBaseX3(op byte, y, z, p, q byte, idx index) {
	switch z {
	case 0:
		if c.checkCond(y) {
			c.Regs.PC = c.pop()
			c.Regs.WZ = c.Regs.PC
			c.tick(11)
		} else {
			c.tick(5)
		}
	case 1:
		if q == 0 {
			c.reg16Set2(p, idx, c.pop())
			c.tick(10)
			return
		}
		switch p {
		case 0:
			c.Regs.PC = c.pop()
			c.Regs.WZ = c.Regs.PC
			c.tick(10)
		case 1:
			c.Regs.Exx()
			c.tick(4)
		case 2:
			c.Regs.PC = c.indexReg(idx)
			c.tick(4)
		case 3:
			c.Regs.SP = c.indexReg(idx)
			c.tick(6)
		}
	case 2:
		addr := c.fetchOperandWord()
		if c.checkCond(y) {
			c.Regs.PC = addr
		}
		c.Regs.WZ = addr
		c.tick(10)
	case 3:
		switch y {
		case 0:
			addr := c.fetchOperandWord()
			c.Regs.PC = addr
			c.Regs.WZ = addr
			c.tick(10)
		case 1:
			// CB handled before reaching here
		case 2:
			port := c.fetchOperandByte()
			c.out(port, c.Regs.A)
			c.Regs.WZ = (uint16(c.Regs.A) << 8) | uint16(port+1)
			c.tick(11)
		case 3:
			port := c.fetchOperandByte()
			c.Regs.A = c.in(port)
			c.Regs.WZ = (uint16(c.Regs.A) << 8) | uint16(port) + 1
			c.tick(11)
		case 4:
			hl := c.indexReg(idx)
			sp := c.readMemWord(c.Regs.SP)
			c.writeMemWord(c.Regs.SP, hl)
			c.setIndexReg(idx, sp)
			c.Regs.WZ = sp
			c.tick(19)
		case 5:
			d, h := c.Regs.DE(), c.Regs.HL()
			c.Regs.SetDE(h)
			c.Regs.SetHL(d)
			c.tick(4)
		case 6:
			c.Regs.IFF1 = false
			c.Regs.IFF2 = false
			c.tick(4)
		case 7:
			c.Regs.IFF1 = true
			c.Regs.IFF2 = true
			c.Regs.PrevWasEI = true
			c.tick(4)
		}
	case 4:
		addr := c.fetchOperandWord()
		c.Regs.WZ = addr
		if c.checkCond(y) {
			c.push(c.Regs.PC)
			c.Regs.PC = addr
			c.Regs.Prev2WasCall = true
			c.tick(17)
		} else {
			c.tick(10)
		}
	case 5:
		if q == 0 {
			c.push(c.reg16Get2(p, idx))
			c.tick(11)
			return
		}
		switch p {
		case 0:
			addr := c.fetchOperandWord()
			c.push(c.Regs.PC)
			c.Regs.PC = addr
			c.Regs.WZ = addr
			c.Regs.Prev2WasCall = true
			c.tick(17)
		default:
			// p==1/2/3: DD/FD/ED prefixes, already consumed before reaching
			// execBaseX3; unreachable in practice.
		}
	case 6:
		v := c.fetchOperandByte()
		c.aluOp(y, v)
		c.tick(7)
	case 7:
		c.push(c.Regs.PC)
		c.Regs.PC = uint16(y) * 8
		c.Regs.WZ = c.Regs.PC
		c.tick(11)
	}
}
