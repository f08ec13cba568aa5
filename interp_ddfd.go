// interp_ddfd.go - the DD-CB/FD-CB indexed bit-operation table
//
// The DD/FD-prefixed base opcode table itself reuses interp_base.go's
// execBase via the idx parameter (H/L/(HL) substituted by IXh/IXl/(IX+d)
// throughout reg8Get/Set, reg16Get/Set and indexReg) rather than a
// duplicate table, since every base opcode that references HL divides
// cleanly into "read/write through indexReg/indexedAddr" - there is no
// second decode table to write.

package cpucore

// execIndexedCB implements the four-byte DD-CB/FD-CB sequences: the
// displacement is always fetched before the operation byte (spec §4.4
// "Decoding"), and the effective address IX/IY+d is written back to
// memory even when z names a register - the well-known undocumented
// side effect (e.g. "RLC (IX+d),B" stores the rotated byte in both memory
// and B).
func (c *Core[P]) execIndexedCB(idx index) {
	d := int8(c.fetchOperandByte())
	addr := uint16(int32(c.indexReg(idx)) + int32(d))
	c.Regs.WZ = addr
	op := c.fetchOperandByte()
	x, y, z := xOf(op), yOf(op), zOf(op)
	v := c.readMem(addr)

	switch x {
	case 0:
		if y == rotSLL && !c.Pol.SLLIsLegal() {
			carry := c.Regs.A&0x80 != 0
			flags := c.Regs.F & (FlagX | FlagY)
			if carry {
				flags |= FlagC
			}
			c.Regs.SetFlags(0xFF&^(FlagX|FlagY), flags)
			c.tick(23)
			return
		}
		result := c.rotateShift(int(y), v)
		c.writeMem(addr, result)
		if z != 6 {
			c.reg8Set(z, idxNone, result)
		}
		c.tick(23)
	case 1:
		c.bitTest(uint(y), v)
		c.bitTestUndocXY(hiOf(addr))
		c.tick(20)
	case 2:
		result := resBit(uint(y), v)
		c.writeMem(addr, result)
		if z != 6 {
			c.reg8Set(z, idxNone, result)
		}
		c.tick(23)
	case 3:
		result := setBit(uint(y), v)
		c.writeMem(addr, result)
		if z != 6 {
			c.reg8Set(z, idxNone, result)
		}
		c.tick(23)
	}
}
