// interp_cb.go - the unprefixed-operand CB table (rotate/shift/BIT/RES/SET)

package cpucore

// execCB dispatches a CB-prefixed opcode operating on r[z] (no DD/FD
// prefix active). y selects the rotate/shift kind (x==0), the tested/
// cleared/set bit number (x==1/2/3).
func (c *Core[P]) execCB() {
	op := c.fetchByte()
	x, y, z := xOf(op), yOf(op), zOf(op)

	switch x {
	case 0:
		c.cbRotateShift(y, z)
	case 1:
		v := c.reg8Get(z, idxNone)
		c.bitTest(uint(y), v)
		if z == 6 {
			c.bitTestUndocXY(hiOf(c.Regs.WZ))
			c.tick(12)
		} else {
			c.tick(8)
		}
	case 2:
		v := resBit(uint(y), c.reg8Get(z, idxNone))
		c.reg8Set(z, idxNone, v)
		c.tick(cbWriteCycles(z))
	case 3:
		v := setBit(uint(y), c.reg8Get(z, idxNone))
		c.reg8Set(z, idxNone, v)
		c.tick(cbWriteCycles(z))
	}
}

func cbWriteCycles(z byte) int {
	if z == 6 {
		return 15
	}
	return 8
}

func (c *Core[P]) cbRotateShift(y, z byte) {
	if y == rotSLL && !c.Pol.SLLIsLegal() {
		// R800: CB 30-37 becomes "C <- A bit 7, clear S Z H P/V N,
		// preserve X/Y", independent of z (spec §4.4 "SLL").
		carry := c.Regs.A&0x80 != 0
		flags := c.Regs.F & (FlagX | FlagY)
		if carry {
			flags |= FlagC
		}
		c.Regs.SetFlags(0xFF&^(FlagX|FlagY), flags)
		c.tick(cbWriteCycles(z))
		return
	}
	v := c.reg8Get(z, idxNone)
	result := c.rotateShift(int(y), v)
	c.reg8Set(z, idxNone, result)
	c.tick(cbWriteCycles(z))
}
