// core.go - Core[P]: the generic Z80/R800 interpreter state

package cpucore

import "sync/atomic"

// Core is the complete interpreter state, generic over the timing/flag
// Policy (Z80Policy or R800Policy). One Core value is one CPU: its own
// register file, its own Bus, its own Clock. Nothing here is safe for
// concurrent use without going through Scheduler's synchronization - a Core
// is meant to be driven by exactly one goroutine at a time, matching the
// teacher's own single-goroutine-per-CPU_Z80 model.
type Core[P Policy] struct {
	Regs  Registers
	Bus   *Bus
	Clock *Clock
	Pol   P

	irq        irqState
	breakpoint breakpointState

	exitSync  atomic.Bool
	exitAsync atomic.Bool

	syncPoints []syncPoint

	// Per-instruction (IX+d)/(IY+d) displacement cache, reset once per
	// instruction in dispReset (interp_base.go).
	dispHave  bool
	dispValue int8
}

// NewCore wires a freshly-reset Core around bus/clock with policy pol.
func NewCore[P Policy](bus *Bus, clock *Clock, pol P) *Core[P] {
	c := &Core[P]{Bus: bus, Clock: clock, Pol: pol}
	c.Regs.Reset()
	c.breakpoint.init()
	return c
}

// fetchByte reads the opcode byte at PC (M1 timing) and advances PC.
func (c *Core[P]) fetchByte() byte {
	v := c.Bus.FetchOpcode(c.Regs.PC, c.Clock.Time())
	c.Regs.PC++
	c.Regs.IncR(1)
	return v
}

// fetchOperandByte reads a non-opcode byte at PC (ordinary memory timing)
// and advances PC - used for immediates and displacement bytes.
func (c *Core[P]) fetchOperandByte() byte {
	v := c.Bus.ReadMem(c.Regs.PC, c.Clock.Time())
	c.Regs.PC++
	return v
}

// fetchOperandWord reads a little-endian 16-bit immediate at PC.
func (c *Core[P]) fetchOperandWord() uint16 {
	lo := c.fetchOperandByte()
	hi := c.fetchOperandByte()
	return pair(hi, lo)
}

func (c *Core[P]) readMem(addr uint16) byte {
	return c.Bus.ReadMem(addr, c.Clock.Time())
}

func (c *Core[P]) writeMem(addr uint16, v byte) {
	c.Bus.WriteMem(addr, v, c.Clock.Time())
}

func (c *Core[P]) readMemWord(addr uint16) uint16 {
	lo := c.readMem(addr)
	hi := c.readMem(addr + 1)
	return pair(hi, lo)
}

func (c *Core[P]) writeMemWord(addr uint16, v uint16) {
	c.writeMem(addr, loOf(v))
	c.writeMem(addr+1, hiOf(v))
}

func (c *Core[P]) push(v uint16) {
	c.Regs.SP--
	c.writeMem(c.Regs.SP, hiOf(v))
	c.Regs.SP--
	c.writeMem(c.Regs.SP, loOf(v))
}

func (c *Core[P]) pop() uint16 {
	lo := c.readMem(c.Regs.SP)
	c.Regs.SP++
	hi := c.readMem(c.Regs.SP)
	c.Regs.SP++
	return pair(hi, lo)
}

func (c *Core[P]) in(port byte) byte {
	c.Pol.AlignIO(c.Clock)
	return c.Bus.ReadIO(port, c.Clock.Time())
}

func (c *Core[P]) out(port byte, v byte) {
	c.Pol.AlignIO(c.Clock)
	c.Bus.WriteIO(port, v, c.Clock.Time())
}

// tick advances the clock by the given number of cycles - the single place
// the interpreter spends time, so it is also the single place a future
// per-cycle hook (e.g. a cycle-accurate debugger trace) would attach.
func (c *Core[P]) tick(cycles int) {
	c.Clock.Add(uint64(cycles))
}
