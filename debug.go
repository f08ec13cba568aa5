// debug.go - register/breakpoint debug hooks exposed by the core
//
// Adapted from the teacher's debug_cpu_z80.go (DebugZ80.GetRegisters/
// SetRegister/SetBreakpoint/ClearBreakpoint/ListBreakpoints/HasBreakpoint),
// generalized from its fixed 8080-style register list to this module's
// full Z80/R800 register file (shadow regs, memptr, R2, IM).

package cpucore

// RunState is the core's externally-visible execution state (spec §4.4
// "State machine").
type RunState int

const (
	StateRunning RunState = iota
	StateHalted
	StateBreaked
)

// breakpointState holds the PC breakpoint set and the BREAKED transition
// hook; kept as its own type (rather than loose fields on Core) so
// init/reset stays in one place.
type breakpointState struct {
	points  map[uint16]bool
	breaked bool
	resume  bool // set by Continue: the next boundary check is skipped
	onBreak func(pc uint16)
}

func (b *breakpointState) init() {
	b.points = make(map[uint16]bool)
}

// SetBreakpoint adds pc to the breakpoint set.
func (c *Core[P]) SetBreakpoint(pc uint16) {
	c.breakpoint.points[pc] = true
}

// ClearBreakpoint removes pc from the breakpoint set, if present.
func (c *Core[P]) ClearBreakpoint(pc uint16) {
	delete(c.breakpoint.points, pc)
}

// HasBreakpoint reports whether pc is a registered breakpoint.
func (c *Core[P]) HasBreakpoint(pc uint16) bool {
	return c.breakpoint.points[pc]
}

// ListBreakpoints returns every registered breakpoint address, unordered.
func (c *Core[P]) ListBreakpoints() []uint16 {
	out := make([]uint16, 0, len(c.breakpoint.points))
	for pc := range c.breakpoint.points {
		out = append(out, pc)
	}
	return out
}

// SetBreakHook installs the callback SignalBreak invokes.
func (c *Core[P]) SetBreakHook(fn func(pc uint16)) {
	c.breakpoint.onBreak = fn
}

// SignalBreak is called by the core whenever it enters BREAKED; it lets
// an attached debugger UI refresh itself (spec §6.3). Never called
// internally except from checkBreakpoint.
func (c *Core[P]) SignalBreak() {
	if c.breakpoint.onBreak != nil {
		c.breakpoint.onBreak(c.Regs.PC)
	}
}

// checkBreakpoint is consulted at instruction boundaries, but ONLY when no
// interrupt is about to be accepted this boundary - per the clarification
// of Grauw's report cited in spec §6.3 - since a breakpoint on the
// interrupt vector address would otherwise misfire on ordinary IRQ entry.
func (c *Core[P]) checkBreakpoint(aboutToAcceptInterrupt bool) bool {
	if c.breakpoint.resume {
		c.breakpoint.resume = false
		return false
	}
	if aboutToAcceptInterrupt {
		return false
	}
	if c.breakpoint.points[c.Regs.PC] {
		c.breakpoint.breaked = true
		c.SignalBreak()
		return true
	}
	return false
}

// State reports the core's current RunState.
func (c *Core[P]) State() RunState {
	switch {
	case c.breakpoint.breaked:
		return StateBreaked
	case c.Regs.Halted:
		return StateHalted
	default:
		return StateRunning
	}
}

// Continue exits BREAKED, letting Step/Execute run normally again; the
// instruction at the breakpoint itself runs on the next Step.
func (c *Core[P]) Continue() {
	c.breakpoint.breaked = false
	c.breakpoint.resume = true
}

// PopReturnAddress pops and returns the word at the top of the stack,
// advancing SP exactly as RET would. Exposed for hosts that trap a CALL
// target outside of any real MemDevice (a CP/M-style BDOS stub address, for
// instance) and need to simulate the matching RET themselves.
func (c *Core[P]) PopReturnAddress() uint16 { return c.pop() }

// RegisterID names every debuggable register for GetRegisters/SetRegister.
type RegisterID int

const (
	RegA RegisterID = iota
	RegF
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegA2
	RegF2
	RegB2
	RegC2
	RegD2
	RegE2
	RegH2
	RegL2
	RegIX
	RegIY
	RegSP
	RegPC
	RegI
	RegR
	RegIM
	RegWZ
)

// RegisterSnapshot is the value returned by GetRegisters: a flat,
// serialization-friendly copy of the architectural state.
type RegisterSnapshot struct {
	A, F, B, C, D, E, H, L       byte
	A2, F2, B2, C2, D2, E2, H2, L2 byte
	IX, IY, SP, PC, WZ           uint16
	I, R                         byte
	IM                           byte
	IFF1, IFF2, Halted           bool
}

// GetRegisters returns a snapshot of the visible register state.
func (c *Core[P]) GetRegisters() RegisterSnapshot {
	r := &c.Regs
	return RegisterSnapshot{
		A: r.A, F: r.F, B: r.B, C: r.C, D: r.D, E: r.E, H: r.H, L: r.L,
		A2: r.A2, F2: r.F2, B2: r.B2, C2: r.C2, D2: r.D2, E2: r.E2, H2: r.H2, L2: r.L2,
		IX: r.IX, IY: r.IY, SP: r.SP, PC: r.PC, WZ: r.WZ,
		I: r.I, R: r.R7(), IM: r.IM,
		IFF1: r.IFF1, IFF2: r.IFF2, Halted: r.Halted,
	}
}

// SetRegister writes a single 8/16-bit register by ID. 16-bit IDs accept
// the full width; 8-bit IDs are truncated from value.
func (c *Core[P]) SetRegister(id RegisterID, value uint16) {
	r := &c.Regs
	b := byte(value)
	switch id {
	case RegA:
		r.A = b
	case RegF:
		r.F = b
	case RegB:
		r.B = b
	case RegC:
		r.C = b
	case RegD:
		r.D = b
	case RegE:
		r.E = b
	case RegH:
		r.H = b
	case RegL:
		r.L = b
	case RegA2:
		r.A2 = b
	case RegF2:
		r.F2 = b
	case RegB2:
		r.B2 = b
	case RegC2:
		r.C2 = b
	case RegD2:
		r.D2 = b
	case RegE2:
		r.E2 = b
	case RegH2:
		r.H2 = b
	case RegL2:
		r.L2 = b
	case RegIX:
		r.IX = value
	case RegIY:
		r.IY = value
	case RegSP:
		r.SP = value
	case RegPC:
		r.PC = value
	case RegI:
		r.I = b
	case RegR:
		r.SetR7(b)
	case RegIM:
		r.IM = b
	case RegWZ:
		r.WZ = value
	}
}
