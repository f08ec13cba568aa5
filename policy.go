// policy.go - the Z80/R800 divergence point: one generic Core, two Policies

package cpucore

// Policy captures every place the Z80 and R800 cores diverge: raw cycle
// costs, undocumented-flag behaviour, and the handful of R800-only timing
// quirks (page-break penalty, even-cycle I/O alignment, SLL legality,
// MULUB/MULUW). Core is written once, generically over Policy, instead of
// duplicating the interpreter per CPU variant - the Go-native answer to
// what the original project expressed as two near-identical C++ classes
// generated from a shared template.
//
// Method names spell out the instruction class they cost, mirroring the
// teacher's own cycle-count switch in cpu_z80.go rather than inventing a
// new naming scheme.
type Policy interface {
	// Name identifies the policy for logging/debug reporting.
	Name() string

	// CCMain1 is the base M1 cost of every unprefixed/ED/CB opcode fetch
	// (4 cycles on the Z80, 1 on the R800).
	CCMain1() int

	// CCIndexPrefix is the extra cost of a DD/FD prefix byte.
	CCIndexPrefix() int

	// CCIndexedDisp is the extra cost of reading the (IX+d)/(IY+d)
	// displacement byte and computing the effective address.
	CCIndexedDisp() int

	// SLLIsLegal reports whether the undocumented CB opcode 0x30-0x37
	// (SLL r) executes as SLL. On the R800 (false) the opcode instead sets
	// C from bit 7 of A and clears S/Z/H/PV/N, leaving the operand, X/Y
	// and the timing unchanged (spec §5.5).
	SLLIsLegal() bool

	// HasMultiply reports whether the ED-prefixed MULUB (0xC1-0xF9, step 8)
	// and MULUW (0xC3-0xF3, step 16) opcodes are implemented (R800-only,
	// spec §5.6).
	HasMultiply() bool

	// PreservesUndocXY reports whether the undocumented X/Y flags are left
	// untouched (copied from the previous F) by ordinary arithmetic/shift
	// ALU results, rather than taken from the result byte. False on Z80
	// (X/Y always follow the result); true on R800. Logical AND/OR/XOR and
	// BIT n,(HL)/(IX+d) are unaffected by this hook - both chips always
	// take X/Y from the result (AND/OR/XOR) or from the address high byte
	// (BIT), per spec §4.4.
	PreservesUndocXY() bool

	// CCFPreservesH reports whether CCF leaves the H flag as it was (true,
	// R800) rather than setting H from the previous C flag (false, Z80).
	// SCF clears H on both chips regardless.
	CCFPreservesH() bool

	// PageBreakPenalty returns the extra cycles charged when a taken
	// relative jump's target address falls on a different 256-byte page
	// than the instruction after the jump (R800-only; spec §4.6/§5.5).
	PageBreakPenalty(fromAddr, toAddr uint16) int

	// AlignIO is called before every IN/OUT; on the R800 it advances the
	// clock by one half-cycle if it currently sits on an odd internal
	// half-cycle (even-cycle alignment, spec §4.6), on the Z80 it is a
	// no-op.
	AlignIO(c *Clock)
}

// Z80Policy implements the documented/undocumented NMOS-ish Z80 timing this
// core targets (matching the teacher's single, non-generic CPU_Z80 cycle
// tables and openMSX's Z80 CPUCore instantiation).
type Z80Policy struct{}

func (Z80Policy) Name() string             { return "Z80" }
func (Z80Policy) CCMain1() int             { return 4 }
func (Z80Policy) CCIndexPrefix() int       { return 4 }
func (Z80Policy) CCIndexedDisp() int       { return 8 }
func (Z80Policy) SLLIsLegal() bool         { return true }
func (Z80Policy) HasMultiply() bool        { return false }
func (Z80Policy) PreservesUndocXY() bool   { return false }
func (Z80Policy) CCFPreservesH() bool      { return false }
func (Z80Policy) PageBreakPenalty(uint16, uint16) int { return 0 }
func (Z80Policy) AlignIO(*Clock)           {}

// R800Policy implements the ASCII R800's timing: faster base cycles, no
// SLL, MULUB/MULUW present, and the page-break/alignment penalties
// openMSX's R800 CPUCore subclass applies (original_source/src/cpu).
type R800Policy struct{}

func (R800Policy) Name() string       { return "R800" }
func (R800Policy) CCMain1() int       { return 1 }
func (R800Policy) CCIndexPrefix() int { return 1 }
func (R800Policy) CCIndexedDisp() int { return 2 }
func (R800Policy) SLLIsLegal() bool   { return false }
func (R800Policy) HasMultiply() bool  { return true }
func (R800Policy) PreservesUndocXY() bool { return true }
func (R800Policy) CCFPreservesH() bool    { return true }

func (R800Policy) PageBreakPenalty(fromAddr, toAddr uint16) int {
	if fromAddr>>8 != toAddr>>8 {
		return 1
	}
	return 0
}

func (R800Policy) AlignIO(c *Clock) {
	if c.OddHalfCycle() {
		c.AddHalf(1)
	}
}
