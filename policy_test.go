package cpucore

import "testing"

func TestZ80PolicyUndocumentedXYAlwaysFromResult(t *testing.T) {
	if (Z80Policy{}).PreservesUndocXY() {
		t.Fatal("Z80 must always take X/Y from the ALU result, never preserve from previous F")
	}
}

func TestR800PolicyPreservesUndocXY(t *testing.T) {
	if !(R800Policy{}).PreservesUndocXY() {
		t.Fatal("R800 must preserve X/Y from the previous F for ordinary ALU results")
	}
}

func TestZ80PolicySLLIsLegal(t *testing.T) {
	if !(Z80Policy{}).SLLIsLegal() {
		t.Fatal("Z80 must still execute the undocumented SLL opcode")
	}
}

func TestR800PolicySLLIsIllegal(t *testing.T) {
	if (R800Policy{}).SLLIsLegal() {
		t.Fatal("R800 removed SLL; it must report illegal")
	}
}

func TestR800PolicyHasMultiplyZ80DoesNot(t *testing.T) {
	if (Z80Policy{}).HasMultiply() {
		t.Fatal("Z80 must not implement MULUB/MULUW")
	}
	if !(R800Policy{}).HasMultiply() {
		t.Fatal("R800 must implement MULUB/MULUW")
	}
}

func TestZ80PolicyNoPageBreakPenalty(t *testing.T) {
	if (Z80Policy{}).PageBreakPenalty(0x00FF, 0x0100) != 0 {
		t.Fatal("Z80 has no page-break penalty")
	}
}

func TestR800PolicyPageBreakPenaltyOnlyAcrossPages(t *testing.T) {
	p := R800Policy{}
	if p.PageBreakPenalty(0x1234, 0x1299) != 0 {
		t.Fatal("same page must not be penalized")
	}
	if p.PageBreakPenalty(0x12FF, 0x1300) != 1 {
		t.Fatal("crossing a page boundary must cost one extra cycle")
	}
}

func TestR800PolicyAlignIOOnlyWhenOddHalfCycle(t *testing.T) {
	c := NewClock(DefaultR800FreqHz)
	p := R800Policy{}

	p.AlignIO(c)
	if c.OddHalfCycle() {
		t.Fatal("AlignIO must not introduce an odd half-cycle on an already-even clock")
	}

	c.AddHalf(1) // force an odd half-cycle
	p.AlignIO(c)
	if c.OddHalfCycle() {
		t.Fatal("AlignIO must consume the pending odd half-cycle")
	}
}

func TestZ80PolicyAlignIOIsNoOp(t *testing.T) {
	c := NewClock(0)
	c.AddHalf(1)
	before := c.Time()
	(Z80Policy{}).AlignIO(c)
	if c.Time() != before {
		t.Fatal("Z80's AlignIO must never advance the clock")
	}
}
