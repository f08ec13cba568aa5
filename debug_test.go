package cpucore

import "testing"

func TestBreakpointSetClearHasList(t *testing.T) {
	r := newZ80TestRig()
	if r.core.HasBreakpoint(0x1000) {
		t.Fatal("no breakpoint should be registered yet")
	}
	r.core.SetBreakpoint(0x1000)
	if !r.core.HasBreakpoint(0x1000) {
		t.Fatal("SetBreakpoint must register the address")
	}
	list := r.core.ListBreakpoints()
	if len(list) != 1 || list[0] != 0x1000 {
		t.Fatalf("ListBreakpoints = %v, want [0x1000]", list)
	}
	r.core.ClearBreakpoint(0x1000)
	if r.core.HasBreakpoint(0x1000) {
		t.Fatal("ClearBreakpoint must remove the address")
	}
}

func TestSignalBreakInvokesHook(t *testing.T) {
	r := newZ80TestRig()
	var seen uint16
	r.core.SetBreakHook(func(pc uint16) { seen = pc })
	r.core.Regs.PC = 0x4242
	r.core.SignalBreak()
	requireEqualU16(t, "hook received current PC", seen, 0x4242)
}

func TestCheckBreakpointEntersBreakedAndSignals(t *testing.T) {
	r := newZ80TestRig()
	var signalled bool
	r.core.SetBreakHook(func(uint16) { signalled = true })
	r.core.Regs.PC = 0x1000
	r.core.SetBreakpoint(0x1000)

	if !r.core.checkBreakpoint(false) {
		t.Fatal("checkBreakpoint must report true at a set breakpoint")
	}
	if r.core.State() != StateBreaked {
		t.Fatal("State must report StateBreaked after checkBreakpoint trips")
	}
	if !signalled {
		t.Fatal("checkBreakpoint must call SignalBreak")
	}
}

func TestCheckBreakpointSuppressedWhenInterruptAboutToBeAccepted(t *testing.T) {
	r := newZ80TestRig()
	r.core.Regs.PC = 0x1000
	r.core.SetBreakpoint(0x1000)
	if r.core.checkBreakpoint(true) {
		t.Fatal("a breakpoint on the interrupt vector address must not misfire on ordinary IRQ entry")
	}
	if r.core.State() == StateBreaked {
		t.Fatal("suppressed breakpoint check must not enter BREAKED")
	}
}

func TestStepDoesNothingWhileBreaked(t *testing.T) {
	r := newZ80TestRig()
	r.load(0x0000, []byte{0x3C}) // INC A
	r.core.Regs.PC = 0x0000
	r.core.Regs.A = 0x00
	r.core.SetBreakpoint(0x0000)
	r.core.Step() // trips the breakpoint instead of executing INC A
	requireEqualU8(t, "A untouched: breakpoint trips before the opcode runs", r.core.Regs.A, 0x00)

	r.core.Step() // breaked: must still do nothing
	requireEqualU8(t, "A still untouched while breaked", r.core.Regs.A, 0x00)

	r.core.Continue()
	r.core.Step()
	requireEqualU8(t, "A incremented once Continue lifts the break", r.core.Regs.A, 0x01)
}

func TestStateReflectsHaltedWhenNotBreaked(t *testing.T) {
	r := newZ80TestRig()
	r.core.Regs.Halted = true
	if r.core.State() != StateHalted {
		t.Fatal("State must report StateHalted")
	}
}

func TestStateReflectsRunningByDefault(t *testing.T) {
	r := newZ80TestRig()
	if r.core.State() != StateRunning {
		t.Fatal("State must default to StateRunning")
	}
}

func TestGetSetRegisterRoundTrip(t *testing.T) {
	r := newZ80TestRig()
	r.core.SetRegister(RegA, 0x12)
	r.core.SetRegister(RegPC, 0x8000)
	r.core.SetRegister(RegR, 0x7F)
	snap := r.core.GetRegisters()
	requireEqualU8(t, "A", snap.A, 0x12)
	requireEqualU16(t, "PC", snap.PC, 0x8000)
	requireEqualU8(t, "R", snap.R, 0x7F)
}

func TestGetRegistersSnapshotsShadowSet(t *testing.T) {
	r := newZ80TestRig()
	r.core.Regs.A, r.core.Regs.F = 0x01, 0x02
	r.core.Regs.ExAF()
	snap := r.core.GetRegisters()
	requireEqualU8(t, "A2 holds the pre-EX AF value", snap.A2, 0x01)
	requireEqualU8(t, "A reflects the post-EX AF (reset A' = 0xFF) value", snap.A, 0xFF)
}

func TestPopReturnAddressMimicsRET(t *testing.T) {
	r := newZ80TestRig()
	r.core.Regs.SP = 0x2000
	r.core.push(0xABCD)
	addr := r.core.PopReturnAddress()
	requireEqualU16(t, "popped address", addr, 0xABCD)
	requireEqualU16(t, "SP restored", r.core.Regs.SP, 0x2000)
}
