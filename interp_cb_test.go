package cpucore

import "testing"

// execCB assumes the 0xCB prefix byte has already been consumed by
// executeInstruction's dispatch (interp_base.go); these tests load only the
// CB-table suffix byte and call execCB directly, matching that contract.

func TestExecCBRotateOnPlainRegister(t *testing.T) {
	// 00 = RLC B
	r := newZ80TestRig()
	r.load(0x0000, []byte{0x00})
	r.core.Regs.B = 0x80
	r.core.execCB()
	requireEqualU8(t, "RLC B", r.core.Regs.B, 0x01)
	requireFlag(t, "C from bit 7", r.core.Regs.F, FlagC, true)
}

func TestExecCBRotateOnIndirectHL(t *testing.T) {
	// 06 = RLC (HL)
	r := newZ80TestRig()
	r.load(0x0000, []byte{0x06})
	r.core.Regs.SetHL(0x4000)
	r.core.writeMem(0x4000, 0x01)
	r.core.execCB()
	requireEqualU8(t, "RLC (HL)", r.core.readMem(0x4000), 0x02)
}

func TestExecCBBitTestOnRegisterDoesNotTouchMemory(t *testing.T) {
	// 47 = BIT 0,A
	r := newZ80TestRig()
	r.load(0x0000, []byte{0x47})
	r.core.Regs.A = 0x01
	r.core.execCB()
	requireFlag(t, "Z clear, bit is set", r.core.Regs.F, FlagZ, false)
}

func TestExecCBBitTestOnIndirectHLUsesWZForUndocXY(t *testing.T) {
	// 46 = BIT 0,(HL)
	r := newZ80TestRig()
	r.load(0x0000, []byte{0x46})
	r.core.Regs.SetHL(0x4000)
	r.core.Regs.WZ = 0x2800
	r.core.writeMem(0x4000, 0x00)
	r.core.execCB()
	requireFlag(t, "Y from WZ high byte", r.core.Regs.F, FlagY, true)
	requireFlag(t, "X from WZ high byte", r.core.Regs.F, FlagX, true)
}

func TestExecCBResSetOnRegister(t *testing.T) {
	// 87 = RES 0,A ; C7 = SET 0,A
	r := newZ80TestRig()
	r.core.Regs.A = 0xFF
	r.load(0x0000, []byte{0x87})
	r.core.execCB()
	requireEqualU8(t, "RES 0,A", r.core.Regs.A, 0xFE)

	r.load(0x0001, []byte{0xC7})
	r.core.execCB()
	requireEqualU8(t, "SET 0,A", r.core.Regs.A, 0xFF)
}

func TestCBWriteCyclesChargesExtraForIndirectHL(t *testing.T) {
	if cbWriteCycles(6) != 15 {
		t.Fatal("(HL) operand must cost 15 cycles")
	}
	if cbWriteCycles(0) != 8 {
		t.Fatal("register operand must cost 8 cycles")
	}
}

func TestCBRotateShiftSLLLegalOnZ80(t *testing.T) {
	r := newZ80TestRig()
	r.core.Regs.B = 0x01
	r.core.cbRotateShift(rotSLL, 0)
	requireEqualU8(t, "SLL B sets low bit", r.core.Regs.B, 0x03)
}

func TestCBRotateShiftSLLIllegalOnR800SetsFlagsOnlyFromA(t *testing.T) {
	r := newR800TestRig()
	r.core.Regs.B = 0x01 // operand register must NOT be touched by the R800 form
	r.core.Regs.A = 0x80
	r.core.Regs.F = FlagX | FlagY
	r.core.cbRotateShift(rotSLL, 0)
	requireEqualU8(t, "B left untouched", r.core.Regs.B, 0x01)
	requireFlag(t, "C taken from A bit 7", r.core.Regs.F, FlagC, true)
	requireFlag(t, "X preserved", r.core.Regs.F, FlagX, true)
	requireFlag(t, "Y preserved", r.core.Regs.F, FlagY, true)
	requireFlag(t, "Z forced clear", r.core.Regs.F, FlagZ, false)
}
