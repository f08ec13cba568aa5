package cpucore

import "testing"

// testRig wires a flat four-page RAM machine around a Core[P], generalizing
// the teacher's cpuZ80TestRig (cpu_z80_test_helpers_test.go) from its bare
// mem/io byte-array bus to this module's SlotMap/Bus/Clock stack.
type testRig[P Policy] struct {
	slots *SlotMap
	pages [4]*RAM
	bus   *Bus
	clock *Clock
	core  *Core[P]
}

func newTestRig[P Policy](pol P) *testRig[P] {
	slots := NewSlotMap()
	pages := NewPagedRAM(slots)
	clock := NewClock(0)
	bus := NewBus(slots, clock)
	core := NewCore[P](bus, clock, pol)
	return &testRig[P]{slots: slots, pages: pages, bus: bus, clock: clock, core: core}
}

func newZ80TestRig() *testRig[Z80Policy]   { return newTestRig[Z80Policy](Z80Policy{}) }
func newR800TestRig() *testRig[R800Policy] { return newTestRig[R800Policy](R800Policy{}) }

// load writes program starting at start and points PC at it.
func (r *testRig[P]) load(start uint16, program []byte) {
	r.pages[start/0x4000].Load(start, program)
	r.core.Regs.PC = start
}

// run steps the core until PC reaches stopAt or maxSteps instructions have
// executed (a safety valve for a malformed test program that never halts).
func (r *testRig[P]) run(stopAt uint16, maxSteps int) {
	for i := 0; i < maxSteps && r.core.Regs.PC != stopAt; i++ {
		r.core.Step()
	}
}

func requireEqualU16(t *testing.T, name string, got, want uint16) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%04X, want 0x%04X", name, got, want)
	}
}

func requireEqualU8(t *testing.T, name string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", name, got, want)
	}
}

func requireFlag(t *testing.T, name string, f byte, mask byte, want bool) {
	t.Helper()
	got := f&mask != 0
	if got != want {
		t.Fatalf("flag %s = %v, want %v (F=0x%02X)", name, got, want, f)
	}
}
