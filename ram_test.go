package cpucore

import "testing"

func TestRAMReadWriteRoundTrip(t *testing.T) {
	r := NewRAM(0x4000)
	r.WriteMem(0x4010, 0x99, 0)
	requireEqualU8(t, "ReadMem", r.ReadMem(0x4010, 0), 0x99)
	requireEqualU8(t, "PeekMem agrees with ReadMem", r.PeekMem(0x4010), 0x99)
}

func TestRAMZeroInitialized(t *testing.T) {
	r := NewRAM(0x0000)
	requireEqualU8(t, "fresh RAM reads zero", r.ReadMem(0x1234, 0), 0x00)
}

func TestRAMCacheLinesAreDirectSlicesIntoBackingArray(t *testing.T) {
	r := NewRAM(0x4000)
	line := r.GetWriteCacheLine(0x4000)
	line[5] = 0x77
	requireEqualU8(t, "mutation through the cache line is visible via ReadMem", r.ReadMem(0x4005, 0), 0x77)
}

func TestRAMLoadCopiesBytesAtOffset(t *testing.T) {
	r := NewRAM(0x8000)
	r.Load(0x8010, []byte{1, 2, 3})
	requireEqualU8(t, "byte 0", r.ReadMem(0x8010, 0), 1)
	requireEqualU8(t, "byte 1", r.ReadMem(0x8011, 0), 2)
	requireEqualU8(t, "byte 2", r.ReadMem(0x8012, 0), 3)
}

func TestNewPagedRAMCoversAllFourPages(t *testing.T) {
	slots := NewSlotMap()
	pages := NewPagedRAM(slots)
	for i, p := range pages {
		if p == nil {
			t.Fatalf("page %d is nil", i)
		}
		if slots.visible(i) != p {
			t.Fatalf("page %d not visible in the slot map at its own page index", i)
		}
	}
}
