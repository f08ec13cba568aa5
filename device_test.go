package cpucore

import "testing"

func TestUnmappedDeviceReadsAllOnes(t *testing.T) {
	var d unmappedDevice
	requireEqualU8(t, "ReadMem", d.ReadMem(0x1234, 0), 0xFF)
	requireEqualU8(t, "PeekMem", d.PeekMem(0x1234), 0xFF)
	requireEqualU8(t, "ReadIO", d.ReadIO(0x98, 0), 0xFF)
	requireEqualU8(t, "PeekIO", d.PeekIO(0x98), 0xFF)
}

func TestUnmappedDeviceWritesAreNoOps(t *testing.T) {
	var d unmappedDevice
	d.WriteMem(0x1234, 0x42, 0)
	d.WriteIO(0x98, 0x42, 0)
	requireEqualU8(t, "ReadMem after write", d.ReadMem(0x1234, 0), 0xFF)
}

func TestUnmappedDeviceHasNoCacheLine(t *testing.T) {
	var d unmappedDevice
	if d.GetReadCacheLine(0x0000) != nil {
		t.Fatal("unmappedDevice must never offer a direct cache line")
	}
	if d.GetWriteCacheLine(0x0000) != nil {
		t.Fatal("unmappedDevice must never offer a direct cache line")
	}
}

type fakeIODevice struct {
	readValue byte
	writes    []byte
}

func (f *fakeIODevice) ReadIO(port byte, time uint64) byte { return f.readValue }
func (f *fakeIODevice) WriteIO(port byte, value byte, time uint64) {
	f.writes = append(f.writes, value)
}
func (f *fakeIODevice) PeekIO(port byte) byte { return f.readValue }

func TestMultiIODeviceReadsFirstClaimant(t *testing.T) {
	a := &fakeIODevice{readValue: 0x11}
	b := &fakeIODevice{readValue: 0x22}
	m := &multiIODevice{devices: []IODevice{a, b}}
	requireEqualU8(t, "ReadIO", m.ReadIO(0x98, 0), 0x11)
	requireEqualU8(t, "PeekIO", m.PeekIO(0x98), 0x11)
}

func TestMultiIODeviceFansOutWrites(t *testing.T) {
	a := &fakeIODevice{}
	b := &fakeIODevice{}
	m := &multiIODevice{devices: []IODevice{a, b}}
	m.WriteIO(0x98, 0x42, 0)
	if len(a.writes) != 1 || a.writes[0] != 0x42 {
		t.Fatalf("device a did not receive the fanned-out write: %v", a.writes)
	}
	if len(b.writes) != 1 || b.writes[0] != 0x42 {
		t.Fatalf("device b did not receive the fanned-out write: %v", b.writes)
	}
}

func TestMultiIODeviceEmptyReadsAllOnes(t *testing.T) {
	m := &multiIODevice{}
	requireEqualU8(t, "ReadIO on empty fan-out", m.ReadIO(0x98, 0), 0xFF)
}
