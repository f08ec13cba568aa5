// device.go - the capability-set contract the bus router dispatches to

package cpucore

// MemDevice is implemented by anything that can be mapped into a memory
// page of the slot map. PeekMem must be side-effect-free (used by tooling:
// disassembly, memory-view, debug hooks). GetReadCacheLine/GetWriteCacheLine
// are optional: returning nil means "always call ReadMem/WriteMem", and is
// the correct, safe default for any device with read/write side effects.
type MemDevice interface {
	ReadMem(addr uint16, time uint64) byte
	WriteMem(addr uint16, value byte, time uint64)
	PeekMem(addr uint16) byte

	// GetReadCacheLine/GetWriteCacheLine return a direct backing pointer
	// for the 256-byte line starting at baseAddr (baseAddr&0xFF == 0), or
	// nil if that line cannot be serviced without a call into the device.
	GetReadCacheLine(baseAddr uint16) []byte
	GetWriteCacheLine(baseAddr uint16) []byte
}

// IODevice is implemented by anything mapped into the 256-entry I/O port
// table. PeekIO must be side-effect-free.
type IODevice interface {
	ReadIO(port byte, time uint64) byte
	WriteIO(port byte, value byte, time uint64)
	PeekIO(port byte) byte
}

// unmappedDevice answers every memory access with 0xFF and ignores writes;
// it is what every page/port starts out wired to before a real device is
// registered, matching openMSX's DummyDevice (MSXCPUInterface.cc wires
// every primary/secondary/page slot and every I/O port to one before any
// real device registers).
type unmappedDevice struct{}

func (unmappedDevice) ReadMem(addr uint16, time uint64) byte         { return 0xFF }
func (unmappedDevice) WriteMem(addr uint16, value byte, time uint64) {}
func (unmappedDevice) PeekMem(addr uint16) byte                      { return 0xFF }
func (unmappedDevice) GetReadCacheLine(baseAddr uint16) []byte       { return nil }
func (unmappedDevice) GetWriteCacheLine(baseAddr uint16) []byte      { return nil }

func (unmappedDevice) ReadIO(port byte, time uint64) byte          { return 0xFF }
func (unmappedDevice) WriteIO(port byte, value byte, time uint64)  {}
func (unmappedDevice) PeekIO(port byte) byte                       { return 0xFF }

var dummyDevice MemDevice = unmappedDevice{}
var dummyIODevice IODevice = unmappedDevice{}

// multiIODevice fans a single port out to several devices claiming it: a
// read returns the first device's value, a write is multicast to all of
// them. Modeled directly on openMSX's MSXMultiIODevice: allowed conflicts
// are a normal, logged occurrence, not a fatal error (spec §7).
type multiIODevice struct {
	devices []IODevice
}

func (m *multiIODevice) ReadIO(port byte, time uint64) byte {
	if len(m.devices) == 0 {
		return 0xFF
	}
	return m.devices[0].ReadIO(port, time)
}

func (m *multiIODevice) WriteIO(port byte, value byte, time uint64) {
	for _, d := range m.devices {
		d.WriteIO(port, value, time)
	}
}

func (m *multiIODevice) PeekIO(port byte) byte {
	if len(m.devices) == 0 {
		return 0xFF
	}
	return m.devices[0].PeekIO(port)
}
