// ram.go - a plain flat-RAM MemDevice, the simplest possible slot occupant
//
// Not a teacher adaptation of any specific file (the teacher's memory is a
// single flat array behind MachineBus, never its own device type) - written
// in the same minimal style as unmappedDevice in device.go, since every
// concrete device model beyond "holds bytes" is explicitly out of scope
// (spec §1 Non-goals). Exists so cmd/zexrun and tests have something to put
// in a slot without reaching into unexported Bus internals.
package cpucore

// RAM is a fixed-size, zero-initialized byte array mapped into one 16KiB
// page. It implements MemDevice directly, including the cache-line fast
// path, since it has no read/write side effects.
type RAM struct {
	data [0x4000]byte
	base uint16 // the page's base address, for cache-line slicing
}

// NewRAM creates a page of RAM appearing at [base, base+0x4000). base must
// be page-aligned (a multiple of 0x4000); this is not checked. NewPagedRAM
// always passes aligned bases.
func NewRAM(base uint16) *RAM { return &RAM{base: base} }

func (r *RAM) offset(addr uint16) uint16 { return addr - r.base }

func (r *RAM) ReadMem(addr uint16, time uint64) byte { return r.data[r.offset(addr)] }
func (r *RAM) PeekMem(addr uint16) byte              { return r.data[r.offset(addr)] }
func (r *RAM) WriteMem(addr uint16, value byte, time uint64) {
	r.data[r.offset(addr)] = value
}

func (r *RAM) GetReadCacheLine(baseAddr uint16) []byte {
	off := r.offset(baseAddr)
	return r.data[off : off+cacheLineSize]
}

func (r *RAM) GetWriteCacheLine(baseAddr uint16) []byte {
	off := r.offset(baseAddr)
	return r.data[off : off+cacheLineSize]
}

// Load copies data into the page starting at addr, for test/harness setup;
// it is not part of MemDevice and has no bus-cache implications of its own
// because it's meant to run before any Core observes the page.
func (r *RAM) Load(addr uint16, data []byte) {
	copy(r.data[r.offset(addr):], data)
}

// NewPagedRAM builds four RAM pages covering the whole 64KiB address space
// and registers them into primary 0 / secondary 0 of slots, the simplest
// possible machine geometry a harness needs (spec §8's regression-suite
// machines are exactly this: flat RAM, no expansion, no I/O beyond what the
// suite stubs out).
func NewPagedRAM(slots *SlotMap) [4]*RAM {
	var pages [4]*RAM
	for page := 0; page < 4; page++ {
		r := NewRAM(uint16(page) * 0x4000)
		pages[page] = r
		_ = slots.RegisterDevice(0, 0, page, r)
	}
	return pages
}
