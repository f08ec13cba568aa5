// slot.go - the 4x4x4 MSX primary/secondary slot switcher

package cpucore

import "fmt"

// SlotMap is the 4x4x4 address-space switcher through which every CPU
// memory access is routed: four primary slots, each optionally "expanded"
// into four secondary slots, each of the resulting sixteen combinations
// holding one device per 16KiB page. Grounded directly on openMSX's
// MSXCPUInterface.cc (primarySlotState/subSlotRegister/isSubSlotted and the
// exact port-0xA8 / 0xFFFF wire protocol); the teacher has no equivalent of
// its own.
type SlotMap struct {
	layout [4][4][4]MemDevice // [primary][secondary][page]

	expanded    [4]bool // primary slot is expanded into secondaries
	subRegister [4]byte // latched secondary-select register, per primary

	primaryState   [4]byte // selected primary slot, per page (port 0xA8)
	secondaryState [4]byte // selected secondary slot, per page (derived)

	primaryPort byte // last byte written to port 0xA8 (readback)

	bus *Bus // back-reference, for cache invalidation on any slot change
}

// NewSlotMap creates a slot map with every page wired to the unmapped
// device, matching MSXCPUInterface's constructor.
func NewSlotMap() *SlotMap {
	sm := &SlotMap{}
	for p := 0; p < 4; p++ {
		for s := 0; s < 4; s++ {
			for pg := 0; pg < 4; pg++ {
				sm.layout[p][s][pg] = dummyDevice
			}
		}
	}
	return sm
}

// AttachBus lets the slot map invalidate the bus's cache lines whenever a
// slot-state change makes previously cached lines point at the wrong
// device. Must be called once, by Bus's constructor.
func (sm *SlotMap) AttachBus(b *Bus) { sm.bus = b }

// RegisterDevice plugs dev into slot (primary, secondary, page). secondary
// is ignored (and must be 0) for primaries that are not expanded. Returns a
// configuration error (spec §7) if primary/page are out of range or if the
// slot was already explicitly registered with a different device (a
// configuration mistake, not a programmer error, since it is driven by
// externally supplied hardware config - out of this module's scope, but the
// failure mode must still be reported per §7).
func (sm *SlotMap) RegisterDevice(primary, secondary, page int, dev MemDevice) error {
	if primary < 0 || primary > 3 || page < 0 || page > 3 {
		return fmt.Errorf("cpucore: invalid slot (primary=%d page=%d)", primary, page)
	}
	if secondary < 0 || secondary > 3 {
		return fmt.Errorf("cpucore: invalid secondary slot %d", secondary)
	}
	if !sm.expanded[primary] && secondary != 0 {
		return fmt.Errorf("cpucore: primary slot %d is not expanded", primary)
	}
	if old := sm.layout[primary][secondary][page]; old != dummyDevice && old != dev {
		return fmt.Errorf("cpucore: slot %d/%d page %d already has a device", primary, secondary, page)
	}
	sm.layout[primary][secondary][page] = dev
	sm.invalidateIfVisible(primary, secondary, page)
	return nil
}

// Expand marks primary as expanded (subject to secondary-slot selection via
// the 0xFFFF register) or collapses it back to a single flat slot.
// Expanding an already-expanded primary, or any other double-configuration,
// is a configuration error reported at machine-construction time (spec §7);
// it is the caller's (machine builder's) job to only call this once per
// primary before any instruction runs.
func (sm *SlotMap) Expand(primary int, expanded bool) error {
	if primary < 0 || primary > 3 {
		return fmt.Errorf("cpucore: invalid primary slot %d", primary)
	}
	if expanded && sm.expanded[primary] {
		return fmt.Errorf("cpucore: primary slot %d is already expanded", primary)
	}
	sm.expanded[primary] = expanded
	return nil
}

// IsExpanded reports whether primary is a secondary-slotted expansion slot.
func (sm *SlotMap) IsExpanded(primary int) bool { return sm.expanded[primary] }

// visible returns the device currently mapped into page.
func (sm *SlotMap) visible(page int) MemDevice {
	p := sm.primaryState[page]
	s := sm.secondaryState[page]
	return sm.layout[p][s][page]
}

// WritePrimaryPort implements OUT (0xA8),v: v's four 2-bit fields select
// the primary slot visible in pages 3,2,1,0 respectively, and the
// secondary state for each page is re-derived from that primary's latched
// subRegister.
func (sm *SlotMap) WritePrimaryPort(v byte) {
	sm.primaryPort = v
	for page := 0; page < 4; page++ {
		prim := (v >> (byte(page) * 2)) & 3
		sm.primaryState[page] = prim
		sm.secondaryState[page] = (sm.subRegister[prim] >> (byte(page) * 2)) & 3
	}
	sm.invalidateAll()
}

// ReadPrimaryPort implements IN (0xA8): returns the last written value.
func (sm *SlotMap) ReadPrimaryPort() byte { return sm.primaryPort }

// setSubSlot latches value into primary's secondary-select register and
// re-derives secondaryState for every page currently showing that primary -
// the 0xFFFF write path.
func (sm *SlotMap) setSubSlot(primary byte, value byte) {
	sm.subRegister[primary] = value
	for page := 0; page < 4; page++ {
		if sm.primaryState[page] == primary {
			sm.secondaryState[page] = (value >> (byte(page) * 2)) & 3
		}
	}
	sm.invalidateAll()
}

// handle0xFFFFWrite implements the special case described in spec §4.3/§6.2:
// if the primary selected on page 3 is expanded, the byte latches into that
// primary's secondary register instead of reaching a device. Returns true
// if it handled the write (caller must not also forward it to a device).
func (sm *SlotMap) handle0xFFFFWrite(value byte) bool {
	prim := sm.primaryState[3]
	if !sm.expanded[prim] {
		return false
	}
	sm.setSubSlot(prim, value)
	return true
}

// handle0xFFFFRead implements the read side of the same special case:
// value ^ 0xFF of the secondary register, only when page 3's primary is
// expanded.
func (sm *SlotMap) handle0xFFFFRead() (byte, bool) {
	prim := sm.primaryState[3]
	if !sm.expanded[prim] {
		return 0, false
	}
	return sm.subRegister[prim] ^ 0xFF, true
}

func (sm *SlotMap) invalidateIfVisible(primary, secondary, page int) {
	if sm.bus == nil {
		return
	}
	if int(sm.primaryState[page]) == primary && int(sm.secondaryState[page]) == secondary {
		sm.bus.invalidatePage(page)
	}
}

func (sm *SlotMap) invalidateAll() {
	if sm.bus == nil {
		return
	}
	sm.bus.InvalidateCache(0, 256)
}
