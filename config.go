// config.go - declarative machine construction
//
// Grounded on the teacher's CPUZ80Config (cpu_z80_runner.go): a small,
// flat struct the runner fills in before building its CPU_Z80 + bus, kept
// here in the same shape but describing an MSX 4x4-slot geometry instead
// of the teacher's fixed flat address space plus bank-window registers.

package cpucore

// DeviceSlot places one MemDevice into the slot map at construction time.
type DeviceSlot struct {
	Primary, Secondary, Page int
	Device                   MemDevice
}

// PortDevice registers one IODevice at a single port at construction time.
type PortDevice struct {
	Port   byte
	Device IODevice
}

// SlotConfig describes the complete 4x4x4 slot geometry for one machine:
// which primaries are expanded, and what device sits in each occupied
// slot/page. Primaries not mentioned in Expanded default to flat (not
// expanded); pages not mentioned in Devices are left on the unmapped
// device installed by NewSlotMap.
type SlotConfig struct {
	Expanded [4]bool
	Devices  []DeviceSlot
}

// MachineConfig is everything BuildMachine needs to wire a Core[P]: the
// slot geometry, the I/O port devices, and the wait-state/policy knobs
// spec §5 leaves as board-specific numbers rather than CPU-core constants.
type MachineConfig struct {
	Slots SlotConfig
	Ports []PortDevice

	MemWaitStates int
	M1WaitStates  int

	// ClockFreqHz selects the tick rate (DefaultZ80FreqHz/DefaultR800FreqHz
	// are the two MSX-standard values); 0 defaults to DefaultZ80FreqHz.
	ClockFreqHz uint64

	// WarnLog receives a message whenever two devices are registered on
	// the same I/O port (spec §7 "device conflict"); nil keeps the bus's
	// default logger, which writes to stderr. The port is fanned out via
	// multiIODevice either way.
	WarnLog func(format string, args ...any)
}

// Machine bundles the constructed Bus, SlotMap and Clock around a Core[P],
// the unit BuildMachine returns - the three pieces a host (cmd/zexrun, a
// future board model) needs to drive the emulated CPU and feed it devices
// after construction (RaiseIRQ/RaiseNMI, ScheduleSyncPoint, etc).
type Machine[P Policy] struct {
	Core  *Core[P]
	Bus   *Bus
	Slots *SlotMap
	Clock *Clock
}

// BuildMachine assembles a complete Machine from cfg: a slot map, a bus
// wired to it, and a Core[P] running under policy pol. Returns a
// ConfigError (never panics) if cfg describes an invalid slot or a port
// conflict policy BuildMachine itself, not RegisterIO's warn-and-fan-out,
// is asked to reject - callers that want multi-device ports should
// use Bus.RegisterIO directly after construction instead of listing both
// devices under the same PortDevice.Port here.
func BuildMachine[P Policy](cfg MachineConfig, pol P) (*Machine[P], error) {
	slots := NewSlotMap()
	for p := 0; p < 4; p++ {
		if cfg.Slots.Expanded[p] {
			if err := slots.Expand(p, true); err != nil {
				return nil, newConfigError("slot", "expanding primary %d: %v", p, err)
			}
		}
	}
	for _, d := range cfg.Slots.Devices {
		if d.Device == nil {
			return nil, newConfigError("slot", "primary=%d secondary=%d page=%d: nil device",
				d.Primary, d.Secondary, d.Page)
		}
		if err := slots.RegisterDevice(d.Primary, d.Secondary, d.Page, d.Device); err != nil {
			return nil, newConfigError("slot", "primary=%d secondary=%d page=%d: %v",
				d.Primary, d.Secondary, d.Page, err)
		}
	}

	clock := NewClock(cfg.ClockFreqHz)
	bus := NewBus(slots, clock)
	bus.SetMemWaitStates(cfg.MemWaitStates)
	bus.SetM1WaitStates(cfg.M1WaitStates)
	if cfg.WarnLog != nil {
		bus.SetWarnLogger(cfg.WarnLog)
	}

	seenPorts := make(map[byte]bool, len(cfg.Ports))
	for _, pd := range cfg.Ports {
		if pd.Device == nil {
			return nil, newConfigError("port", "port 0x%02X: nil device", pd.Port)
		}
		if seenPorts[pd.Port] {
			return nil, newConfigError("port", "port 0x%02X registered twice in the same MachineConfig", pd.Port)
		}
		seenPorts[pd.Port] = true
		bus.RegisterIO(pd.Port, pd.Device)
	}

	core := NewCore[P](bus, clock, pol)
	return &Machine[P]{Core: core, Bus: bus, Slots: slots, Clock: clock}, nil
}
