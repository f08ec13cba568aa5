// errors.go - error taxonomy (spec §7: programmer error, configuration
// error, device conflict, emulated-CPU error)
//
// Grounded on the teacher's own mixed style: coprocessor_manager.go returns
// plain fmt.Errorf-wrapped errors for recoverable setup problems and panics
// for invariant violations it treats as programmer bugs; this module keeps
// that split rather than inventing a single error type for everything.

package cpucore

import "fmt"

// ConfigError reports a problem discovered while constructing a machine
// from a MachineConfig - bad slot geometry, a missing device, a port
// listed twice in the same config. These are caller mistakes discovered at
// setup time, not emulated-CPU behaviour, so they are returned, never
// panicked (spec §7 "configuration error").
type ConfigError struct {
	Component string // "slot" or "port"
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cpucore: config error in %s: %s", e.Component, e.Reason)
}

func newConfigError(component, format string, args ...any) *ConfigError {
	return &ConfigError{Component: component, Reason: fmt.Sprintf(format, args...)}
}

// assertf panics with a formatted message when cond is false. Reserved for
// invariants this module itself is responsible for maintaining (Clock
// moved backwards by AdvanceTo, LowerIRQ/LowerNMI without a matching
// raise) - never for device or configuration mistakes, which return
// ConfigError instead.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("cpucore: assertion failed: "+format, args...))
	}
}
