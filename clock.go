// clock.go - monotone tick counter for the Z80/R800 CPU core

package cpucore

// Clock is a 64-bit fixed-frequency tick counter. It converts cycle counts
// to absolute time and back without ever going backwards, even across a
// frequency retune (SetFreq preserves the current instant).
//
// The Z80 clock defaults to 3,579,545 Hz (the MSX main clock divided by
// one); R800 runs at twice that, 7,159,090 Hz, and additionally tracks
// half-ticks internally so even-cycle alignment checks (see Policy's
// AlignIO) can be computed without rounding error.
type Clock struct {
	ticks     uint64
	halfTicks uint64 // ticks*2 + (odd half flag); authoritative counter
	freq      uint64 // Hz
}

const (
	DefaultZ80FreqHz  = 3579545
	DefaultR800FreqHz = 2 * DefaultZ80FreqHz
)

// NewClock creates a Clock running at freqHz, starting at tick 0.
func NewClock(freqHz uint64) *Clock {
	if freqHz == 0 {
		freqHz = DefaultZ80FreqHz
	}
	return &Clock{freq: freqHz}
}

// Add advances the clock by n whole cycles. O(1).
func (c *Clock) Add(n uint64) {
	c.ticks += n
	c.halfTicks += 2 * n
}

// AddHalf advances the clock by n half-cycles (R800 internal accounting).
func (c *Clock) AddHalf(n uint64) {
	c.halfTicks += n
	c.ticks = c.halfTicks / 2
}

// AdvanceTo moves the clock forward to an absolute tick value. It is a
// programmer error to move it backwards.
func (c *Clock) AdvanceTo(target uint64) {
	assertf(target >= c.ticks, "Clock.AdvanceTo moves backwards: target=%d ticks=%d", target, c.ticks)
	c.halfTicks += 2 * (target - c.ticks)
	c.ticks = target
}

// Time returns the current absolute tick count.
func (c *Clock) Time() uint64 { return c.ticks }

// TimeFast is an alias for Time: this core has no notion of syncing to a
// real wall-clock, so there is nothing extra to skip.
func (c *Clock) TimeFast() uint64 { return c.ticks }

// OddHalfCycle returns whether the clock currently sits on an odd internal
// half-cycle (only meaningful for the R800 policy's alignment checks).
func (c *Clock) OddHalfCycle() bool { return c.halfTicks%2 != 0 }

// Freq returns the configured frequency in Hz.
func (c *Clock) Freq() uint64 { return c.freq }

// SetFreq retunes the clock without losing the current absolute instant:
// the tick counter is left untouched, only the Hz-to-tick conversion used by
// CalcTime changes going forward.
func (c *Clock) SetFreq(freqHz uint64) {
	if freqHz == 0 {
		return
	}
	c.freq = freqHz
}

// CalcTime returns the absolute tick reached by starting at base and
// running cycles further, at the clock's current frequency. Since ticks and
// cycles share the same unit in this core (one tick per clock cycle),
// CalcTime is the identity shift used by callers that only ever think in
// terms of a running cycle counter.
func (c *Clock) CalcTime(base uint64, cycles uint64) uint64 {
	return base + cycles
}
