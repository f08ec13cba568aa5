package cpucore

import "testing"

func TestParityKnownValues(t *testing.T) {
	cases := []struct {
		v    byte
		even bool
	}{
		{0x00, true},  // zero bits set
		{0x01, false}, // one bit set
		{0x03, true},  // two bits set
		{0xFF, true},  // eight bits set
		{0x0F, true},  // four bits set
		{0x07, false}, // three bits set
	}
	for _, c := range cases {
		got := Parity(c.v)&FlagPV != 0
		if got != c.even {
			t.Errorf("Parity(0x%02X) even=%v, want %v", c.v, got, c.even)
		}
	}
}

func TestZSZeroSetsZeroFlagOnly(t *testing.T) {
	got := ZS(0)
	requireFlag(t, "Z", got, FlagZ, true)
	requireFlag(t, "S", got, FlagS, false)
}

func TestZSNegativeSetsSignFlag(t *testing.T) {
	got := ZS(0x80)
	requireFlag(t, "S", got, FlagS, true)
	requireFlag(t, "Z", got, FlagZ, false)
}

func TestZSXYCarriesBits3And5(t *testing.T) {
	// 0x28 = 0010_1000: bit 5 and bit 3 both set, not zero, not negative.
	got := ZSXY(0x28)
	requireFlag(t, "Y", got, FlagY, true)
	requireFlag(t, "X", got, FlagX, true)
	requireFlag(t, "Z", got, FlagZ, false)
	requireFlag(t, "S", got, FlagS, false)
}

func TestZSPHAlwaysSetsH(t *testing.T) {
	for _, v := range []byte{0x00, 0x01, 0xFF, 0x80} {
		got := ZSPH(v)
		requireFlag(t, "H", got, FlagH, true)
	}
}

func TestZSPMatchesParity(t *testing.T) {
	for i := 0; i < 256; i++ {
		v := byte(i)
		want := Parity(v)&FlagPV != 0
		got := ZSP(v)&FlagPV != 0
		if got != want {
			t.Fatalf("ZSP(0x%02X) parity=%v, want %v", v, got, want)
		}
	}
}
