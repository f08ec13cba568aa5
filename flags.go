// flags.go - precomputed byte-result flag tables

package cpucore

// zsTable, zsxyTable, zspTable, zspxyTable and zsphTable are the five
// 256-entry flag tables the interpreter consults for every byte-valued ALU
// result. They mirror openMSX's CPUCore.cc Table{ZS,ZSXY,ZSP,ZSPXY,ZSPH}
// exactly: Z/S come from the value itself, X/Y are the value's bits 3 and
// 5 (present only in the "XY" variants), P is even parity (present only in
// the "P" variants), and ZSPH additionally forces H set (used by CPL/NEG-
// adjacent paths that always set H regardless of the operand).
var (
	zsTable    [256]byte
	zsxyTable  [256]byte
	zspTable   [256]byte
	zspxyTable [256]byte
	zsphTable  [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		v := byte(i)
		var z byte
		if v == 0 {
			z = FlagZ
		}
		s := v & FlagS
		x := v & FlagX
		y := v & FlagY
		p := Parity(v)

		zsTable[i] = z | s
		zsxyTable[i] = z | s | x | y
		zspTable[i] = z | s | p
		zspxyTable[i] = z | s | x | y | p
		zsphTable[i] = z | s | p | FlagH
	}
}

// Parity returns FlagPV set iff v has an even number of set bits.
func Parity(v byte) byte {
	p := byte(FlagPV)
	for bit := byte(0x80); bit != 0; bit >>= 1 {
		if v&bit != 0 {
			p ^= FlagPV
		}
	}
	return p
}

// ZS looks up the precomputed S/Z flag pair for a byte result.
func ZS(v byte) byte { return zsTable[v] }

// ZSXY looks up S/Z plus the undocumented X/Y bits (bits 3 and 5 of v).
func ZSXY(v byte) byte { return zsxyTable[v] }

// ZSP looks up S/Z/parity.
func ZSP(v byte) byte { return zspTable[v] }

// ZSPXY looks up S/Z/parity plus X/Y.
func ZSPXY(v byte) byte { return zspxyTable[v] }

// ZSPH looks up S/Z/parity with H forced set.
func ZSPH(v byte) byte { return zsphTable[v] }
