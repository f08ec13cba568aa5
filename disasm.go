// disasm.go - single-instruction disassembler for debug tooling
//
// Adapted from the teacher's debug_disasm_z80.go (decodeZ80Base/CB/ED/DDFD,
// z80Reg8/z80Reg16/z80Cond/z80ALU tables) almost verbatim - the teacher
// already implements exactly this spec operation for its own Machine
// Monitor, just against the documented Z80 opcode set instead of this
// module's full MSX register file.

package cpucore

import "fmt"

var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var reg16Names = [4]string{"BC", "DE", "HL", "SP"}
var reg16Names2 = [4]string{"BC", "DE", "HL", "AF"}
var condNamesStr = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}
var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

func idxReg8Names(idx index) [8]string {
	names := reg8Names
	switch idx {
	case idxIX:
		names[4], names[5], names[6] = "IXH", "IXL", "(IX+d)"
	case idxIY:
		names[4], names[5], names[6] = "IYH", "IYL", "(IY+d)"
	}
	return names
}

func idxReg16Names(idx index) [4]string {
	names := reg16Names
	switch idx {
	case idxIX:
		names[2] = "IX"
	case idxIY:
		names[2] = "IY"
	}
	return names
}

// Disassemble decodes one instruction at addr via PeekMem (side-effect
// free) and returns its mnemonic text and encoded length in bytes.
func (c *Core[P]) Disassemble(addr uint16) (string, int) {
	start := addr
	read := func() byte {
		v := c.Bus.PeekMem(addr)
		addr++
		return v
	}

	op := read()
	idx := idxNone
	for op == 0xDD || op == 0xFD {
		if op == 0xDD {
			idx = idxIX
		} else {
			idx = idxIY
		}
		op = read()
	}

	var text string
	switch op {
	case 0xCB:
		if idx == idxNone {
			text = disasmCB(read())
		} else {
			d := int8(read())
			text = disasmIndexedCB(idx, d, read())
		}
	case 0xED:
		text = disasmED(read)
	default:
		text = disasmBase(op, idx, read)
	}
	return text, int(addr - start)
}

func disasmBase(op byte, idx index, read func() byte) string {
	x, y, z, p, q := xOf(op), yOf(op), zOf(op), pOf(op), qOf(op)
	r8 := idxReg8Names(idx)
	r16 := idxReg16Names(idx)

	// An (IX+d)/(IY+d) operand is followed by its displacement byte.
	if idx != idxNone && ((x == 1 && (y == 6 || z == 6) && op != 0x76) ||
		(x == 2 && z == 6) || (x == 0 && y == 6 && z >= 4 && z <= 6)) {
		read()
	}

	switch x {
	case 1:
		if z == 6 && y == 6 {
			return "HALT"
		}
		return fmt.Sprintf("LD %s,%s", r8[y], r8[z])
	case 2:
		return fmt.Sprintf("%s%s", aluNames[y], r8[z])
	case 3:
		return disasmX3(op, idx, read)
	}

	switch z {
	case 0:
		switch {
		case y == 0:
			return "NOP"
		case y == 1:
			return "EX AF,AF'"
		case y == 2:
			return fmt.Sprintf("DJNZ %d", int8(read()))
		case y == 3:
			return fmt.Sprintf("JR %d", int8(read()))
		default:
			return fmt.Sprintf("JR %s,%d", condNamesStr[y-4], int8(read()))
		}
	case 1:
		if q == 0 {
			lo, hi := read(), read()
			return fmt.Sprintf("LD %s,0x%04X", r16[p], pair(hi, lo))
		}
		return fmt.Sprintf("ADD %s,%s", r16[2], r16[p])
	case 2:
		names := [8]string{"LD (BC),A", "LD A,(BC)", "LD (DE),A", "LD A,(DE)", "", "", "", ""}
		switch y {
		case 0, 1, 2, 3:
			return names[y]
		case 4:
			lo, hi := read(), read()
			return fmt.Sprintf("LD (0x%04X),%s", pair(hi, lo), r16[2])
		case 5:
			lo, hi := read(), read()
			return fmt.Sprintf("LD %s,(0x%04X)", r16[2], pair(hi, lo))
		case 6:
			lo, hi := read(), read()
			return fmt.Sprintf("LD (0x%04X),A", pair(hi, lo))
		default:
			lo, hi := read(), read()
			return fmt.Sprintf("LD A,(0x%04X)", pair(hi, lo))
		}
	case 3:
		if q == 0 {
			return fmt.Sprintf("INC %s", r16[p])
		}
		return fmt.Sprintf("DEC %s", r16[p])
	case 4:
		return fmt.Sprintf("INC %s", r8[y])
	case 5:
		return fmt.Sprintf("DEC %s", r8[y])
	case 6:
		return fmt.Sprintf("LD %s,0x%02X", r8[y], read())
	case 7:
		names := [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}
		return names[y]
	}
	return "???"
}

func disasmX3(op byte, idx index, read func() byte) string {
	y, z, p, q := yOf(op), zOf(op), pOf(op), qOf(op)
	r16 := idxReg16Names(idx)
	r162 := func(p byte) string {
		if p == 3 {
			return "AF"
		}
		return r16[p]
	}

	switch z {
	case 0:
		return fmt.Sprintf("RET %s", condNamesStr[y])
	case 1:
		if q == 0 {
			return fmt.Sprintf("POP %s", r162(p))
		}
		switch p {
		case 0:
			return "RET"
		case 1:
			return "EXX"
		case 2:
			return fmt.Sprintf("JP (%s)", r16[2])
		default:
			return fmt.Sprintf("LD SP,%s", r16[2])
		}
	case 2:
		lo, hi := read(), read()
		return fmt.Sprintf("JP %s,0x%04X", condNamesStr[y], pair(hi, lo))
	case 3:
		switch y {
		case 0:
			lo, hi := read(), read()
			return fmt.Sprintf("JP 0x%04X", pair(hi, lo))
		case 2:
			return fmt.Sprintf("OUT (0x%02X),A", read())
		case 3:
			return fmt.Sprintf("IN A,(0x%02X)", read())
		case 4:
			return fmt.Sprintf("EX (SP),%s", r16[2])
		case 5:
			return "EX DE,HL"
		case 6:
			return "DI"
		default:
			return "EI"
		}
	case 4:
		lo, hi := read(), read()
		return fmt.Sprintf("CALL %s,0x%04X", condNamesStr[y], pair(hi, lo))
	case 5:
		if q == 0 {
			return fmt.Sprintf("PUSH %s", r162(p))
		}
		if p == 0 {
			lo, hi := read(), read()
			return fmt.Sprintf("CALL 0x%04X", pair(hi, lo))
		}
		return "???"
	case 6:
		return fmt.Sprintf("%s0x%02X", aluNames[y], read())
	case 7:
		return fmt.Sprintf("RST 0x%02X", y*8)
	}
	return "???"
}

func disasmCB(op byte) string {
	x, y, z := xOf(op), yOf(op), zOf(op)
	switch x {
	case 0:
		return fmt.Sprintf("%s %s", rotNames[y], reg8Names[z])
	case 1:
		return fmt.Sprintf("BIT %d,%s", y, reg8Names[z])
	case 2:
		return fmt.Sprintf("RES %d,%s", y, reg8Names[z])
	default:
		return fmt.Sprintf("SET %d,%s", y, reg8Names[z])
	}
}

func disasmIndexedCB(idx index, d int8, op byte) string {
	reg := "IX"
	if idx == idxIY {
		reg = "IY"
	}
	x, y, z := xOf(op), yOf(op), zOf(op)
	loc := fmt.Sprintf("(%s%+d)", reg, d)
	extra := ""
	if z != 6 {
		extra = "," + reg8Names[z]
	}
	switch x {
	case 0:
		return fmt.Sprintf("%s %s%s", rotNames[y], loc, extra)
	case 1:
		return fmt.Sprintf("BIT %d,%s", y, loc)
	case 2:
		return fmt.Sprintf("RES %d,%s%s", y, loc, extra)
	default:
		return fmt.Sprintf("SET %d,%s%s", y, loc, extra)
	}
}

func disasmED(read func() byte) string {
	op := read()
	x, y, z, p, q := xOf(op), yOf(op), zOf(op), pOf(op), qOf(op)

	if x == 2 && y >= 4 && z <= 3 {
		names := [4][4]string{
			{"LDI", "CPI", "INI", "OUTI"},
			{"LDD", "CPD", "IND", "OUTD"},
			{"LDIR", "CPIR", "INIR", "OTIR"},
			{"LDDR", "CPDR", "INDR", "OTDR"},
		}
		row := y - 4
		return names[row][z]
	}

	if x == 1 {
		r16 := reg16Names
		switch z {
		case 0:
			if y == 6 {
				return "IN (C)"
			}
			return fmt.Sprintf("IN %s,(C)", reg8Names[y])
		case 1:
			if y == 6 {
				return "OUT (C),0"
			}
			return fmt.Sprintf("OUT (C),%s", reg8Names[y])
		case 2:
			if q == 0 {
				return fmt.Sprintf("SBC HL,%s", r16[p])
			}
			return fmt.Sprintf("ADC HL,%s", r16[p])
		case 3:
			lo, hi := read(), read()
			if q == 0 {
				return fmt.Sprintf("LD (0x%04X),%s", pair(hi, lo), r16[p])
			}
			return fmt.Sprintf("LD %s,(0x%04X)", r16[p], pair(hi, lo))
		case 4:
			return "NEG"
		case 5:
			if y == 1 {
				return "RETI"
			}
			return "RETN"
		case 6:
			return fmt.Sprintf("IM %d", [8]byte{0, 0, 1, 2, 0, 0, 1, 2}[y])
		case 7:
			names := [8]string{"LD I,A", "LD R,A", "LD A,I", "LD A,R", "RRD", "RLD", "NOP", "NOP"}
			return names[y]
		}
	}
	return fmt.Sprintf("DB 0xED,0x%02X", op)
}
