package cpu

import "fmt"

// Shift operations of the CB page, in encoding order (bits 3-5).
// SWAP shifts nothing out, so it always clears C.
var cbShifts = [8]struct {
	name  string
	flags string
	fn    func(c *CPU, v uint8) uint8
}{
	{"RLC", "Z00C", (*CPU).rlc},
	{"RRC", "Z00C", (*CPU).rrc},
	{"RL", "Z00C", (*CPU).rl},
	{"RR", "Z00C", (*CPU).rr},
	{"SLA", "Z00C", (*CPU).sla},
	{"SRA", "Z00C", (*CPU).sra},
	{"SWAP", "Z000", (*CPU).swap},
	{"SRL", "Z00C", (*CPU).srl},
}

// defineCB fills the prefixed table. The target is encoded in bits 0-2 and
// the operation in bits 6-7 (shift, BIT, RES, SET).
//
// Cycles: 8 for registers, 16 for (HL), 12 for BIT (HL).
func defineCB() {
	for op := range 256 {
		opcode := uint8(op) //nolint:gosec // G115: op < 256
		target := regs8[opcode&0x07]
		bitNum := (opcode >> 3) & 0x07

		cost := mcycles(2)
		if target == RegHLIndirect {
			cost = mcycles(4)
		}

		switch opcode >> 6 {
		case 0: // Rotates and shifts (0x00-0x3F)
			shift := cbShifts[bitNum]
			definePrefixed(Instruction{
				Opcode: opcode, Mnemonic: fmt.Sprintf("%s %s", shift.name, target), Cycles: cost, Flags: shift.flags,
				Exec: func(c *CPU, _ Operands) { c.set8(target, shift.fn(c, c.get8(target))) },
			})

		case 1: // BIT (0x40-0x7F)
			if target == RegHLIndirect {
				cost = mcycles(3)
			}
			definePrefixed(Instruction{
				Opcode: opcode, Mnemonic: fmt.Sprintf("BIT %d,%s", bitNum, target), Cycles: cost, Flags: "Z01-",
				Exec: func(c *CPU, _ Operands) { c.bit(c.get8(target), bitNum) },
			})

		case 2: // RES (0x80-0xBF)
			definePrefixed(Instruction{
				Opcode: opcode, Mnemonic: fmt.Sprintf("RES %d,%s", bitNum, target), Cycles: cost,
				Exec: func(c *CPU, _ Operands) { c.set8(target, c.get8(target)&^(1<<bitNum)) },
			})

		default: // SET (0xC0-0xFF)
			definePrefixed(Instruction{
				Opcode: opcode, Mnemonic: fmt.Sprintf("SET %d,%s", bitNum, target), Cycles: cost,
				Exec: func(c *CPU, _ Operands) { c.set8(target, c.get8(target)|1<<bitNum) },
			})
		}
	}
}
