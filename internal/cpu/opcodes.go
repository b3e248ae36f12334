package cpu

import "fmt"

// regs8 lists the 8-bit operands in encoding order.
var regs8 = [8]Reg8{RegB, RegC, RegD, RegE, RegH, RegL, RegHLIndirect, RegA}

// pairs16 lists the register pairs used by LD rr,nn, INC rr, DEC rr and ADD HL,rr.
var pairs16 = [4]Pair{PairBC, PairDE, PairHL, PairSP}

func defineMisc() {
	defineBase(Instruction{
		Opcode: 0x00, Mnemonic: "NOP", Length: 1, Cycles: mcycles(1),
		Exec: func(*CPU, Operands) {},
	})
	defineBase(Instruction{
		Opcode: 0x10, Mnemonic: "STOP", Length: 2, Cycles: mcycles(1),
		Exec: func(c *CPU, _ Operands) { c.stopped = true },
	})
	defineBase(Instruction{
		Opcode: 0x76, Mnemonic: "HALT", Length: 1, Cycles: mcycles(1),
		Exec: func(c *CPU, _ Operands) { c.halted = true },
	})
	defineBase(Instruction{
		Opcode: 0xF3, Mnemonic: "DI", Length: 1, Cycles: mcycles(1),
		Exec: func(c *CPU, _ Operands) { c.IME = false },
	})
	defineBase(Instruction{
		Opcode: 0xFB, Mnemonic: "EI", Length: 1, Cycles: mcycles(1),
		Exec: func(c *CPU, _ Operands) { c.IME = true },
	})
	defineBase(Instruction{
		Opcode: 0x27, Mnemonic: "DAA", Length: 1, Cycles: mcycles(1), Flags: "Z-0C",
		Exec: func(c *CPU, _ Operands) { c.daa() },
	})
	defineBase(Instruction{
		Opcode: 0x2F, Mnemonic: "CPL", Length: 1, Cycles: mcycles(1), Flags: "-11-",
		Exec: func(c *CPU, _ Operands) {
			c.Registers.A = ^c.Registers.A
			c.Registers.SetFlag(FlagN)
			c.Registers.SetFlag(FlagH)
		},
	})
	defineBase(Instruction{
		Opcode: 0x37, Mnemonic: "SCF", Length: 1, Cycles: mcycles(1), Flags: "-001",
		Exec: func(c *CPU, _ Operands) {
			c.Registers.SetFlags(c.Registers.ZeroFlag(), false, false, true)
		},
	})
	defineBase(Instruction{
		Opcode: 0x3F, Mnemonic: "CCF", Length: 1, Cycles: mcycles(1), Flags: "-00C",
		Exec: func(c *CPU, _ Operands) {
			c.Registers.SetFlags(c.Registers.ZeroFlag(), false, false, !c.Registers.CarryFlag())
		},
	})

	// Accumulator rotates always clear Z.
	accRotates := []struct {
		opcode   uint8
		mnemonic string
		fn       func(c *CPU, v uint8) uint8
	}{
		{0x07, "RLCA", (*CPU).rlc},
		{0x0F, "RRCA", (*CPU).rrc},
		{0x17, "RLA", (*CPU).rl},
		{0x1F, "RRA", (*CPU).rr},
	}
	for _, rot := range accRotates {
		defineBase(Instruction{
			Opcode: rot.opcode, Mnemonic: rot.mnemonic, Length: 1, Cycles: mcycles(1), Flags: "000C",
			Exec: func(c *CPU, _ Operands) {
				c.Registers.A = rot.fn(c, c.Registers.A)
				c.Registers.ClearFlag(FlagZ)
			},
		})
	}
}

func defineLoads() {
	// LD r,n and LD (HL),n
	for i, r := range regs8 {
		opcode := 0x06 | uint8(i)<<3 //nolint:gosec // G115: i < 8
		if r == RegHLIndirect {
			defineBase(Instruction{
				Opcode: opcode, Mnemonic: "LD (HL),d8", Operand: OperandByte, Length: 2, Cycles: mcycles(3),
				Exec: func(c *CPU, op Operands) { c.Memory.Write(c.Registers.HL(), op.N) },
			})
			continue
		}
		defineBase(Instruction{
			Opcode: opcode, Mnemonic: fmt.Sprintf("LD %s,d8", r), Operand: OperandByte, Length: 2, Cycles: mcycles(2),
			Exec: func(c *CPU, op Operands) { c.set8(r, op.N) },
		})
	}

	// LD r,r' with (HL) on either side; 0x76 is HALT.
	for d, dst := range regs8 {
		for s, src := range regs8 {
			opcode := 0x40 | uint8(d)<<3 | uint8(s) //nolint:gosec // G115: d, s < 8
			mnemonic := fmt.Sprintf("LD %s,%s", dst, src)
			switch {
			case dst == RegHLIndirect && src == RegHLIndirect:
				continue
			case src == RegHLIndirect:
				defineBase(Instruction{
					Opcode: opcode, Mnemonic: mnemonic, Operand: OperandHL, Length: 1, Cycles: mcycles(2),
					Exec: func(c *CPU, op Operands) { c.set8(dst, c.Memory.Read(op.NN)) },
				})
			case dst == RegHLIndirect:
				defineBase(Instruction{
					Opcode: opcode, Mnemonic: mnemonic, Operand: OperandHL, Length: 1, Cycles: mcycles(2),
					Exec: func(c *CPU, op Operands) { c.Memory.Write(op.NN, c.get8(src)) },
				})
			default:
				defineBase(Instruction{
					Opcode: opcode, Mnemonic: mnemonic, Length: 1, Cycles: mcycles(1),
					Exec: func(c *CPU, _ Operands) { c.set8(dst, c.get8(src)) },
				})
			}
		}
	}

	// Accumulator loads through BC and DE.
	for _, p := range []struct {
		store, load uint8
		operand     Operand
		name        string
	}{
		{0x02, 0x0A, OperandBC, "BC"},
		{0x12, 0x1A, OperandDE, "DE"},
	} {
		defineBase(Instruction{
			Opcode: p.store, Mnemonic: fmt.Sprintf("LD (%s),A", p.name), Operand: p.operand, Length: 1, Cycles: mcycles(2),
			Exec: func(c *CPU, op Operands) { c.Memory.Write(op.NN, c.Registers.A) },
		})
		defineBase(Instruction{
			Opcode: p.load, Mnemonic: fmt.Sprintf("LD A,(%s)", p.name), Operand: p.operand, Length: 1, Cycles: mcycles(2),
			Exec: func(c *CPU, op Operands) { c.Registers.A = c.Memory.Read(op.NN) },
		})
	}

	// HL is stepped after the transfer; the transferred byte is not modified.
	defineBase(Instruction{
		Opcode: 0x22, Mnemonic: "LD (HL+),A", Operand: OperandHL, Length: 1, Cycles: mcycles(2),
		Exec: func(c *CPU, op Operands) {
			c.Memory.Write(op.NN, c.Registers.A)
			c.Registers.SetHL(op.NN + 1)
		},
	})
	defineBase(Instruction{
		Opcode: 0x2A, Mnemonic: "LD A,(HL+)", Operand: OperandHL, Length: 1, Cycles: mcycles(2),
		Exec: func(c *CPU, op Operands) {
			c.Registers.A = c.Memory.Read(op.NN)
			c.Registers.SetHL(op.NN + 1)
		},
	})
	defineBase(Instruction{
		Opcode: 0x32, Mnemonic: "LD (HL-),A", Operand: OperandHL, Length: 1, Cycles: mcycles(2),
		Exec: func(c *CPU, op Operands) {
			c.Memory.Write(op.NN, c.Registers.A)
			c.Registers.SetHL(op.NN - 1)
		},
	})
	defineBase(Instruction{
		Opcode: 0x3A, Mnemonic: "LD A,(HL-)", Operand: OperandHL, Length: 1, Cycles: mcycles(2),
		Exec: func(c *CPU, op Operands) {
			c.Registers.A = c.Memory.Read(op.NN)
			c.Registers.SetHL(op.NN - 1)
		},
	})

	// High page and absolute accumulator loads.
	defineBase(Instruction{
		Opcode: 0xE0, Mnemonic: "LDH (a8),A", Operand: OperandByte, Length: 2, Cycles: mcycles(3),
		Exec: func(c *CPU, op Operands) { c.Memory.Write(0xFF00|uint16(op.N), c.Registers.A) },
	})
	defineBase(Instruction{
		Opcode: 0xF0, Mnemonic: "LDH A,(a8)", Operand: OperandByte, Length: 2, Cycles: mcycles(3),
		Exec: func(c *CPU, op Operands) { c.Registers.A = c.Memory.Read(0xFF00 | uint16(op.N)) },
	})
	defineBase(Instruction{
		Opcode: 0xE2, Mnemonic: "LD (C),A", Length: 1, Cycles: mcycles(2),
		Exec: func(c *CPU, _ Operands) { c.Memory.Write(0xFF00|uint16(c.Registers.C), c.Registers.A) },
	})
	defineBase(Instruction{
		Opcode: 0xF2, Mnemonic: "LD A,(C)", Length: 1, Cycles: mcycles(2),
		Exec: func(c *CPU, _ Operands) { c.Registers.A = c.Memory.Read(0xFF00 | uint16(c.Registers.C)) },
	})
	defineBase(Instruction{
		Opcode: 0xEA, Mnemonic: "LD (a16),A", Operand: OperandWord, Length: 3, Cycles: mcycles(4),
		Exec: func(c *CPU, op Operands) { c.Memory.Write(op.NN, c.Registers.A) },
	})
	defineBase(Instruction{
		Opcode: 0xFA, Mnemonic: "LD A,(a16)", Operand: OperandWord, Length: 3, Cycles: mcycles(4),
		Exec: func(c *CPU, op Operands) { c.Registers.A = c.Memory.Read(op.NN) },
	})
}

func defineLoads16() {
	for i, p := range pairs16 {
		row := uint8(i) << 4 //nolint:gosec // G115: i < 4
		defineBase(Instruction{
			Opcode: 0x01 | row, Mnemonic: fmt.Sprintf("LD %s,d16", p), Operand: OperandWord, Length: 3, Cycles: mcycles(3),
			Exec: func(c *CPU, op Operands) { c.Registers.SetPair(p, op.NN) },
		})
		defineBase(Instruction{
			Opcode: 0x03 | row, Mnemonic: fmt.Sprintf("INC %s", p), Length: 1, Cycles: mcycles(2),
			Exec: func(c *CPU, _ Operands) { c.Registers.SetPair(p, c.Registers.Pair(p)+1) },
		})
		defineBase(Instruction{
			Opcode: 0x0B | row, Mnemonic: fmt.Sprintf("DEC %s", p), Length: 1, Cycles: mcycles(2),
			Exec: func(c *CPU, _ Operands) { c.Registers.SetPair(p, c.Registers.Pair(p)-1) },
		})
		defineBase(Instruction{
			Opcode: 0x09 | row, Mnemonic: fmt.Sprintf("ADD HL,%s", p), Length: 1, Cycles: mcycles(2), Flags: "-0HC",
			Exec: func(c *CPU, _ Operands) {
				c.Registers.SetHL(c.add16(c.Registers.HL(), c.Registers.Pair(p)))
			},
		})
	}

	// PUSH and POP use AF in place of SP.
	for i, p := range []Pair{PairBC, PairDE, PairHL, PairAF} {
		row := uint8(i) << 4 //nolint:gosec // G115: i < 4
		defineBase(Instruction{
			Opcode: 0xC5 | row, Mnemonic: fmt.Sprintf("PUSH %s", p), Length: 1, Cycles: mcycles(4),
			Exec: func(c *CPU, _ Operands) { c.push(c.Registers.Pair(p)) },
		})
		flags := "----"
		if p == PairAF {
			flags = "ZNHC"
		}
		defineBase(Instruction{
			Opcode: 0xC1 | row, Mnemonic: fmt.Sprintf("POP %s", p), Length: 1, Cycles: mcycles(3), Flags: flags,
			Exec: func(c *CPU, _ Operands) { c.Registers.SetPair(p, c.pop()) },
		})
	}

	// SP is stored low byte first.
	defineBase(Instruction{
		Opcode: 0x08, Mnemonic: "LD (a16),SP", Operand: OperandWord, Length: 3, Cycles: mcycles(5),
		Exec: func(c *CPU, op Operands) {
			hi, lo := Split(c.Registers.SP)
			c.Memory.Write(op.NN, lo)
			c.Memory.Write(op.NN+1, hi)
		},
	})
	defineBase(Instruction{
		Opcode: 0xF9, Mnemonic: "LD SP,HL", Length: 1, Cycles: mcycles(2),
		Exec: func(c *CPU, _ Operands) { c.Registers.SP = c.Registers.HL() },
	})
	defineBase(Instruction{
		Opcode: 0xF8, Mnemonic: "LD HL,SP+r8", Operand: OperandByte, Length: 2, Cycles: mcycles(3), Flags: "00HC",
		Exec: func(c *CPU, op Operands) { c.Registers.SetHL(c.addSPOffset(op.N)) },
	})
	defineBase(Instruction{
		Opcode: 0xE8, Mnemonic: "ADD SP,r8", Operand: OperandByte, Length: 2, Cycles: mcycles(4), Flags: "00HC",
		Exec: func(c *CPU, op Operands) { c.Registers.SP = c.addSPOffset(op.N) },
	})
}

// aluOp is one of the eight accumulator operations in encoding order.
type aluOp struct {
	name  string
	flags string
	fn    func(c *CPU, v uint8)
}

var aluOps = [8]aluOp{
	{"ADD A,", "Z0HC", func(c *CPU, v uint8) { c.Registers.A = c.add8(c.Registers.A, v, false) }},
	{"ADC A,", "Z0HC", func(c *CPU, v uint8) { c.Registers.A = c.add8(c.Registers.A, v, true) }},
	{"SUB ", "Z1HC", func(c *CPU, v uint8) { c.Registers.A = c.sub8(c.Registers.A, v, false) }},
	{"SBC A,", "Z1HC", func(c *CPU, v uint8) { c.Registers.A = c.sub8(c.Registers.A, v, true) }},
	{"AND ", "Z010", func(c *CPU, v uint8) { c.Registers.A = c.and(v) }},
	{"XOR ", "Z000", func(c *CPU, v uint8) { c.Registers.A = c.xor(v) }},
	{"OR ", "Z000", func(c *CPU, v uint8) { c.Registers.A = c.or(v) }},
	{"CP ", "Z1HC", func(c *CPU, v uint8) { c.cp(v) }},
}

func defineALU() {
	for o, alu := range aluOps {
		for s, src := range regs8 {
			opcode := 0x80 | uint8(o)<<3 | uint8(s) //nolint:gosec // G115: o, s < 8
			if src == RegHLIndirect {
				defineBase(Instruction{
					Opcode: opcode, Mnemonic: alu.name + "(HL)", Operand: OperandHL, Length: 1, Cycles: mcycles(2), Flags: alu.flags,
					Exec: func(c *CPU, op Operands) { alu.fn(c, c.Memory.Read(op.NN)) },
				})
				continue
			}
			defineBase(Instruction{
				Opcode: opcode, Mnemonic: alu.name + src.String(), Length: 1, Cycles: mcycles(1), Flags: alu.flags,
				Exec: func(c *CPU, _ Operands) { alu.fn(c, c.get8(src)) },
			})
		}

		defineBase(Instruction{
			Opcode: 0xC6 | uint8(o)<<3, Mnemonic: alu.name + "d8", Operand: OperandByte, Length: 2, Cycles: mcycles(2), Flags: alu.flags, //nolint:gosec // G115: o < 8
			Exec: func(c *CPU, op Operands) { alu.fn(c, op.N) },
		})
	}

	// INC r and DEC r; the (HL) forms go through the bus.
	for i, r := range regs8 {
		row := uint8(i) << 3 //nolint:gosec // G115: i < 8
		if r == RegHLIndirect {
			defineBase(Instruction{
				Opcode: 0x04 | row, Mnemonic: "INC (HL)", Operand: OperandHL, Length: 1, Cycles: mcycles(3), Flags: "Z0H-",
				Exec: func(c *CPU, op Operands) {
					c.inc8(c.Memory.Read(op.NN))
					c.Memory.Increment(op.NN)
				},
			})
			defineBase(Instruction{
				Opcode: 0x05 | row, Mnemonic: "DEC (HL)", Operand: OperandHL, Length: 1, Cycles: mcycles(3), Flags: "Z1H-",
				Exec: func(c *CPU, op Operands) {
					c.dec8(c.Memory.Read(op.NN))
					c.Memory.Decrement(op.NN)
				},
			})
			continue
		}
		defineBase(Instruction{
			Opcode: 0x04 | row, Mnemonic: fmt.Sprintf("INC %s", r), Length: 1, Cycles: mcycles(1), Flags: "Z0H-",
			Exec: func(c *CPU, _ Operands) { c.set8(r, c.inc8(c.get8(r))) },
		})
		defineBase(Instruction{
			Opcode: 0x05 | row, Mnemonic: fmt.Sprintf("DEC %s", r), Length: 1, Cycles: mcycles(1), Flags: "Z1H-",
			Exec: func(c *CPU, _ Operands) { c.set8(r, c.dec8(c.get8(r))) },
		})
	}
}
