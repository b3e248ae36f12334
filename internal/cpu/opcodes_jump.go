package cpu

import "fmt"

var conditions = [4]Condition{CondNZ, CondZ, CondNC, CondC}

func defineJumps() {
	defineBase(Instruction{
		Opcode: 0xC3, Mnemonic: "JP a16", Operand: OperandWord, Length: 3, Cycles: mcycles(3),
		Exec: func(c *CPU, op Operands) { c.jump(op.NN) },
	})
	defineBase(Instruction{
		Opcode: 0xE9, Mnemonic: "JP (HL)", Length: 1, Cycles: mcycles(1),
		Exec: func(c *CPU, _ Operands) { c.jump(c.Registers.HL()) },
	})
	defineBase(Instruction{
		Opcode: 0x18, Mnemonic: "JR r8", Operand: OperandByte, Length: 2, Cycles: mcycles(3),
		Exec: func(c *CPU, op Operands) { c.jump(c.relative(op.N)) },
	})
	defineBase(Instruction{
		Opcode: 0xCD, Mnemonic: "CALL a16", Operand: OperandWord, Length: 3, Cycles: mcycles(6),
		Exec: func(c *CPU, op Operands) { c.call(op.NN) },
	})
	defineBase(Instruction{
		Opcode: 0xC9, Mnemonic: "RET", Length: 1, Cycles: mcycles(4),
		Exec: func(c *CPU, _ Operands) { c.jump(c.pop()) },
	})
	defineBase(Instruction{
		Opcode: 0xD9, Mnemonic: "RETI", Length: 1, Cycles: mcycles(4),
		Exec: func(c *CPU, _ Operands) {
			c.jump(c.pop())
			c.IME = true
		},
	})

	for i, cond := range conditions {
		row := uint8(i) << 3 //nolint:gosec // G115: i < 4
		defineBase(Instruction{
			Opcode: 0xC2 | row, Mnemonic: fmt.Sprintf("JP %s,a16", cond), Operand: OperandWord, Length: 3,
			Cycles: mcycles(3), Taken: mcycles(4),
			Exec: func(c *CPU, op Operands) { c.branch(cond, op.NN) },
		})
		defineBase(Instruction{
			Opcode: 0x20 | row, Mnemonic: fmt.Sprintf("JR %s,r8", cond), Operand: OperandByte, Length: 2,
			Cycles: mcycles(2), Taken: mcycles(3),
			Exec: func(c *CPU, op Operands) { c.branch(cond, c.relative(op.N)) },
		})
		defineBase(Instruction{
			Opcode: 0xC4 | row, Mnemonic: fmt.Sprintf("CALL %s,a16", cond), Operand: OperandWord, Length: 3,
			Cycles: mcycles(3), Taken: mcycles(6),
			Exec: func(c *CPU, op Operands) {
				if c.checkCondition(cond) {
					c.taken = true
					c.call(op.NN)
				}
			},
		})
		defineBase(Instruction{
			Opcode: 0xC0 | row, Mnemonic: fmt.Sprintf("RET %s", cond), Length: 1,
			Cycles: mcycles(2), Taken: mcycles(5),
			Exec: func(c *CPU, _ Operands) {
				if c.checkCondition(cond) {
					c.taken = true
					c.jump(c.pop())
				}
			},
		})
	}

	// RST pushes the address of the RST opcode itself, high byte first.
	for n := range 8 {
		vector := uint16(n) * 8 //nolint:gosec // G115: n < 8
		defineBase(Instruction{
			Opcode: 0xC7 | uint8(n)<<3, Mnemonic: fmt.Sprintf("RST %02XH", vector), Length: 1, Cycles: mcycles(8), //nolint:gosec // G115: n < 8
			Exec: func(c *CPU, _ Operands) {
				c.push(c.Registers.PC)
				c.jump(vector)
			},
		})
	}
}
