package cpu

import "fmt"

// Operand says what Step fetches for an instruction before executing it.
type Operand uint8

// Operand fetch strategies.
const (
	OperandNone Operand = iota // no operand
	OperandByte                // 8-bit immediate following the opcode
	OperandWord                // 16-bit little-endian immediate following the opcode
	OperandBC                  // address held in BC
	OperandDE                  // address held in DE
	OperandHL                  // address held in HL
)

func (o Operand) String() string {
	switch o {
	case OperandNone:
		return "none"
	case OperandByte:
		return "n"
	case OperandWord:
		return "nn"
	case OperandBC:
		return "(BC)"
	case OperandDE:
		return "(DE)"
	case OperandHL:
		return "(HL)"
	default:
		return fmt.Sprintf("Operand(%d)", uint8(o))
	}
}

// Cycles is the cost of an instruction in machine cycles and clock cycles.
// One machine cycle is four clock cycles.
type Cycles struct {
	Machine uint8
	Clock   uint8
}

// Add returns the sum of two costs.
func (c Cycles) Add(o Cycles) Cycles {
	return Cycles{Machine: c.Machine + o.Machine, Clock: c.Clock + o.Clock}
}

func (c Cycles) String() string {
	return fmt.Sprintf("%d/%d", c.Machine, c.Clock)
}

// mcycles builds a cost from a machine cycle count.
func mcycles(m uint8) Cycles {
	return Cycles{Machine: m, Clock: m * 4}
}

// Operands carries the values fetched for an instruction.
type Operands struct {
	N  uint8  // immediate byte
	NN uint16 // immediate word or register-pair address
}

// Instruction describes one opcode.
//
// Mnemonic uses d8, d16, a8, a16 and r8 as placeholders for immediates.
// Flags lists the effect on Z, N, H and C in that order: a letter means the
// flag follows the result, '0' and '1' force it and '-' leaves it alone.
// Taken is the cost of a conditional instruction when its condition holds;
// Cycles is the cost otherwise.
type Instruction struct {
	Opcode   uint8
	Prefixed bool
	Mnemonic string
	Operand  Operand
	Length   uint8
	Cycles   Cycles
	Taken    Cycles
	Flags    string
	Exec     func(c *CPU, op Operands)
}

func (in *Instruction) String() string {
	prefix := ""
	if in.Prefixed {
		prefix = "CB "
	}
	return fmt.Sprintf("%s%02X %s", prefix, in.Opcode, in.Mnemonic)
}

// Base holds the unprefixed instructions. Entries are nil for bytes the CPU
// does not decode, including 0xCB which selects Prefixed.
var Base [256]*Instruction

// Prefixed holds the instructions following a 0xCB prefix byte.
var Prefixed [256]*Instruction

// IllegalOpcodes are the bytes with no instruction on the SM83.
var IllegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

// define adds in to table, refusing to overwrite an existing entry.
func define(table *[256]*Instruction, in Instruction) {
	if table[in.Opcode] != nil {
		panic(fmt.Sprintf("cpu: opcode %s defined twice", table[in.Opcode]))
	}
	if in.Flags == "" {
		in.Flags = "----"
	}
	table[in.Opcode] = &in
}

func defineBase(in Instruction) {
	define(&Base, in)
}

func definePrefixed(in Instruction) {
	in.Prefixed = true
	in.Length = 2
	define(&Prefixed, in)
}

func init() {
	defineMisc()
	defineLoads()
	defineLoads16()
	defineALU()
	defineJumps()
	defineCB()
}
