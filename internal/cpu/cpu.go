// Package cpu implements the Sharp SM83 CPU emulation for the Game Boy.
//
// Decoding is table driven: every opcode has an Instruction descriptor in
// Base or Prefixed, and Step fetches, looks up and dispatches through it.
package cpu

import (
	"github.com/richardwooding/gbcore/internal/logger"
)

// Memory interface for CPU to access memory bus.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	Increment(addr uint16)
	Decrement(addr uint16)
	PushByte(sp *uint16, value uint8)
	PopByte(sp *uint16) uint8
}

// idle is the cost of one step while halted or stopped.
var idle = Cycles{Machine: 1, Clock: 4}

// CPU represents the Sharp SM83 CPU.
type CPU struct {
	Registers *Registers
	Memory    Memory

	// Interrupt master enable flag. Stored only; interrupts are not dispatched.
	IME bool

	// Halt and stop states
	halted  bool
	stopped bool

	// Clock cycles executed since power on or the last Reset.
	Cycles uint64

	log       logger.Logger
	onUnknown func(opcode uint8, addr uint16)

	// Per-step dispatch state.
	next   uint16 // address of the following instruction
	jumped bool   // PC was written by the instruction
	taken  bool   // conditional branch was taken
}

// Option configures a CPU.
type Option func(*CPU)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(c *CPU) {
		c.log = log
	}
}

// WithUnknownOpcodeHook registers fn to be called for every byte that does
// not decode to an instruction.
func WithUnknownOpcodeHook(fn func(opcode uint8, addr uint16)) Option {
	return func(c *CPU) {
		c.onUnknown = fn
	}
}

// New creates a new CPU instance.
func New(mem Memory, opts ...Option) *CPU {
	c := &CPU{
		Registers: NewRegisters(),
		Memory:    mem,
		log:       logger.NewNull(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset restores power-on register values and clears the run state.
func (c *CPU) Reset() {
	c.Registers = NewRegisters()
	c.IME = false
	c.halted = false
	c.stopped = false
	c.Cycles = 0
}

// Halted reports whether the CPU is idling after HALT or STOP.
func (c *CPU) Halted() bool {
	return c.halted || c.stopped
}

// Resume leaves the HALT or STOP state.
func (c *CPU) Resume() {
	c.halted = false
	c.stopped = false
}

// Step executes one instruction and returns its cost.
//
// The instruction is decoded at PC, its operands are fetched according to the
// descriptor, and PC advances by the descriptor length unless the
// instruction jumped. Bytes that do not decode advance PC by one and cost
// nothing.
func (c *CPU) Step() Cycles {
	if c.Halted() {
		c.Cycles += uint64(idle.Clock)
		return idle
	}

	pc := c.Registers.PC
	opcode := c.Memory.Read(pc)

	var in *Instruction
	if opcode == 0xCB {
		in = Prefixed[c.Memory.Read(pc+1)]
	} else {
		in = Base[opcode]
	}

	if in == nil {
		c.log.Infof("unknown opcode %02X at %04X", opcode, pc)
		if c.onUnknown != nil {
			c.onUnknown(opcode, pc)
		}
		c.Registers.PC = pc + 1
		return Cycles{}
	}

	c.next = pc + uint16(in.Length)
	c.jumped = false
	c.taken = false

	in.Exec(c, c.operands(pc, in))

	if !c.jumped {
		c.Registers.PC = c.next
	}

	cost := in.Cycles
	if c.taken {
		cost = in.Taken
	}
	c.Cycles += uint64(cost.Clock)
	return cost
}

// operands fetches the immediate or register-pair operand of in.
func (c *CPU) operands(pc uint16, in *Instruction) Operands {
	switch in.Operand {
	case OperandByte:
		return Operands{N: c.Memory.Read(pc + 1)}
	case OperandWord:
		return Operands{NN: Join(c.Memory.Read(pc+2), c.Memory.Read(pc+1))}
	case OperandBC:
		return Operands{NN: c.Registers.BC()}
	case OperandDE:
		return Operands{NN: c.Registers.DE()}
	case OperandHL:
		return Operands{NN: c.Registers.HL()}
	default:
		return Operands{}
	}
}

// get8 reads an 8-bit operand; RegHLIndirect reads memory at HL.
func (c *CPU) get8(r Reg8) uint8 {
	if p := c.Registers.reg(r); p != nil {
		return *p
	}
	return c.Memory.Read(c.Registers.HL())
}

// set8 writes an 8-bit operand; RegHLIndirect writes memory at HL.
func (c *CPU) set8(r Reg8, value uint8) {
	if p := c.Registers.reg(r); p != nil {
		*p = value
		return
	}
	c.Memory.Write(c.Registers.HL(), value)
}

// jump moves PC to addr.
func (c *CPU) jump(addr uint16) {
	c.Registers.PC = addr
	c.jumped = true
}

// branch jumps to addr when cond holds and records that the branch was taken.
func (c *CPU) branch(cond Condition, addr uint16) bool {
	if !c.checkCondition(cond) {
		return false
	}
	c.taken = true
	c.jump(addr)
	return true
}

// relative returns the target of a relative jump from the next instruction.
func (c *CPU) relative(offset uint8) uint16 {
	return uint16(int32(c.next) + int32(int8(offset))) //nolint:gosec // G115: Intentional signed offset arithmetic
}

// push pushes a 16-bit value onto the stack, high byte first.
func (c *CPU) push(value uint16) {
	hi, lo := Split(value)
	c.Memory.PushByte(&c.Registers.SP, hi)
	c.Memory.PushByte(&c.Registers.SP, lo)
}

// pop pops a 16-bit value from the stack, low byte first.
func (c *CPU) pop() uint16 {
	lo := c.Memory.PopByte(&c.Registers.SP)
	hi := c.Memory.PopByte(&c.Registers.SP)
	return Join(hi, lo)
}

// call pushes the address of the next instruction and jumps to addr.
func (c *CPU) call(addr uint16) {
	c.push(c.next)
	c.jump(addr)
}

// Condition is a branch condition encoded in bits 3-4 of the opcode.
type Condition uint8

// Branch conditions.
const (
	CondNZ Condition = iota
	CondZ
	CondNC
	CondC
)

// String returns the assembler name of the condition.
func (cond Condition) String() string {
	return [...]string{"NZ", "Z", "NC", "C"}[cond&3]
}

// checkCondition checks jump/call conditions.
func (c *CPU) checkCondition(cond Condition) bool {
	switch cond {
	case CondNZ:
		return !c.Registers.ZeroFlag()
	case CondZ:
		return c.Registers.ZeroFlag()
	case CondNC:
		return !c.Registers.CarryFlag()
	case CondC:
		return c.Registers.CarryFlag()
	default:
		return false
	}
}
