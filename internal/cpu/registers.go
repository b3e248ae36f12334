package cpu

import "fmt"

// Flags represents CPU flag register bits.
const (
	FlagZ uint8 = 0b10000000 // Zero flag (bit 7)
	FlagN uint8 = 0b01000000 // Subtraction flag (bit 6)
	FlagH uint8 = 0b00100000 // Half-carry flag (bit 5)
	FlagC uint8 = 0b00010000 // Carry flag (bit 4)

	flagMask uint8 = 0xF0
)

// Registers represents the SM83 CPU registers.
type Registers struct {
	A  uint8  // Accumulator
	F  uint8  // Flags (only upper 4 bits used)
	B  uint8  // General purpose
	C  uint8  // General purpose
	D  uint8  // General purpose
	E  uint8  // General purpose
	H  uint8  // General purpose (high byte of HL pointer)
	L  uint8  // General purpose (low byte of HL pointer)
	SP uint16 // Stack pointer
	PC uint16 // Program counter
}

// NewRegisters creates a new Registers instance with the values the DMG
// boot ROM leaves behind.
func NewRegisters() *Registers {
	return &Registers{
		A:  0x01,
		F:  0xB0,
		B:  0x00,
		C:  0x13,
		D:  0x00,
		E:  0xD8,
		H:  0x01,
		L:  0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
	}
}

// Join combines a high and a low byte into a 16-bit value.
func Join(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// Split breaks a 16-bit value into its high and low bytes.
func Split(value uint16) (hi, lo uint8) {
	return uint8(value >> 8), uint8(value) //nolint:gosec // G115: Intentional byte extraction from 16-bit value
}

// Pair names a 16-bit register pair. The first four follow the opcode
// encoding of bits 4-5; AF takes the place of SP in PUSH and POP.
type Pair uint8

// Register pairs.
const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
	PairAF
)

// String returns the assembler name of the pair.
func (p Pair) String() string {
	switch p {
	case PairBC:
		return "BC"
	case PairDE:
		return "DE"
	case PairHL:
		return "HL"
	case PairSP:
		return "SP"
	case PairAF:
		return "AF"
	default:
		return fmt.Sprintf("Pair(%d)", uint8(p))
	}
}

// Reg8 names an 8-bit operand in the order used by opcode encodings.
// RegHLIndirect is the byte addressed by HL, not a register.
type Reg8 uint8

// 8-bit operands.
const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLIndirect
	RegA
)

// String returns the assembler name of the operand.
func (r Reg8) String() string {
	return [...]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}[r&7]
}

// reg returns a pointer to the register named by r, or nil for (HL).
func (r *Registers) reg(name Reg8) *uint8 {
	switch name {
	case RegB:
		return &r.B
	case RegC:
		return &r.C
	case RegD:
		return &r.D
	case RegE:
		return &r.E
	case RegH:
		return &r.H
	case RegL:
		return &r.L
	case RegA:
		return &r.A
	default:
		return nil
	}
}

// 16-bit register pair getters

// AF returns the 16-bit AF register pair.
func (r *Registers) AF() uint16 {
	return Join(r.A, r.F)
}

// BC returns the 16-bit BC register pair.
func (r *Registers) BC() uint16 {
	return Join(r.B, r.C)
}

// DE returns the 16-bit DE register pair.
func (r *Registers) DE() uint16 {
	return Join(r.D, r.E)
}

// HL returns the 16-bit HL register pair.
func (r *Registers) HL() uint16 {
	return Join(r.H, r.L)
}

// 16-bit register pair setters

// SetAF sets the 16-bit AF register pair.
func (r *Registers) SetAF(value uint16) {
	r.A, r.F = Split(value)
	r.F &= flagMask
}

// SetBC sets the 16-bit BC register pair.
func (r *Registers) SetBC(value uint16) {
	r.B, r.C = Split(value)
}

// SetDE sets the 16-bit DE register pair.
func (r *Registers) SetDE(value uint16) {
	r.D, r.E = Split(value)
}

// SetHL sets the 16-bit HL register pair.
func (r *Registers) SetHL(value uint16) {
	r.H, r.L = Split(value)
}

// Pair returns the value of the named register pair.
func (r *Registers) Pair(p Pair) uint16 {
	switch p {
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.HL()
	case PairSP:
		return r.SP
	default:
		return r.AF()
	}
}

// SetPair sets the named register pair.
func (r *Registers) SetPair(p Pair, value uint16) {
	switch p {
	case PairBC:
		r.SetBC(value)
	case PairDE:
		r.SetDE(value)
	case PairHL:
		r.SetHL(value)
	case PairSP:
		r.SP = value
	default:
		r.SetAF(value)
	}
}

// Flag operations. Every write re-masks F so bits 3-0 stay zero.

// GetFlag checks if a flag is set.
func (r *Registers) GetFlag(flag uint8) bool {
	return r.F&flag != 0
}

// SetFlag sets a flag to 1.
func (r *Registers) SetFlag(flag uint8) {
	r.F = (r.F | flag) & flagMask
}

// ClearFlag sets a flag to 0.
func (r *Registers) ClearFlag(flag uint8) {
	r.F &^= flag
	r.F &= flagMask
}

// SetFlagTo sets a flag to a specific boolean value.
func (r *Registers) SetFlagTo(flag uint8, value bool) {
	if value {
		r.SetFlag(flag)
	} else {
		r.ClearFlag(flag)
	}
}

// SetFlags replaces all four flags at once.
func (r *Registers) SetFlags(z, n, h, c bool) {
	r.F = 0
	r.SetFlagTo(FlagZ, z)
	r.SetFlagTo(FlagN, n)
	r.SetFlagTo(FlagH, h)
	r.SetFlagTo(FlagC, c)
}

// Individual flag getters

// ZeroFlag returns the Zero flag state.
func (r *Registers) ZeroFlag() bool {
	return r.GetFlag(FlagZ)
}

// SubtractFlag returns the Subtract flag state.
func (r *Registers) SubtractFlag() bool {
	return r.GetFlag(FlagN)
}

// HalfCarryFlag returns the Half-carry flag state.
func (r *Registers) HalfCarryFlag() bool {
	return r.GetFlag(FlagH)
}

// CarryFlag returns the Carry flag state.
func (r *Registers) CarryFlag() bool {
	return r.GetFlag(FlagC)
}

// FlagString renders the flags as "ZNHC", with '-' for clear bits.
func (r *Registers) FlagString() string {
	out := []byte("----")
	for i, flag := range []uint8{FlagZ, FlagN, FlagH, FlagC} {
		if r.GetFlag(flag) {
			out[i] = "ZNHC"[i]
		}
	}
	return string(out)
}

// String returns a one-line register dump.
func (r *Registers) String() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X [%s]",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC, r.FlagString())
}
