package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMemory is a flat 64 KiB address space.
type mockMemory struct {
	data [0x10000]uint8
}

func (m *mockMemory) Read(addr uint16) uint8 {
	return m.data[addr]
}

func (m *mockMemory) Write(addr uint16, value uint8) {
	m.data[addr] = value
}

func (m *mockMemory) Increment(addr uint16) {
	m.data[addr]++
}

func (m *mockMemory) Decrement(addr uint16) {
	m.data[addr]--
}

func (m *mockMemory) PushByte(sp *uint16, value uint8) {
	*sp--
	m.data[*sp] = value
}

func (m *mockMemory) PopByte(sp *uint16) uint8 {
	value := m.data[*sp]
	*sp++
	return value
}

func newMockMemory() *mockMemory {
	return &mockMemory{}
}

// setupCPU creates a CPU and mock memory for testing.
func setupCPU() (*CPU, *mockMemory) {
	mem := newMockMemory()
	cpu := New(mem)
	return cpu, mem
}

// load places code at 0x0100 and points PC at it.
func load(cpu *CPU, mem *mockMemory, code ...uint8) {
	cpu.Registers.PC = 0x0100
	copy(mem.data[0x0100:], code)
}

// TestALU runs accumulator operations with B, (HL) at 0xC000 and the
// immediate byte all holding the operand.
func TestALU(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint8
		a, b, f uint8
		wantA   uint8
		wantF   uint8
	}{
		{"ADD nibble carry", 0xC6, 0x3A, 0x0C, 0x00, 0x46, FlagH},
		{"ADD wraps to zero", 0xC6, 0xFF, 0x01, 0x00, 0x00, FlagZ | FlagH | FlagC},
		{"ADC carry in crosses nibble", 0x88, 0x0F, 0x00, FlagC, 0x10, FlagH},
		{"ADC carry in wraps", 0x88, 0xFF, 0x00, FlagC, 0x00, FlagZ | FlagH | FlagC},
		{"SUB nibble borrow", 0xD6, 0x3E, 0x0F, 0x00, 0x2F, FlagN | FlagH},
		{"SUB byte borrow", 0x90, 0x10, 0x20, 0x00, 0xF0, FlagN | FlagC},
		{"SBC borrow in", 0x98, 0x10, 0x00, FlagC, 0x0F, FlagN | FlagH},
		{"SBC borrow in wraps", 0xDE, 0x00, 0x00, FlagC, 0xFF, FlagN | FlagH | FlagC},
		{"AND", 0xE6, 0x5A, 0x3F, 0x00, 0x1A, FlagH},
		{"AND to zero", 0xA0, 0xF0, 0x0F, FlagC, 0x00, FlagZ | FlagH},
		{"XOR equal", 0xA8, 0x42, 0x42, FlagN | FlagH | FlagC, 0x00, FlagZ},
		{"OR memory zero", 0xB6, 0x00, 0x00, FlagN | FlagH | FlagC, 0x00, FlagZ},
		{"OR clears flags", 0xF6, 0x50, 0x05, 0xF0, 0x55, 0x00},
		{"CP equal", 0xB8, 0x3C, 0x3C, 0x00, 0x3C, FlagZ | FlagN},
		{"CP greater", 0xFE, 0x3C, 0x40, 0x00, 0x3C, FlagN | FlagC},
		{"CP memory nibble borrow", 0xBE, 0x3C, 0x2F, 0x00, 0x3C, FlagN | FlagH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Base[tt.opcode]
			require.NotNil(t, in)

			cpu, mem := setupCPU()
			load(cpu, mem, tt.opcode, tt.b)
			cpu.Registers.A = tt.a
			cpu.Registers.B = tt.b
			cpu.Registers.F = tt.f
			cpu.Registers.SetHL(0xC000)
			mem.data[0xC000] = tt.b

			cycles := cpu.Step()

			assert.Equal(t, tt.wantA, cpu.Registers.A, "%s", in)
			assert.Equal(t, tt.wantF, cpu.Registers.F, "%s flags %s", in, cpu.Registers.FlagString())
			assert.Equal(t, in.Cycles, cycles)
			assert.Equal(t, 0x0100+uint16(in.Length), cpu.Registers.PC)
		})
	}
}

func TestIncDecRegister(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		b, f   uint8
		wantB  uint8
		wantF  uint8
	}{
		{"INC nibble carry keeps C", 0x04, 0x0F, FlagC, 0x10, FlagH | FlagC},
		{"INC wraps", 0x04, 0xFF, 0x00, 0x00, FlagZ | FlagH},
		{"DEC to zero", 0x05, 0x01, 0x00, 0x00, FlagZ | FlagN},
		{"DEC wraps keeps C", 0x05, 0x00, FlagC, 0xFF, FlagN | FlagH | FlagC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, mem := setupCPU()
			load(cpu, mem, tt.opcode)
			cpu.Registers.B = tt.b
			cpu.Registers.F = tt.f

			cycles := cpu.Step()

			assert.Equal(t, tt.wantB, cpu.Registers.B)
			assert.Equal(t, tt.wantF, cpu.Registers.F)
			assert.Equal(t, Cycles{Machine: 1, Clock: 4}, cycles)
		})
	}
}

func TestPrefixedOps(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		b, f   uint8
		wantB  uint8
		wantF  uint8
	}{
		{"RLC", 0x00, 0x85, 0x00, 0x0B, FlagC},
		{"RRC", 0x08, 0x01, 0x00, 0x80, FlagC},
		{"RL to zero", 0x10, 0x80, 0x00, 0x00, FlagZ | FlagC},
		{"RR carry in", 0x18, 0x01, FlagC, 0x80, FlagC},
		{"SLA", 0x20, 0xC0, 0x00, 0x80, FlagC},
		{"SRA keeps sign", 0x28, 0x81, 0x00, 0xC0, FlagC},
		{"SWAP clears carry", 0x30, 0xF1, FlagC, 0x1F, 0x00},
		{"SRL to zero", 0x38, 0x01, 0x00, 0x00, FlagZ | FlagC},
		{"BIT set keeps carry", 0x78, 0x80, FlagC, 0x80, FlagH | FlagC},
		{"BIT clear", 0x70, 0x80, 0x00, 0x80, FlagZ | FlagH},
		{"RES", 0x98, 0xFF, 0xF0, 0xF7, 0xF0},
		{"SET", 0xD8, 0x00, 0x00, 0x08, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Prefixed[tt.opcode]
			require.NotNil(t, in)

			cpu, mem := setupCPU()
			load(cpu, mem, 0xCB, tt.opcode)
			cpu.Registers.B = tt.b
			cpu.Registers.F = tt.f

			cycles := cpu.Step()

			assert.Equal(t, tt.wantB, cpu.Registers.B, "%s", in)
			assert.Equal(t, tt.wantF, cpu.Registers.F, "%s flags %s", in, cpu.Registers.FlagString())
			assert.Equal(t, in.Cycles, cycles)
			assert.Equal(t, Cycles{Machine: 2, Clock: 8}, cycles)
			assert.Equal(t, uint16(0x0102), cpu.Registers.PC)
		})
	}
}

// TestBranches starts every case at 0x0100 with SP at 0xFFFC holding the
// return address 0x1234.
func TestBranches(t *testing.T) {
	tests := []struct {
		name   string
		code   []uint8
		f      uint8
		wantPC uint16
		wantSP uint16
		clock  uint8
	}{
		{"JR forward", []uint8{0x18, 0x05}, 0x00, 0x0107, 0xFFFC, 12},
		{"JR backward", []uint8{0x18, 0xFE}, 0x00, 0x0100, 0xFFFC, 12},
		{"JR NZ taken", []uint8{0x20, 0x05}, 0x00, 0x0107, 0xFFFC, 12},
		{"JR NZ not taken", []uint8{0x20, 0x05}, FlagZ, 0x0102, 0xFFFC, 8},
		{"JR Z taken backward", []uint8{0x28, 0xFD}, FlagZ, 0x00FF, 0xFFFC, 12},
		{"JR Z not taken", []uint8{0x28, 0xFD}, 0x00, 0x0102, 0xFFFC, 8},
		{"JR NC taken", []uint8{0x30, 0x05}, 0x00, 0x0107, 0xFFFC, 12},
		{"JR NC not taken", []uint8{0x30, 0x05}, FlagC, 0x0102, 0xFFFC, 8},
		{"JR C taken", []uint8{0x38, 0x05}, FlagC, 0x0107, 0xFFFC, 12},
		{"JP NZ taken", []uint8{0xC2, 0x00, 0x02}, 0x00, 0x0200, 0xFFFC, 16},
		{"JP NZ not taken", []uint8{0xC2, 0x00, 0x02}, FlagZ, 0x0103, 0xFFFC, 12},
		{"JP C taken", []uint8{0xDA, 0x00, 0x02}, FlagC, 0x0200, 0xFFFC, 16},
		{"CALL", []uint8{0xCD, 0x50, 0x01}, 0x00, 0x0150, 0xFFFA, 24},
		{"CALL NZ taken", []uint8{0xC4, 0x50, 0x01}, 0x00, 0x0150, 0xFFFA, 24},
		{"CALL NZ not taken", []uint8{0xC4, 0x50, 0x01}, FlagZ, 0x0103, 0xFFFC, 12},
		{"CALL Z taken", []uint8{0xCC, 0x50, 0x01}, FlagZ, 0x0150, 0xFFFA, 24},
		{"CALL NC taken", []uint8{0xD4, 0x50, 0x01}, 0x00, 0x0150, 0xFFFA, 24},
		{"CALL C not taken", []uint8{0xDC, 0x50, 0x01}, 0x00, 0x0103, 0xFFFC, 12},
		{"RET", []uint8{0xC9}, 0x00, 0x1234, 0xFFFE, 16},
		{"RET NZ taken", []uint8{0xC0}, 0x00, 0x1234, 0xFFFE, 20},
		{"RET NZ not taken", []uint8{0xC0}, FlagZ, 0x0101, 0xFFFC, 8},
		{"RET Z taken", []uint8{0xC8}, FlagZ, 0x1234, 0xFFFE, 20},
		{"RET NC not taken", []uint8{0xD0}, FlagC, 0x0101, 0xFFFC, 8},
		{"RET C taken", []uint8{0xD8}, FlagC, 0x1234, 0xFFFE, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Base[tt.code[0]]
			require.NotNil(t, in)

			cpu, mem := setupCPU()
			load(cpu, mem, tt.code...)
			cpu.Registers.SP = 0xFFFC
			cpu.Registers.F = tt.f
			mem.data[0xFFFC] = 0x34
			mem.data[0xFFFD] = 0x12

			cycles := cpu.Step()

			assert.Equal(t, tt.wantPC, cpu.Registers.PC, "%s", in)
			assert.Equal(t, tt.wantSP, cpu.Registers.SP)
			assert.Equal(t, tt.clock, cycles.Clock)
			assert.Contains(t, []Cycles{in.Cycles, in.Taken}, cycles)

			if tt.wantSP == 0xFFFA {
				assert.Equal(t, uint8(0x03), mem.data[0xFFFA], "return address low byte")
				assert.Equal(t, uint8(0x01), mem.data[0xFFFB], "return address high byte")
			}
		})
	}
}

func TestRETIEnablesInterrupts(t *testing.T) {
	cpu, mem := setupCPU()
	load(cpu, mem, 0xD9)
	cpu.Registers.SP = 0xFFFC
	mem.data[0xFFFC] = 0x34
	mem.data[0xFFFD] = 0x12

	cpu.Step()

	assert.True(t, cpu.IME)
	assert.Equal(t, uint16(0x1234), cpu.Registers.PC)
}

func TestHALT(t *testing.T) {
	cpu, mem := setupCPU()
	load(cpu, mem, 0x76)

	cpu.Step()
	require.True(t, cpu.Halted())

	assert.Equal(t, Cycles{Machine: 1, Clock: 4}, cpu.Step(), "idle step")
	assert.Equal(t, uint16(0x0101), cpu.Registers.PC)
}

func TestDAA(t *testing.T) {
	tests := []struct {
		name  string
		a, f  uint8
		wantA uint8
		wantF uint8
	}{
		// After addition (N clear)
		{"09+08 needs no adjust", 0x11, 0x00, 0x11, 0x00},
		{"09+09 half carry", 0x12, FlagH, 0x18, 0x00},
		{"low nibble above 9", 0x1A, 0x00, 0x20, 0x00},
		{"high nibble above 9", 0xA3, 0x00, 0x03, FlagC},
		{"99+99 carry", 0x32, FlagC, 0x92, FlagC},
		{"99+99 carry and half carry", 0x32, FlagC | FlagH, 0x98, FlagC},
		{"adjusts to zero", 0x9A, FlagC, 0x00, FlagZ | FlagC},

		// After subtraction (N set)
		{"46-08 needs no adjust", 0x3E, FlagN, 0x3E, FlagN},
		{"40-09 half borrow", 0x37, FlagN | FlagH, 0x31, FlagN},
		{"borrow", 0x37, FlagN | FlagC, 0xD7, FlagN | FlagC},
		{"borrow and half borrow", 0x37, FlagN | FlagC | FlagH, 0xD1, FlagN | FlagC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu, mem := setupCPU()
			load(cpu, mem, 0x27)
			cpu.Registers.A = tt.a
			cpu.Registers.F = tt.f

			cpu.Step()

			assert.Equal(t, tt.wantA, cpu.Registers.A)
			assert.Equal(t, tt.wantF, cpu.Registers.F, "flags %s", cpu.Registers.FlagString())
		})
	}
}

// TestFlagsMetadata executes every instruction over a grid of register and
// flag states and checks each Flags column: '-' leaves the flag alone, '0'
// and '1' force it, and a letter must be able to produce both values.
func TestFlagsMetadata(t *testing.T) {
	values := []uint8{0x00, 0x01, 0x0F, 0x10, 0x80, 0xFF, 0x99, 0x9A}
	states := []uint8{0x00, FlagC, FlagN | FlagH, 0xF0}
	bits := [4]uint8{FlagZ, FlagN, FlagH, FlagC}

	// With A as the operand these always give the same flags.
	pinned := map[uint8]bool{0x97: true, 0xAF: true, 0xBF: true} // SUB A, XOR A, CP A

	cpu, mem := setupCPU()

	check := func(t *testing.T, in *Instruction) {
		t.Helper()
		var seen [4][2]bool

		for _, a := range values {
			for _, w := range values {
				for _, f := range states {
					cpu.Reset()
					r := cpu.Registers
					r.A = a
					r.B, r.C, r.D, r.E, r.H, r.L = w, w, w, w, w, w
					r.SP = r.HL()
					r.F = f
					r.PC = 0x4000
					mem.data[r.HL()] = w
					mem.data[r.HL()+1] = w
					if in.Prefixed {
						mem.data[0x4000], mem.data[0x4001] = 0xCB, in.Opcode
					} else {
						mem.data[0x4000], mem.data[0x4001], mem.data[0x4002] = in.Opcode, w, w
					}

					cpu.Step()

					for i, bit := range bits {
						before, after := f&bit != 0, r.F&bit != 0
						switch in.Flags[i] {
						case '-':
							require.Equal(t, before, after, "%s changed %c (A=%02X w=%02X F=%02X)", in, "ZNHC"[i], a, w, f)
						case '0':
							require.False(t, after, "%s set %c (A=%02X w=%02X F=%02X)", in, "ZNHC"[i], a, w, f)
						case '1':
							require.True(t, after, "%s cleared %c (A=%02X w=%02X F=%02X)", in, "ZNHC"[i], a, w, f)
						default:
							if after {
								seen[i][1] = true
							} else {
								seen[i][0] = true
							}
						}
					}
				}
			}
		}

		if !in.Prefixed && pinned[in.Opcode] {
			return
		}
		for i := range bits {
			if c := in.Flags[i]; c != '-' && c != '0' && c != '1' {
				assert.True(t, seen[i][0] && seen[i][1], "%s never varied %c", in, "ZNHC"[i])
			}
		}
	}

	for _, table := range []*[256]*Instruction{&Base, &Prefixed} {
		for _, in := range table {
			if in == nil {
				continue
			}
			t.Run(in.String(), func(t *testing.T) { check(t, in) })
		}
	}
}
