package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		name   string
		bytes  []uint8
		want   string
		length uint16
	}{
		{"NOP", []uint8{0x00}, "NOP", 1},
		{"immediate byte", []uint8{0x06, 0x05}, "LD B,$05", 2},
		{"immediate word", []uint8{0x21, 0x34, 0x12}, "LD HL,$1234", 3},
		{"absolute jump", []uint8{0xC3, 0x00, 0x02}, "JP $0200", 3},
		{"relative jump", []uint8{0x18, 0xFE}, "JR $0100", 2},
		{"conditional relative jump", []uint8{0x20, 0x05}, "JR NZ,$0107", 2},
		{"high page", []uint8{0xE0, 0x44}, "LDH ($FF44),A", 2},
		{"signed offset", []uint8{0xF8, 0xFD}, "LD HL,SP-3", 2},
		{"positive offset", []uint8{0xE8, 0x04}, "ADD SP,4", 2},
		{"register pair address", []uint8{0x1A}, "LD A,(DE)", 1},
		{"restart", []uint8{0xFF}, "RST 38H", 1},
		{"prefixed", []uint8{0xCB, 0x7C}, "BIT 7,H", 2},
		{"prefixed swap", []uint8{0xCB, 0x37}, "SWAP A", 2},
		{"illegal", []uint8{0xD3}, "DB $D3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMockMemory()
			copy(mem.data[0x0100:], tt.bytes)

			got, length := Disassemble(mem, 0x0100)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.length, length)
		})
	}
}
