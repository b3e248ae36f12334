package cpu

import (
	"fmt"
	"strings"
)

// Reader is the read side of the memory bus.
type Reader interface {
	Read(addr uint16) uint8
}

// Disassemble decodes the instruction at addr and returns its assembler text
// and length in bytes. Bytes that do not decode are shown as a DB directive
// with length 1.
func Disassemble(mem Reader, addr uint16) (string, uint16) {
	opcode := mem.Read(addr)
	if opcode == 0xCB {
		in := Prefixed[mem.Read(addr+1)]
		return in.Mnemonic, uint16(in.Length)
	}

	in := Base[opcode]
	if in == nil {
		return fmt.Sprintf("DB $%02X", opcode), 1
	}

	text := in.Mnemonic
	switch in.Operand {
	case OperandByte:
		n := mem.Read(addr + 1)
		switch {
		case strings.HasPrefix(text, "JR"):
			target := uint16(int32(addr) + int32(in.Length) + int32(int8(n))) //nolint:gosec // G115: Intentional signed offset arithmetic
			text = strings.Replace(text, "r8", fmt.Sprintf("$%04X", target), 1)
		case strings.Contains(text, "r8"):
			text = strings.Replace(text, "r8", fmt.Sprintf("%d", int8(n)), 1) //nolint:gosec // G115: Intentional signed conversion
			text = strings.Replace(text, "+-", "-", 1)
		case strings.Contains(text, "a8"):
			text = strings.Replace(text, "a8", fmt.Sprintf("$FF%02X", n), 1)
		default:
			text = strings.Replace(text, "d8", fmt.Sprintf("$%02X", n), 1)
		}
	case OperandWord:
		nn := Join(mem.Read(addr+2), mem.Read(addr+1))
		text = strings.NewReplacer("d16", fmt.Sprintf("$%04X", nn), "a16", fmt.Sprintf("$%04X", nn)).Replace(text)
	}
	return text, uint16(in.Length)
}
