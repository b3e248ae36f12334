// Package memory implements the Game Boy memory bus and address space mapping.
package memory

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/richardwooding/gbcore/internal/logger"
)

var (
	// ErrSizeMismatch indicates a ROM bank buffer is not exactly one bank long.
	ErrSizeMismatch = errors.New("ROM bank size mismatch")

	// ErrEncoding indicates a byte range does not hold valid text.
	ErrEncoding = errors.New("invalid text encoding")

	// ErrInvalidRange indicates a range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid address range")
)

// Cartridge title location in ROM bank 0 (end exclusive).
const (
	TitleStart uint16 = 0x0134
	TitleEnd   uint16 = 0x0144
)

// Bus represents the Game Boy memory bus. It is the only owner of addressable
// bytes; every access goes through Read, Write, Increment or Decrement.
type Bus struct {
	rom0 [BankSize]uint8 // 0000-3FFF: ROM bank 00
	romN [BankSize]uint8 // 4000-7FFF: ROM bank 01

	vram [0x2000]uint8 // 8000-9FFF: Video RAM
	eram [0x2000]uint8 // A000-BFFF: External RAM
	wram [0x2000]uint8 // C000-DFFF: Work RAM, mirrored at E000-FDFF

	// FE00-FF7F: OAM, the unusable gap and the I/O registers.
	// Peripheral side effects are not modelled.
	oamIO [0x180]uint8

	hram [0x7F]uint8 // FF80-FFFE: High RAM
	ie   [1]uint8    // FFFF: Interrupt Enable

	log            logger.Logger
	checkROMWrites bool
	romWrites      uint64
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(b *Bus) {
		b.log = log
	}
}

// WithROMWriteCheck reports CPU writes into the ROM area. The write still
// lands in the bank; real hardware would ignore it, so it almost always points
// at a cartridge emulation bug.
func WithROMWriteCheck() Option {
	return func(b *Bus) {
		b.checkROMWrites = true
	}
}

// NewBus creates a new memory bus with every region zero-filled.
func NewBus(opts ...Option) *Bus {
	b := &Bus{log: logger.NewNull()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// locate resolves addr to the backing storage and the offset within it.
func (b *Bus) locate(addr uint16) ([]uint8, uint16) {
	switch region := RegionOf(addr); region {
	case RegionROM0:
		return b.rom0[:], addr
	case RegionROMN:
		return b.romN[:], addr - ROMNStart
	case RegionVRAM:
		return b.vram[:], addr - VRAMStart
	case RegionExternalRAM:
		return b.eram[:], addr - ExternalRAMStart
	case RegionWRAM:
		return b.wram[:], addr - WRAMStart
	case RegionEcho:
		return b.wram[:], addr - EchoStart
	case RegionOAMIO:
		return b.oamIO[:], addr - OAMIOStart
	case RegionHRAM:
		return b.hram[:], addr - HRAMStart
	default:
		return b.ie[:], 0
	}
}

// Read reads a byte from the memory bus.
func (b *Bus) Read(addr uint16) uint8 {
	mem, offset := b.locate(addr)
	return mem[offset]
}

// Write writes a byte to the memory bus.
func (b *Bus) Write(addr uint16, value uint8) {
	if b.checkROMWrites && RegionOf(addr).ReadOnly() {
		b.romWrites++
		b.log.Errorf("write of %02X to ROM address %04X", value, addr)
	}
	b.store(addr, value)
}

func (b *Bus) store(addr uint16, value uint8) {
	mem, offset := b.locate(addr)
	mem[offset] = value
}

// Increment adds one to the byte at addr, wrapping 0xFF to 0x00.
func (b *Bus) Increment(addr uint16) {
	b.Write(addr, b.Read(addr)+1)
}

// Decrement subtracts one from the byte at addr, wrapping 0x00 to 0xFF.
func (b *Bus) Decrement(addr uint16) {
	b.Write(addr, b.Read(addr)-1)
}

// PushByte moves the stack pointer down one byte and stores value there.
func (b *Bus) PushByte(sp *uint16, value uint8) {
	*sp--
	b.Write(*sp, value)
}

// PopByte reads the byte at the stack pointer and moves it up one byte.
// The popped location is left untouched.
func (b *Bus) PopByte(sp *uint16) uint8 {
	value := b.Read(*sp)
	*sp++
	return value
}

// ROMWrites returns the number of writes into ROM seen while the ROM write
// check was enabled.
func (b *Bus) ROMWrites() uint64 {
	return b.romWrites
}

// LoadROM replaces both ROM banks. Each bank must be exactly BankSize bytes;
// nothing is written unless both are valid.
func (b *Bus) LoadROM(bank0, bankN []byte) error {
	if len(bank0) != BankSize {
		return fmt.Errorf("%w: bank 0 is %d bytes, want %d", ErrSizeMismatch, len(bank0), BankSize)
	}
	if len(bankN) != BankSize {
		return fmt.Errorf("%w: bank N is %d bytes, want %d", ErrSizeMismatch, len(bankN), BankSize)
	}

	copy(b.rom0[:], bank0)
	copy(b.romN[:], bankN)
	return nil
}

// ReadASCIIRange returns the bytes in [start, end) as text with trailing NUL
// bytes removed.
func (b *Bus) ReadASCIIRange(start, end uint16) (string, error) {
	if end < start {
		return "", fmt.Errorf("%w: %04X-%04X", ErrInvalidRange, start, end)
	}

	raw := make([]byte, 0, end-start)
	for addr := uint32(start); addr < uint32(end); addr++ {
		raw = append(raw, b.Read(uint16(addr)))
	}
	raw = bytes.TrimRight(raw, "\x00")

	text, _, err := transform.Bytes(encoding.UTF8Validator, raw)
	if err != nil {
		return "", fmt.Errorf("%w: bytes %04X-%04X: %w", ErrEncoding, start, end, err)
	}
	return string(text), nil
}

// Title returns the cartridge title stored in the ROM header.
func (b *Bus) Title() (string, error) {
	return b.ReadASCIIRange(TitleStart, TitleEnd)
}

// Reset clears all RAM while keeping the loaded ROM banks.
func (b *Bus) Reset() {
	clear(b.vram[:])
	clear(b.eram[:])
	clear(b.wram[:])
	clear(b.oamIO[:])
	clear(b.hram[:])
	b.ie[0] = 0
	b.romWrites = 0
}
