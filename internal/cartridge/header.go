// Package cartridge reads Game Boy ROM images: the header, the 16 KiB banks
// and the archive formats ROM files are commonly distributed in.
package cartridge

import (
	"errors"
	"fmt"
)

// Header field offsets in bank 0.
const (
	headerStart    = 0x0100
	titleStart     = 0x0134
	titleEnd       = 0x0144
	checksumStart  = 0x0134
	checksumEnd    = 0x014C
	headerChecksum = 0x014D
	headerEnd      = 0x0150
)

// Header is the cartridge header at 0x0100-0x014F.
type Header struct {
	EntryPoint      [4]byte  // 0x0100
	NintendoLogo    [48]byte // 0x0104
	Title           [16]byte // 0x0134, the last byte doubles as the CGB flag
	CGBFlag         byte     // 0x0143
	NewLicenseeCode [2]byte  // 0x0144
	SGBFlag         byte     // 0x0146
	CartridgeType   byte     // 0x0147
	ROMSize         byte     // 0x0148: 32 KiB << n
	RAMSize         byte     // 0x0149
	DestinationCode byte     // 0x014A: 0 Japan, 1 overseas
	OldLicenseeCode byte     // 0x014B
	MaskROMVersion  byte     // 0x014C
	HeaderChecksum  byte     // 0x014D
	GlobalChecksum  uint16   // 0x014E, big-endian
}

// CartridgeType is the hardware on the cartridge, from 0x0147.
//
//nolint:revive // CartridgeType is intentionally explicit for clarity
type CartridgeType byte

// Cartridge types that can be identified by name. Only the ROM itself is
// emulated; controllers, RAM and batteries are reported, never modelled.
const (
	TypeROMOnly          CartridgeType = 0x00
	TypeMBC1             CartridgeType = 0x01
	TypeMBC1RAM          CartridgeType = 0x02
	TypeMBC1RAMBattery   CartridgeType = 0x03
	TypeMBC2             CartridgeType = 0x05
	TypeMBC2Battery      CartridgeType = 0x06
	TypeROMRAM           CartridgeType = 0x08
	TypeROMRAMBattery    CartridgeType = 0x09
	TypeMBC3TimerBattery CartridgeType = 0x0F
	TypeMBC3             CartridgeType = 0x11
	TypeMBC3RAMBattery   CartridgeType = 0x13
	TypeMBC5             CartridgeType = 0x19
	TypeMBC5RAMBattery   CartridgeType = 0x1B
	TypePocketCamera     CartridgeType = 0xFC
	TypeHuC1RAMBattery   CartridgeType = 0xFF
)

var typeNames = map[CartridgeType]string{
	TypeROMOnly:          "ROM ONLY",
	TypeMBC1:             "MBC1",
	TypeMBC1RAM:          "MBC1+RAM",
	TypeMBC1RAMBattery:   "MBC1+RAM+BATTERY",
	TypeMBC2:             "MBC2",
	TypeMBC2Battery:      "MBC2+BATTERY",
	TypeROMRAM:           "ROM+RAM",
	TypeROMRAMBattery:    "ROM+RAM+BATTERY",
	TypeMBC3TimerBattery: "MBC3+TIMER+BATTERY",
	TypeMBC3:             "MBC3",
	TypeMBC3RAMBattery:   "MBC3+RAM+BATTERY",
	TypeMBC5:             "MBC5",
	TypeMBC5RAMBattery:   "MBC5+RAM+BATTERY",
	TypePocketCamera:     "POCKET CAMERA",
	TypeHuC1RAMBattery:   "HuC1+RAM+BATTERY",
}

// String returns a human-readable name for the cartridge type.
func (t CartridgeType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN (0x%02X)", byte(t))
}

// Banked reports whether the type has a bank controller. Banked cartridges
// still load, but only banks 0 and 1 are ever mapped.
func (t CartridgeType) Banked() bool {
	switch t {
	case TypeROMOnly, TypeROMRAM, TypeROMRAMBattery:
		return false
	default:
		return true
	}
}

// ROMBanks returns the number of 16 KiB banks the header declares, or 0 when
// the size byte is invalid.
func (h *Header) ROMBanks() int {
	if h.ROMSize <= 0x08 {
		return 2 << h.ROMSize
	}
	return 0
}

// ROMSizeBytes returns the ROM size the header declares.
func (h *Header) ROMSizeBytes() int {
	return h.ROMBanks() * BankSize
}

// Type returns the cartridge type.
func (h *Header) Type() CartridgeType {
	return CartridgeType(h.CartridgeType)
}

// CGB reports whether the cartridge declares Game Boy Color support.
func (h *Header) CGB() bool {
	return h.CGBFlag&0x80 != 0
}

// ErrInvalidROMSize indicates the ROM data is too small to contain a valid header.
var ErrInvalidROMSize = errors.New("ROM too small: must be at least 336 bytes (0x0150)")

// ErrInvalidHeaderChecksum indicates the header checksum is invalid.
var ErrInvalidHeaderChecksum = errors.New("invalid header checksum")

// ParseHeader parses the cartridge header from ROM data.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidROMSize, len(rom))
	}

	h := &Header{
		CGBFlag:         rom[0x0143],
		SGBFlag:         rom[0x0146],
		CartridgeType:   rom[0x0147],
		ROMSize:         rom[0x0148],
		RAMSize:         rom[0x0149],
		DestinationCode: rom[0x014A],
		OldLicenseeCode: rom[0x014B],
		MaskROMVersion:  rom[0x014C],
		HeaderChecksum:  rom[headerChecksum],
		GlobalChecksum:  uint16(rom[0x014E])<<8 | uint16(rom[0x014F]),
	}
	copy(h.EntryPoint[:], rom[headerStart:0x0104])
	copy(h.NintendoLogo[:], rom[0x0104:titleStart])
	copy(h.Title[:], rom[titleStart:titleEnd])
	copy(h.NewLicenseeCode[:], rom[0x0144:0x0146])

	if got := Checksum(rom); got != h.HeaderChecksum {
		return nil, fmt.Errorf("%w: computed %02X, header has %02X", ErrInvalidHeaderChecksum, got, h.HeaderChecksum)
	}
	return h, nil
}

// Checksum computes the header checksum over 0x0134-0x014C:
// x = 0; for each byte: x = x - byte - 1.
func Checksum(rom []byte) byte {
	var x byte
	for _, b := range rom[checksumStart : checksumEnd+1] {
		x = x - b - 1
	}
	return x
}

// VerifyGlobalChecksum reports whether the 16-bit sum of every ROM byte except
// the checksum itself matches the header. Many commercial ROMs fail this, so
// it is informational only.
func (h *Header) VerifyGlobalChecksum(rom []byte) bool {
	var sum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		sum += uint16(b)
	}
	return sum == h.GlobalChecksum
}
