package memory

import "fmt"

// Region identifies one of the disjoint areas of the 16-bit address space.
type Region uint8

// Address space regions, in ascending address order.
const (
	RegionROM0        Region = iota // 0000-3FFF: fixed ROM bank
	RegionROMN                      // 4000-7FFF: switchable ROM bank
	RegionVRAM                      // 8000-9FFF: video RAM
	RegionExternalRAM               // A000-BFFF: cartridge RAM
	RegionWRAM                      // C000-DFFF: work RAM
	RegionEcho                      // E000-FDFF: mirror of C000-DDFF
	RegionOAMIO                     // FE00-FF7F: OAM, unusable area, I/O registers
	RegionHRAM                      // FF80-FFFE: high RAM
	RegionIE                        // FFFF: interrupt enable register
)

// Region boundaries.
const (
	ROM0Start        uint16 = 0x0000
	ROMNStart        uint16 = 0x4000
	VRAMStart        uint16 = 0x8000
	ExternalRAMStart uint16 = 0xA000
	WRAMStart        uint16 = 0xC000
	EchoStart        uint16 = 0xE000
	OAMIOStart       uint16 = 0xFE00
	HRAMStart        uint16 = 0xFF80
	IEAddress        uint16 = 0xFFFF
)

// BankSize is the size of one ROM bank in bytes.
const BankSize = 0x4000

// RegionOf returns the region that owns addr. Every address maps to exactly
// one region; the final case catches everything above high RAM.
func RegionOf(addr uint16) Region {
	switch {
	case addr < ROMNStart:
		return RegionROM0
	case addr < VRAMStart:
		return RegionROMN
	case addr < ExternalRAMStart:
		return RegionVRAM
	case addr < WRAMStart:
		return RegionExternalRAM
	case addr < EchoStart:
		return RegionWRAM
	case addr < OAMIOStart:
		return RegionEcho
	case addr < HRAMStart:
		return RegionOAMIO
	case addr < IEAddress:
		return RegionHRAM
	default:
		return RegionIE
	}
}

// Base returns the first address of the region.
func (r Region) Base() uint16 {
	switch r {
	case RegionROM0:
		return ROM0Start
	case RegionROMN:
		return ROMNStart
	case RegionVRAM:
		return VRAMStart
	case RegionExternalRAM:
		return ExternalRAMStart
	case RegionWRAM:
		return WRAMStart
	case RegionEcho:
		return EchoStart
	case RegionOAMIO:
		return OAMIOStart
	case RegionHRAM:
		return HRAMStart
	default:
		return IEAddress
	}
}

// ReadOnly reports whether the CPU should treat the region as ROM.
func (r Region) ReadOnly() bool {
	return r == RegionROM0 || r == RegionROMN
}

// String returns the conventional short name of the region.
func (r Region) String() string {
	switch r {
	case RegionROM0:
		return "ROM0"
	case RegionROMN:
		return "ROMX"
	case RegionVRAM:
		return "VRAM"
	case RegionExternalRAM:
		return "SRAM"
	case RegionWRAM:
		return "WRAM"
	case RegionEcho:
		return "ECHO"
	case RegionOAMIO:
		return "OAM/IO"
	case RegionHRAM:
		return "HRAM"
	case RegionIE:
		return "IE"
	default:
		return fmt.Sprintf("Region(%d)", uint8(r))
	}
}
