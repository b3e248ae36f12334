package cartridge

import (
	"errors"
	"fmt"
)

// BankSize is the size of one switchable ROM bank.
const BankSize = 0x4000

// maxROMSize is the largest ROM any header can declare (512 banks).
const maxROMSize = 8 * 1024 * 1024

var (
	// ErrROMSizeMismatch indicates the ROM size doesn't match the header.
	ErrROMSizeMismatch = errors.New("ROM size does not match header")

	// ErrROMTooLarge indicates the ROM size exceeds the maximum allowed size.
	ErrROMTooLarge = errors.New("ROM size exceeds maximum allowed size of 8 MiB")

	// ErrBankOutOfRange indicates a bank number past the end of the image.
	ErrBankOutOfRange = errors.New("ROM bank out of range")
)

// Image is a ROM image split into 16 KiB banks.
type Image struct {
	rom    []byte
	header *Header
}

// New creates an image from ROM data with a valid header. The data must be
// at least as large as the header declares.
func New(rom []byte) (*Image, error) {
	if len(rom) > maxROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrROMTooLarge, len(rom))
	}

	header, err := ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if expected := header.ROMSizeBytes(); expected == 0 || len(rom) < expected {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrROMSizeMismatch, expected, len(rom))
	}

	return &Image{rom: rom, header: header}, nil
}

// NewRaw creates an image without reading the header. The data must be a
// whole number of banks, at least two. Header returns nil unless the data
// happens to carry a valid one.
func NewRaw(rom []byte) (*Image, error) {
	if len(rom) > maxROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrROMTooLarge, len(rom))
	}
	if len(rom) < 2*BankSize || len(rom)%BankSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d byte banks",
			ErrROMSizeMismatch, len(rom), BankSize)
	}

	img := &Image{rom: rom}
	if header, err := ParseHeader(rom); err == nil {
		img.header = header
	}
	return img, nil
}

// Header returns the parsed header, or nil for a raw image without one.
func (img *Image) Header() *Header {
	return img.header
}

// Banks returns the number of complete banks in the image.
func (img *Image) Banks() int {
	return len(img.rom) / BankSize
}

// Bank returns bank n. The slice aliases the image.
func (img *Image) Bank(n int) ([]byte, error) {
	if n < 0 || n >= img.Banks() {
		return nil, fmt.Errorf("%w: bank %d of %d", ErrBankOutOfRange, n, img.Banks())
	}
	return img.rom[n*BankSize : (n+1)*BankSize], nil
}

// Bytes returns the raw image data.
func (img *Image) Bytes() []byte {
	return img.rom
}
