package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitsBanks(t *testing.T) {
	rom := buildROM(4*BankSize, "BANKS", byte(TypeMBC1), 0x01)
	rom[BankSize] = 0x11
	rom[3*BankSize+BankSize-1] = 0x33

	img, err := New(rom)
	require.NoError(t, err)
	require.NotNil(t, img.Header())
	assert.Equal(t, 4, img.Banks())
	assert.True(t, img.Header().Type().Banked())

	bank1, err := img.Bank(1)
	require.NoError(t, err)
	assert.Len(t, bank1, BankSize)
	assert.Equal(t, uint8(0x11), bank1[0])

	bank3, err := img.Bank(3)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x33), bank3[BankSize-1])

	_, err = img.Bank(4)
	assert.ErrorIs(t, err, ErrBankOutOfRange)
	_, err = img.Bank(-1)
	assert.ErrorIs(t, err, ErrBankOutOfRange)
}

func TestNewSizeMismatch(t *testing.T) {
	// Header declares 64 KiB but only 32 KiB is present.
	rom := buildROM(2*BankSize, "SHORT", 0x00, 0x01)

	_, err := New(rom)
	assert.ErrorIs(t, err, ErrROMSizeMismatch)
}

func TestNewInvalidSizeByte(t *testing.T) {
	rom := buildROM(2*BankSize, "BAD", 0x00, 0x52)

	_, err := New(rom)
	assert.ErrorIs(t, err, ErrROMSizeMismatch)
}

func TestNewTooSmall(t *testing.T) {
	_, err := New(make([]byte, 0x0100))
	assert.ErrorIs(t, err, ErrInvalidROMSize)
}

func TestNewBadChecksum(t *testing.T) {
	rom := buildROM(2*BankSize, "TEST", 0x00, 0x00)
	rom[0x014D] ^= 0xFF

	_, err := New(rom)
	assert.ErrorIs(t, err, ErrInvalidHeaderChecksum)
}

func TestNewROMTooLarge(t *testing.T) {
	rom := make([]byte, maxROMSize+1)

	_, err := New(rom)
	assert.ErrorIs(t, err, ErrROMTooLarge)

	_, err = NewRaw(rom)
	assert.ErrorIs(t, err, ErrROMTooLarge)
}

func TestNewROMExactly8MiB(t *testing.T) {
	rom := buildROM(maxROMSize, "BIG", byte(TypeMBC5), 0x08)

	img, err := New(rom)
	require.NoError(t, err)
	assert.Equal(t, 512, img.Banks())
}

func TestNewRaw(t *testing.T) {
	rom := make([]byte, 2*BankSize)
	copy(rom[0x0100:], []byte{0x06, 0x05, 0x00})

	img, err := NewRaw(rom)
	require.NoError(t, err)
	assert.Nil(t, img.Header(), "no valid header in raw data")
	assert.Equal(t, 2, img.Banks())
	assert.Equal(t, rom, img.Bytes())

	bank0, err := img.Bank(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x06), bank0[0x0100])
}

func TestNewRawKeepsValidHeader(t *testing.T) {
	img, err := NewRaw(buildROM(2*BankSize, "HEADER", 0x00, 0x00))
	require.NoError(t, err)
	assert.NotNil(t, img.Header())
}

func TestNewRawRejectsPartialBanks(t *testing.T) {
	for _, size := range []int{0, BankSize, 2*BankSize - 1, 2*BankSize + 1} {
		_, err := NewRaw(make([]byte, size))
		assert.ErrorIs(t, err, ErrROMSizeMismatch, "size %d", size)
	}
}
