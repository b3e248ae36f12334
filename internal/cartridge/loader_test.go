package cartridge

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadFilePlain(t *testing.T) {
	rom := buildROM(2*BankSize, "PLAIN", 0x00, 0x00)

	got, err := LoadFile(writeFile(t, "plain.gb", rom))
	require.NoError(t, err)
	assert.Equal(t, rom, got)
}

func TestLoadFileGzip(t *testing.T) {
	rom := buildROM(2*BankSize, "GZIP", 0x00, 0x00)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(rom)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := LoadFile(writeFile(t, "rom.gb.gz", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, rom, got)
}

func TestLoadFileZip(t *testing.T) {
	rom := buildROM(2*BankSize, "ZIP", 0x00, 0x00)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	readme, err := zw.Create("README.txt")
	require.NoError(t, err)
	_, err = readme.Write([]byte("not a rom"))
	require.NoError(t, err)
	entry, err := zw.Create("game/Game.GB")
	require.NoError(t, err)
	_, err = entry.Write(rom)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := LoadFile(writeFile(t, "rom.zip", buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, rom, got, "first entry with a ROM extension is used")
}

func TestLoadFileZipWithoutROM(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("notes.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = LoadFile(writeFile(t, "empty.zip", buf.Bytes()))
	assert.ErrorIs(t, err, ErrUnsupportedArchive)
}

// fixtureROM is the content of game.gb inside testdata/rom.7z.
func fixtureROM() []byte {
	rom := make([]byte, 2*BankSize)
	for i := range rom {
		rom[i] = byte(i*7 ^ i>>8)
	}
	return rom
}

func TestLoadFile7z(t *testing.T) {
	got, err := LoadFile(filepath.Join("testdata", "rom.7z"))
	require.NoError(t, err)
	assert.Equal(t, fixtureROM(), got, "README.txt is skipped for game.gb")

	img, err := NewRaw(got)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Banks())
}

func TestLoadFile7zWithoutROM(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "norom.7z"))
	assert.ErrorIs(t, err, ErrUnsupportedArchive)
}

func TestLoadFileCorruptArchives(t *testing.T) {
	for _, name := range []string{"bad.gz", "bad.zip", "bad.7z"} {
		_, err := LoadFile(writeFile(t, name, []byte("definitely not an archive")))
		assert.Error(t, err, name)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.gb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
