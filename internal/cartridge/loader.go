package cartridge

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrUnsupportedArchive indicates an archive with no ROM inside.
var ErrUnsupportedArchive = errors.New("archive contains no ROM")

// romExtensions are the file names accepted inside archives.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile reads a ROM from disk, decompressing .gz, .zip and .7z files.
// Any other extension is returned as is.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM file: %w", err)
	}

	rom, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rom, nil
}

// Decode unpacks data according to the file extension ext.
func Decode(ext string, data []byte) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)

	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("zip: %w", err)
		}
		for _, f := range zr.File {
			if isROMName(f.Name) {
				return readEntry(f.Open)
			}
		}
		return nil, ErrUnsupportedArchive

	case ".7z":
		sr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("7z: %w", err)
		}
		for _, f := range sr.File {
			if isROMName(f.Name) {
				return readEntry(f.Open)
			}
		}
		return nil, ErrUnsupportedArchive

	default:
		return data, nil
	}
}

func isROMName(name string) bool {
	return slices.Contains(romExtensions, strings.ToLower(filepath.Ext(name)))
}

func readEntry(open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
