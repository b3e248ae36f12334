package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo)

	log.Debugf("hidden %d", 1)
	log.Infof("opcode %02X", 0xD3)
	log.Errorf("failed: %s", "boom")

	assert.Equal(t, "[INFO]\topcode D3\n[ERROR]\tfailed: boom\n", buf.String())
}

func TestNullLogger(t *testing.T) {
	log := NewNull()

	assert.NotPanics(t, func() {
		log.Debugf("x")
		log.Infof("x")
		log.Errorf("x")
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("info")
	assert.NoError(t, err)
	assert.Equal(t, LevelInfo, level)

	level, err = ParseLevel("DEBUG")
	assert.NoError(t, err)
	assert.Equal(t, LevelDebug, level)

	_, err = ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}
