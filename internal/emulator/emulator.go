// Package emulator provides the main emulator runner that ties together
// CPU, memory, and cartridge components.
package emulator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/richardwooding/gbcore/internal/cartridge"
	"github.com/richardwooding/gbcore/internal/cpu"
	"github.com/richardwooding/gbcore/internal/logger"
	"github.com/richardwooding/gbcore/internal/memory"
)

// CyclesPerFrame is the number of clock cycles in one 59.7 Hz DMG frame.
const CyclesPerFrame = 70224

var (
	// ErrTimeout indicates the operation timed out.
	ErrTimeout = errors.New("timeout waiting for serial output")
)

// Emulator represents a Game Boy emulator instance.
type Emulator struct {
	CPU    *cpu.CPU
	Memory *memory.Bus
	Image  *cartridge.Image

	log           logger.Logger
	romWriteCheck bool

	// Serial output buffer for test ROMs
	serialOutput []byte
	unknown      int
}

// Option configures an Emulator.
type Option func(*Emulator)

// WithLogger sets the logger shared by the bus and the CPU.
func WithLogger(log logger.Logger) Option {
	return func(e *Emulator) {
		e.log = log
	}
}

// WithROMWriteCheck reports CPU writes into the ROM area.
func WithROMWriteCheck() Option {
	return func(e *Emulator) {
		e.romWriteCheck = true
	}
}

// New creates a new emulator instance with the given ROM data. The data must
// be a whole number of 16 KiB banks; the header is not required.
func New(romData []byte, opts ...Option) (*Emulator, error) {
	img, err := cartridge.NewRaw(romData)
	if err != nil {
		return nil, fmt.Errorf("failed to load cartridge: %w", err)
	}
	return NewWithImage(img, opts...)
}

// NewWithImage creates an emulator with banks 0 and 1 of img mapped and the
// machine in its power-on state.
func NewWithImage(img *cartridge.Image, opts ...Option) (*Emulator, error) {
	e := &Emulator{
		Image:        img,
		log:          logger.NewNull(),
		serialOutput: make([]byte, 0, 1024),
	}
	for _, opt := range opts {
		opt(e)
	}

	busOpts := []memory.Option{memory.WithLogger(e.log)}
	if e.romWriteCheck {
		busOpts = append(busOpts, memory.WithROMWriteCheck())
	}
	e.Memory = memory.NewBus(busOpts...)

	bank0, err := img.Bank(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM bank 0: %w", err)
	}
	bank1, err := img.Bank(1)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROM bank 1: %w", err)
	}
	if err := e.Memory.LoadROM(bank0, bank1); err != nil {
		return nil, fmt.Errorf("failed to load ROM into memory: %w", err)
	}

	e.CPU = cpu.New(e.Memory,
		cpu.WithLogger(e.log),
		cpu.WithUnknownOpcodeHook(func(uint8, uint16) { e.unknown++ }),
	)
	e.PowerOn()

	return e, nil
}

// PowerOn puts the machine in the state the boot ROM leaves behind: the I/O
// registers get their post-boot values and the CPU gets fresh registers.
func (e *Emulator) PowerOn() {
	e.Memory.InitIO()
	e.CPU.Reset()
	e.serialOutput = e.serialOutput[:0]
	e.unknown = 0
}

// Step executes one CPU instruction and returns its cost.
func (e *Emulator) Step() cpu.Cycles {
	cycles := e.CPU.Step()
	e.handleSerialOutput()
	return cycles
}

// RunCycles runs the emulator for at least the specified number of cycles.
func (e *Emulator) RunCycles(cycles uint64) {
	targetCycles := e.CPU.Cycles + cycles
	for e.CPU.Cycles < targetCycles {
		e.Step()
	}
}

// RunFrame runs one frame's worth of cycles.
func (e *Emulator) RunFrame() {
	e.RunCycles(CyclesPerFrame)
}

// RunUntilOutput runs the emulator until serial output appears or timeout is reached.
// This is useful for test ROMs that output results via serial port.
// Returns the serial output and any error.
func (e *Emulator) RunUntilOutput(timeout time.Duration) (string, error) {
	startTime := time.Now()
	lastOutputLen := 0

	for {
		if time.Since(startTime) > timeout {
			if len(e.serialOutput) > 0 {
				return string(e.serialOutput), nil
			}
			return "", ErrTimeout
		}

		e.RunCycles(10000)

		// Reset timeout on new output
		if len(e.serialOutput) > lastOutputLen {
			lastOutputLen = len(e.serialOutput)
			startTime = time.Now()
		}

		// Blargg's test ROMs output "Passed" or "Failed" when complete
		output := string(e.serialOutput)
		if strings.Contains(output, "Passed") || strings.Contains(output, "Failed") {
			return output, nil
		}
	}
}

// handleSerialOutput captures a byte when a serial transfer is requested
// (bit 7 of SC) and acknowledges it.
func (e *Emulator) handleSerialOutput() {
	sc := e.Memory.Read(memory.SC)
	if sc&0x80 == 0 {
		return
	}

	e.serialOutput = append(e.serialOutput, e.Memory.Read(memory.SB))
	e.Memory.Write(memory.SC, sc&0x7F)
}

// SerialOutput returns the accumulated serial output.
func (e *Emulator) SerialOutput() string {
	return string(e.serialOutput)
}

// UnknownOpcodes returns how many undecodable bytes were executed since power on.
func (e *Emulator) UnknownOpcodes() int {
	return e.unknown
}

// Title returns the cartridge title from the mapped ROM.
func (e *Emulator) Title() (string, error) {
	return e.Memory.Title()
}

// Reset clears RAM and powers the machine on again. The ROM stays mapped.
func (e *Emulator) Reset() {
	e.Memory.Reset()
	e.PowerOn()
}
