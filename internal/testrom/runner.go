// Package testrom provides utilities for running and validating test ROMs.
package testrom

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/richardwooding/gbcore/internal/cartridge"
	"github.com/richardwooding/gbcore/internal/emulator"
)

// Result represents the result of running a test ROM.
type Result struct {
	Output  string
	Passed  bool
	Failed  bool
	Timeout bool
	Error   error

	// Cycles is the number of clock cycles executed.
	Cycles uint64
	// UnknownOpcodes counts bytes that did not decode to an instruction.
	UnknownOpcodes int
}

// Run executes a test ROM that reports through the serial port and returns
// the result. Archived ROMs (.gz, .zip, .7z) are unpacked first.
func Run(romPath string, timeout time.Duration, opts ...emulator.Option) *Result {
	result := &Result{}

	data, err := cartridge.LoadFile(romPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read ROM: %w", err)
		return result
	}

	emu, err := emulator.New(data, opts...)
	if err != nil {
		result.Error = fmt.Errorf("failed to create emulator: %w", err)
		return result
	}

	output, err := emu.RunUntilOutput(timeout)
	result.Output = output
	result.Cycles = emu.CPU.Cycles
	result.UnknownOpcodes = emu.UnknownOpcodes()

	if err != nil {
		if errors.Is(err, emulator.ErrTimeout) {
			result.Timeout = true
		}
		result.Error = err
		return result
	}

	// Parse output for pass/fail
	// Check "Failed" first to avoid ambiguity if both strings are present
	result.Failed = strings.Contains(output, "Failed")
	result.Passed = strings.Contains(output, "Passed") && !result.Failed

	return result
}

// String returns a human-readable representation of the result.
func (r *Result) String() string {
	if r.Error != nil && !r.Timeout {
		return fmt.Sprintf("ERROR: %v", r.Error)
	}

	if r.Timeout {
		return "TIMEOUT"
	}

	if r.Passed {
		return "PASSED"
	}

	if r.Failed {
		return "FAILED"
	}

	return "UNKNOWN"
}

// IsSuccess returns true if the test passed.
func (r *Result) IsSuccess() bool {
	return r.Passed && !r.Failed && r.Error == nil
}
