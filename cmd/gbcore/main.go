// Package main provides the gbcore CLI application.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cespare/xxhash"

	"github.com/richardwooding/gbcore/internal/cartridge"
	"github.com/richardwooding/gbcore/internal/emulator"
	"github.com/richardwooding/gbcore/internal/logger"
	"github.com/richardwooding/gbcore/internal/testrom"
)

var (
	// ErrTestFailed indicates a test ROM failed.
	ErrTestFailed = errors.New("test failed")

	// ErrInvalidScale indicates the scale factor is out of valid range.
	ErrInvalidScale = errors.New("scale must be between 1 and 10")
)

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel      string `enum:"debug,info,error" default:"error" help:"Diagnostic log level (debug, info, error)."`
	ROMWriteCheck bool   `help:"Report CPU writes into cartridge ROM."`
}

func (g *Globals) logger() logger.Logger {
	level, err := logger.ParseLevel(g.LogLevel)
	if err != nil {
		level = logger.LevelError
	}
	return logger.NewStderr(level)
}

func (g *Globals) options() []emulator.Option {
	opts := []emulator.Option{emulator.WithLogger(g.logger())}
	if g.ROMWriteCheck {
		opts = append(opts, emulator.WithROMWriteCheck())
	}
	return opts
}

// loadEmulator reads a ROM file (plain or archived) and powers on a machine with it.
func (g *Globals) loadEmulator(path string) (*emulator.Emulator, error) {
	data, err := cartridge.LoadFile(path)
	if err != nil {
		return nil, err
	}

	emu, err := emulator.New(data, g.options()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create emulator: %w", err)
	}
	return emu, nil
}

// CLI represents the command-line interface structure.
type CLI struct {
	Globals

	Info  InfoCmd  `cmd:"" help:"Display cartridge information."`
	Trace TraceCmd `cmd:"" help:"Execute a ROM instruction by instruction, printing each step."`
	Run   RunCmd   `cmd:"" help:"Run a ROM in a monitor window."`
	Test  TestCmd  `cmd:"" help:"Run a test ROM and report results."`
}

// InfoCmd displays cartridge header information.
type InfoCmd struct {
	ROM string `arg:"" type:"existingfile" help:"Path to ROM file (.gb, .gbc, .gz, .zip, .7z)."`
}

// Run executes the info command.
func (c *InfoCmd) Run(g *Globals) error {
	data, err := cartridge.LoadFile(c.ROM)
	if err != nil {
		return err
	}

	img, err := cartridge.New(data)
	if err != nil {
		return fmt.Errorf("failed to load cartridge: %w", err)
	}

	emu, err := emulator.NewWithImage(img, g.options()...)
	if err != nil {
		return fmt.Errorf("failed to create emulator: %w", err)
	}

	title, err := emu.Title()
	if err != nil {
		title = fmt.Sprintf("<%v>", err)
	}

	header := img.Header()
	fmt.Printf("ROM Information:\n")
	fmt.Printf("  Title:           %s\n", title)
	fmt.Printf("  Cartridge Type:  %s (0x%02X)\n", header.Type(), header.CartridgeType)
	fmt.Printf("  ROM Size:        %d KiB (%d banks, %d in file)\n", header.ROMSizeBytes()/1024, header.ROMBanks(), img.Banks())
	fmt.Printf("  CGB:             %v (0x%02X)\n", header.CGB(), header.CGBFlag)
	fmt.Printf("  SGB Flag:        0x%02X\n", header.SGBFlag)
	fmt.Printf("  Header Checksum: 0x%02X\n", header.HeaderChecksum)
	fmt.Printf("  Global Checksum: 0x%04X (valid: %v)\n", header.GlobalChecksum, header.VerifyGlobalChecksum(data))
	fmt.Printf("  XXH64:           %016x\n", xxhash.Sum64(data))
	if header.Type().Banked() {
		fmt.Printf("  Note:            only banks 0 and 1 are mapped\n")
	}

	return nil
}

// TestCmd runs a test ROM and reports results.
type TestCmd struct {
	ROM     string `arg:"" type:"existingfile" help:"Path to test ROM file."`
	Timeout int    `default:"30" help:"Timeout in seconds."`
	Verbose bool   `short:"v" help:"Show detailed output."`
}

// Run executes the test command.
func (c *TestCmd) Run(g *Globals) error {
	fmt.Printf("Running test ROM: %s\n", c.ROM)

	timeout := time.Duration(c.Timeout) * time.Second
	result := testrom.Run(c.ROM, timeout, g.options()...)

	fmt.Printf("Result: %s\n", result.String())

	if c.Verbose {
		p := newPrinter(g.logger())
		p.Printf("Cycles: %d\n", result.Cycles)
		p.Printf("Unknown opcodes: %d\n", result.UnknownOpcodes)
	}

	if c.Verbose || !result.IsSuccess() {
		fmt.Printf("\nOutput:\n%s\n", result.Output)
	}

	if !result.IsSuccess() {
		return ErrTestFailed
	}

	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("gbcore"),
		kong.Description("A Game Boy (DMG) CPU core with tracing and test ROM tools."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
