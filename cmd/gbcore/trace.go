package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/message"

	"github.com/richardwooding/gbcore/internal/cpu"
	"github.com/richardwooding/gbcore/internal/emulator"
	"github.com/richardwooding/gbcore/internal/watch"
)

// ANSI attributes used when standard output is a terminal.
const (
	ansiAddr  = "\x1b[33m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// TraceCmd executes a ROM one instruction at a time.
type TraceCmd struct {
	ROM     string `arg:"" type:"existingfile" help:"Path to ROM file."`
	Steps   int    `default:"100" help:"Maximum number of instructions to execute."`
	Until   string `help:"Stop before the first instruction where this Starlark expression is true, e.g. \"pc == 0x150\"."`
	Quiet   bool   `short:"q" help:"Only print the final state."`
	NoColor bool   `help:"Disable highlighting even on a terminal."`
}

// Run executes the trace command.
func (c *TraceCmd) Run(g *Globals) error {
	emu, err := g.loadEmulator(c.ROM)
	if err != nil {
		return err
	}

	var cond *watch.Condition
	if c.Until != "" {
		if cond, err = watch.Compile(c.Until); err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
	}

	t := &tracer{
		out:     os.Stdout,
		printer: newPrinter(g.logger()),
		color:   !c.NoColor && term.IsTerminal(int(os.Stdout.Fd())), //nolint:gosec // G115: file descriptors fit in int
		quiet:   c.Quiet,
	}
	return t.run(emu, c.Steps, cond)
}

// tracer prints one line per executed instruction.
type tracer struct {
	out     io.Writer
	printer *message.Printer
	color   bool
	quiet   bool
}

func (t *tracer) run(emu *emulator.Emulator, steps int, cond *watch.Condition) error {
	executed := 0
	for ; executed < steps; executed++ {
		if cond != nil {
			hit, err := cond.Eval(emu.CPU)
			if err != nil {
				return err
			}
			if hit {
				fmt.Fprintf(t.out, "stopped: %s\n", cond)
				break
			}
		}

		// Decode before stepping; the instruction may overwrite itself.
		pc := emu.CPU.Registers.PC
		text, length := cpu.Disassemble(emu.Memory, pc)
		raw := rawBytes(emu.Memory, pc, length)
		cycles := emu.Step()

		if !t.quiet {
			t.line(pc, raw, text, cycles, emu.CPU.Registers)
		}
	}

	fmt.Fprintln(t.out, emu.CPU.Registers)
	t.printer.Fprintf(t.out, "%d instructions, %d cycles\n", executed, emu.CPU.Cycles)
	if n := emu.UnknownOpcodes(); n > 0 {
		t.printer.Fprintf(t.out, "%d unknown opcodes\n", n)
	}
	if out := emu.SerialOutput(); out != "" {
		fmt.Fprintf(t.out, "serial: %q\n", out)
	}
	return nil
}

func (t *tracer) line(pc uint16, raw, text string, cycles cpu.Cycles, regs *cpu.Registers) {
	addr := fmt.Sprintf("%04X", pc)
	mnemonic := fmt.Sprintf("%-16s", text)
	if t.color {
		addr = ansiAddr + addr + ansiReset
		mnemonic = ansiBold + mnemonic + ansiReset
	}
	fmt.Fprintf(t.out, "%s  %-8s  %s %2d  %s\n", addr, raw, mnemonic, cycles.Clock, regs)
}

// rawBytes formats the bytes of one instruction as hex.
func rawBytes(mem cpu.Reader, addr, length uint16) string {
	parts := make([]string, 0, length)
	for i := range length {
		parts = append(parts, fmt.Sprintf("%02X", mem.Read(addr+i)))
	}
	return strings.Join(parts, " ")
}
