package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/text/message"

	"github.com/richardwooding/gbcore/internal/cpu"
	"github.com/richardwooding/gbcore/internal/emulator"
	"github.com/richardwooding/gbcore/internal/memory"
)

// Monitor layout: a text column on the left, the VRAM tile sheet on the right.
const (
	textWidth     = 224
	tileColumns   = 16
	tileRows      = 24 // 384 tiles at 0x8000-0x97FF
	sheetWidth    = tileColumns * 8
	sheetHeight   = tileRows * 8
	monitorWidth  = textWidth + sheetWidth
	monitorHeight = 240
)

// DMG palette colors (classic Game Boy green tones).
var dmgPalette = [4]color.RGBA{
	{0xE0, 0xF8, 0xD0, 0xFF}, // White (lightest)
	{0x88, 0xC0, 0x70, 0xFF}, // Light gray
	{0x34, 0x68, 0x56, 0xFF}, // Dark gray
	{0x08, 0x18, 0x20, 0xFF}, // Black (darkest)
}

var background = color.RGBA{0x10, 0x10, 0x18, 0xFF}

// Monitor implements the Ebiten game interface. It runs one frame of cycles
// per tick and shows CPU state next to the contents of VRAM.
//
// Keys: Space pauses, N steps one instruction while paused, R resets.
type Monitor struct {
	emulator *emulator.Emulator
	printer  *message.Printer
	sheet    *ebiten.Image
	pixels   []byte // Pre-allocated pixel buffer to avoid GC pressure
	paused   bool
}

// NewMonitor creates a monitor window for the emulator.
func NewMonitor(emu *emulator.Emulator, printer *message.Printer) *Monitor {
	return &Monitor{
		emulator: emu,
		printer:  printer,
		sheet:    ebiten.NewImage(sheetWidth, sheetHeight),
		pixels:   make([]byte, sheetWidth*sheetHeight*4), // RGBA format
	}
}

// Update advances the emulator by one frame unless paused.
// This is called 60 times per second by Ebiten.
func (m *Monitor) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		m.paused = !m.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		m.emulator.Reset()
	case m.paused && inpututil.IsKeyJustPressed(ebiten.KeyN):
		m.emulator.Step()
	}

	if !m.paused {
		m.emulator.RunFrame()
	}
	return nil
}

// Draw draws the monitor.
func (m *Monitor) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	ebitenutil.DebugPrint(screen, m.status())

	decodeTiles(m.emulator.Memory, m.emulator.Memory.Read(memory.BGP), m.pixels)
	m.sheet.WritePixels(m.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(textWidth, 0)
	screen.DrawImage(m.sheet, op)
}

// Layout returns the logical screen size.
func (m *Monitor) Layout(_, _ int) (int, int) {
	return monitorWidth, monitorHeight
}

// status renders the text column.
func (m *Monitor) status() string {
	emu := m.emulator
	r := emu.CPU.Registers

	var b strings.Builder
	fmt.Fprintf(&b, "AF %04X  BC %04X\n", r.AF(), r.BC())
	fmt.Fprintf(&b, "DE %04X  HL %04X\n", r.DE(), r.HL())
	fmt.Fprintf(&b, "SP %04X  PC %04X\n", r.SP, r.PC)
	fmt.Fprintf(&b, "%s  IME %v\n", r.FlagString(), emu.CPU.IME)
	b.WriteString(m.printer.Sprintf("%d cycles\n", emu.CPU.Cycles))

	addr := r.PC
	for i := range 6 {
		text, length := cpu.Disassemble(emu.Memory, addr)
		marker := "  "
		if i == 0 {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%04X %s\n", marker, addr, text)
		addr += length
	}

	switch {
	case m.paused:
		b.WriteString("PAUSED (N step)\n")
	case emu.CPU.Halted():
		b.WriteString("HALTED\n")
	}
	if out := lastLine(emu.SerialOutput()); out != "" {
		fmt.Fprintf(&b, "SB %s\n", out)
	}
	return b.String()
}

// lastLine returns the last non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}

// decodeTiles renders the 384 VRAM tiles as a 16x24 sheet of RGBA pixels,
// shading each 2-bit color through the palette register bgp.
func decodeTiles(mem cpu.Reader, bgp uint8, pixels []byte) {
	for tile := range tileColumns * tileRows {
		base := memory.VRAMStart + uint16(tile)*16 //nolint:gosec // G115: tile < 384
		originX := (tile % tileColumns) * 8
		originY := (tile / tileColumns) * 8

		for y := range 8 {
			lo := mem.Read(base + uint16(y)*2)     //nolint:gosec // G115: y < 8
			hi := mem.Read(base + uint16(y)*2 + 1) //nolint:gosec // G115: y < 8

			for x := range 8 {
				bit := 7 - x
				index := (hi>>bit&1)<<1 | lo>>bit&1
				c := dmgPalette[bgp>>(index*2)&0x03]

				offset := ((originY+y)*sheetWidth + originX + x) * 4
				pixels[offset] = c.R
				pixels[offset+1] = c.G
				pixels[offset+2] = c.B
				pixels[offset+3] = c.A
			}
		}
	}
}
