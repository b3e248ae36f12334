package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunCmd runs a ROM in a monitor window.
type RunCmd struct {
	ROM   string `arg:"" type:"existingfile" help:"Path to ROM file (.gb, .gbc, .gz, .zip, .7z)."`
	Scale int    `default:"3" help:"Window scale factor (1-10)."`
}

// Run executes the run command.
func (c *RunCmd) Run(g *Globals) error {
	if c.Scale < 1 || c.Scale > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidScale, c.Scale)
	}

	emu, err := g.loadEmulator(c.ROM)
	if err != nil {
		return err
	}

	title, err := emu.Title()
	if err != nil || title == "" {
		title = "untitled"
	}

	monitor := NewMonitor(emu, newPrinter(g.logger()))

	ebiten.SetWindowTitle("gbcore - " + title)
	ebiten.SetWindowSize(monitorWidth*c.Scale, monitorHeight*c.Scale)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(monitor); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	return nil
}
