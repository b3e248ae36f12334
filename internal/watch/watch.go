// Package watch evaluates break conditions written as Starlark expressions
// against CPU state, e.g. "pc == 0x150 and a == 0" or "mem(0xFF44) >= 144".
//
// Registers are predeclared in lower case (a f b c d e h l sp pc af bc de hl),
// flags as zf nf hf cf, the clock as cycles, and mem(addr) reads the bus.
package watch

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/richardwooding/gbcore/internal/cpu"
)

// ErrNotBool indicates an expression that did not evaluate to True or False.
var ErrNotBool = errors.New("condition is not a boolean")

// names are the identifiers an expression may use.
var names = []string{
	"a", "f", "b", "c", "d", "e", "h", "l",
	"sp", "pc", "af", "bc", "de", "hl",
	"zf", "nf", "hf", "cf",
	"cycles", "mem",
}

// Condition is a compiled break expression.
type Condition struct {
	expr string
	prog *starlark.Program
}

// Compile parses expr once so it can be evaluated every step.
func Compile(expr string) (*Condition, error) {
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}

	src := "rc = (" + expr + ")\n"
	_, prog, err := starlark.SourceProgramOptions(&syntax.FileOptions{}, "watch", src, func(name string) bool {
		return known[name]
	})
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	return &Condition{expr: expr, prog: prog}, nil
}

// String returns the source expression.
func (cond *Condition) String() string {
	return cond.expr
}

// Eval reports whether the condition holds for the current CPU state.
func (cond *Condition) Eval(c *cpu.CPU) (bool, error) {
	thread := &starlark.Thread{Name: "watch"}
	globals, err := cond.prog.Init(thread, predeclared(c))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", cond.expr, err)
	}

	rc, ok := globals["rc"].(starlark.Bool)
	if !ok {
		return false, fmt.Errorf("%w: %q gave %s", ErrNotBool, cond.expr, globals["rc"].Type())
	}
	return bool(rc), nil
}

func predeclared(c *cpu.CPU) starlark.StringDict {
	r := c.Registers
	mem := c.Memory

	return starlark.StringDict{
		"a":      starlark.MakeInt(int(r.A)),
		"f":      starlark.MakeInt(int(r.F)),
		"b":      starlark.MakeInt(int(r.B)),
		"c":      starlark.MakeInt(int(r.C)),
		"d":      starlark.MakeInt(int(r.D)),
		"e":      starlark.MakeInt(int(r.E)),
		"h":      starlark.MakeInt(int(r.H)),
		"l":      starlark.MakeInt(int(r.L)),
		"sp":     starlark.MakeInt(int(r.SP)),
		"pc":     starlark.MakeInt(int(r.PC)),
		"af":     starlark.MakeInt(int(r.AF())),
		"bc":     starlark.MakeInt(int(r.BC())),
		"de":     starlark.MakeInt(int(r.DE())),
		"hl":     starlark.MakeInt(int(r.HL())),
		"zf":     starlark.Bool(r.ZeroFlag()),
		"nf":     starlark.Bool(r.SubtractFlag()),
		"hf":     starlark.Bool(r.HalfCarryFlag()),
		"cf":     starlark.Bool(r.CarryFlag()),
		"cycles": starlark.MakeUint64(c.Cycles),
		"mem": starlark.NewBuiltin("mem", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
				return nil, err
			}
			if addr < 0 || addr > 0xFFFF {
				return nil, fmt.Errorf("%s: address %d out of range", b.Name(), addr)
			}
			return starlark.MakeInt(int(mem.Read(uint16(addr)))), nil
		}),
	}
}
