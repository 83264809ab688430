package cpu

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Dump writes a human-readable register/flag/cycle report to w, in the
// octal layout the original DDP-24 emulator used.
func (c *Cpu) Dump(w io.Writer) {
	fmt.Fprintln(w, "=== DDP-24 CPU State ===")
	fmt.Fprintf(w, "PC: %05o  A: %08o  B: %08o\n", c.PC, c.A, c.B)
	fmt.Fprintf(w, "X1: %05o  X2: %05o  X3: %05o\n", c.X[1], c.X[2], c.X[3])
	fmt.Fprintf(w, "Flags: %s%s%s\n", flagStr(c.Overflow, "OVF "), flagStr(c.Halted, "HLT "), flagStr(c.InterruptEnabled, "INT "))
	fmt.Fprintf(w, "Cycles: %d\n", c.Cycles)
}

// DumpVerbose writes a full spew dump of the processor's registers and
// flags (memory elided, since 32,768 words dwarfs any useful terminal
// dump) for debugging.
func (c *Cpu) DumpVerbose(w io.Writer) {
	snapshot := struct {
		A, B             string
		X                [4]string
		PC               string
		Overflow, Halted bool
		InterruptEnabled bool
		Cycles           uint64
	}{
		A:                fmt.Sprintf("%08o", c.A),
		B:                fmt.Sprintf("%08o", c.B),
		PC:               fmt.Sprintf("%05o", c.PC),
		Overflow:         c.Overflow,
		Halted:           c.Halted,
		InterruptEnabled: c.InterruptEnabled,
		Cycles:           c.Cycles,
	}
	for i, x := range c.X {
		snapshot.X[i] = fmt.Sprintf("%05o", x)
	}
	fmt.Fprint(w, spew.Sdump(snapshot))
}

func flagStr(set bool, s string) string {
	if set {
		return s
	}
	return ""
}
