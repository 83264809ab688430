// Package cpu implements the DDP-24, the 24-bit sign-magnitude,
// single-address guidance computer used in the Viking Mars lander program.
package cpu

import (
	"errors"
	"fmt"
	"log"
	"os"

	"ddp24/mask"
	"ddp24/mem"
	"ddp24/word"
)

// Logger is the package-level diagnostic sink. Fatal decode faults (an
// opcode outside the documented subset) are reported here, since the core
// itself raises no exceptions — see Step.
var Logger = log.New(os.Stderr, "ddp24: ", 0)

// ErrUnimplementedOpcode is wrapped into the error Step returns when the
// fetched instruction's opcode is outside the documented subset. An
// unimplemented opcode reached through XEC halts the processor and is
// logged, but Step returns no error for it.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

// xecDepthLimit bounds XEC recursion so a program that XECs itself faults
// instead of blowing the host stack.
const xecDepthLimit = 1000

// Cpu is the DDP-24 register file plus its core store.
type Cpu struct {
	Bus *mem.Bus

	A word.Word // accumulator A
	B word.Word // accumulator B

	// X holds the four index registers. X[0] is hardwired to zero: writes
	// targeting it are silently discarded (see setIndex).
	X [4]word.Word

	PC word.Word // 15-bit program counter

	Overflow         bool // sticky; cleared only by Reset
	Halted           bool
	InterruptEnabled bool // represented but never read or written by any opcode

	Cycles uint64 // monotonic; never decreases

	xecDepth int // recursion guard for XEC, not part of visible state
}

// New returns a freshly constructed, fully zeroed processor with its own
// core store.
func New() *Cpu {
	return &Cpu{Bus: &mem.Bus{}}
}

// Reset clears registers, PC, flags and the cycle counter. Memory is
// preserved.
func (c *Cpu) Reset() {
	c.A = 0
	c.B = 0
	c.X = [4]word.Word{}
	c.PC = 0
	c.Overflow = false
	c.Halted = false
	c.InterruptEnabled = false
	c.Cycles = 0
}

// Read returns memory[addr mod 32768], masked to 24 bits.
func (c *Cpu) Read(addr word.Word) word.Word { return c.Bus.Read(addr) }

// Write stores w at memory[addr mod 32768], masked to 24 bits.
func (c *Cpu) Write(addr word.Word, w word.Word) { c.Bus.Write(addr, w) }

// setIndex writes v (masked to the 15-bit address width) into X[i], unless
// i is 0, in which case the write is silently discarded.
func (c *Cpu) setIndex(i byte, v word.Word) {
	if i == 0 {
		return
	}
	c.X[i] = v & word.AddrMask
}

// decoded holds the four fields packed into an instruction word (§4.1) plus
// the effective address computed from them (§4.2).
type decoded struct {
	opcode   byte
	indirect bool
	index    byte
	addr     word.Word
	ea       word.Word
}

// decode splits a fetched instruction word into its fields. It is a pure
// function of the word: no state is read or mutated.
func decode(instr word.Word) decoded {
	w := uint32(instr)
	return decoded{
		opcode:   byte(mask.FieldAt(w, 18, mask.I6)),
		indirect: mask.FieldAt(w, 17, mask.I1) != 0,
		index:    byte(mask.FieldAt(w, 15, mask.I2)),
		addr:     word.Word(mask.FieldAt(w, 0, mask.I15)),
	}
}

// effectiveAddress resolves d.addr through indexing and at most one level
// of indirection (§4.2). Indexing is applied before indirection; indexing
// by X[0] is a no-op since X[0] is hardwired to zero.
func (c *Cpu) effectiveAddress(d decoded) word.Word {
	a := d.addr
	if d.index > 0 {
		a = (a + c.X[d.index]) & word.AddrMask
	}
	if d.indirect {
		a = c.Read(a) & word.AddrMask
	}
	return a
}

// Step executes one instruction and returns the number of cycles consumed.
// If the processor is halted, Step is a no-op and returns zero cycles.
func (c *Cpu) Step() (int, error) {
	if c.Halted {
		return 0, nil
	}

	instr := c.Read(c.PC)
	fetchPC := c.PC
	c.PC = (c.PC + 1) & word.AddrMask

	d := decode(instr)
	d.ea = c.effectiveAddress(d)

	op, ok := opcodeTable[d.opcode]
	if !ok {
		Logger.Printf("unimplemented opcode %02o at PC=%05o", d.opcode, fetchPC)
		c.Halted = true
		return 0, fmt.Errorf("%w: opcode %02o at PC=%05o", ErrUnimplementedOpcode, d.opcode, fetchPC)
	}

	cycles := op.Exec(c, d)
	c.Cycles += uint64(cycles)
	return cycles, nil
}

// Run steps the processor until it halts or the accumulated cycle count
// reaches maxCycles. maxCycles <= 0 means unbounded. Run returns the total
// cycles consumed and the first error Step reports, if any.
func (c *Cpu) Run(maxCycles int) (int, error) {
	total := 0
	for !c.Halted && (maxCycles <= 0 || total < maxCycles) {
		n, err := c.Step()
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 && c.Halted {
			break
		}
	}
	return total, nil
}

// execXEC implements XEC's "fetch and dispatch as if from ea" contract: the
// instruction word at d.ea is decoded and dispatched directly, bypassing
// the normal PC-driven fetch, with PC set to ea+1 as the baseline the
// executed instruction observes. A PC write performed by that instruction
// overrides the baseline. This deliberately differs from a PC-before-fetch
// sequencing, which would make the dispatched instruction observe PC as if
// it had been fetched from ea+1 rather than ea.
func (c *Cpu) execXEC(d decoded) int {
	c.xecDepth++
	defer func() { c.xecDepth-- }()
	if c.xecDepth > xecDepthLimit {
		Logger.Printf("XEC recursion exceeded %d at PC=%05o", xecDepthLimit, c.PC)
		c.Halted = true
		return 0
	}

	inner := c.Read(d.ea)
	c.PC = (d.ea + 1) & word.AddrMask

	id := decode(inner)
	id.ea = c.effectiveAddress(id)

	op, ok := opcodeTable[id.opcode]
	if !ok {
		Logger.Printf("unimplemented opcode %02o at PC=%05o (via XEC)", id.opcode, d.ea)
		c.Halted = true
		return 0
	}
	return op.Exec(c, id)
}
