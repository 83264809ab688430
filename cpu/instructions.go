package cpu

// Instruction semantics, one func per opcode, grounded on the DDP-24
// Instruction Manual (August 1964). See opcodes.go for the opcode -> Exec
// mapping.
//
// Every Exec func has the signature func(c *Cpu, d decoded) int: it reads
// and mutates c, and returns the number of cycles the instruction consumed.
// d.ea is already the fully resolved effective address (indexed, then
// optionally indirected) by the time Exec runs.

import "ddp24/word"

// execHLT latches halt and restores PC to the address of the HLT word
// itself, undoing the fetch-time increment. This holds whether HLT was
// fetched normally or reached via XEC, since in both cases PC was advanced
// to (this instruction's address + 1) immediately before dispatch.
func (c *Cpu) execHLT(d decoded) int {
	c.Halted = true
	c.PC = (c.PC - 1) & word.AddrMask
	return 5
}

func (c *Cpu) execNOP(d decoded) int {
	return 5
}

func (c *Cpu) execLDA(d decoded) int {
	c.A = c.Read(d.ea)
	return 10
}

func (c *Cpu) execLDB(d decoded) int {
	c.B = c.Read(d.ea)
	return 10
}

func (c *Cpu) execSTA(d decoded) int {
	c.Write(d.ea, c.A)
	return 10
}

func (c *Cpu) execSTB(d decoded) int {
	c.Write(d.ea, c.B)
	return 10
}

func (c *Cpu) execTAB(d decoded) int {
	c.B = c.A
	return 5
}

func (c *Cpu) execIAB(d decoded) int {
	c.A, c.B = c.B, c.A
	return 10
}

// execADD implements sign-magnitude addition. A magnitude beyond
// 2^23-1 latches Overflow; the wrapped low-order result is still stored,
// per the original's own "set overflow, keep going" behaviour.
func (c *Cpu) execADD(d decoded) int {
	operand := c.Read(d.ea)
	result := int32(word.ToSigned(c.A)) + int32(word.ToSigned(operand))
	if result > 0x7FFFFF || result < -0x7FFFFF {
		c.Overflow = true
	}
	c.A = word.FromSigned(result)
	return 10
}

func (c *Cpu) execSUB(d decoded) int {
	operand := c.Read(d.ea)
	result := int32(word.ToSigned(c.A)) - int32(word.ToSigned(operand))
	if result > 0x7FFFFF || result < -0x7FFFFF {
		c.Overflow = true
	}
	c.A = word.FromSigned(result)
	return 10
}

// execMPY forms the unsigned 46-bit product of |B| * |operand|. The high 23
// bits land in A, the low 23 in B. The algebraic sign (XOR of operand
// signs) is applied to both halves only when the product is non-zero; a
// zero product yields positive zero in both registers.
func (c *Cpu) execMPY(d decoded) int {
	operand := c.Read(d.ea)

	bMag := uint64(word.Magnitude(c.B))
	yMag := uint64(word.Magnitude(operand))
	resultNeg := word.Negative(c.B) != word.Negative(operand)

	product := bMag * yMag
	aMag := word.Word(product>>23) & word.MagMask
	bNewMag := word.Word(product) & word.MagMask

	if resultNeg && (aMag != 0 || bNewMag != 0) {
		c.A = word.SignBit | aMag
		c.B = word.SignBit | bNewMag
	} else {
		c.A = aMag
		c.B = bNewMag
	}
	return 28
}

// execDIV forms a 46-bit unsigned dividend from A:B (A high) and divides by
// |operand|. If |A| >= |operand| the divide is improper: Overflow latches,
// A and B are left untouched, and the divide itself never runs.
func (c *Cpu) execDIV(d decoded) int {
	operand := c.Read(d.ea)
	divisorMag := uint64(word.Magnitude(operand))
	aMag := uint64(word.Magnitude(c.A))

	if aMag >= divisorMag {
		// a zero divisor trivially satisfies aMag >= divisorMag, so
		// divide-by-zero is just the improper-divide case.
		c.Overflow = true
		return 44
	}

	dividend := aMag<<23 | uint64(word.Magnitude(c.B))
	quotient := dividend / divisorMag
	remainder := dividend % divisorMag

	dividendNeg := word.Negative(c.A)
	quotientNeg := dividendNeg != word.Negative(operand)

	if quotientNeg && quotient != 0 {
		c.B = word.SignBit | (word.Word(quotient) & word.MagMask)
	} else {
		c.B = word.Word(quotient) & word.MagMask
	}
	if dividendNeg && remainder != 0 {
		c.A = word.SignBit | (word.Word(remainder) & word.MagMask)
	} else {
		c.A = word.Word(remainder) & word.MagMask
	}
	return 44
}

func (c *Cpu) execANA(d decoded) int {
	c.A = word.Masked(c.A & c.Read(d.ea))
	return 10
}

func (c *Cpu) execORA(d decoded) int {
	c.A = word.Masked(c.A | c.Read(d.ea))
	return 10
}

func (c *Cpu) execERA(d decoded) int {
	c.A = word.Masked(c.A ^ c.Read(d.ea))
	return 10
}

func (c *Cpu) execJMP(d decoded) int {
	c.PC = d.ea
	return 5
}

// execJPL jumps if A is strictly positive: sign bit clear and magnitude
// non-zero. Positive zero does not satisfy this.
func (c *Cpu) execJPL(d decoded) int {
	if !word.Negative(c.A) && word.Magnitude(c.A) != 0 {
		c.PC = d.ea
	}
	return 6
}

// execJMI jumps if A's sign bit is set, which covers negative zero too.
func (c *Cpu) execJMI(d decoded) int {
	if word.Negative(c.A) {
		c.PC = d.ea
	}
	return 6
}

// execJZE jumps if A is zero by magnitude, covering both zero encodings.
func (c *Cpu) execJZE(d decoded) int {
	if word.Magnitude(c.A) == 0 {
		c.PC = d.ea
	}
	return 6
}

func (c *Cpu) execJNZ(d decoded) int {
	if word.Magnitude(c.A) != 0 {
		c.PC = d.ea
	}
	return 6
}

// execJSL stores the already-incremented PC at ea, then jumps to ea+1.
func (c *Cpu) execJSL(d decoded) int {
	c.Write(d.ea, c.PC)
	c.PC = (d.ea + 1) & word.AddrMask
	return 10
}

// execSKG skips the following word if to_signed(A) > to_signed(mem[ea]).
func (c *Cpu) execSKG(d decoded) int {
	operand := c.Read(d.ea)
	if word.ToSigned(c.A) > word.ToSigned(operand) {
		c.PC = (c.PC + 1) & word.AddrMask
	}
	return 10
}

// execSKN skips the following word if A != mem[ea] by raw bit pattern, so
// negative zero and positive zero are considered unequal.
func (c *Cpu) execSKN(d decoded) int {
	operand := c.Read(d.ea)
	if word.Masked(c.A) != word.Masked(operand) {
		c.PC = (c.PC + 1) & word.AddrMask
	}
	return 10
}

// execXECOp is the opcode-table entry point for XEC; the recursive fetch
// and bounded-depth dispatch live in execXEC (cpu.go) so the recursion
// guard is shared with any nested XEC the executed instruction performs.
func (c *Cpu) execXECOp(d decoded) int {
	return 5 + c.execXEC(d)
}

// execLDX loads X[index] from mem[ea] (masked to the address width), when
// index is non-zero. Index 0 makes LDX an effective no-op on the register
// file, since writes to X[0] are always discarded.
func (c *Cpu) execLDX(d decoded) int {
	c.setIndex(d.index, c.Read(d.ea))
	return 5
}

// execSIX stores X[index] to mem[ea]. X[0] (always zero) is a valid value
// to store.
func (c *Cpu) execSIX(d decoded) int {
	c.Write(d.ea, c.X[d.index])
	return 10
}

// execARS shifts A's magnitude right by (ea mod 32), leaving the sign bit
// untouched.
func (c *Cpu) execARS(d decoded) int {
	count := d.ea & word.ShiftMask
	sign := c.A & word.SignBit
	c.A = sign | (word.Magnitude(c.A) >> count)
	return 5 + int(count)
}

// execALS shifts A's magnitude left by (ea mod 32), discarding bits shifted
// past bit 22 and leaving the sign bit untouched.
func (c *Cpu) execALS(d decoded) int {
	count := d.ea & word.ShiftMask
	sign := c.A & word.SignBit
	c.A = sign | ((word.Magnitude(c.A) << count) & word.MagMask)
	return 5 + int(count)
}
