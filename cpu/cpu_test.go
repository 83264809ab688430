package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ddp24/word"
)

func asm(op byte, indirect bool, index byte, addr word.Word) word.Word {
	return Encode(op, indirect, index, addr)
}

const (
	opHLT = OpHLT
	opXEC = OpXEC
	opSTB = OpSTB
	opSTA = OpSTA
	opADD = OpADD
	opSUB = OpSUB
	opSKG = OpSKG
	opSKN = OpSKN
	opANA = OpANA
	opLDB = OpLDB
	opLDA = OpLDA
	opJSL = OpJSL
	opMPY = OpMPY
	opDIV = OpDIV
	opARS = OpARS
	opALS = OpALS
	opLDX = OpLDX
	opSIX = OpSIX
	opJPL = OpJPL
	opJZE = OpJZE
	opJMI = OpJMI
	opJNZ = OpJNZ
	opJMP = OpJMP
	opNOP = OpNOP
)

func TestLoadStore(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDA, false, 0, 0x100)
	c.Bus.Words[1] = asm(opSTA, false, 0, 0x101)
	c.Bus.Words[2] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0x123456

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x123456), c.Bus.Words[0x101])
	assert.True(t, c.Halted)
	assert.Equal(t, word.Word(2), c.PC)
}

func TestAdd(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDA, false, 0, 0x100)
	c.Bus.Words[1] = asm(opADD, false, 0, 0x101)
	c.Bus.Words[2] = asm(opSTA, false, 0, 0x102)
	c.Bus.Words[3] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x100] = 5
	c.Bus.Words[0x101] = 3

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(8), c.Bus.Words[0x102])
	assert.False(t, c.Overflow)
}

func TestSub(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDA, false, 0, 0x100)
	c.Bus.Words[1] = asm(opSUB, false, 0, 0x101)
	c.Bus.Words[2] = asm(opSTA, false, 0, 0x102)
	c.Bus.Words[3] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x100] = 8
	c.Bus.Words[0x101] = 3

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(5), c.Bus.Words[0x102])
}

func TestConditionalJumpOnZero(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDA, false, 0, 0x100)
	c.Bus.Words[1] = asm(opJZE, false, 0, 0x10)
	c.Bus.Words[2] = asm(opLDA, false, 0, 0x101)
	c.Bus.Words[3] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x10] = asm(opLDA, false, 0, 0x102)
	c.Bus.Words[0x11] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0
	c.Bus.Words[0x101] = 0xBAD
	c.Bus.Words[0x102] = 0x600D

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x600D), c.A)
}

func TestSignedMultiply(t *testing.T) {
	c := New()
	c.B = word.SignBit | 5 // -5
	c.Bus.Words[0] = asm(opMPY, false, 0, 0x100)
	c.Bus.Words[0x100] = 3

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.SignBit, c.A)
	assert.Equal(t, word.SignBit|15, c.B)
}

func TestMultiplyZeroProductIsPositive(t *testing.T) {
	c := New()
	c.B = word.SignBit // negative zero
	c.Bus.Words[0] = asm(opMPY, false, 0, 0x100)
	c.Bus.Words[0x100] = 0

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0), c.A)
	assert.Equal(t, word.Word(0), c.B)
}

func TestDivide(t *testing.T) {
	c := New()
	c.A = 0
	c.B = 5000
	c.Bus.Words[0] = asm(opDIV, false, 0, 0x100)
	c.Bus.Words[0x100] = 50

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(100), c.B)
	assert.Equal(t, word.Word(0), c.A)
	assert.False(t, c.Overflow)
}

func TestImproperDivide(t *testing.T) {
	c := New()
	c.A = 1
	c.B = 0
	c.Bus.Words[0] = asm(opDIV, false, 0, 0x100)
	c.Bus.Words[0x100] = 1

	_, err := c.Step()
	assert.NoError(t, err)
	assert.True(t, c.Overflow)
	assert.Equal(t, word.Word(1), c.A)
	assert.Equal(t, word.Word(0), c.B)
}

func TestDivideByZeroIsImproper(t *testing.T) {
	c := New()
	c.A = 0
	c.B = 7
	c.Bus.Words[0] = asm(opDIV, false, 0, 0x100)
	c.Bus.Words[0x100] = 0

	_, err := c.Step()
	assert.NoError(t, err)
	assert.True(t, c.Overflow)
	assert.Equal(t, word.Word(0), c.A)
	assert.Equal(t, word.Word(7), c.B)
}

func TestBitwiseAnd(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDA, false, 0, 0x100)
	c.Bus.Words[1] = asm(opANA, false, 0, 0x101)
	c.Bus.Words[2] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0xFF00FF
	c.Bus.Words[0x101] = 0x0F0F0F

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x0F000F), c.A)
}

func TestIndexedAndIndirectAddressing(t *testing.T) {
	c := New()
	c.X[1] = 2
	c.Bus.Words[0] = asm(opLDA, true, 1, 0x10) // indexed by X[1]=2 -> 0x12, indirect -> mem[0x12]
	c.Bus.Words[0x12] = 0x200
	c.Bus.Words[0x200] = 0xCAFE
	c.Bus.Words[1] = asm(opHLT, false, 0, 0)

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0xCAFE), c.A)
}

func TestIndexZeroIsHardwired(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDX, false, 0, 0x100)
	c.Bus.Words[0x100] = 7

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0), c.X[0])
}

func TestLDXandSIX(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDX, false, 2, 0x100)
	c.Bus.Words[0x100] = 0x55
	c.Bus.Words[1] = asm(opSIX, false, 2, 0x101)

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x55), c.X[2])

	_, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x55), c.Bus.Words[0x101+0x55]) // SIX's address is indexed by X[2] too
}

func TestShifts(t *testing.T) {
	c := New()
	c.A = word.SignBit | 0x4
	c.Bus.Words[0] = asm(opARS, false, 0, 2) // shift count 2
	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.SignBit|0x1, c.A)
	assert.Equal(t, 7, cycles) // 5 + count

	c2 := New()
	c2.A = word.SignBit | 0x4
	c2.Bus.Words[0] = asm(opALS, false, 0, 2)
	cycles, err = c2.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.SignBit|0x10, c2.A)
	assert.Equal(t, 7, cycles)
}

func TestJSLJumpAndLink(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opJSL, false, 0, 0x10)
	c.Bus.Words[0x11] = asm(opHLT, false, 0, 0)

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(1), c.Bus.Words[0x10]) // stores PC after fetch-increment
	assert.Equal(t, word.Word(0x11), c.PC)
}

func TestSkipGreaterAndNotEqual(t *testing.T) {
	c := New()
	c.A = 10
	c.Bus.Words[0] = asm(opSKG, false, 0, 0x100)
	c.Bus.Words[0x100] = 5
	c.Bus.Words[1] = asm(opNOP, false, 0, 0) // skipped
	c.Bus.Words[2] = asm(opHLT, false, 0, 0)

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(2), c.PC)

	c2 := New()
	c2.A = 0
	c2.Bus.Words[0] = asm(opSKN, false, 0, 0x100)
	c2.Bus.Words[0x100] = word.SignBit        // negative zero differs bitwise from positive zero
	c2.Bus.Words[1] = asm(opNOP, false, 0, 0) // skipped
	c2.Bus.Words[2] = asm(opHLT, false, 0, 0)

	_, err = c2.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(2), c2.PC)
}

func TestXECExecutesAtEffectiveAddress(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opXEC, false, 0, 0x10)
	c.Bus.Words[1] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x10] = asm(opLDA, false, 0, 0x100)
	c.Bus.Words[0x100] = 0x42

	_, err := c.Step() // XEC
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x42), c.A)
	assert.Equal(t, word.Word(0x11), c.PC) // baseline ea+1, no further PC write by LDA

	_, err = c.Step() // the zero word at 0x11, which decodes as HLT
	assert.NoError(t, err)
	assert.True(t, c.Halted)
}

func TestXECHonorsInnerJump(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opXEC, false, 0, 0x10)
	c.Bus.Words[0x10] = asm(opJMP, false, 0, 0x200)
	c.Bus.Words[0x200] = asm(opHLT, false, 0, 0)

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x200), c.PC)
}

func TestHaltedStepIsNoOp(t *testing.T) {
	c := New()
	c.Halted = true
	c.Bus.Words[0] = asm(opNOP, false, 0, 0)
	before := c.PC

	n, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, before, c.PC)
}

func TestHaltStaysOnHLT(t *testing.T) {
	c := New()
	c.PC = 5
	c.Bus.Words[5] = asm(opHLT, false, 0, 0)

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(5), c.PC)
}

func TestUnimplementedOpcodeFaults(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(0o01, false, 0, 0) // STC, documented but not implemented

	_, err := c.Step()
	assert.Error(t, err)
	assert.True(t, c.Halted)
}

func TestReadWriteRoundTrip(t *testing.T) {
	c := New()
	c.Write(0x42, 0x123456)
	assert.Equal(t, word.Word(0x123456), c.Read(0x42))
}

func TestResetPreservesMemory(t *testing.T) {
	c := New()
	c.Write(0, 0xABCDEF)
	c.A = 1
	c.Halted = true
	c.Overflow = true

	c.Reset()

	assert.Equal(t, word.Word(0xABCDEF), c.Read(0))
	assert.Equal(t, word.Word(0), c.A)
	assert.False(t, c.Halted)
	assert.False(t, c.Overflow)
}

func TestLoadStoreB(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDB, false, 0, 0x100)
	c.Bus.Words[1] = asm(opSTB, false, 0, 0x101)
	c.Bus.Words[2] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0x55AA

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x55AA), c.B)
	assert.Equal(t, word.Word(0x55AA), c.Bus.Words[0x101])
}

func TestTransferAndInterchangeAB(t *testing.T) {
	c := New()
	c.A = 0x111
	c.B = 0x222
	c.Bus.Words[0] = asm(0o55, false, 0, 0) // TAB: B <- A
	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x111), c.A)
	assert.Equal(t, word.Word(0x111), c.B)

	c2 := New()
	c2.A = 0x111
	c2.B = 0x222
	c2.Bus.Words[0] = asm(0o57, false, 0, 0) // IAB: swap A,B
	_, err = c2.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x222), c2.A)
	assert.Equal(t, word.Word(0x111), c2.B)
}

func TestLogicalOrAndExclusiveOr(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opLDA, false, 0, 0x100)
	c.Bus.Words[1] = asm(0o16, false, 0, 0x101) // ORA
	c.Bus.Words[2] = asm(opHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0xF0F0F0
	c.Bus.Words[0x101] = 0x0F0F0F

	_, err := c.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0xFFFFFF), c.A)

	c2 := New()
	c2.Bus.Words[0] = asm(opLDA, false, 0, 0x100)
	c2.Bus.Words[1] = asm(0o17, false, 0, 0x101) // ERA
	c2.Bus.Words[2] = asm(opHLT, false, 0, 0)
	c2.Bus.Words[0x100] = 0xFFFFFF
	c2.Bus.Words[0x101] = 0x0F0F0F

	_, err = c2.Run(0)
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0xF0F0F0), c2.A)
}

func TestJumpOnPositiveMinusAndNotZero(t *testing.T) {
	c := New()
	c.A = 5
	c.Bus.Words[0] = asm(opJPL, false, 0, 0x10)
	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x10), c.PC)

	c2 := New()
	c2.A = word.SignBit | 5
	c2.Bus.Words[0] = asm(opJMI, false, 0, 0x20)
	_, err = c2.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x20), c2.PC)

	c3 := New()
	c3.A = 0
	c3.Bus.Words[0] = asm(opJPL, false, 0, 0x10)
	_, err = c3.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(1), c3.PC) // positive zero does not satisfy JPL

	c4 := New()
	c4.A = 7
	c4.Bus.Words[0] = asm(opJNZ, false, 0, 0x30)
	_, err = c4.Step()
	assert.NoError(t, err)
	assert.Equal(t, word.Word(0x30), c4.PC)
}

func TestCyclesMonotonic(t *testing.T) {
	c := New()
	c.Bus.Words[0] = asm(opNOP, false, 0, 0)
	c.Bus.Words[1] = asm(opHLT, false, 0, 0)

	prev := c.Cycles
	for i := 0; i < 2; i++ {
		_, err := c.Step()
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, c.Cycles, prev)
		prev = c.Cycles
	}
}
