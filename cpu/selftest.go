package cpu

import (
	"fmt"

	"ddp24/word"
)

// SelfTestResult is one named pass/fail outcome from SelfTest.
type SelfTestResult struct {
	Name   string
	Passed bool
	Detail string // populated on failure
}

// SelfTest runs the same inline regression scenarios the original DDP-24
// emulator's "-t" flag ran, against fresh processors, and reports a
// pass/fail result per scenario. Its caller (cmd/ddp24) is responsible for
// turning failures into a process exit code, per the original's contract.
func SelfTest() []SelfTestResult {
	return []SelfTestResult{
		testLoadStore(),
		testAdd(),
		testSub(),
		testJump(),
		testConditionalJumpZero(),
		testBitwiseAnd(),
		testMultiplyUnsigned(),
		testMultiplySigned(),
		testDivide(),
	}
}

func result(name string, ok bool, format string, args ...any) SelfTestResult {
	r := SelfTestResult{Name: name, Passed: ok}
	if !ok {
		r.Detail = fmt.Sprintf(format, args...)
	}
	return r
}

func testLoadStore() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpLDA, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpSTA, false, 0, 0x101)
	c.Bus.Words[2] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0x123456
	c.Run(100)
	got := c.Bus.Words[0x101]
	return result("LDA/STA", got == 0x123456, "got %06o, expected %06o", got, word.Word(0x123456))
}

func testAdd() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpLDA, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpADD, false, 0, 0x101)
	c.Bus.Words[2] = Encode(OpSTA, false, 0, 0x102)
	c.Bus.Words[3] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 5
	c.Bus.Words[0x101] = 3
	c.Run(100)
	got := c.Bus.Words[0x102]
	return result("ADD", got == 8, "got %06o, expected 000010", got)
}

func testSub() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpLDA, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpSUB, false, 0, 0x101)
	c.Bus.Words[2] = Encode(OpSTA, false, 0, 0x102)
	c.Bus.Words[3] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 8
	c.Bus.Words[0x101] = 3
	c.Run(100)
	got := c.Bus.Words[0x102]
	return result("SUB", got == 5, "got %06o, expected 000005", got)
}

func testJump() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpJMP, false, 0, 0x10)
	c.Bus.Words[1] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x10] = Encode(OpLDA, false, 0, 0x100)
	c.Bus.Words[0x11] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0x424242
	c.Run(100)
	return result("JMP", c.A == 0x424242, "A=%06o, expected %06o", c.A, word.Word(0x424242))
}

func testConditionalJumpZero() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpLDA, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpJZE, false, 0, 0x10)
	c.Bus.Words[2] = Encode(OpLDA, false, 0, 0x101)
	c.Bus.Words[3] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x10] = Encode(OpLDA, false, 0, 0x102)
	c.Bus.Words[0x11] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0
	c.Bus.Words[0x101] = 0xBAD
	c.Bus.Words[0x102] = 0x600D
	c.Run(100)
	return result("JZE", c.A == 0x600D, "A=%06o, expected %06o", c.A, word.Word(0x600D))
}

func testBitwiseAnd() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpLDA, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpANA, false, 0, 0x101)
	c.Bus.Words[2] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 0xFF00FF
	c.Bus.Words[0x101] = 0x0F0F0F
	c.Run(100)
	return result("ANA", c.A == 0x0F000F, "A=%06o, expected %06o", c.A, word.Word(0x0F000F))
}

func testMultiplyUnsigned() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpLDB, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpMPY, false, 0, 0x101)
	c.Bus.Words[2] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 100
	c.Bus.Words[0x101] = 50
	c.Run(100)
	return result("MPY", c.B == 5000 && c.A == 0, "A=%06o B=%06o, expected A=%06o B=%06o", c.A, c.B, 0, 5000)
}

func testMultiplySigned() SelfTestResult {
	c := New()
	c.Bus.Words[0] = Encode(OpLDB, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpMPY, false, 0, 0x101)
	c.Bus.Words[2] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = word.SignBit | 5
	c.Bus.Words[0x101] = 3
	c.Run(100)
	ok := c.B == (word.SignBit|15) && c.A == word.SignBit
	return result("MPY (signed)", ok, "A=%06o B=%06o, expected A=%06o B=%06o", c.A, c.B, word.SignBit, word.SignBit|15)
}

func testDivide() SelfTestResult {
	c := New()
	c.A = 0
	c.B = 5000
	c.Bus.Words[0] = Encode(OpDIV, false, 0, 0x100)
	c.Bus.Words[1] = Encode(OpHLT, false, 0, 0)
	c.Bus.Words[0x100] = 50
	c.Run(100)
	return result("DIV", c.B == 100 && c.A == 0, "A=%06o B=%06o, expected A=%06o B=%06o", c.A, c.B, 0, 100)
}
