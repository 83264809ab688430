package cpu

import "ddp24/word"

// Opcode values for the documented subset (§4.4), named for use by
// assemblers, the self-test harness, and tests.
const (
	OpHLT = 000
	OpXEC = 002
	OpSTB = 003
	OpSTA = 005
	OpADD = 010
	OpSUB = 011
	OpSKG = 012
	OpSKN = 013
	OpANA = 015
	OpORA = 016
	OpERA = 017
	OpLDB = 023
	OpLDA = 024
	OpJSL = 027
	OpMPY = 034
	OpDIV = 035
	OpARS = 040
	OpALS = 041
	OpTAB = 055
	OpLDX = 056
	OpIAB = 057
	OpSIX = 066
	OpJPL = 070
	OpJZE = 071
	OpJMI = 072
	OpJNZ = 073
	OpJMP = 074
	OpNOP = 077
)

// Encode packs an opcode and its fields into a single instruction word,
// per the layout in §4.1.
func Encode(op byte, indirect bool, index byte, addr word.Word) word.Word {
	w := uint32(op&0x3F) << 18
	if indirect {
		w |= 1 << 17
	}
	w |= uint32(index&0x3) << 15
	w |= uint32(addr) & 0x7FFF
	return word.Word(w)
}
