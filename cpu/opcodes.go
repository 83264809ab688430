package cpu

// An Opcode associates a 6-bit octal opcode value with its Name (for
// diagnostics and the debugger) and the Exec func that realises its
// contract against the Cpu and the decoded instruction fields.
//
// Unlike a byte-addressed machine with a large addressing-mode axis, the
// DDP-24 folds indexing and indirection into effective-address computation
// itself (see effectiveAddress), so there is no separate AddressingMode
// field here — decoded.ea is already final by the time Exec runs.
type Opcode struct {
	Name string
	Exec func(c *Cpu, d decoded) int
}

// opcodeTable lists every opcode value this emulator implements. Any
// decoded opcode absent from this table is a fatal decode fault, including
// mnemonics documented in the DDP-24 instruction set but never given a
// case here (e.g. STC).
var opcodeTable = map[byte]Opcode{
	000: {Name: "HLT", Exec: (*Cpu).execHLT},
	002: {Name: "XEC", Exec: (*Cpu).execXECOp},
	003: {Name: "STB", Exec: (*Cpu).execSTB},
	005: {Name: "STA", Exec: (*Cpu).execSTA},
	010: {Name: "ADD", Exec: (*Cpu).execADD},
	011: {Name: "SUB", Exec: (*Cpu).execSUB},
	012: {Name: "SKG", Exec: (*Cpu).execSKG},
	013: {Name: "SKN", Exec: (*Cpu).execSKN},
	015: {Name: "ANA", Exec: (*Cpu).execANA},
	016: {Name: "ORA", Exec: (*Cpu).execORA},
	017: {Name: "ERA", Exec: (*Cpu).execERA},
	023: {Name: "LDB", Exec: (*Cpu).execLDB},
	024: {Name: "LDA", Exec: (*Cpu).execLDA},
	027: {Name: "JSL", Exec: (*Cpu).execJSL},
	034: {Name: "MPY", Exec: (*Cpu).execMPY},
	035: {Name: "DIV", Exec: (*Cpu).execDIV},
	040: {Name: "ARS", Exec: (*Cpu).execARS},
	041: {Name: "ALS", Exec: (*Cpu).execALS},
	055: {Name: "TAB", Exec: (*Cpu).execTAB},
	056: {Name: "LDX", Exec: (*Cpu).execLDX},
	057: {Name: "IAB", Exec: (*Cpu).execIAB},
	066: {Name: "SIX", Exec: (*Cpu).execSIX},
	070: {Name: "JPL", Exec: (*Cpu).execJPL},
	071: {Name: "JZE", Exec: (*Cpu).execJZE},
	072: {Name: "JMI", Exec: (*Cpu).execJMI},
	073: {Name: "JNZ", Exec: (*Cpu).execJNZ},
	074: {Name: "JMP", Exec: (*Cpu).execJMP},
	077: {Name: "NOP", Exec: (*Cpu).execNOP},
}

// OpcodeName returns the opcode's mnemonic, or "???" if it is outside the
// documented subset — used by the debugger, never by Step itself.
func OpcodeName(op byte) string {
	if oc, ok := opcodeTable[op]; ok {
		return oc.Name
	}
	return "???"
}
