// Package isa describes the 45-instruction, 32-bit-word instruction
// set architecture shared by the constraint compiler (pkg/decompose)
// and the executor (pkg/vmcore): opcode numbers, operand shapes, and
// the primitive-template hint the decomposer uses to build each
// instruction's component DAG.
package isa

// Category classifies an instruction for reporting and for routing
// decomposition strategy.
type Category string

const (
	CategoryArithmetic Category = "arithmetic"
	CategoryBitwise    Category = "bitwise"
	CategoryComparison Category = "comparison"
	CategoryControl    Category = "control"
	CategoryMemory     Category = "memory"
	CategoryCrypto     Category = "crypto"
	CategorySystem     Category = "system"
)

// OperandKind is the type of a single operand slot.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandImmediate8
	OperandImmediate16
	OperandImmediate32
	OperandLabel
	OperandAddress
)

// SemanticsHint selects the primitive template the decomposer expands
// an instruction into (spec §6.1).
type SemanticsHint string

const (
	HintAdd32        SemanticsHint = "Add32"
	HintSub32        SemanticsHint = "Sub32"
	HintMul8         SemanticsHint = "Mul8"
	HintMul32        SemanticsHint = "Mul32" // NotYetDecomposable, see pkg/decompose
	HintDivMod       SemanticsHint = "DivMod"
	HintIncDec       SemanticsHint = "IncDec32"
	HintNeg32        SemanticsHint = "Neg32"
	HintBitwise32    SemanticsHint = "Bitwise32"
	HintNot32        SemanticsHint = "Not32"
	HintShift32      SemanticsHint = "Shift32"
	HintCompare32    SemanticsHint = "Compare32"
	HintJump         SemanticsHint = "Jump"
	HintJumpIfZero   SemanticsHint = "JumpIfZero"
	HintJumpIfNotZro SemanticsHint = "JumpIfNotZero"
	HintCall         SemanticsHint = "Call"
	HintReturn       SemanticsHint = "Return"
	HintNop          SemanticsHint = "Nop"
	HintHalt         SemanticsHint = "Halt"
	HintLoad         SemanticsHint = "Load"
	HintStore        SemanticsHint = "Store"
	HintStack        SemanticsHint = "Stack" // PUSH/POP/DUP/SWAP
	HintMove         SemanticsHint = "Move"
	HintCrypto       SemanticsHint = "Crypto" // HASH/SIGN/VERIFY, executor-only (spec §9)
	HintIO           SemanticsHint = "IO"     // READ/WRITE/LOG
	HintAssert       SemanticsHint = "Assert"
	HintSyscall      SemanticsHint = "Syscall"
	HintMisc         SemanticsHint = "Misc" // YIELD/DEBUG/TIME
)

// Slot is one operand descriptor.
type Slot struct {
	Kind OperandKind
}

// Instruction is the immutable descriptor of one ISA mnemonic.
type Instruction struct {
	Opcode    byte
	Mnemonic  string
	Category  Category
	Operands  []Slot
	Semantics SemanticsHint
}

// Width32 is the VM's word size in bits.
const Width32 = 32

// NibblesPerWord is the number of 4-bit slices a 32-bit word is split
// into by the decomposer (spec §4.3).
const NibblesPerWord = Width32 / 4

var instructions = []Instruction{
	{0, "ADD", CategoryArithmetic, nil, HintAdd32},
	{1, "SUB", CategoryArithmetic, nil, HintSub32},
	{2, "MUL", CategoryArithmetic, nil, HintMul32},
	{3, "DIV", CategoryArithmetic, nil, HintDivMod},
	{4, "MOD", CategoryArithmetic, nil, HintDivMod},
	{5, "INC", CategoryArithmetic, nil, HintIncDec},
	{6, "DEC", CategoryArithmetic, nil, HintIncDec},
	{7, "NEG", CategoryArithmetic, nil, HintNeg32},

	{8, "AND", CategoryBitwise, nil, HintBitwise32},
	{9, "OR", CategoryBitwise, nil, HintBitwise32},
	{10, "XOR", CategoryBitwise, nil, HintBitwise32},
	{11, "NOT", CategoryBitwise, nil, HintNot32},
	{12, "SHL", CategoryBitwise, nil, HintShift32},
	{13, "SHR", CategoryBitwise, nil, HintShift32},

	{14, "EQ", CategoryComparison, nil, HintCompare32},
	{15, "NE", CategoryComparison, nil, HintCompare32},
	{16, "LT", CategoryComparison, nil, HintCompare32},
	{17, "GT", CategoryComparison, nil, HintCompare32},
	{18, "LE", CategoryComparison, nil, HintCompare32},
	{19, "GE", CategoryComparison, nil, HintCompare32},

	{20, "JMP", CategoryControl, []Slot{{OperandLabel}}, HintJump},
	{21, "JZ", CategoryControl, []Slot{{OperandLabel}}, HintJumpIfZero},
	{22, "JNZ", CategoryControl, []Slot{{OperandLabel}}, HintJumpIfNotZro},
	{23, "CALL", CategoryControl, []Slot{{OperandLabel}}, HintCall},
	{24, "RET", CategoryControl, nil, HintReturn},
	{25, "NOP", CategoryControl, nil, HintNop},
	{26, "HALT", CategoryControl, nil, HintHalt},

	{27, "LOAD", CategoryMemory, nil, HintLoad},
	{28, "STORE", CategoryMemory, nil, HintStore},
	{29, "PUSH", CategoryMemory, []Slot{{OperandImmediate32}}, HintStack},
	{30, "POP", CategoryMemory, nil, HintStack},
	{31, "DUP", CategoryMemory, nil, HintStack},
	{32, "SWAP", CategoryMemory, nil, HintStack},
	{33, "MOVE", CategoryMemory, []Slot{{OperandRegister}, {OperandRegister}}, HintMove},

	{34, "HASH", CategoryCrypto, nil, HintCrypto},
	{35, "SIGN", CategoryCrypto, nil, HintCrypto},
	{36, "VERIFY", CategoryCrypto, nil, HintCrypto},

	{37, "READ", CategorySystem, nil, HintIO},
	{38, "WRITE", CategorySystem, nil, HintIO},
	{39, "LOG", CategorySystem, nil, HintIO},
	{40, "ASSERT", CategorySystem, nil, HintAssert},
	{41, "SYSCALL", CategorySystem, []Slot{{OperandImmediate8}}, HintSyscall},
	{42, "YIELD", CategorySystem, nil, HintMisc},
	{43, "DEBUG", CategorySystem, nil, HintMisc},
	{44, "TIME", CategorySystem, nil, HintMisc},
}

var (
	byMnemonic = map[string]Instruction{}
	byOpcode   = map[byte]Instruction{}
)

func init() {
	for _, in := range instructions {
		byMnemonic[in.Mnemonic] = in
		byOpcode[in.Opcode] = in
	}
}

// All returns the full 45-instruction descriptor table, opcode order.
func All() []Instruction {
	out := make([]Instruction, len(instructions))
	copy(out, instructions)
	return out
}

// Lookup finds an instruction by mnemonic.
func Lookup(mnemonic string) (Instruction, bool) {
	in, ok := byMnemonic[mnemonic]
	return in, ok
}

// LookupOpcode finds an instruction by numeric opcode.
func LookupOpcode(opcode byte) (Instruction, bool) {
	in, ok := byOpcode[opcode]
	return in, ok
}
