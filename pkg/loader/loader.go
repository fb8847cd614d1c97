// Package loader implements the ISA Program Loader (C9): a two-pass
// assembler for the textual program form the executor and decomposer
// share a mnemonic table with. Pass one walks the source recording
// label addresses and instruction records with symbolic operands;
// pass two resolves every label reference into a numeric address
// (spec §4.9). The two-pass shape follows db47h/ngaro's asm package,
// the one assembler in the retrieved pack with the same record-then-
// resolve structure.
package loader

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/taufold/zkvm/pkg/config/limits"
	"github.com/taufold/zkvm/pkg/isa"
	"github.com/taufold/zkvm/pkg/vmcore"
)

var labelDefRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*:$`)

// pendingOperand is either a resolved numeric value or a label name
// awaiting second-pass resolution.
type pendingOperand struct {
	value uint32
	label string // non-empty means "resolve against labels"
}

type pendingInstruction struct {
	line     int
	instr    isa.Instruction
	operands []pendingOperand
}

// Assemble parses the textual program form and returns an immutable
// vmcore.Image, or the first error encountered.
func Assemble(src string) (*vmcore.Image, error) {
	lines := splitLines(src)

	labels := map[string]int{}
	labelDefLine := map[string]int{}
	var program []pendingInstruction

	pc := 0
	for i, raw := range lines {
		lineNo := i + 1
		text := stripComment(raw)
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if labelDefRE.MatchString(fields[0]) {
			name := strings.TrimSuffix(fields[0], ":")
			if len(name) > limits.MaxLabelNameLen {
				name = name[:limits.MaxLabelNameLen]
			}
			if first, ok := labelDefLine[name]; ok {
				return nil, &ErrDuplicateLabel{Line: lineNo, Label: name, First: first}
			}
			labels[name] = pc
			labelDefLine[name] = lineNo
			fields = fields[1:]
			if len(fields) == 0 {
				continue
			}
		}

		mnemonic := strings.ToUpper(fields[0])
		instr, ok := isa.Lookup(mnemonic)
		if !ok {
			return nil, &ErrUnknownMnemonic{Line: lineNo, Mnemonic: fields[0]}
		}

		operandTokens := fields[1:]
		if len(operandTokens) != len(instr.Operands) {
			return nil, &ErrOperandArityMismatch{
				Line: lineNo, Mnemonic: mnemonic,
				Want: len(instr.Operands), Got: len(operandTokens),
			}
		}

		operands := make([]pendingOperand, len(operandTokens))
		for j, tok := range operandTokens {
			if instr.Operands[j].Kind == isa.OperandLabel {
				operands[j] = pendingOperand{label: tok}
				continue
			}
			v, err := parseInt(tok)
			if err != nil {
				return nil, &ErrMalformedOperand{Line: lineNo, Token: tok}
			}
			operands[j] = pendingOperand{value: v}
		}

		if pc >= limits.MaxProgramInstructions {
			return nil, &ErrProgramTooLarge{Line: lineNo, Limit: limits.MaxProgramInstructions}
		}
		program = append(program, pendingInstruction{line: lineNo, instr: instr, operands: operands})
		pc++
	}

	image := &vmcore.Image{Instructions: make([]vmcore.ImageInstruction, len(program))}
	for i, p := range program {
		resolved := make([]uint32, len(p.operands))
		for j, op := range p.operands {
			if op.label == "" {
				resolved[j] = op.value
				continue
			}
			addr, ok := labels[op.label]
			if !ok {
				return nil, &ErrUnknownLabel{Line: p.line, Label: op.label}
			}
			resolved[j] = uint32(addr)
		}
		image.Instructions[i] = vmcore.ImageInstruction{Instr: p.instr, Operands: resolved}
	}

	return image, nil
}

func splitLines(src string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}

func parseInt(tok string) (uint32, error) {
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
