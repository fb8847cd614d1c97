package vmcore

import (
	"context"
	"fmt"

	"github.com/taufold/zkvm/pkg/cryptosurface"
	"github.com/taufold/zkvm/pkg/isa"
)

// Executor steps a loaded Image through FETCH, DECODE, EXECUTE,
// WRITEBACK, UPDATE_PC in a tight loop (spec §4.8). It is the runtime
// counterpart to pkg/decompose: the executor interprets all 45
// mnemonics in Go for fast iteration and trace generation, while the
// decomposer builds constraint templates for the subset it can
// decompose.
type Executor struct {
	Image  *Image
	State  *State
	Crypto cryptosurface.Provider
	Trace  *TraceRecorder
}

// NewExecutor wires an Image to a fresh State. crypto may be nil, in
// which case HASH/SIGN/VERIFY use cryptosurface.StubProvider.
func NewExecutor(image *Image, memoryWords int, crypto cryptosurface.Provider) *Executor {
	if crypto == nil {
		crypto = cryptosurface.StubProvider{}
	}
	return &Executor{Image: image, State: New(memoryWords), Crypto: crypto}
}

// Run steps the executor until HALT, a step-budget exhaustion, an
// error, or ctx cancellation, whichever comes first.
func (e *Executor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		halted, err := e.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Step executes exactly one FETCH/DECODE/EXECUTE/WRITEBACK/UPDATE_PC
// cycle and reports whether the machine halted on this step.
func (e *Executor) Step() (halted bool, err error) {
	s := e.State
	if s.Halted {
		return true, nil
	}
	if s.StepBudget != 0 && s.Steps >= s.StepBudget {
		return false, &ErrStepBudgetExceeded{Budget: s.StepBudget}
	}

	slot, err := e.fetch()
	if err != nil {
		return false, err
	}

	nextPC := s.PC + 1
	if err := e.execute(slot, &nextPC); err != nil {
		return false, err
	}

	s.Steps++
	if e.Trace != nil {
		e.Trace.Record(*s, slot.Instr)
	}
	s.PC = nextPC
	if s.Halted {
		return true, nil
	}
	return false, nil
}

func (e *Executor) fetch() (ImageInstruction, error) {
	s := e.State
	if int(s.PC) >= len(e.Image.Instructions) {
		return ImageInstruction{}, &ErrInvalidPC{PC: s.PC}
	}
	return e.Image.Instructions[s.PC], nil
}

// execute dispatches one decoded instruction. nextPC starts as PC+1
// and control-transfer opcodes overwrite it.
func (e *Executor) execute(slot ImageInstruction, nextPC *uint32) error {
	s := e.State
	in := slot.Instr

	switch in.Semantics {
	case isa.HintAdd32:
		return e.binaryArith(func(a, b uint32) uint32 {
			r := a + b
			s.Flags.Carry = r < a
			return r
		})
	case isa.HintSub32:
		return e.binaryArith(func(a, b uint32) uint32 {
			r := a - b
			s.Flags.Carry = a < b
			return r
		})
	case isa.HintMul32:
		return e.binaryArith(func(a, b uint32) uint32 { return a * b })
	case isa.HintDivMod:
		return e.divMod(in.Mnemonic == "MOD")
	case isa.HintIncDec:
		return e.unaryArith(func(a uint32) uint32 {
			if in.Mnemonic == "INC" {
				return a + 1
			}
			return a - 1
		})
	case isa.HintNeg32:
		return e.unaryArith(func(a uint32) uint32 { return -a })

	case isa.HintBitwise32:
		return e.binaryArith(func(a, b uint32) uint32 {
			switch in.Mnemonic {
			case "AND":
				return a & b
			case "OR":
				return a | b
			default:
				return a ^ b
			}
		})
	case isa.HintNot32:
		return e.unaryArith(func(a uint32) uint32 { return ^a })
	case isa.HintShift32:
		return e.binaryArith(func(a, amount uint32) uint32 {
			shift := amount & 31
			if in.Mnemonic == "SHL" {
				return a << shift
			}
			return a >> shift
		})

	case isa.HintCompare32:
		return e.compare(in.Mnemonic)

	case isa.HintJump:
		*nextPC = slot.Operands[0]
		return nil
	case isa.HintJumpIfZero:
		if s.Flags.Zero {
			*nextPC = slot.Operands[0]
		}
		return nil
	case isa.HintJumpIfNotZro:
		if !s.Flags.Zero {
			*nextPC = slot.Operands[0]
		}
		return nil
	case isa.HintCall:
		s.CallStack = append(s.CallStack, *nextPC)
		*nextPC = slot.Operands[0]
		return nil
	case isa.HintReturn:
		if len(s.CallStack) == 0 {
			return &ErrCallStackUnderflow{PC: s.PC}
		}
		*nextPC = s.CallStack[len(s.CallStack)-1]
		s.CallStack = s.CallStack[:len(s.CallStack)-1]
		return nil
	case isa.HintNop:
		return nil
	case isa.HintHalt:
		s.Halted = true
		return nil

	case isa.HintLoad:
		addr, err := s.pop()
		if err != nil {
			return err
		}
		if int(addr) >= len(s.Memory) {
			return &ErrMemoryOutOfBounds{PC: s.PC, Address: addr}
		}
		s.push(s.Memory[addr])
		return nil
	case isa.HintStore:
		addr, err := s.pop()
		if err != nil {
			return err
		}
		v, err := s.pop()
		if err != nil {
			return err
		}
		if int(addr) >= len(s.Memory) {
			return &ErrMemoryOutOfBounds{PC: s.PC, Address: addr}
		}
		s.Memory[addr] = v
		return nil
	case isa.HintStack:
		return e.stackOp(in.Mnemonic, slot.Operands)
	case isa.HintMove:
		if len(slot.Operands) != 2 {
			return &ErrOperandArity{PC: s.PC, Mnemonic: in.Mnemonic, Want: 2, Got: len(slot.Operands)}
		}
		from, to := slot.Operands[0], slot.Operands[1]
		if int(from) >= RegisterCount || int(to) >= RegisterCount {
			return &ErrMemoryOutOfBounds{PC: s.PC, Address: to}
		}
		s.Registers[to] = s.Registers[from]
		return nil

	case isa.HintCrypto:
		return e.crypto(in.Mnemonic)
	case isa.HintIO:
		return e.io(in.Mnemonic)
	case isa.HintAssert:
		v, err := s.pop()
		if err != nil {
			return err
		}
		if v == 0 {
			return &ErrAssertionFailed{PC: s.PC}
		}
		return nil
	case isa.HintSyscall:
		s.DebugLog = append(s.DebugLog, fmt.Sprintf("syscall %d at pc=%d", slot.Operands[0], s.PC))
		return nil
	case isa.HintMisc:
		return e.misc(in.Mnemonic)
	default:
		return &ErrUnknownOpcode{PC: s.PC, Opcode: in.Opcode}
	}
}

func (e *Executor) binaryArith(f func(a, b uint32) uint32) error {
	s := e.State
	b, err := s.pop()
	if err != nil {
		return err
	}
	a, err := s.pop()
	if err != nil {
		return err
	}
	r := f(a, b)
	s.setFlagsFromResult(r)
	s.push(r)
	return nil
}

func (e *Executor) unaryArith(f func(a uint32) uint32) error {
	s := e.State
	a, err := s.pop()
	if err != nil {
		return err
	}
	r := f(a)
	s.setFlagsFromResult(r)
	s.push(r)
	return nil
}

func (e *Executor) divMod(mod bool) error {
	s := e.State
	b, err := s.pop()
	if err != nil {
		return err
	}
	a, err := s.pop()
	if err != nil {
		return err
	}
	if b == 0 {
		return &ErrDivideByZero{PC: s.PC}
	}
	r := a / b
	if mod {
		r = a % b
	}
	s.setFlagsFromResult(r)
	s.push(r)
	return nil
}

func (e *Executor) compare(mnemonic string) error {
	s := e.State
	b, err := s.pop()
	if err != nil {
		return err
	}
	a, err := s.pop()
	if err != nil {
		return err
	}
	var result bool
	switch mnemonic {
	case "EQ":
		result = a == b
	case "NE":
		result = a != b
	case "LT":
		result = a < b
	case "GT":
		result = a > b
	case "LE":
		result = a <= b
	case "GE":
		result = a >= b
	}
	s.Flags.Zero = !result
	if result {
		s.push(1)
	} else {
		s.push(0)
	}
	return nil
}

func (e *Executor) stackOp(mnemonic string, operands []uint32) error {
	s := e.State
	switch mnemonic {
	case "PUSH":
		if len(operands) != 1 {
			return &ErrOperandArity{PC: s.PC, Mnemonic: mnemonic, Want: 1, Got: len(operands)}
		}
		s.push(operands[0])
		return nil
	case "POP":
		_, err := s.pop()
		return err
	case "DUP":
		v, err := s.peek()
		if err != nil {
			return err
		}
		s.push(v)
		return nil
	case "SWAP":
		b, err := s.pop()
		if err != nil {
			return err
		}
		a, err := s.pop()
		if err != nil {
			return err
		}
		s.push(b)
		s.push(a)
		return nil
	default:
		return &ErrUnknownOpcode{PC: s.PC}
	}
}

func (e *Executor) crypto(mnemonic string) error {
	s := e.State
	switch mnemonic {
	case "HASH":
		v, err := s.pop()
		if err != nil {
			return err
		}
		digest, err := e.Crypto.Hash(uint32Bytes(v))
		if err != nil {
			return err
		}
		s.push(foldDigest(digest))
		return nil
	case "SIGN":
		key, err := s.pop()
		if err != nil {
			return err
		}
		msg, err := s.pop()
		if err != nil {
			return err
		}
		sig, err := e.Crypto.Sign(uint32Bytes(key), uint32Bytes(msg))
		if err != nil {
			return err
		}
		s.push(foldDigest(sig))
		return nil
	case "VERIFY":
		sig, err := s.pop()
		if err != nil {
			return err
		}
		msg, err := s.pop()
		if err != nil {
			return err
		}
		key, err := s.pop()
		if err != nil {
			return err
		}
		ok, err := e.Crypto.Verify(uint32Bytes(key), uint32Bytes(msg), uint32Bytes(sig))
		if err != nil {
			return err
		}
		if ok {
			s.push(1)
		} else {
			s.push(0)
		}
		return nil
	default:
		return &ErrUnknownOpcode{PC: s.PC}
	}
}

func (e *Executor) io(mnemonic string) error {
	s := e.State
	switch mnemonic {
	case "READ":
		if len(s.InputQueue) == 0 {
			s.push(NoInput)
			return nil
		}
		v := s.InputQueue[0]
		s.InputQueue = s.InputQueue[1:]
		s.push(v)
		return nil
	case "WRITE":
		v, err := s.pop()
		if err != nil {
			return err
		}
		s.OutputQueue = append(s.OutputQueue, v)
		return nil
	case "LOG":
		v, err := s.pop()
		if err != nil {
			return err
		}
		s.DebugLog = append(s.DebugLog, fmt.Sprintf("%d", v))
		return nil
	default:
		return &ErrUnknownOpcode{PC: s.PC}
	}
}

func (e *Executor) misc(mnemonic string) error {
	s := e.State
	switch mnemonic {
	case "YIELD":
		return nil
	case "DEBUG":
		s.DebugLog = append(s.DebugLog, fmt.Sprintf("debug: pc=%d sp=%d", s.PC, len(s.Stack)))
		return nil
	case "TIME":
		s.push(uint32(s.Steps))
		return nil
	default:
		return &ErrUnknownOpcode{PC: s.PC}
	}
}

func uint32Bytes(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func foldDigest(digest []byte) uint32 {
	var v uint32
	for _, b := range digest {
		v = v<<8 | uint32(b)
		v ^= uint32(b) << 24 // avoid losing the tail once v wraps past 4 bytes
	}
	return v
}
