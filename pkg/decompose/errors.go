package decompose

import "fmt"

// ErrIdentifierCollision is raised when two components inadvertently
// declare the same output identifier within one instruction (spec §4.4).
type ErrIdentifierCollision struct {
	Instruction string
	Identifier  string
	First       string
	Second      string
}

func (e *ErrIdentifierCollision) Error() string {
	return fmt.Sprintf("instruction %s: output %q declared by both %q and %q",
		e.Instruction, e.Identifier, e.First, e.Second)
}

func (e *ErrIdentifierCollision) Code() string { return "IdentifierCollision" }

// ErrUnreachableGuarantee is raised when the DAG declares an edge over
// an identifier that is not actually a guarantee of its producer or
// not an assumption of its consumer (spec §4.4).
type ErrUnreachableGuarantee struct {
	Instruction string
	Identifier  string
	Component   string
}

func (e *ErrUnreachableGuarantee) Error() string {
	return fmt.Sprintf("instruction %s: identifier %q not declared by component %q",
		e.Instruction, e.Identifier, e.Component)
}

func (e *ErrUnreachableGuarantee) Code() string { return "UnreachableGuarantee" }

// ErrUnknownComponent is raised when link() references a component
// name that was never added to the builder.
type ErrUnknownComponent struct {
	Instruction string
	Component   string
}

func (e *ErrUnknownComponent) Error() string {
	return fmt.Sprintf("instruction %s: unknown component %q", e.Instruction, e.Component)
}

func (e *ErrUnknownComponent) Code() string { return "UnknownComponent" }

// ErrNotYetDecomposable is raised for instructions the spec explicitly
// marks as out of reach for gate-level decomposition (32-bit MUL,
// DIV/MOD above an 8-bit domain) — spec §4.3, §9.
type ErrNotYetDecomposable struct {
	Instruction string
	Reason      string
}

func (e *ErrNotYetDecomposable) Error() string {
	return fmt.Sprintf("instruction %s: %s", e.Instruction, e.Reason)
}

func (e *ErrNotYetDecomposable) Code() string { return "NotYetDecomposable" }
