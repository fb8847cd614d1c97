/*
Package limits contains a number of system-wide hardcoded constants.
Most budgets are configurable (see pkg/config), but a few are baked
into the wire format and data model itself and can't be adjusted
without breaking compatibility with already-emitted component files.
*/
package limits

const (
	// MaxLabelNameLen is the length Assemble truncates a longer label
	// definition's name to; label operands are looked up as written.
	MaxLabelNameLen = 64
	// MaxProgramInstructions bounds how many instruction slots
	// Assemble will record before refusing to load a program image.
	MaxProgramInstructions = 1 << 20
	// MaxTraceSteps bounds the executor step count a single
	// TraceRecorder will hold in memory before the caller must flush.
	MaxTraceSteps = 1 << 24
)
