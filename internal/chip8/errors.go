package chip8

import "errors"

// Execution errors. Every error aborts the failing Step or Run call and
// propagates to the driver; the machine state reflects all effects of the
// instructions completed before the failure.
var (
	// ErrUnknownInstruction indicates that the fetched word does not decode
	// to any CHIP-8 instruction.
	ErrUnknownInstruction = errors.New("unknown instruction")

	// ErrMemoryOutOfRange indicates an access outside the 4KB address space.
	ErrMemoryOutOfRange = errors.New("memory access out of range")

	// ErrStackOverflow indicates a subroutine call at full stack depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow indicates a subroutine return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrMisalignedPC indicates an instruction fetch at an odd address.
	ErrMisalignedPC = errors.New("misaligned program counter")

	// ErrProgramTooLarge indicates a program that does not fit into the
	// memory area available above ProgramStart.
	ErrProgramTooLarge = errors.New("program too large")
)
