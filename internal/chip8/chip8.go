// Package chip8 implements a CHIP-8 virtual machine.
// CHIP-8 is an interpreted programming language from the 1970s designed for
// simple games. The machine has 4KB of memory, 16 general-purpose 8-bit
// registers, a 16-entry call stack, a 64x32 monochrome display, a 16-key
// keypad and two countdown timers.
//
// The VM owns no I/O and no clock. A driver loads a program, calls Step in
// a loop (or Run), feeds keypad transitions via KeyDown and KeyUp, ticks
// the timers at the display refresh rate via TickTimers and renders the
// framebuffer returned by Display. Except for Steps and Quit, all methods
// must be called from the single driver goroutine.
package chip8

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// stackDepth is the number of return addresses the call stack can hold.
const stackDepth = 16

// VM is a CHIP-8 virtual machine. The zero value is not usable, use New.
type VM struct {
	pc    uint16
	sp    uint8
	i     uint16
	regs  [16]uint8
	stack [stackDepth]uint16
	mem   memory

	display displayBuffer
	keys    [16]bool

	delayTimer uint8
	soundTimer uint8

	rnd    *rand.Rand
	tracer func(pc, opcode uint16)

	steps atomic.Uint64
	quit  atomic.Bool
}

// New returns a machine with cleared state, the program counter at
// ProgramStart and a time-seeded random source.
func New() *VM {
	return &VM{
		pc:  ProgramStart,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Load copies rom into memory at ProgramStart and installs the built-in
// font sprites at address 0x000. It fails if the program does not fit into
// the 3584 byte program area. Registers, timers and the display are left
// untouched, a fresh machine comes from New.
func (v *VM) Load(rom []byte) error {
	if err := v.mem.loadProgram(rom); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return nil
}

// Step executes exactly one fetch-decode-execute cycle and increments the
// step counter. A failed step is not counted and leaves the error to the
// caller.
func (v *VM) Step() error {
	pc := v.pc
	in, err := v.fetch()
	if err != nil {
		return err
	}
	if v.tracer != nil {
		v.tracer(pc, uint16(in))
	}
	if err := v.execute(in); err != nil {
		return err
	}
	v.steps.Add(1)
	return nil
}

// Run steps the machine until the quit flag is set or a step fails.
// The flag is checked once per iteration, so at most one instruction
// executes after termination has been requested.
func (v *VM) Run() error {
	for !v.quit.Load() {
		if err := v.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Quit requests cooperative termination of Run. Safe to call from any
// goroutine.
func (v *VM) Quit() {
	v.quit.Store(true)
}

// Steps returns the number of completed fetch-execute cycles. Safe to call
// from any goroutine.
func (v *VM) Steps() uint64 {
	return v.steps.Load()
}

// KeyDown marks a keypad key as pressed. Key indexes above 0xF are ignored.
func (v *VM) KeyDown(key uint8) {
	if key < uint8(len(v.keys)) {
		v.keys[key] = true
	}
}

// KeyUp marks a keypad key as released. Key indexes above 0xF are ignored.
// Drivers on input sources that only report presses are expected to
// synthesize the release after a short hold time.
func (v *VM) KeyUp(key uint8) {
	if key < uint8(len(v.keys)) {
		v.keys[key] = false
	}
}

// TickTimers decrements each nonzero timer by one. The machine never
// decrements timers on its own, the driver calls this at the display
// refresh rate, conventionally 60Hz.
func (v *VM) TickTimers() {
	if v.delayTimer > 0 {
		v.delayTimer--
	}
	if v.soundTimer > 0 {
		v.soundTimer--
	}
}

// DelayTimer returns the current delay timer value.
func (v *VM) DelayTimer() uint8 {
	return v.delayTimer
}

// SoundTimer returns the current sound timer value. A nonzero value means
// the program is requesting sound.
func (v *VM) SoundTimer() uint8 {
	return v.soundTimer
}

// Display returns the framebuffer by reference for read-only consumption
// by a renderer. Pixels are stored row-major, see displayBuffer.
func (v *VM) Display() *[ScreenSize]bool {
	return (*[ScreenSize]bool)(&v.display)
}

// PC returns the current program counter.
func (v *VM) PC() uint16 {
	return v.pc
}

// SetTracer installs a hook that receives the address and word of every
// instruction after fetch and before execution. Passing nil removes the
// hook.
func (v *VM) SetTracer(tracer func(pc, opcode uint16)) {
	v.tracer = tracer
}

// fetch reads the two instruction bytes at the program counter, most
// significant byte first, and advances the counter past them.
func (v *VM) fetch() (instruction, error) {
	if v.pc%2 != 0 {
		return 0, fmt.Errorf("fetching at address %04x: %w", v.pc, ErrMisalignedPC)
	}
	high, err := v.mem.read(int(v.pc))
	if err != nil {
		return 0, fmt.Errorf("fetching instruction: %w", err)
	}
	low, err := v.mem.read(int(v.pc) + 1)
	if err != nil {
		return 0, fmt.Errorf("fetching instruction: %w", err)
	}
	v.pc += 2
	return instruction(uint16(high)<<8 | uint16(low)), nil
}
