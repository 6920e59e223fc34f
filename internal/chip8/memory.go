package chip8

import "fmt"

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, holds the built-in font sprites (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the total size of the CHIP-8 address space in bytes.
	MemorySize = 4096

	// ProgramStart is the memory address where CHIP-8 programs are loaded
	// and begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the number of bytes available to a loaded program.
	MaxProgramSize = MemorySize - ProgramStart

	// glyphSize is the height in bytes of one built-in font sprite.
	glyphSize = 5
)

// fontSet contains the built-in sprites for the hexadecimal digits 0-F.
// Each sprite is 4x5 pixels stored as 5 bytes, installed at address 0x000.
var fontSet = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// memory is the 4KB CHIP-8 address space. All accesses are bounds-checked,
// an address outside the 12-bit space is an execution error.
type memory struct {
	bytes [MemorySize]byte
}

// read returns the byte at the given address. The address is an int so
// that index arithmetic past the end of the 16-bit space cannot wrap
// around unnoticed.
func (m *memory) read(addr int) (byte, error) {
	if addr < 0 || addr >= MemorySize {
		return 0, fmt.Errorf("reading address %04x: %w", addr, ErrMemoryOutOfRange)
	}
	return m.bytes[addr], nil
}

// write stores a byte at the given address.
func (m *memory) write(addr int, value byte) error {
	if addr < 0 || addr >= MemorySize {
		return fmt.Errorf("writing address %04x: %w", addr, ErrMemoryOutOfRange)
	}
	m.bytes[addr] = value
	return nil
}

// loadProgram copies rom into the program area at ProgramStart and installs
// the font sprites at address 0x000. The font is reinstalled on every load.
func (m *memory) loadProgram(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return fmt.Errorf("%d bytes exceed the %d byte program area: %w",
			len(rom), MaxProgramSize, ErrProgramTooLarge)
	}
	copy(m.bytes[ProgramStart:], rom)
	copy(m.bytes[:], fontSet[:])
	return nil
}
