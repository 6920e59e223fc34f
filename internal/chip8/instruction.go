package chip8

import "fmt"

// instruction is a single 16-bit CHIP-8 instruction word as fetched from
// memory, most significant byte first. All operands are embedded in the
// word itself:
//
//	 15          12 11           8 7            4 3            0
//	+--------------+--------------+--------------+--------------+
//	|      a       |      x       |      y       |      d       |
//	+--------------+--------------+--------------+--------------+
//
// a selects the instruction group, x and y name registers, d selects the
// operation within a group or holds a 4-bit immediate. The lower 12 bits
// form the address operand nnn, the lower 8 bits the immediate kk.
type instruction uint16

// nibbles splits the word into its four 4-bit components, high to low.
func (in instruction) nibbles() (a, x, y, d uint8) {
	a = uint8((in & 0xF000) >> 12)
	x = uint8((in & 0x0F00) >> 8)
	y = uint8((in & 0x00F0) >> 4)
	d = uint8(in & 0x000F)
	return a, x, y, d
}

// addr returns the 12-bit address operand nnn.
func (in instruction) addr() uint16 {
	return uint16(in) & 0x0FFF
}

// imm returns the 8-bit immediate operand kk.
func (in instruction) imm() uint8 {
	return uint8(in & 0x00FF)
}

func (in instruction) String() string {
	return fmt.Sprintf("%04x", uint16(in))
}
