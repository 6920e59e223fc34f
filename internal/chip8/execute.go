package chip8

import "fmt"

// execute dispatches one decoded instruction. Flag conventions follow the
// classic COSMAC VIP behavior: additions report carry in VF, subtractions
// clear VF on borrow and set it otherwise, shifts capture the shifted-out
// bit of the original value.
func (v *VM) execute(in instruction) error {
	a, x, y, d := in.nibbles()

	switch a {
	case 0x0:
		return v.executeSystem(in)
	case 0x1:
		v.pc = in.addr()
	case 0x2:
		return v.call(in.addr())
	case 0x3:
		if v.regs[x] == in.imm() {
			v.skipNext()
		}
	case 0x4:
		if v.regs[x] != in.imm() {
			v.skipNext()
		}
	case 0x5:
		if d != 0 {
			return unknownInstruction(in)
		}
		if v.regs[x] == v.regs[y] {
			v.skipNext()
		}
	case 0x6:
		v.regs[x] = in.imm()
	case 0x7:
		// Wrapping add, VF is not touched.
		v.regs[x] += in.imm()
	case 0x8:
		return v.executeRegisterOp(in, x, y, d)
	case 0x9:
		if d != 0 {
			return unknownInstruction(in)
		}
		if v.regs[x] != v.regs[y] {
			v.skipNext()
		}
	case 0xA:
		v.i = in.addr()
	case 0xB:
		v.pc = in.addr() + uint16(v.regs[0x0])
	case 0xC:
		v.regs[x] = uint8(v.rnd.Intn(256)) & in.imm()
	case 0xD:
		return v.draw(x, y, d)
	case 0xE:
		return v.executeKeySkip(in, x)
	case 0xF:
		return v.executeMisc(in, x)
	}
	return nil
}

// executeSystem handles the 0x0 instruction group. Machine code routines
// (0nnn) of the original interpreter are not supported and halt execution.
func (v *VM) executeSystem(in instruction) error {
	switch uint16(in) {
	case 0x0000:
		// no-op
	case 0x00E0:
		v.display.clear()
	case 0x00EE:
		return v.ret()
	default:
		return unknownInstruction(in)
	}
	return nil
}

// executeRegisterOp handles the 0x8 group of register-to-register
// operations selected by the low nibble.
func (v *VM) executeRegisterOp(in instruction, x, y, d uint8) error {
	switch d {
	case 0x0:
		v.regs[x] = v.regs[y]
	case 0x1:
		v.regs[x] |= v.regs[y]
	case 0x2:
		v.regs[x] &= v.regs[y]
	case 0x3:
		v.regs[x] ^= v.regs[y]
	case 0x4:
		sum := uint16(v.regs[x]) + uint16(v.regs[y])
		v.setFlag(sum > 0xFF)
		v.regs[x] = uint8(sum)
	case 0x5:
		v.regs[x] = v.sub(v.regs[x], v.regs[y])
	case 0x6:
		v.setFlag(v.regs[x]&0x01 == 1)
		v.regs[x] >>= 1
	case 0x7:
		v.regs[x] = v.sub(v.regs[y], v.regs[x])
	case 0xE:
		v.setFlag(v.regs[x]&0b1000_0000 != 0)
		v.regs[x] <<= 1
	default:
		return unknownInstruction(in)
	}
	return nil
}

// executeKeySkip handles the 0xE group of keypad-conditional skips.
func (v *VM) executeKeySkip(in instruction, x uint8) error {
	switch in.imm() {
	case 0x9E:
		if v.keys[v.regs[x]&0xF] {
			v.skipNext()
		}
	case 0xA1:
		if !v.keys[v.regs[x]&0xF] {
			v.skipNext()
		}
	default:
		return unknownInstruction(in)
	}
	return nil
}

// executeMisc handles the 0xF group: timers, keypad waiting and memory
// transfers.
func (v *VM) executeMisc(in instruction, x uint8) error {
	switch in.imm() {
	case 0x07:
		v.regs[x] = v.delayTimer
	case 0x0A:
		v.waitKey(x)
	case 0x15:
		v.delayTimer = v.regs[x]
	case 0x18:
		v.soundTimer = v.regs[x]
	case 0x1E:
		// No overflow flag, I may leave the 12-bit space and fail on use.
		v.i += uint16(v.regs[x])
	case 0x29:
		v.i = uint16(v.regs[x]) * glyphSize
	case 0x33:
		return v.storeBCD(x)
	case 0x55:
		return v.storeRegisters(x)
	case 0x65:
		return v.loadRegisters(x)
	default:
		return unknownInstruction(in)
	}
	return nil
}

// draw XORs an 8-pixel wide sprite of the given height from memory at I
// onto the display at the coordinates held in Vx and Vy. VF is set when
// the drawing switched at least one pixel off and cleared otherwise.
func (v *VM) draw(x, y, height uint8) error {
	xPos := int(v.regs[x])
	yPos := int(v.regs[y])
	collision := false

	for row := range int(height) {
		bits, err := v.mem.read(int(v.i) + row)
		if err != nil {
			return fmt.Errorf("reading sprite row %d: %w", row, err)
		}
		if v.display.drawRow(xPos, yPos+row, bits) {
			collision = true
		}
	}

	v.setFlag(collision)
	return nil
}

// waitKey implements the wait-for-key instruction. If any key is down the
// lowest pressed index is stored in Vx. Otherwise the program counter is
// rewound by one instruction so the next step retries, returning control
// to the driver so that input can arrive.
func (v *VM) waitKey(x uint8) {
	for key, down := range v.keys {
		if down {
			v.regs[x] = uint8(key)
			return
		}
	}
	v.pc -= 2
}

// storeBCD writes the decimal digits of Vx to memory at I, I+1 and I+2:
// hundreds, tens, ones.
func (v *VM) storeBCD(x uint8) error {
	value := v.regs[x]
	digits := [3]uint8{value / 100, value / 10 % 10, value % 10}

	for offset, digit := range digits {
		if err := v.mem.write(int(v.i)+offset, digit); err != nil {
			return fmt.Errorf("storing BCD digit %d: %w", offset, err)
		}
	}
	return nil
}

// storeRegisters copies V0 through Vx inclusive to memory starting at I.
// I itself is left unchanged.
func (v *VM) storeRegisters(x uint8) error {
	for r := 0; r <= int(x); r++ {
		if err := v.mem.write(int(v.i)+r, v.regs[r]); err != nil {
			return fmt.Errorf("storing register V%X: %w", r, err)
		}
	}
	return nil
}

// loadRegisters copies memory starting at I into V0 through Vx inclusive.
// I itself is left unchanged.
func (v *VM) loadRegisters(x uint8) error {
	for r := 0; r <= int(x); r++ {
		value, err := v.mem.read(int(v.i) + r)
		if err != nil {
			return fmt.Errorf("loading register V%X: %w", r, err)
		}
		v.regs[r] = value
	}
	return nil
}

// call pushes the current program counter, which already points past the
// call instruction, and jumps to addr.
func (v *VM) call(addr uint16) error {
	if v.sp >= stackDepth {
		return fmt.Errorf("calling %03x at depth %d: %w", addr, v.sp, ErrStackOverflow)
	}
	v.stack[v.sp] = v.pc
	v.sp++
	v.pc = addr
	return nil
}

// ret pops the saved program counter of the most recent call.
func (v *VM) ret() error {
	if v.sp == 0 {
		return fmt.Errorf("returning with an empty stack: %w", ErrStackUnderflow)
	}
	v.sp--
	v.pc = v.stack[v.sp]
	return nil
}

// skipNext advances the program counter past the next instruction. The
// fetch has already advanced it past the current one.
func (v *VM) skipNext() {
	v.pc += 2
}

// setFlag stores the arithmetic flag in VF: 1 when cond holds, 0
// otherwise.
func (v *VM) setFlag(cond bool) {
	if cond {
		v.regs[0xF] = 1
	} else {
		v.regs[0xF] = 0
	}
}

// sub returns a-b with wrap-around and records the borrow in VF: cleared
// when the subtraction underflows, set otherwise.
func (v *VM) sub(a, b uint8) uint8 {
	v.setFlag(a >= b)
	return a - b
}

func unknownInstruction(in instruction) error {
	return fmt.Errorf("opcode %s: %w", in, ErrUnknownInstruction)
}
