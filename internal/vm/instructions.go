package vm

// 00E0: cls
func (i *Interpreter) opClearScreen(opcode) error {
	i.display.clear()
	return nil
}

// 00EE: ret
func (i *Interpreter) opReturn(opcode) error {
	if i.sp == 0 {
		return ErrStackUnderflow
	}
	i.sp--
	i.pc = i.stack[i.sp]
	return nil
}

// 1nnn: jp addr
func (i *Interpreter) opJump(op opcode) error {
	i.pc = op.nnn()
	return nil
}

// 2nnn: call addr
func (i *Interpreter) opCall(op opcode) error {
	if int(i.sp) >= StackDepth {
		return ErrStackOverflow
	}
	i.stack[i.sp] = i.pc
	i.sp++
	i.pc = op.nnn()
	return nil
}

// 3xkk: se Vx, byte
func (i *Interpreter) opSkipEqualImmediate(op opcode) error {
	i.skipIf(i.registers[op.x()] == op.kk())
	return nil
}

// 4xkk: sne Vx, byte
func (i *Interpreter) opSkipNotEqualImmediate(op opcode) error {
	i.skipIf(i.registers[op.x()] != op.kk())
	return nil
}

// 5xy0: se Vx, Vy
func (i *Interpreter) opSkipEqualRegister(op opcode) error {
	if op.n() != 0 {
		return i.opUnknown(op)
	}
	i.skipIf(i.registers[op.x()] == i.registers[op.y()])
	return nil
}

// 6xkk: ld Vx, byte
func (i *Interpreter) opLoadImmediate(op opcode) error {
	i.registers[op.x()] = op.kk()
	return nil
}

// 7xkk: add Vx, byte
// The addition wraps and does not affect VF.
func (i *Interpreter) opAddImmediate(op opcode) error {
	i.registers[op.x()] += op.kk()
	return nil
}

// 8xy0: ld Vx, Vy
func (i *Interpreter) opMove(op opcode) error {
	i.registers[op.x()] = i.registers[op.y()]
	return nil
}

// 8xy1: or Vx, Vy
func (i *Interpreter) opOr(op opcode) error {
	i.registers[op.x()] |= i.registers[op.y()]
	return nil
}

// 8xy2: and Vx, Vy
func (i *Interpreter) opAnd(op opcode) error {
	i.registers[op.x()] &= i.registers[op.y()]
	return nil
}

// 8xy3: xor Vx, Vy
func (i *Interpreter) opXor(op opcode) error {
	i.registers[op.x()] ^= i.registers[op.y()]
	return nil
}

// 8xy4: add Vx, Vy
// VF is set to the carry after the sum has been stored.
func (i *Interpreter) opAddRegister(op opcode) error {
	sum := uint16(i.registers[op.x()]) + uint16(i.registers[op.y()])
	i.registers[op.x()] = uint8(sum)
	i.setFlag(sum > 0xFF)
	return nil
}

// 8xy5: sub Vx, Vy
// VF is set to NOT borrow.
func (i *Interpreter) opSubtract(op opcode) error {
	vx, vy := i.registers[op.x()], i.registers[op.y()]
	i.registers[op.x()] = vx - vy
	i.setFlag(vx >= vy)
	return nil
}

// 8xy6: shr Vx {, Vy}
func (i *Interpreter) opShiftRight(op opcode) error {
	value := i.shiftSource(op)
	i.registers[op.x()] = value >> 1
	i.setFlag(value&0x01 != 0)
	return nil
}

// 8xy7: subn Vx, Vy
// VF is set to NOT borrow.
func (i *Interpreter) opSubtractReverse(op opcode) error {
	vx, vy := i.registers[op.x()], i.registers[op.y()]
	i.registers[op.x()] = vy - vx
	i.setFlag(vy >= vx)
	return nil
}

// 8xyE: shl Vx {, Vy}
func (i *Interpreter) opShiftLeft(op opcode) error {
	value := i.shiftSource(op)
	i.registers[op.x()] = value << 1
	i.setFlag(value&0x80 != 0)
	return nil
}

// 9xy0: sne Vx, Vy
func (i *Interpreter) opSkipNotEqualRegister(op opcode) error {
	if op.n() != 0 {
		return i.opUnknown(op)
	}
	i.skipIf(i.registers[op.x()] != i.registers[op.y()])
	return nil
}

// Annn: ld I, addr
func (i *Interpreter) opLoadIndex(op opcode) error {
	i.index = op.nnn()
	return nil
}

// Bnnn: jp V0, addr
func (i *Interpreter) opJumpOffset(op opcode) error {
	i.pc = op.nnn() + uint16(i.registers[0])
	return nil
}

// Cxkk: rnd Vx, byte
func (i *Interpreter) opRandom(op opcode) error {
	i.registers[op.x()] = uint8(i.rng.UintN(256)) & op.kk()
	return nil
}

// Dxyn: drw Vx, Vy, nibble
// Draws n sprite rows from memory at I, each byte being 8 horizontal pixels.
// The start position wraps around the screen, pixels beyond the right and
// bottom edge are clipped unless sprite wrapping is enabled. VF is set if any
// pixel was turned off.
func (i *Interpreter) opDraw(op opcode) error {
	startX := int(i.registers[op.x()]) % DisplayWidth
	startY := int(i.registers[op.y()]) % DisplayHeight
	collision := false

	for row := range int(op.n()) {
		y := startY + row
		if y >= DisplayHeight {
			if !i.quirks.WrapSprites {
				break
			}
			y %= DisplayHeight
		}

		sprite := i.read(i.index + uint16(row))
		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			x := startX + col
			if x >= DisplayWidth {
				if !i.quirks.WrapSprites {
					break
				}
				x %= DisplayWidth
			}

			if i.display.xorPixel(x, y) {
				collision = true
			}
		}
	}

	i.setFlag(collision)
	return nil
}

// Ex9E: skp Vx
func (i *Interpreter) opSkipKeyPressed(op opcode) error {
	i.skipIf(i.KeyPressed(i.registers[op.x()]))
	return nil
}

// ExA1: sknp Vx
func (i *Interpreter) opSkipKeyNotPressed(op opcode) error {
	i.skipIf(!i.KeyPressed(i.registers[op.x()]))
	return nil
}

// Fx07: ld Vx, DT
func (i *Interpreter) opLoadDelayTimer(op opcode) error {
	i.registers[op.x()] = i.delayTimer
	return nil
}

// Fx0A: ld Vx, K
// Without a pressed key the program counter is moved back to this
// instruction, so it executes again in the next cycle.
func (i *Interpreter) opWaitKey(op opcode) error {
	for key := range uint8(KeyCount) {
		if i.keys[key] {
			i.registers[op.x()] = key
			return nil
		}
	}
	i.pc -= opcodeSize
	return nil
}

// Fx15: ld DT, Vx
func (i *Interpreter) opSetDelayTimer(op opcode) error {
	i.delayTimer = i.registers[op.x()]
	return nil
}

// Fx18: ld ST, Vx
func (i *Interpreter) opSetSoundTimer(op opcode) error {
	i.soundTimer = i.registers[op.x()]
	return nil
}

// Fx1E: add I, Vx
func (i *Interpreter) opAddIndex(op opcode) error {
	i.index += uint16(i.registers[op.x()])
	return nil
}

// Fx29: ld F, Vx
func (i *Interpreter) opLoadGlyph(op opcode) error {
	i.index = glyphAddress(i.registers[op.x()])
	return nil
}

// Fx33: ld B, Vx
func (i *Interpreter) opStoreBCD(op opcode) error {
	value := i.registers[op.x()]
	i.write(i.index, value/100)
	i.write(i.index+1, value/10%10)
	i.write(i.index+2, value%10)
	return nil
}

// Fx55: ld [I], Vx
// Stores V0 to Vx inclusive.
func (i *Interpreter) opStoreRegisters(op opcode) error {
	count := uint16(op.x()) + 1
	for reg := range count {
		i.write(i.index+reg, i.registers[reg])
	}
	if i.quirks.IncrementIndex {
		i.index += count
	}
	return nil
}

// Fx65: ld Vx, [I]
// Loads V0 to Vx inclusive.
func (i *Interpreter) opLoadRegisters(op opcode) error {
	count := uint16(op.x()) + 1
	for reg := range count {
		i.registers[reg] = i.read(i.index + reg)
	}
	if i.quirks.IncrementIndex {
		i.index += count
	}
	return nil
}

// skipIf skips the next instruction if the condition holds.
func (i *Interpreter) skipIf(condition bool) {
	if condition {
		i.pc += opcodeSize
	}
}

// setFlag sets VF to 1 or 0.
func (i *Interpreter) setFlag(set bool) {
	if set {
		i.registers[FlagRegister] = 1
	} else {
		i.registers[FlagRegister] = 0
	}
}

// shiftSource returns the register value that the shift instructions operate on.
func (i *Interpreter) shiftSource(op opcode) uint8 {
	if i.quirks.ShiftSourceY {
		return i.registers[op.y()]
	}
	return i.registers[op.x()]
}
