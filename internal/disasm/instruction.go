package disasm

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Instruction is a decoded CHIP-8 instruction.
type Instruction struct {
	ins    *chip8.Instruction
	opcode uint16
}

// Decode identifies the instruction of the given opcode. Unknown encodings
// result in an instruction for which IsNil returns true.
func Decode(opcode uint16) Instruction {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return Instruction{ins: op.Instruction, opcode: opcode}
		}
	}
	return Instruction{opcode: opcode}
}

// Opcode returns the encoded instruction.
func (i Instruction) Opcode() uint16 {
	return i.opcode
}

// IsNil returns true if the opcode is not a known instruction.
func (i Instruction) IsNil() bool {
	return i.ins == nil
}

// Name returns the instruction name.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// IsCall returns true if the instruction is a call instruction.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.CallInst
}

// IsJump returns true if the instruction is a jump instruction.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.JpInst
}

// IsReturn returns true if the instruction is a return instruction.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.RetInst
}

// IsSkip returns true if the instruction is a conditional skip instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// IsDataReference returns true if the instruction loads an address into I.
func (i Instruction) IsDataReference() bool {
	return i.ins == chip8.LdInst && i.opcode&0xF000 == 0xA000
}

// Target returns the absolute address operand of jp, call and ld I.
// Jumps relative to V0 have no static target.
func (i Instruction) Target() (uint16, bool) {
	switch {
	case i.IsCall(), i.IsDataReference():
		return i.opcode & 0x0FFF, true
	case i.IsJump() && i.opcode&0xF000 == 0x1000:
		return i.opcode & 0x0FFF, true
	}
	return 0, false
}

// String returns the instruction as assembler text.
func (i Instruction) String() string {
	return Format(i.opcode)
}
