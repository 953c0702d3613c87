package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembler text of the given opcode.
func Format(opcode uint16) string {
	ins := Decode(opcode)
	if ins.IsNil() {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	name := ins.Name()
	if params := formatParams(name, opcode); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the parameters of a CHIP-8 instruction.
func formatParams(name string, opcode uint16) string {
	switch name {
	case chip8.ClsInst.Name, chip8.RetInst.Name:
		return "" // No parameters
	case chip8.JpInst.Name:
		return formatJump(opcode)
	case chip8.CallInst.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeInst.Name, chip8.SneInst.Name:
		return formatCompare(opcode)
	case chip8.LdInst.Name:
		return formatLoad(opcode)
	case chip8.AddInst.Name:
		return formatAdd(opcode)
	case chip8.OrInst.Name, chip8.AndInst.Name, chip8.XorInst.Name, chip8.SubInst.Name, chip8.SubnInst.Name:
		return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
	case chip8.ShrInst.Name, chip8.ShlInst.Name, chip8.SkpInst.Name, chip8.SknpInst.Name:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.RndInst.Name:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.DrwInst.Name:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func formatJump(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// fxLoadOperands maps the low byte of Fx load instructions to their operand format.
var fxLoadOperands = map[uint16]string{
	0x07: "V%X, DT",
	0x0A: "V%X, K",
	0x15: "DT, V%X",
	0x18: "ST, V%X",
	0x29: "F, V%X",
	0x33: "B, V%X",
	0x55: "[I], V%X",
	0x65: "V%X, [I]",
}

// formatLoad formats load instructions (LD Vx, byte/Vy/I/timers/memory).
func formatLoad(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		if format, ok := fxLoadOperands[opcode&0x00FF]; ok {
			return fmt.Sprintf(format, x)
		}
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte/Vy, ADD I, Vx).
func formatAdd(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// registerX extracts the X register nibble from a CHIP-8 opcode.
func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from a CHIP-8 opcode.
func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
