package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/set"
)

// Listing writes a linear disassembly of the program image, which is located
// at the given base address. Targets of jumps, calls and index loads that
// point into the image are labeled. A trailing odd byte is written as data.
func Listing(w io.Writer, program []byte, base uint16) error {
	targets := branchTargets(program, base)

	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", base); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for offset := 0; offset < len(program); offset += opcodeSize {
		address := base + uint16(offset)
		if targets.Contains(address) {
			if _, err := fmt.Fprintf(w, "%s:\n", label(address)); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if offset+1 >= len(program) {
			if _, err := fmt.Fprintf(w, "    %-24s ; $%03X\n", fmt.Sprintf(".byte $%02X", program[offset]), address); err != nil {
				return fmt.Errorf("writing data: %w", err)
			}
			break
		}

		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		code := formatWithLabel(Decode(opcode), targets)
		if _, err := fmt.Fprintf(w, "    %-24s ; $%03X: %02X %02X\n",
			code, address, program[offset], program[offset+1]); err != nil {
			return fmt.Errorf("writing code: %w", err)
		}
	}
	return nil
}

// branchTargets collects all static targets of the instructions in the
// program that point into the program.
func branchTargets(program []byte, base uint16) set.Set[uint16] {
	targets := set.New[uint16]()
	end := int(base) + len(program)

	for offset := 0; offset+1 < len(program); offset += opcodeSize {
		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		target, ok := Decode(opcode).Target()
		if !ok || target < base || int(target) >= end || (target-base)%opcodeSize != 0 {
			continue
		}
		targets.Add(target)
	}
	return targets
}

// formatWithLabel formats the instruction and replaces a labeled target
// address by the label name.
func formatWithLabel(ins Instruction, targets set.Set[uint16]) string {
	target, ok := ins.Target()
	if !ok || !targets.Contains(target) {
		return ins.String()
	}
	if ins.IsDataReference() {
		return fmt.Sprintf("%s I, %s", ins.Name(), label(target))
	}
	return fmt.Sprintf("%s %s", ins.Name(), label(target))
}

func label(address uint16) string {
	return fmt.Sprintf("_label_%03x", address)
}
