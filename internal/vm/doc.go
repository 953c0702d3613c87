// Package vm provides the CHIP-8 virtual machine interpreter.
//
// # Machine Overview
//
// The interpreter owns the complete machine state:
//   - 4KB of memory (0x000-0xFFF), font glyphs at FontStart, programs at ProgramStart
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register (I) and a 16-bit program counter (PC)
//   - a 16 level call stack
//   - delay and sound timers, decremented once per executed cycle
//   - a 64x32 monochrome frame buffer and a 16 key keypad
//
// # Execution
//
// Step executes exactly one fetch-decode-execute cycle. The program counter is
// advanced past the fetched instruction before the instruction executes, so all
// jumps, calls and skips are relative to the following instruction.
//
// Decoding is a two-level table dispatch: the top nibble of the opcode selects
// either a handler or one of the groups 0, 8, E and F, which are keyed by the
// low byte (0, E, F) or low nibble (8). Unmapped encodings execute as no-op.
//
// # Boundary Behavior
//
//   - Load rejects images larger than MaxProgramSize with ErrProgramTooLarge.
//   - Call and return fail with ErrStackOverflow and ErrStackUnderflow, the
//     cycle is rejected and leaves the machine state unchanged.
//   - All memory accesses wrap modulo MemorySize.
//   - Sprites are clipped at the right and bottom screen edges, unless the
//     WrapSprites quirk is enabled.
//
// # Usage Example
//
//	machine := vm.New(vm.WithSeed(1))
//	if err := machine.Load(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := machine.Step(); err != nil {
//			return fmt.Errorf("executing cycle: %w", err)
//		}
//	}
package vm
