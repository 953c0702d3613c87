// Package disasm converts CHIP-8 opcodes to assembler text.
//
// Opcodes are identified through the instruction tables of the retrogolib
// CHIP-8 package and formatted with their operands, for example "jp $234"
// or "drw V1, V2, $5". Encodings that are not part of the instruction set are
// formatted as data words.
//
// The package is used to trace executed instructions and to produce linear
// listings of program images with labels on branch targets.
package disasm
