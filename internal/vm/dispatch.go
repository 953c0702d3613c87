package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// handler executes a single decoded instruction. Handlers that return an
// error must not have modified the machine state.
type handler func(i *Interpreter, op opcode) error

// Dispatch tables, indexed by the top nibble for the primary table and by the
// low nibble or low byte for the instruction groups. Entries that are not
// set resolve to the unknown opcode handler in init.
var (
	primaryTable = [16]handler{
		0x0: (*Interpreter).dispatchGroup0,
		0x1: (*Interpreter).opJump,
		0x2: (*Interpreter).opCall,
		0x3: (*Interpreter).opSkipEqualImmediate,
		0x4: (*Interpreter).opSkipNotEqualImmediate,
		0x5: (*Interpreter).opSkipEqualRegister,
		0x6: (*Interpreter).opLoadImmediate,
		0x7: (*Interpreter).opAddImmediate,
		0x8: (*Interpreter).dispatchGroup8,
		0x9: (*Interpreter).opSkipNotEqualRegister,
		0xA: (*Interpreter).opLoadIndex,
		0xB: (*Interpreter).opJumpOffset,
		0xC: (*Interpreter).opRandom,
		0xD: (*Interpreter).opDraw,
		0xE: (*Interpreter).dispatchGroupE,
		0xF: (*Interpreter).dispatchGroupF,
	}

	group0Table = [256]handler{
		0xE0: (*Interpreter).opClearScreen,
		0xEE: (*Interpreter).opReturn,
	}

	group8Table = [16]handler{
		0x0: (*Interpreter).opMove,
		0x1: (*Interpreter).opOr,
		0x2: (*Interpreter).opAnd,
		0x3: (*Interpreter).opXor,
		0x4: (*Interpreter).opAddRegister,
		0x5: (*Interpreter).opSubtract,
		0x6: (*Interpreter).opShiftRight,
		0x7: (*Interpreter).opSubtractReverse,
		0xE: (*Interpreter).opShiftLeft,
	}

	groupETable = [256]handler{
		0x9E: (*Interpreter).opSkipKeyPressed,
		0xA1: (*Interpreter).opSkipKeyNotPressed,
	}

	groupFTable = [256]handler{
		0x07: (*Interpreter).opLoadDelayTimer,
		0x0A: (*Interpreter).opWaitKey,
		0x15: (*Interpreter).opSetDelayTimer,
		0x18: (*Interpreter).opSetSoundTimer,
		0x1E: (*Interpreter).opAddIndex,
		0x29: (*Interpreter).opLoadGlyph,
		0x33: (*Interpreter).opStoreBCD,
		0x55: (*Interpreter).opStoreRegisters,
		0x65: (*Interpreter).opLoadRegisters,
	}
)

func init() {
	fillUnknown(group0Table[:])
	fillUnknown(group8Table[:])
	fillUnknown(groupETable[:])
	fillUnknown(groupFTable[:])
}

func fillUnknown(table []handler) {
	for idx, h := range table {
		if h == nil {
			table[idx] = (*Interpreter).opUnknown
		}
	}
}

// Step executes a single fetch-decode-execute cycle and decrements the
// timers. If the instruction fails, the program counter is restored to the
// failing instruction, the timers are not decremented and the returned error
// wraps the cause.
func (i *Interpreter) Step() error {
	address := i.pc
	i.opcode = opcode(uint16(i.read(address))<<8 | uint16(i.read(address+1)))
	i.pc += opcodeSize

	if err := primaryTable[i.opcode.group()](i, i.opcode); err != nil {
		i.pc = address
		return fmt.Errorf("executing opcode %04X at address %03X: %w", uint16(i.opcode), address, err)
	}

	if i.delayTimer > 0 {
		i.delayTimer--
	}
	if i.soundTimer > 0 {
		i.soundTimer--
	}
	return nil
}

// dispatchGroup0 handles 00E0 and 00EE, the legacy 0nnn machine code calls
// are treated as unknown.
func (i *Interpreter) dispatchGroup0(op opcode) error {
	if op.x() != 0 {
		return i.opUnknown(op)
	}
	return group0Table[op.kk()](i, op)
}

func (i *Interpreter) dispatchGroup8(op opcode) error {
	return group8Table[op.n()](i, op)
}

func (i *Interpreter) dispatchGroupE(op opcode) error {
	return groupETable[op.kk()](i, op)
}

func (i *Interpreter) dispatchGroupF(op opcode) error {
	return groupFTable[op.kk()](i, op)
}

// opUnknown executes unsupported encodings as no-op.
func (i *Interpreter) opUnknown(op opcode) error {
	if i.logger != nil {
		i.logger.Debug("Unknown opcode",
			log.Hex("opcode", uint16(op)),
			log.Hex("address", i.pc-opcodeSize))
	}
	return nil
}
