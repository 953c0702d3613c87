package vm

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 machine layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, font glyphs at 0x050-0x09F
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, which receives carry, borrow and collision flags.
	FlagRegister = 0xF

	// StackDepth is the number of return addresses the call stack can hold.
	StackDepth = 16

	// KeyCount is the number of keys on the keypad.
	KeyCount = 16

	// addressMask limits addresses to the 12-bit address space.
	addressMask = MemorySize - 1
)

var (
	// ErrProgramTooLarge is returned when a program image does not fit into memory.
	ErrProgramTooLarge = errors.New("program image too large")
	// ErrStackOverflow is returned when a call is executed with a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrInvalidKey is returned when a key outside of 0x0-0xF is addressed.
	ErrInvalidKey = errors.New("invalid key")
)

// Interpreter is a CHIP-8 virtual machine. It is not safe for concurrent use,
// a driver that updates the keypad from another goroutine has to synchronize
// these calls with Step.
type Interpreter struct {
	memory    [MemorySize]byte
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16

	stack [StackDepth]uint16
	sp    uint8

	delayTimer uint8
	soundTimer uint8

	display Display
	keys    [KeyCount]bool

	opcode opcode // last fetched instruction

	quirks Quirks
	rng    *rand.Rand
	logger *log.Logger
}

// New returns a new interpreter with the font loaded and the program counter
// set to ProgramStart.
func New(options ...Option) *Interpreter {
	now := uint64(time.Now().UnixNano())
	i := &Interpreter{
		rng: rand.New(rand.NewPCG(now, now>>32)),
	}
	for _, option := range options {
		option(i)
	}
	i.Reset()
	return i
}

// Reset clears the complete machine state, restores the font glyphs and sets
// the program counter to ProgramStart.
func (i *Interpreter) Reset() {
	i.memory = [MemorySize]byte{}
	i.resetState()
}

// Load resets the machine and copies the program image to ProgramStart.
// Images larger than MaxProgramSize are rejected without modifying the
// machine state.
func (i *Interpreter) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceeds maximum of %d bytes",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	i.Reset()
	copy(i.memory[ProgramStart:], program)

	if i.logger != nil {
		i.logger.Debug("Program loaded",
			log.Int("size", len(program)),
			log.Hex("start", uint16(ProgramStart)))
	}
	return nil
}

// resetState clears all state except the memory above the font region.
func (i *Interpreter) resetState() {
	i.registers = [RegisterCount]uint8{}
	i.index = 0
	i.pc = ProgramStart
	i.stack = [StackDepth]uint16{}
	i.sp = 0
	i.delayTimer = 0
	i.soundTimer = 0
	i.display.clear()
	i.keys = [KeyCount]bool{}
	i.opcode = 0
	copy(i.memory[FontStart:], fontSet[:])
}

// SetKey sets the pressed state of a keypad key.
func (i *Interpreter) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %X", ErrInvalidKey, key)
	}
	i.keys[key] = pressed
	return nil
}

// KeyPressed returns whether the given key is pressed. Keys outside of the
// keypad are never pressed.
func (i *Interpreter) KeyPressed(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return i.keys[key]
}

// Frame returns a copy of the current frame buffer.
func (i *Interpreter) Frame() Display {
	return i.display
}

// Pixel returns whether the frame buffer pixel at the given position is on.
func (i *Interpreter) Pixel(x, y int) bool {
	return i.display.Pixel(x, y)
}

// DelayTimer returns the current delay timer value.
func (i *Interpreter) DelayTimer() uint8 {
	return i.delayTimer
}

// SoundTimer returns the current sound timer value.
func (i *Interpreter) SoundTimer() uint8 {
	return i.soundTimer
}

// SoundActive returns whether the tone should currently be played.
func (i *Interpreter) SoundActive() bool {
	return i.soundTimer > 0
}

// ReadMemory returns the byte at the given address, wrapped into memory.
func (i *Interpreter) ReadMemory(address uint16) byte {
	return i.read(address)
}

// read returns the byte at the given address, wrapped into memory.
func (i *Interpreter) read(address uint16) byte {
	return i.memory[address&addressMask]
}

// write sets the byte at the given address, wrapped into memory.
func (i *Interpreter) write(address uint16, value byte) {
	i.memory[address&addressMask] = value
}

// State is a snapshot of the processor state.
type State struct {
	Registers  [RegisterCount]uint8
	Index      uint16
	PC         uint16
	SP         uint8
	Stack      [StackDepth]uint16
	DelayTimer uint8
	SoundTimer uint8
	Opcode     uint16 // last executed opcode
}

// State returns a snapshot of the processor state.
func (i *Interpreter) State() State {
	return State{
		Registers:  i.registers,
		Index:      i.index,
		PC:         i.pc,
		SP:         i.sp,
		Stack:      i.stack,
		DelayTimer: i.delayTimer,
		SoundTimer: i.soundTimer,
		Opcode:     uint16(i.opcode),
	}
}
