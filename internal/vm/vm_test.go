package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestInterpreter returns an interpreter with a deterministic random
// source that has the given program loaded.
func newTestInterpreter(t *testing.T, program ...byte) *Interpreter {
	t.Helper()
	i := New(WithSeed(1), WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, i.Load(program))
	return i
}

// steps executes the given number of cycles and fails the test on error.
func steps(t *testing.T, i *Interpreter, count int) {
	t.Helper()
	for range count {
		assert.NoError(t, i.Step())
	}
}

// litPixels returns the number of pixels that are on.
func litPixels(i *Interpreter) int {
	frame := i.Frame()
	return frame.Lit()
}

func TestNew(t *testing.T) {
	i := New()

	state := i.State()
	assert.Equal(t, uint16(ProgramStart), state.PC)
	assert.Equal(t, uint16(0), state.Index)
	assert.Equal(t, uint8(0), state.SP)
	assert.Equal(t, [RegisterCount]uint8{}, state.Registers)
	assert.Equal(t, 0, litPixels(i))

	for idx, b := range fontSet {
		assert.Equal(t, b, i.ReadMemory(uint16(FontStart+idx)))
	}
}

func TestLoad(t *testing.T) {
	t.Run("copies program to program start", func(t *testing.T) {
		i := newTestInterpreter(t, 0x12, 0x34, 0x56)

		assert.Equal(t, byte(0x12), i.ReadMemory(ProgramStart))
		assert.Equal(t, byte(0x34), i.ReadMemory(ProgramStart+1))
		assert.Equal(t, byte(0x56), i.ReadMemory(ProgramStart+2))
		assert.Equal(t, byte(0x00), i.ReadMemory(ProgramStart+3))
	})

	t.Run("accepts maximum size", func(t *testing.T) {
		program := make([]byte, MaxProgramSize)
		program[len(program)-1] = 0xAB

		i := New()
		assert.NoError(t, i.Load(program))
		assert.Equal(t, byte(0xAB), i.ReadMemory(MemorySize-1))
	})

	t.Run("rejects oversized program without modifying state", func(t *testing.T) {
		i := newTestInterpreter(t, 0x60, 0x2A)
		steps(t, i, 1)

		err := i.Load(make([]byte, MaxProgramSize+1))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))

		assert.Equal(t, uint8(0x2A), i.State().Registers[0])
		assert.Equal(t, uint16(ProgramStart+2), i.State().PC)
		assert.Equal(t, byte(0x60), i.ReadMemory(ProgramStart))
	})

	t.Run("resets machine state", func(t *testing.T) {
		i := newTestInterpreter(t,
			0x60, 0x05, // ld V0, $05
			0xF0, 0x15, // ld DT, V0
			0xF0, 0x18, // ld ST, V0
			0xA0, 0x50, // ld I, $050
			0x22, 0x0C, // call $20C
			0x00, 0x00,
			0xD0, 0x05, // drw V0, V0, 5
		)
		assert.NoError(t, i.SetKey(0x3, true))
		steps(t, i, 6)
		assert.Equal(t, uint8(1), i.State().SP)
		assert.True(t, litPixels(i) > 0)

		assert.NoError(t, i.Load([]byte{0x00, 0xE0}))

		state := i.State()
		assert.Equal(t, [RegisterCount]uint8{}, state.Registers)
		assert.Equal(t, uint16(0), state.Index)
		assert.Equal(t, uint16(ProgramStart), state.PC)
		assert.Equal(t, uint8(0), state.SP)
		assert.Equal(t, [StackDepth]uint16{}, state.Stack)
		assert.Equal(t, uint8(0), state.DelayTimer)
		assert.Equal(t, uint8(0), state.SoundTimer)
		assert.Equal(t, 0, litPixels(i))
		assert.Equal(t, uint8(0), state.Registers[FlagRegister])
		assert.False(t, i.KeyPressed(0x3))
		assert.Equal(t, byte(0x00), i.ReadMemory(ProgramStart+2))
		assert.Equal(t, fontSet[0], i.ReadMemory(FontStart))
	})
}

func TestReset(t *testing.T) {
	i := newTestInterpreter(t, 0x60, 0x01)
	i.memory[FontStart] = 0x00
	steps(t, i, 1)

	i.Reset()

	assert.Equal(t, byte(0x00), i.ReadMemory(ProgramStart))
	assert.Equal(t, fontSet[0], i.ReadMemory(FontStart))
	assert.Equal(t, uint8(0), i.State().Registers[0])
	assert.Equal(t, uint16(ProgramStart), i.State().PC)
}

func TestKeys(t *testing.T) {
	i := New()

	assert.NoError(t, i.SetKey(0xF, true))
	assert.True(t, i.KeyPressed(0xF))
	assert.NoError(t, i.SetKey(0xF, false))
	assert.False(t, i.KeyPressed(0xF))

	err := i.SetKey(0x10, true)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidKey))
	assert.False(t, i.KeyPressed(0x10))
}

func TestReadMemoryWraps(t *testing.T) {
	i := New()
	assert.Equal(t, i.ReadMemory(FontStart), i.ReadMemory(MemorySize+FontStart))
}

func TestStepTimers(t *testing.T) {
	i := newTestInterpreter(t,
		0x60, 0x02, // ld V0, $02
		0xF0, 0x15, // ld DT, V0
		0xF0, 0x18, // ld ST, V0
		0x12, 0x06, // jp $206
	)

	steps(t, i, 2)
	assert.Equal(t, uint8(1), i.DelayTimer())

	steps(t, i, 1)
	assert.Equal(t, uint8(0), i.DelayTimer())
	assert.Equal(t, uint8(1), i.SoundTimer())
	assert.True(t, i.SoundActive())

	steps(t, i, 1)
	assert.Equal(t, uint8(0), i.SoundTimer())
	assert.False(t, i.SoundActive())

	steps(t, i, 3)
	assert.Equal(t, uint8(0), i.DelayTimer())
	assert.Equal(t, uint8(0), i.SoundTimer())
}

func TestStepAddScenario(t *testing.T) {
	i := newTestInterpreter(t,
		0x60, 0x0A, // ld V0, $0A
		0x61, 0x05, // ld V1, $05
		0x80, 0x14, // add V0, V1
	)

	steps(t, i, 3)

	state := i.State()
	assert.Equal(t, uint8(15), state.Registers[0])
	assert.Equal(t, uint8(0), state.Registers[FlagRegister])
	assert.Equal(t, uint16(0x206), state.PC)
	assert.Equal(t, uint16(0x8014), state.Opcode)
}

func TestStepStackErrors(t *testing.T) {
	t.Run("return with empty stack", func(t *testing.T) {
		i := newTestInterpreter(t,
			0x60, 0x03, // ld V0, $03
			0xF0, 0x15, // ld DT, V0
			0x00, 0xEE, // ret
		)
		steps(t, i, 2)
		before := i.State()

		err := i.Step()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrStackUnderflow))

		after := i.State()
		assert.Equal(t, uint16(0x204), after.PC)
		assert.Equal(t, before.DelayTimer, after.DelayTimer)
		assert.Equal(t, uint8(0), after.SP)
	})

	t.Run("call with full stack", func(t *testing.T) {
		i := newTestInterpreter(t,
			0x22, 0x00, // call $200
		)
		steps(t, i, StackDepth)
		assert.Equal(t, uint8(StackDepth), i.State().SP)

		err := i.Step()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrStackOverflow))
		assert.ErrorContains(t, err, "2200")

		state := i.State()
		assert.Equal(t, uint16(ProgramStart), state.PC)
		assert.Equal(t, uint8(StackDepth), state.SP)
		for _, address := range state.Stack {
			assert.Equal(t, uint16(ProgramStart+2), address)
		}
	})
}

func TestStepFetchWraps(t *testing.T) {
	i := newTestInterpreter(t)
	i.memory[0xFFE] = 0x1F // jp $FFF
	i.memory[0xFFF] = 0xFF
	i.memory[0x000] = 0x61 // second byte of the wrapped fetch at $FFF
	i.pc = 0xFFE

	steps(t, i, 2)

	// fetch at $FFF reads $FF61, an unknown Fx instruction
	assert.Equal(t, uint16(0xFF61), i.State().Opcode)
	assert.Equal(t, uint16(0x1001), i.State().PC)

	// the program counter is not masked, the next fetch reads from $001
	steps(t, i, 1)
	assert.Equal(t, uint16(0x1003), i.State().PC)
}
