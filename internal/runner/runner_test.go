package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestRunner(t *testing.T, flags options.Flags) *Runner {
	t.Helper()
	return New(log.NewTestLogger(t), options.Program{Flags: flags})
}

func TestRunUntilHalt(t *testing.T) {
	r := newTestRunner(t, options.Flags{})
	program := []byte{
		0x60, 0x05, // ld V0, $05
		0x70, 0x0A, // add V0, $0A
		0x12, 0x04, // jp $204
	}

	var buf bytes.Buffer
	res, err := r.Run(context.Background(), program, &buf)
	assert.NoError(t, err)
	assert.True(t, res.Halted)
	assert.Equal(t, uint64(2), res.Cycles)
	assert.Equal(t, uint16(0x204), res.State.PC)
	assert.Equal(t, uint8(15), res.State.Registers[0])
	assert.Equal(t, uint8(0), res.State.Registers[vm.FlagRegister])

	out := buf.String()
	assert.Contains(t, out, "PC: $204")
	assert.Contains(t, out, "V0: 0F")
	assert.False(t, strings.Contains(out, "Stack:"))
}

func TestRunCycleLimit(t *testing.T) {
	r := newTestRunner(t, options.Flags{Cycles: 5})
	program := []byte{
		0x70, 0x01, // add V0, $01
		0x12, 0x00, // jp $200
	}

	res, err := r.Run(context.Background(), program, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.False(t, res.Halted)
	assert.Equal(t, uint64(5), res.Cycles)
	assert.Equal(t, uint8(3), res.State.Registers[0])
	assert.Equal(t, uint16(0x202), res.State.PC)
}

func TestRunCancelled(t *testing.T) {
	r := newTestRunner(t, options.Flags{})
	program := []byte{
		0x70, 0x01, // add V0, $01
		0x12, 0x00, // jp $200
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	res, err := r.Run(ctx, program, &buf)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), res.Cycles)
	assert.Equal(t, 0, buf.Len())
}

func TestRunHeldKeys(t *testing.T) {
	program := []byte{
		0xE0, 0x9E, // skp V0
		0x60, 0x01, // ld V0, $01
		0x12, 0x04, // jp $204
	}

	tests := []struct {
		name     string
		keys     string
		register uint8
		cycles   uint64
	}{
		{"key held", "0", 0, 1},
		{"other key held", "1, 2", 1, 2},
		{"no key held", "", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRunner(t, options.Flags{Keys: tt.keys})

			res, err := r.Run(context.Background(), program, &bytes.Buffer{})
			assert.NoError(t, err)
			assert.True(t, res.Halted)
			assert.Equal(t, tt.cycles, res.Cycles)
			assert.Equal(t, tt.register, res.State.Registers[0])
		})
	}
}

func TestRunInvalidKeys(t *testing.T) {
	r := newTestRunner(t, options.Flags{Keys: "G"})

	_, err := r.Run(context.Background(), []byte{0x12, 0x00}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.ErrorContains(t, err, "parsing keys")
}

func TestRunNoDump(t *testing.T) {
	r := newTestRunner(t, options.Flags{NoDump: true})

	var buf bytes.Buffer
	res, err := r.Run(context.Background(), []byte{0x12, 0x00}, &buf)
	assert.NoError(t, err)
	assert.True(t, res.Halted)
	assert.Equal(t, 0, buf.Len())
}

func TestRunTrace(t *testing.T) {
	r := newTestRunner(t, options.Flags{Trace: true, Debug: true, NoDump: true})
	program := []byte{
		0x00, 0xE0, // cls
		0xF0, 0xFF, // unknown
		0x12, 0x04, // jp $204
	}

	res, err := r.Run(context.Background(), program, &bytes.Buffer{})
	assert.NoError(t, err)
	assert.True(t, res.Halted)
	assert.Equal(t, uint64(2), res.Cycles)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		err     error
	}{
		{"stack underflow", []byte{0x00, 0xEE}, vm.ErrStackUnderflow},
		{"stack overflow", []byte{0x22, 0x00}, vm.ErrStackOverflow},
		{"program too large", make([]byte, vm.MaxProgramSize+1), vm.ErrProgramTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRunner(t, options.Flags{})

			_, err := r.Run(context.Background(), tt.program, &bytes.Buffer{})
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestRunStackDump(t *testing.T) {
	r := newTestRunner(t, options.Flags{})
	program := []byte{
		0x22, 0x04, // call $204
		0x00, 0x00,
		0x12, 0x04, // jp $204
	}

	var buf bytes.Buffer
	res, err := r.Run(context.Background(), program, &buf)
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), res.State.SP)
	assert.Contains(t, buf.String(), "Stack: $202")
}

func TestRunDrawDump(t *testing.T) {
	r := newTestRunner(t, options.Flags{})
	program := []byte{
		0xA2, 0x06, // ld I, $206
		0xD0, 0x01, // drw V0, V0, 1
		0x12, 0x04, // jp $204
		0xFF, // sprite
	}

	var buf bytes.Buffer
	res, err := r.Run(context.Background(), program, &buf)
	assert.NoError(t, err)
	assert.Equal(t, 8, res.Frame.Lit())

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "########"+strings.Repeat(".", vm.DisplayWidth-8), lines[0])
	assert.Equal(t, strings.Repeat(".", vm.DisplayWidth), lines[1])
}

func TestIsHalt(t *testing.T) {
	tests := []struct {
		name   string
		pc     uint16
		opcode uint16
		halt   bool
	}{
		{"jump to self", 0x204, 0x1204, true},
		{"jump elsewhere", 0x204, 0x1200, false},
		{"call self", 0x204, 0x2204, false},
		{"jump with offset to self", 0x204, 0xB204, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.halt, isHalt(tt.pc, tt.opcode))
		})
	}
}

func TestDisassemble(t *testing.T) {
	r := newTestRunner(t, options.Flags{})

	var buf bytes.Buffer
	assert.NoError(t, r.Disassemble([]byte{0x00, 0xE0, 0x12, 0x02}, &buf))
	assert.Contains(t, buf.String(), ".org $200")
	assert.Contains(t, buf.String(), "_label_202:")

	err := r.Disassemble(make([]byte, vm.MaxProgramSize+1), &buf)
	assert.True(t, errors.Is(err, vm.ErrProgramTooLarge))
}
