// Package runner drives the interpreter without a screen and reports the
// resulting machine state.
package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Runner executes a program on a fresh interpreter.
type Runner struct {
	logger *log.Logger
	opts   options.Program
}

// Result describes the outcome of an execution.
type Result struct {
	Cycles uint64 // number of executed instructions
	Halted bool   // program reached a jump to its own address
	State  vm.State
	Frame  vm.Display
}

// New creates a new runner.
func New(logger *log.Logger, opts options.Program) *Runner {
	return &Runner{
		logger: logger,
		opts:   opts,
	}
}

// Run loads the program and executes it until the cycle limit is reached,
// the program halts or the context is cancelled. Unless disabled by the
// options, the frame buffer and registers are written to w afterwards.
func (r *Runner) Run(ctx context.Context, program []byte, w io.Writer) (Result, error) {
	interpreter := vm.New(config.CreateInterpreterOptions(r.logger, r.opts)...)
	if err := interpreter.Load(program); err != nil {
		return Result{}, fmt.Errorf("loading program: %w", err)
	}

	keys, err := r.opts.HeldKeys()
	if err != nil {
		return Result{}, fmt.Errorf("parsing keys: %w", err)
	}
	for _, key := range keys {
		if err := interpreter.SetKey(key, true); err != nil {
			return Result{}, fmt.Errorf("setting key: %w", err)
		}
	}

	res, err := r.execute(ctx, interpreter)
	res.State = interpreter.State()
	res.Frame = interpreter.Frame()
	if err != nil {
		return res, err
	}

	if res.Halted {
		r.logger.Info("Program halted", log.Int("cycles", int(res.Cycles)))
	} else {
		r.logger.Info("Cycle limit reached", log.Int("cycles", int(res.Cycles)))
	}

	if r.opts.NoDump {
		return res, nil
	}
	if err := Dump(w, res.State, &res.Frame); err != nil {
		return res, fmt.Errorf("writing machine state: %w", err)
	}
	return res, nil
}

func (r *Runner) execute(ctx context.Context, interpreter *vm.Interpreter) (Result, error) {
	var res Result

	for r.opts.Cycles == 0 || res.Cycles < r.opts.Cycles {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("executing cycle %d: %w", res.Cycles, err)
		}

		pc := interpreter.State().PC
		opcode := uint16(interpreter.ReadMemory(pc))<<8 | uint16(interpreter.ReadMemory(pc+1))
		if isHalt(pc, opcode) {
			res.Halted = true
			return res, nil
		}

		if r.opts.Trace {
			r.logger.Debug("Executing instruction",
				log.Hex("pc", pc),
				log.Hex("opcode", opcode),
				log.String("code", disasm.Format(opcode)))
		}

		if err := interpreter.Step(); err != nil {
			return res, fmt.Errorf("cycle %d: %w", res.Cycles, err)
		}
		res.Cycles++
	}
	return res, nil
}

// isHalt returns whether the opcode is a jump to its own address, which
// programs use to stop execution.
func isHalt(pc, opcode uint16) bool {
	return opcode&0xF000 == 0x1000 && opcode&0x0FFF == pc&0x0FFF
}

// Disassemble writes a listing of the program to w.
func (r *Runner) Disassemble(program []byte, w io.Writer) error {
	if len(program) > vm.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes", vm.ErrProgramTooLarge, len(program))
	}
	if err := disasm.Listing(w, program, vm.ProgramStart); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// Dump writes the frame buffer followed by a register summary to w.
func Dump(w io.Writer, state vm.State, frame *vm.Display) error {
	var sb strings.Builder
	sb.WriteString(frame.String())
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "PC: $%03X  I: $%03X  SP: %d  DT: %d  ST: %d\n",
		state.PC, state.Index, state.SP, state.DelayTimer, state.SoundTimer)

	for reg, value := range state.Registers {
		if reg > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "V%X: %02X", reg, value)
	}
	sb.WriteByte('\n')

	if state.SP > 0 {
		sb.WriteString("Stack:")
		for _, address := range state.Stack[:state.SP] {
			fmt.Fprintf(&sb, " $%03X", address)
		}
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
