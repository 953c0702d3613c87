// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readQuirkFlags(flags, &opts.Quirks)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	if opts.Trace {
		opts.Debug = true
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program to execute>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program to execute, please pass the program as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks option values and combinations
func validateOptions(opts options.Program) error {
	if _, err := opts.HeldKeys(); err != nil {
		return fmt.Errorf("parsing keys: %w", err)
	}
	if opts.Disasm && opts.Trace {
		return fmt.Errorf("options -disasm and -trace can not be combined")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the final machine state, printed on console if no name given")
	flags.Uint64Var(&opts.Cycles, "cycles", 1000, "maximum number of cycles to execute, 0 runs until the program halts")
	flags.StringVar(&opts.Keys, "keys", "", "keys that are held down during execution, as hex digits, for example 1A")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 uses a time based seed")
	flags.BoolVar(&opts.Disasm, "disasm", false, "output a listing of the program instead of executing it")
	flags.BoolVar(&opts.NoDump, "nodump", false, "do not output the frame buffer and registers after execution")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readQuirkFlags(flags *flag.FlagSet, quirks *options.Quirks) {
	flags.BoolVar(&quirks.ShiftSourceY, "quirk-shift", false, "shift instructions shift VY into VX")
	flags.BoolVar(&quirks.IncrementIndex, "quirk-index", false, "register store and load instructions increment I")
	flags.BoolVar(&quirks.WrapSprites, "quirk-wrap", false, "sprites wrap around the screen edges instead of being clipped")
}
