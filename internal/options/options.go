// Package options contains the program options.
package options

import "fmt"

// Parameters contains file path options.
type Parameters struct {
	Input  string // program image to execute
	Output string // file to write the final machine state to, stdout if empty
}

// Flags contains behavior options.
type Flags struct {
	Cycles uint64 // maximum number of cycles to execute, 0 runs until halted
	Keys   string // hex digits of keys that are held down during execution
	Seed   uint64 // seed of the random number generator, 0 uses a time based seed

	Disasm bool // output a listing of the program instead of executing it
	NoDump bool // do not output the frame buffer and registers after execution
	Trace  bool // log every executed instruction
	Debug  bool
	Quiet  bool
}

// Quirks contains the interpreter compatibility options.
type Quirks struct {
	ShiftSourceY   bool
	IncrementIndex bool
	WrapSprites    bool
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Quirks
}

// HeldKeys returns the keys of the Keys option. Keys are hex digits that can
// optionally be separated by commas or spaces.
func (f Flags) HeldKeys() ([]uint8, error) {
	var keys []uint8
	for _, c := range f.Keys {
		switch {
		case c == ',' || c == ' ':
			continue
		case c >= '0' && c <= '9':
			keys = append(keys, uint8(c-'0'))
		case c >= 'a' && c <= 'f':
			keys = append(keys, uint8(c-'a'+10))
		case c >= 'A' && c <= 'F':
			keys = append(keys, uint8(c-'A'+10))
		default:
			return nil, fmt.Errorf("invalid key '%c', keys have to be hex digits 0-F", c)
		}
	}
	return keys, nil
}
