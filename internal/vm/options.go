package vm

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Quirks selects alternative behaviors that differ between historic CHIP-8
// interpreters. The zero value selects the default behavior.
type Quirks struct {
	// ShiftSourceY makes 8xy6 and 8xyE shift Vy into Vx instead of shifting Vx in place.
	ShiftSourceY bool
	// IncrementIndex makes Fx55 and Fx65 leave I pointing after the last accessed byte.
	IncrementIndex bool
	// WrapSprites makes sprite pixels wrap around the screen edges instead of being clipped.
	WrapSprites bool
}

// Option configures an interpreter.
type Option func(*Interpreter)

// WithQuirks sets the quirks of the interpreter.
func WithQuirks(quirks Quirks) Option {
	return func(i *Interpreter) {
		i.quirks = quirks
	}
}

// WithRandom sets the source of the random numbers used by the rnd instruction.
func WithRandom(source rand.Source) Option {
	return func(i *Interpreter) {
		i.rng = rand.New(source)
	}
}

// WithSeed makes the random numbers used by the rnd instruction deterministic.
func WithSeed(seed uint64) Option {
	return WithRandom(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// WithLogger sets a logger that receives debug output about loaded programs
// and unknown opcodes.
func WithLogger(logger *log.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}
