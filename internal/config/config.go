// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateInterpreterOptions converts the program options to interpreter options.
func CreateInterpreterOptions(logger *log.Logger, opts options.Program) []vm.Option {
	vmOptions := []vm.Option{
		vm.WithQuirks(vm.Quirks{
			ShiftSourceY:   opts.ShiftSourceY,
			IncrementIndex: opts.IncrementIndex,
			WrapSprites:    opts.WrapSprites,
		}),
	}
	if opts.Seed != 0 {
		vmOptions = append(vmOptions, vm.WithSeed(opts.Seed))
	}
	if opts.Debug {
		vmOptions = append(vmOptions, vm.WithLogger(logger))
	}
	return vmOptions
}
