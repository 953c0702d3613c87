// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

// ErrEmptyProgram is returned for program files without content.
var ErrEmptyProgram = errors.New("program file is empty")

// Load reads a raw CHIP-8 program image from disk. Program images have no
// header, the whole file content is returned. Files that can not fit into
// the interpreter memory are rejected before any execution is attempted.
func Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening file %s: is a directory", path)
	}
	if info.Size() > vm.MaxProgramSize {
		return nil, fmt.Errorf("loading %s with %d bytes: %w", path, info.Size(), vm.ErrProgramTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("loading %s: %w", path, ErrEmptyProgram)
	}
	return data, nil
}
