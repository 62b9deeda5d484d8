package debugger

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

var ErrInvalidTarget = errors.New("invalid target")

// Target is the program being debugged.
type Target struct {
	Path string
	Name string
	Size int64
}

// CreateTarget validates that program names a regular file on fs.
func CreateTarget(fs afero.Fs, program string) (*Target, error) {
	if program == "" {
		return nil, fmt.Errorf("no program given: %w", ErrInvalidTarget)
	}

	info, err := fs.Stat(program)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", program, ErrInvalidTarget, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file: %w", program, ErrInvalidTarget)
	}

	return &Target{
		Path: program,
		Name: filepath.Base(program),
		Size: info.Size(),
	}, nil
}
