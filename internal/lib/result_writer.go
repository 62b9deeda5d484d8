package lib

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ResultWriterFile is a ResultWriter backed by an afero.Fs. The zero value
// writes to the host filesystem.
type ResultWriterFile struct {
	Fs   afero.Fs
	file afero.File
}

// OpenFile creates or truncates name, creating parent directories as
// needed.
func (f *ResultWriterFile) OpenFile(name string) (io.WriteCloser, error) {
	if f.Fs == nil {
		f.Fs = afero.NewOsFs()
	}

	if err := f.Fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, fmt.Errorf("could not create results directory: %w", err)
	}

	file, err := f.Fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open results file: %w", err)
	}

	f.file = file
	return f, nil
}

func (f *ResultWriterFile) Write(p []byte) (int, error) {
	if f.file == nil {
		return 0, fmt.Errorf("results file is not open")
	}
	return f.file.Write(p)
}

func (f *ResultWriterFile) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
