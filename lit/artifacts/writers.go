package artifacts

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/spf13/afero"
)

// MapWriter is an ArtifactWriter that keeps artifacts in memory. It is
// useful to library callers that do not want files on disk.
type MapWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMapWriter returns an empty MapWriter.
func NewMapWriter() (*MapWriter, error) {
	return &MapWriter{files: map[string][]byte{}}, nil
}

// WriteFile stores contents under filename. The returned path is filename.
func (w *MapWriter) WriteFile(filename string, contents io.Reader) (string, error) {
	b, err := io.ReadAll(contents)
	if err != nil {
		return filename, fmt.Errorf("could not read artifact %s: %w", filename, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[filename] = b
	return filename, nil
}

// Get returns a reader over the artifact stored under filename.
func (w *MapWriter) Get(filename string) (io.Reader, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.files[filename]
	if !ok {
		return nil, false
	}
	return bytes.NewReader(b), true
}

// Files returns the stored artifact names, sorted.
func (w *MapWriter) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.files))
	for name := range w.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilesystemWriter is an ArtifactWriter that writes into a directory of an
// afero.Fs.
type FilesystemWriter struct {
	fs  afero.Fs
	dir string
}

// NewFilesystemWriter returns a writer rooted at dir. A nil fs writes to
// the host filesystem.
func NewFilesystemWriter(fs afero.Fs, dir string) (*FilesystemWriter, error) {
	if dir == "" {
		return nil, fmt.Errorf("an artifacts directory is required")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FilesystemWriter{fs: fs, dir: resolveFullPath(dir)}, nil
}

func (w *FilesystemWriter) WriteFile(filename string, contents io.Reader) (string, error) {
	return writeFile(w.fs, w.dir, filename, contents)
}

// Path returns the directory artifacts are written under.
func (w *FilesystemWriter) Path() string {
	return w.dir
}
