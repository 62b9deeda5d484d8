// Package artifacts provides functionality for writing artifact files in configured
// artifacts directory. This package operates with a singleton directory variable that can be
// changed and reset. It provides simple functionality that can be accessible from
// any calling library.
package artifacts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// appFS is the base path FS to base writes on
var appFS = afero.NewOsFs()

// ads is the artifacts directory singleton.
var ads string

// DefaultArtifactsDir is the default value for the directory.
const DefaultArtifactsDir = "artifacts"

func init() {
	Reset()
}

// SetDir sets the package level artifacts directory. This
// can be a relative path or a full path.
func SetDir(s string) {
	ads = resolveFullPath(s)
}

// Reset restores the default value for the Artifacts Directory.
func Reset() {
	ads = resolveFullPath(DefaultArtifactsDir)
}

// WriteFile will write contents of the reader to a file in
// the artifacts directory. It will create the artifacts dir
// if necessary. An existing file is replaced.
// Returns the full path (including the artifacts dir)
func WriteFile(filename string, contents io.Reader) (string, error) {
	return writeFile(appFS, Path(), filename, contents)
}

// Path will return the artifacts directory.
func Path() string {
	return ads
}

// ContextWithWriter adds ArtifactWriter w to the context ctx.
func ContextWithWriter(ctx context.Context, w ArtifactWriter) context.Context {
	return context.WithValue(ctx, contextKey(), w)
}

// WriterFromContext returns the writer from the context, or nil.
func WriterFromContext(ctx context.Context) ArtifactWriter {
	w := ctx.Value(contextKey())
	if writer, ok := w.(ArtifactWriter); ok {
		return writer
	}

	return nil
}

// artifactsWriterContextKey is a key used to store/retrieve ArtifactsWriter in/from context.Context.
type artifactsWriterContextKey string

// contextKey returns the context key for an Artifacts Writer.
func contextKey() artifactsWriterContextKey {
	return artifactsWriterContextKey("ArtifactWriter")
}

// ArtifactWriter describes functionality required for writing artifacts.
type ArtifactWriter interface {
	WriteFile(filename string, contents io.Reader) (string, error)
}

func writeFile(fs afero.Fs, dir, filename string, contents io.Reader) (string, error) {
	fullFilePath := filepath.Join(dir, filename)

	if err := fs.MkdirAll(filepath.Dir(fullFilePath), 0o755); err != nil {
		return fullFilePath, fmt.Errorf("could not create artifacts directory: %w", err)
	}
	if err := afero.WriteReader(fs, fullFilePath, contents); err != nil {
		return fullFilePath, fmt.Errorf("could not write file to artifacts directory: %w", err)
	}
	return fullFilePath, nil
}

// resolveFullPath resolves the full path of s if s is a relative path.
func resolveFullPath(s string) string {
	if filepath.IsAbs(s) {
		return filepath.Clean(s)
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, s)
}
