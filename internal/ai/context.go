// Package ai implements SeekBug's AI-assisted debugger commands.
package ai

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// ModelPathEnv names the model file SeekBug loads.
	ModelPathEnv = "DEEP_SEEK_LLM_PATH"
	// DebugEnv set to 1 echoes every prompt before it is sent to the model.
	DebugEnv = "DEBUG_SEEKBUG"
	// ExpectedModelFile is the only model build SeekBug is tuned for.
	ExpectedModelFile = "DeepSeek-R1-Distill-Llama-8B-Q8_0.gguf"
)

var (
	ErrModelPathUnset      = fmt.Errorf("%s environment variable is not set", ModelPathEnv)
	ErrModelMissing        = errors.New("model file does not exist")
	ErrUnexpectedModelFile = errors.New("unexpected model file")
)

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Context is the configuration shared by the AI commands.
type Context struct {
	ModelPath string
	Debug     bool
}

// LoadContext reads the model configuration from the environment and checks
// the model file on fs.
func LoadContext(fs afero.Fs, lookup LookupEnvFunc) (Context, error) {
	path, ok := lookup(ModelPathEnv)
	if !ok || path == "" {
		return Context{}, ErrModelPathUnset
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Context{}, fmt.Errorf("could not check model file %s: %w", path, err)
	}
	if !exists {
		return Context{}, fmt.Errorf("model file %s: %w", path, ErrModelMissing)
	}

	if name := filepath.Base(path); name != ExpectedModelFile {
		return Context{}, fmt.Errorf("%w: %s", ErrUnexpectedModelFile, name)
	}

	debug, _ := lookup(DebugEnv)

	return Context{
		ModelPath: path,
		Debug:     debug == "1",
	}, nil
}
