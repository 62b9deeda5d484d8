// Package plugin is the entry point that loads SeekBug's AI commands into a
// running debugger interpreter.
package plugin

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"

	"github.com/seekbug-project/seek-bug/internal/ai"
	"github.com/seekbug-project/seek-bug/internal/debugger"
)

// These types let plugin hosts name the interpreter pieces without
// importing internal packages.
type (
	Interpreter   = debugger.Interpreter
	ReturnObject  = debugger.ReturnObject
	CommandPlugin = debugger.CommandPlugin
	LLM           = ai.LLM
	LookupEnvFunc = ai.LookupEnvFunc
)

// Prompt is the interpreter prompt SeekBug installs.
const Prompt = debugger.DefaultPrompt

// Options configures Initialize. Zero values use the host filesystem, the
// process environment and the placeholder model.
type Options struct {
	Fs     afero.Fs
	Lookup LookupEnvFunc
	LLM    LLM
}

// Initialize validates the model configuration and registers the AI
// commands on interp. Any error means the plugin did not load.
func Initialize(ctx context.Context, interp *Interpreter, opts Options) error {
	logger := logr.FromContextOrDiscard(ctx)

	if interp == nil {
		return fmt.Errorf("an interpreter is required")
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}

	interp.SetPrompt(Prompt)

	c, err := ai.LoadContext(opts.Fs, opts.Lookup)
	if err != nil {
		return err
	}

	if err := ai.RegisterCommands(interp, c, opts.LLM); err != nil {
		return fmt.Errorf("failed to register SeekBug commands: %w", err)
	}

	logger.Info("SeekBug is using " + c.ModelPath)
	logger.Info("SeekBug plugin loaded successfully.")

	return nil
}
