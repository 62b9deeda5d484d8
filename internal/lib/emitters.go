package lib

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"

	"github.com/seekbug-project/seek-bug/lit"
	"github.com/seekbug-project/seek-bug/lit/artifacts"
	"github.com/seekbug-project/seek-bug/lit/formatters"
)

// NoopEmitter is a no-op SiteEmitter that optionally logs a message
// and a reason as to why the site configuration was not emitted.
type NoopEmitter struct {
	EmitLog bool
	Reason  string
}

func (e *NoopEmitter) Emit(ctx context.Context, _ lit.Suite) error {
	if e.EmitLog {
		msg := "The lit site configuration is not being emitted."
		if e.Reason != "" {
			msg = fmt.Sprintf("%s Reason: %s.", msg, e.Reason)
		}

		logr.FromContextOrDiscard(ctx).Info(msg)
	}

	return nil
}

// SiteConfigEmitter writes lit.site.cfg.py into the suite's exec root.
type SiteConfigEmitter struct {
	Fs afero.Fs
}

func (e *SiteConfigEmitter) Emit(ctx context.Context, s lit.Suite) error {
	logger := logr.FromContextOrDiscard(ctx)

	if s.ExecRoot == "" {
		return fmt.Errorf("suite %s has no exec root to emit into", s.Name)
	}

	f, err := formatters.NewByName("lit")
	if err != nil {
		return err
	}

	contents, err := f.Format(ctx, s)
	if err != nil {
		return err
	}

	w, err := artifacts.NewFilesystemWriter(e.Fs, s.ExecRoot)
	if err != nil {
		return err
	}

	path, err := w.WriteFile(lit.SiteConfigFilename, bytes.NewReader(contents))
	if err != nil {
		return fmt.Errorf("could not emit site configuration: %w", err)
	}

	logger.Info("emitted lit site configuration", "path", path)
	return nil
}

// ResolveEmitter returns a SiteConfigEmitter when emit is requested, and a
// logging NoopEmitter otherwise.
func ResolveEmitter(emit bool, fs afero.Fs) SiteEmitter {
	if emit {
		return &SiteConfigEmitter{Fs: fs}
	}

	return &NoopEmitter{EmitLog: true, Reason: "emit_site_config is not set"}
}
