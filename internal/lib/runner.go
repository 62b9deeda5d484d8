package lib

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"

	"github.com/seekbug-project/seek-bug/lit"
	"github.com/seekbug-project/seek-bug/lit/artifacts"
	"github.com/seekbug-project/seek-bug/lit/engine"
	"github.com/seekbug-project/seek-bug/lit/formatters"
	"github.com/seekbug-project/seek-bug/lit/runtime"
)

// ResultsFilenameBase is the name, without extension, of the formatted
// suite written to the artifacts directory.
const ResultsFilenameBase = "suite"

// ConfigureRunner contains all of the components necessary to configure
// the suite and publish the result.
type ConfigureRunner struct {
	Cfg       *runtime.Config
	Eng       engine.ConfigEngine
	Formatter formatters.ResponseFormatter
	Rw        ResultWriter
	Emitter   SiteEmitter
}

// NewConfigureRunner returns a ConfigureRunner for cfg. Files are written to
// fs; a nil fs means the host filesystem.
func NewConfigureRunner(ctx context.Context, cfg *runtime.Config, fs afero.Fs) (*ConfigureRunner, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	eng, err := engine.NewForConfig(ctx, cfg.ReadOnly())
	if err != nil {
		return nil, err
	}

	fmttr, err := formatters.NewForConfig(cfg.ResponseFormat)
	if err != nil {
		return nil, err
	}

	return &ConfigureRunner{
		Cfg:       cfg,
		Eng:       eng,
		Formatter: fmttr,
		Rw:        &ResultWriterFile{Fs: fs},
		Emitter:   ResolveEmitter(cfg.EmitSiteConfig, fs),
	}, nil
}

// ResultsFilenameWithExtension returns the results file name for ext.
func ResultsFilenameWithExtension(ext string) string {
	return fmt.Sprintf("%s.%s", ResultsFilenameBase, ext)
}

// ExecuteConfigure configures the suite, writes the formatted result to out
// and to the results file, and emits the site configuration if requested.
func ExecuteConfigure(ctx context.Context, out io.Writer, r *ConfigureRunner) (lit.Suite, error) {
	logger := logr.FromContextOrDiscard(ctx)

	// configure the artifacts directory if the user requested a different directory.
	if r.Cfg.Artifacts != "" {
		artifacts.SetDir(r.Cfg.Artifacts)
	}

	// create the results file early to catch cases where we are not
	// able to write to the filesystem before we configure anything.
	resultsFile, err := r.Rw.OpenFile(filepath.Join(artifacts.Path(), ResultsFilenameWithExtension(r.Formatter.FileExtension())))
	if err != nil {
		return lit.Suite{}, err
	}
	defer resultsFile.Close()

	resultsOutputTarget := io.MultiWriter(out, resultsFile)

	if err := r.Eng.Configure(ctx); err != nil {
		return lit.Suite{}, err
	}
	suite := r.Eng.Suite(ctx)

	formatted, err := r.Formatter.Format(ctx, suite)
	if err != nil {
		return lit.Suite{}, err
	}

	fmt.Fprintln(resultsOutputTarget, string(formatted))

	if err := r.Emitter.Emit(ctx, suite); err != nil {
		return lit.Suite{}, err
	}

	// Library callers get the summary at debug verbosity only.
	if !CallerIsCLI(ctx) {
		logger = logger.V(1)
	}
	logger.Info("suite configured", "name", suite.Name, "execRoot", suite.ExecRoot, "format", r.Formatter.PrettyName())

	return suite, nil
}
