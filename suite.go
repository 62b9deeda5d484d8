// Package seekbug is the library entry point to the SeekBug lit suite
// configuration and the SeekBug debugger session.
package seekbug

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/seekbug-project/seek-bug/internal/lib"
	"github.com/seekbug-project/seek-bug/lit"
	"github.com/seekbug-project/seek-bug/lit/artifacts"
	"github.com/seekbug-project/seek-bug/lit/engine"
	"github.com/seekbug-project/seek-bug/lit/runtime"
)

var (
	ErrObjRootEmpty = engine.ErrObjRootEmpty
	ErrBinPathEmpty = engine.ErrBinPathEmpty
)

// SuiteConfiguration produces the lit configuration for a SeekBug build.
type SuiteConfiguration struct {
	ctx context.Context
	cfg runtime.Config
}

type SuiteOption = func(*SuiteConfiguration)

// NewSuiteConfiguration configures the suite for the build rooted at
// objRoot whose seek-bug binary is binPath. The host environment is used
// unless WithEnvironment says otherwise.
func NewSuiteConfiguration(objRoot, binPath string, opts ...SuiteOption) *SuiteConfiguration {
	cwd, _ := os.Getwd()
	c := &SuiteConfiguration{
		ctx: context.Background(),
		cfg: runtime.Config{
			ObjRoot:     objRoot,
			BinPath:     binPath,
			SourceRoot:  cwd,
			UseLitShell: true,
			Environment: runtime.EnvironFrom(os.Environ()),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run validates the inputs and returns the configured suite. When the
// context carries an artifacts.ArtifactWriter, the run's log is written
// through it as lib.LogFilename.
func (c *SuiteConfiguration) Run() (lit.Suite, error) {
	if c.cfg.ObjRoot == "" {
		return lit.Suite{}, ErrObjRootEmpty
	}
	if c.cfg.BinPath == "" {
		return lit.Suite{}, ErrBinPathEmpty
	}

	ctx := c.ctx
	flush := lib.LogThroughArtifactWriterIfSet(ctx)
	if artifacts.WriterFromContext(ctx) != nil {
		ctx = lib.ContextWithLogrus(ctx, log.StandardLogger())
	}

	suite, err := c.configure(ctx)
	if ferr := flush(); err == nil {
		err = ferr
	}
	return suite, err
}

func (c *SuiteConfiguration) configure(ctx context.Context) (lit.Suite, error) {
	eng, err := engine.NewForConfig(ctx, c.cfg.ReadOnly())
	if err != nil {
		return lit.Suite{}, err
	}

	if err := eng.Configure(ctx); err != nil {
		return lit.Suite{}, err
	}

	return eng.Suite(ctx), nil
}

// WithContext adds the provided context to the execution.
func WithContext(ctx context.Context) SuiteOption {
	return func(c *SuiteConfiguration) {
		c.ctx = ctx
	}
}

// WithFileCheck sets the FileCheck binary bound to %FileCheck.
func WithFileCheck(path string) SuiteOption {
	return func(c *SuiteConfiguration) {
		c.cfg.FileCheckPath = &path
	}
}

// WithNot sets the not binary bound to %not.
func WithNot(path string) SuiteOption {
	return func(c *SuiteConfiguration) {
		c.cfg.NotPath = &path
	}
}

// WithSourceRoot sets the directory holding lit.cfg.py.
func WithSourceRoot(dir string) SuiteOption {
	return func(c *SuiteConfiguration) {
		c.cfg.SourceRoot = dir
	}
}

// WithLitShell selects lit's internal shell (true) or the system shell.
func WithLitShell(internal bool) SuiteOption {
	return func(c *SuiteConfiguration) {
		c.cfg.UseLitShell = internal
	}
}

// WithEnvironment replaces the host environment the suite reads PATH and
// the passthrough variables from.
func WithEnvironment(env map[string]string) SuiteOption {
	return func(c *SuiteConfiguration) {
		c.cfg.Environment = env
	}
}
