// Package engine contains the interfaces necessary to produce the lit suite
// configuration from site inputs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/seekbug-project/seek-bug/lit"
)

var (
	ErrObjRootEmpty = errors.New("seekbug_obj_root is empty")
	ErrBinPathEmpty = errors.New("seekbug_bin_path is empty")
	ErrPathUnset    = errors.New("PATH is not set in the configured environment")
)

// ConfigEngine defines the functionality necessary to run the configuration
// step for the suite, and return the configuration it produced.
type ConfigEngine interface {
	// Configure should validate the site inputs and internally store the
	// resulting suite. Calling Configure again with the same inputs stores
	// an identical suite.
	Configure(context.Context) error
	// Suite returns the outcome of the last successful Configure.
	Suite(context.Context) lit.Suite
}

// New returns a ConfigEngine for site.
func New(ctx context.Context, site lit.SiteConfig) (ConfigEngine, error) {
	if site == nil {
		return nil, fmt.Errorf("a site configuration is required")
	}
	return &siteEngine{site: site}, nil
}

// NewForConfig returns a ConfigEngine for cfg after checking that the
// required site inputs are present.
func NewForConfig(ctx context.Context, cfg lit.SiteConfig) (ConfigEngine, error) {
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid site configuration: %w", err)
	}
	return New(ctx, cfg)
}

type siteEngine struct {
	site  lit.SiteConfig
	suite lit.Suite
}

func (e *siteEngine) Configure(ctx context.Context) error {
	logger := logr.FromContextOrDiscard(ctx)

	if err := validate(e.site); err != nil {
		return fmt.Errorf("invalid site configuration: %w", err)
	}

	subs, err := InitializeSubstitutions(ctx, e.site)
	if err != nil {
		return fmt.Errorf("error initializing substitutions: %w", err)
	}

	e.suite = lit.Suite{
		Name: lit.SuiteName,
		TestFormat: lit.TestFormat{
			Name:            lit.ShTestFormat,
			ExecuteExternal: !e.site.UseLitShell(),
		},
		Suffixes:      lit.DefaultSuffixes(),
		SourceRoot:    e.site.SourceRoot(),
		ExecRoot:      filepath.Join(e.site.ObjRoot(), lit.ExecSubdir),
		Substitutions: subs,
		Excludes:      lit.DefaultExcludes(),
		Environment:   passthroughEnvironment(e.site.Environment()),
	}

	logger.V(1).Info("suite configured",
		"name", e.suite.Name,
		"execRoot", e.suite.ExecRoot,
		"substitutions", len(e.suite.Substitutions))

	return nil
}

// Suite returns a copy of the configured suite.
func (e *siteEngine) Suite(ctx context.Context) lit.Suite {
	return e.suite.Clone()
}

// InitializeSubstitutions returns the substitution table for site, in the
// order lit applies it.
func InitializeSubstitutions(ctx context.Context, site lit.SiteConfig) ([]lit.Substitution, error) {
	path, ok := site.Environment()["PATH"]
	if !ok {
		return nil, ErrPathUnset
	}

	filecheck, ok := site.FileCheckPath()
	if !ok {
		logr.FromContextOrDiscard(ctx).V(1).Info("filecheck_path not set, using default", "default", lit.DefaultFileCheck)
		filecheck = lit.DefaultFileCheck
	}

	not, ok := site.NotPath()
	if !ok {
		logr.FromContextOrDiscard(ctx).V(1).Info("not_path not set, using default", "default", lit.DefaultNot)
		not = lit.DefaultNot
	}

	return []lit.Substitution{
		{Token: lit.TokenPath, Value: path},
		{Token: lit.TokenFileCheck, Value: filecheck},
		{Token: lit.TokenNot, Value: not},
		{Token: lit.TokenSeekBug, Value: site.BinPath()},
		{Token: lit.TokenTestDir, Value: site.ObjRoot()},
	}, nil
}

// SubstitutionTokens returns the names of the tokens the suite registers.
func SubstitutionTokens(ctx context.Context) []string {
	return lit.Tokens()
}

func validate(site lit.SiteConfig) error {
	if site == nil {
		return fmt.Errorf("a site configuration is required")
	}
	if site.ObjRoot() == "" {
		return ErrObjRootEmpty
	}
	if site.BinPath() == "" {
		return ErrBinPathEmpty
	}
	if _, ok := site.Environment()["PATH"]; !ok {
		return ErrPathUnset
	}
	return nil
}

// passthroughEnvironment copies the passthrough variables that host defines.
func passthroughEnvironment(host map[string]string) map[string]string {
	env := make(map[string]string)
	for _, name := range lit.PassthroughEnvironment() {
		if v, ok := host[name]; ok {
			env[name] = v
		}
	}
	return env
}
