// Package runtime contains the structs and definitions consumed by seekbug-lit at
// runtime.
package runtime

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys read from viper. Flags, SEEKBUG_ environment variables
// and the site file all resolve to these names.
const (
	KeyObjRoot        = "seekbug_obj_root"
	KeyBinPath        = "seekbug_bin_path"
	KeyFileCheckPath  = "filecheck_path"
	KeyNotPath        = "not_path"
	KeySourceRoot     = "source_root"
	KeyUseLitShell    = "use_lit_shell"
	KeyFormat         = "format"
	KeyArtifacts      = "artifacts"
	KeyLogFile        = "logfile"
	KeyEmitSiteConfig = "emit_site_config"
)

// litInternalShellEnv is honored the same way llvm_config does: setting it
// to 0 sends RUN lines to the external shell.
const litInternalShellEnv = "LIT_USE_INTERNAL_SHELL"

type Config struct {
	ObjRoot       string
	BinPath       string
	FileCheckPath *string
	NotPath       *string
	SourceRoot    string
	UseLitShell   bool
	Environment   map[string]string

	ResponseFormat string
	Artifacts      string
	LogFile        string
	EmitSiteConfig bool
}

// storeSiteConfiguration reads the lit site items in viper, normalizes them,
// and stores them in Config.
func (c *Config) storeSiteConfiguration(vcfg *viper.Viper) {
	c.ObjRoot = vcfg.GetString(KeyObjRoot)
	c.BinPath = vcfg.GetString(KeyBinPath)

	// Absent and empty are different: an empty string set by the site is
	// still propagated verbatim.
	if vcfg.IsSet(KeyFileCheckPath) {
		p := vcfg.GetString(KeyFileCheckPath)
		c.FileCheckPath = &p
	}
	if vcfg.IsSet(KeyNotPath) {
		p := vcfg.GetString(KeyNotPath)
		c.NotPath = &p
	}

	c.SourceRoot = sourceRootLookup(vcfg.GetString(KeySourceRoot), vcfg.ConfigFileUsed())

	c.UseLitShell = true
	if vcfg.IsSet(KeyUseLitShell) {
		c.UseLitShell = vcfg.GetBool(KeyUseLitShell)
	} else if v, ok := os.LookupEnv(litInternalShellEnv); ok && v == "0" {
		c.UseLitShell = false
	}
}

// NewConfigFrom will return a runtime.Config based on the stored inputs in
// the provided viper.Viper
func NewConfigFrom(vcfg *viper.Viper) (*Config, error) {
	cfg := Config{}
	cfg.LogFile = vcfg.GetString(KeyLogFile)
	cfg.Artifacts = vcfg.GetString(KeyArtifacts)
	cfg.ResponseFormat = vcfg.GetString(KeyFormat)
	cfg.EmitSiteConfig = vcfg.GetBool(KeyEmitSiteConfig)
	cfg.storeSiteConfiguration(vcfg)
	cfg.Environment = EnvironFrom(os.Environ())

	return &cfg, nil
}

// EnvironFrom converts KEY=VALUE pairs into a map. Later duplicates win.
func EnvironFrom(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	return env
}

// sourceRootLookup resolves the test source root. An explicit value wins,
// otherwise the directory of the loaded site file is used, and failing that
// the current working directory.
func sourceRootLookup(explicit, configFile string) string {
	if explicit != "" {
		return resolveFullPath(explicit)
	}
	if configFile != "" {
		return filepath.Dir(resolveFullPath(configFile))
	}
	cwd, _ := os.Getwd()
	return cwd
}

func resolveFullPath(s string) string {
	if filepath.IsAbs(s) {
		return filepath.Clean(s)
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, s)
}
