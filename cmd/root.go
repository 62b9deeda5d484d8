// Package cmd implements the seekbug-lit command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/seekbug-project/seek-bug/internal/lib"
	"github.com/seekbug-project/seek-bug/internal/version"
	"github.com/seekbug-project/seek-bug/lit/runtime"
)

const (
	envPrefix             = "seekbug"
	defaultSiteConfigName = "lit.site"
	defaultLogFile        = "seekbug-lit.log"
	defaultLogLevel       = "info"
)

// NewCommand returns the seekbug-lit root command. Configuration is read
// from its own viper instance, so separate commands do not share state.
func NewCommand(ctx context.Context) *cobra.Command {
	vcfg := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "seekbug-lit",
		Short: "Configure the SeekBug lit test suite",
		Long: `seekbug-lit produces the lit configuration for the SeekBug test suite: the
substitution table applied to RUN lines, the test suffixes, the excluded
directories and the environment passed to test commands.`,
		Version:       version.Version.String(),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(vcfg, cfgFile); err != nil {
				return err
			}
			return initLogging(cmd, vcfg)
		},
	}
	rootCmd.SetContext(ctx)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Site configuration file (default: ./lit.site.{yaml,json,toml})")

	flags.String("logfile", defaultLogFile, "Where the execution logfile will be written. (env: SEEKBUG_LOGFILE)")
	_ = vcfg.BindPFlag(runtime.KeyLogFile, flags.Lookup("logfile"))

	flags.String("loglevel", defaultLogLevel, "The verbosity of the logfile. (env: SEEKBUG_LOGLEVEL)")
	_ = vcfg.BindPFlag("loglevel", flags.Lookup("loglevel"))

	flags.String("artifacts", "", "Where check-specific artifacts will be written. (env: SEEKBUG_ARTIFACTS)")
	_ = vcfg.BindPFlag(runtime.KeyArtifacts, flags.Lookup("artifacts"))

	flags.String("obj-root", "", "Root of the SeekBug build tree. (env: SEEKBUG_OBJ_ROOT)")
	_ = vcfg.BindPFlag(runtime.KeyObjRoot, flags.Lookup("obj-root"))

	flags.String("bin-path", "", "Path to the seek-bug binary under test. (env: SEEKBUG_BIN_PATH)")
	_ = vcfg.BindPFlag(runtime.KeyBinPath, flags.Lookup("bin-path"))

	flags.String("filecheck-path", "", "Path to FileCheck. Defaults to FileCheck on PATH. (env: SEEKBUG_FILECHECK_PATH)")
	_ = vcfg.BindPFlag(runtime.KeyFileCheckPath, flags.Lookup("filecheck-path"))

	flags.String("not-path", "", "Path to not. Defaults to not on PATH. (env: SEEKBUG_NOT_PATH)")
	_ = vcfg.BindPFlag(runtime.KeyNotPath, flags.Lookup("not-path"))

	flags.String("source-root", "", "Directory holding lit.cfg.py. Defaults to the site file's directory. (env: SEEKBUG_SOURCE_ROOT)")
	_ = vcfg.BindPFlag(runtime.KeySourceRoot, flags.Lookup("source-root"))

	flags.Bool("use-lit-shell", true, "Run RUN lines with lit's internal shell. (env: SEEKBUG_USE_LIT_SHELL)")
	_ = vcfg.BindPFlag(runtime.KeyUseLitShell, flags.Lookup("use-lit-shell"))

	rootCmd.AddCommand(configureCommand(vcfg))
	rootCmd.AddCommand(substituteCommand(vcfg))
	rootCmd.AddCommand(versionCommand())
	rootCmd.SetGlobalNormalizationFunc(litAttributeNames)

	return rootCmd
}

// litAttributeNames lets flags be spelled like the lit attributes they set,
// so --seekbug_bin_path and --bin-path are the same flag.
func litAttributeNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.TrimPrefix(name, "seekbug-")
	return pflag.NormalizedName(name)
}

// initConfig wires environment variables and the site file into vcfg.
func initConfig(vcfg *viper.Viper, cfgFile string) error {
	vcfg.SetEnvPrefix(envPrefix)
	vcfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vcfg.AutomaticEnv()

	// The lit attribute names already carry the project prefix.
	_ = vcfg.BindEnv(runtime.KeyObjRoot, "SEEKBUG_OBJ_ROOT")
	_ = vcfg.BindEnv(runtime.KeyBinPath, "SEEKBUG_BIN_PATH")

	if cfgFile != "" {
		vcfg.SetConfigFile(cfgFile)
	} else {
		vcfg.SetConfigName(defaultSiteConfigName)
		vcfg.AddConfigPath(".")
	}

	if err := vcfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("could not read site configuration: %w", err)
	}

	return nil
}

// initLogging sends the standard logger to stderr and the logfile, and
// stores a logr bridge in the command context for library packages.
func initLogging(cmd *cobra.Command, vcfg *viper.Viper) error {
	level, err := log.ParseLevel(vcfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var out io.Writer = cmd.ErrOrStderr()
	if logFile := vcfg.GetString(runtime.KeyLogFile); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("could not open logfile: %w", err)
		}
		cobra.OnFinalize(func() { f.Close() })
		out = io.MultiWriter(out, f)
	}

	l := log.StandardLogger()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})

	ctx := lib.SetCallerToCLI(lib.ContextWithLogrus(cmd.Context(), l))
	cmd.SetContext(ctx)
	return nil
}
