package cmd

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seekbug-project/seek-bug/internal/lib"
	"github.com/seekbug-project/seek-bug/internal/version"
	"github.com/seekbug-project/seek-bug/lit/formatters"
	"github.com/seekbug-project/seek-bug/lit/runtime"
)

func configureCommand(vcfg *viper.Viper) *cobra.Command {
	configureCmd := &cobra.Command{
		Use:   "configure",
		Short: "Produce the lit configuration for the SeekBug suite",
		Long: `This command resolves the SeekBug suite configuration from the site inputs,
prints it, and writes it to the artifacts directory. With --emit-site-config it
also writes lit.site.cfg.py into the suite's exec root.`,
		Args: cobra.NoArgs,
		// this fmt.Sprintf is in place to keep spacing consistent with cobras two spaces that's used in: Usage, Flags, etc
		Example: fmt.Sprintf("  %s", "seekbug-lit configure --obj-root build --bin-path build/bin/seek-bug --format text"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return configureRunE(cmd, vcfg)
		},
	}

	configureCmd.Flags().StringP("format", "o", formatters.DefaultFormat,
		fmt.Sprintf("Output format. One of: %s (env: SEEKBUG_FORMAT)", strings.Join(formatters.AllFormats(), ", ")))
	_ = vcfg.BindPFlag(runtime.KeyFormat, configureCmd.Flags().Lookup("format"))

	configureCmd.Flags().Bool("emit-site-config", false, "Write lit.site.cfg.py into the exec root. (env: SEEKBUG_EMIT_SITE_CONFIG)")
	_ = vcfg.BindPFlag(runtime.KeyEmitSiteConfig, configureCmd.Flags().Lookup("emit-site-config"))

	return configureCmd
}

// configureRunE runs the configuration step using the resolved settings.
func configureRunE(cmd *cobra.Command, vcfg *viper.Viper) error {
	log.Info("seekbug-lit version ", version.Version.String())
	ctx := cmd.Context()

	// Render the Viper configuration as a runtime.Config
	cfg, err := runtime.NewConfigFrom(vcfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runner, err := lib.NewConfigureRunner(ctx, cfg, nil)
	if err != nil {
		return err
	}

	// Configure the suite.
	cmd.SilenceUsage = true

	suite, err := lib.ExecuteConfigure(ctx, cmd.OutOrStdout(), runner)
	if err != nil {
		return err
	}

	log.Infof("SeekBug suite configured with %d substitutions; tests run in %s", len(suite.Substitutions), suite.ExecRoot)

	return nil
}
