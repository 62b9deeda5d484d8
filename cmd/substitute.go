package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seekbug-project/seek-bug/lit/engine"
	"github.com/seekbug-project/seek-bug/lit/runtime"
)

// maxLineSize bounds one RUN line read from stdin.
const maxLineSize = 16 << 20

func substituteCommand(vcfg *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "substitute [line...]",
		Short: "Apply the suite's substitutions to RUN lines",
		Long: `This command prints each argument with the SeekBug substitution table applied,
the same way lit expands RUN lines. With no arguments, lines are read from stdin.`,
		Example: fmt.Sprintf("  %s", `seekbug-lit substitute --obj-root build --bin-path build/bin/seek-bug '%seek-bug %s | %FileCheck %s'`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := runtime.NewConfigFrom(vcfg)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			eng, err := engine.NewForConfig(ctx, cfg.ReadOnly())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			if err := eng.Configure(ctx); err != nil {
				return err
			}
			suite := eng.Suite(ctx)
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				for _, line := range args {
					fmt.Fprintln(out, suite.Expand(line))
				}
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
			for scanner.Scan() {
				fmt.Fprintln(out, suite.Expand(scanner.Text()))
			}
			return scanner.Err()
		},
	}
}
