package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seekbug-project/seek-bug/internal/version"
)

// versionResponse is the --json output: the build identity plus its
// parsed semantic version.
type versionResponse struct {
	version.VersionContext
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

// versionCommand prints the version information for this project.
// This version output is the same as what the root command's version string
// prints, but provides flags to mutate that output.
func versionCommand() *cobra.Command {
	var asJSON bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return versionRunE(cmd, version.Version, asJSON)
		},
	}

	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print the version as JSON")

	return versionCmd
}

// versionRunE refuses to print a build identity that is not a semantic
// version.
func versionRunE(cmd *cobra.Command, vc version.VersionContext, asJSON bool) error {
	sv, err := vc.Semver()
	if err != nil {
		return err
	}

	if !asJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", vc.Name, vc.String())
		return nil
	}

	b, err := json.Marshal(versionResponse{
		VersionContext: vc,
		Major:          sv.Major,
		Minor:          sv.Minor,
		Patch:          sv.Patch,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
