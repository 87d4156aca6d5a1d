package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/extsort/version"
)

// NewVersionCmd creates and returns the version subcommand, the long form
// of --version.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version, commit and build date",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion(cmd.OutOrStdout(), "extsort")
		},
	}
}
