package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags at release time
var (
	Version = "dev"
	Commit  = ""
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of scam-ico",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "scam-ico version %s (%s)\n", Version, Commit)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scam-ico version %s\n", Version)
		},
	}
}
