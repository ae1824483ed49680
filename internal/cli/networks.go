package cli

import (
	"github.com/scam-ico/scam-ico/internal/cli/render"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List networks from ico.toml",
		Long: `List all networks configured in the [networks] section of ico.toml.

Chain ids are fetched from the RPC endpoint unless configured, and for live
networks the published WETH9 address is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
