package cli

import (
	"github.com/scam-ico/scam-ico/internal/cli/render"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Deploy the ICO contract",
		Long: `Resolve the WETH token for the network, then deploy the ICO contract with the
token address as its only constructor argument.

  development  deploys a fresh WETH9
  test         deploys the mintable MockWETH
  other        uses the published WETH9 for the chain id

Deployed addresses are written back into the build artifacts and the run is
recorded in .ico/migrations.json.`,
		Example: `  scam-ico migrate --network development
  scam-ico migrate -n mainnet --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network, err := selectNetwork(cmd, app)
			if err != nil {
				return err
			}

			result, err := app.RunMigration.Run(cmd.Context(), usecase.RunMigrationParams{Network: network})
			if err != nil {
				return err
			}

			return render.NewMigrationRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Resolve WETH and show the plan without deploying")

	return cmd
}
