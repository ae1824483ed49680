package cli

import (
	"github.com/scam-ico/scam-ico/internal/cli/render"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var (
		limit  int
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded migrations",
		Long:  `Show the migrations recorded in .ico/migrations.json, newest first. Use --network to filter.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListMigrations.Run(cmd.Context(), usecase.ListMigrationsParams{
				Network: app.Config.NetworkName,
				Limit:   limit,
			})
			if err != nil {
				return err
			}

			return render.NewHistoryRenderer(cmd.OutOrStdout(), asYAML).Render(result)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many migrations")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")

	return cmd
}
