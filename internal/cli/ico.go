package cli

import (
	"context"
	"fmt"

	"github.com/scam-ico/scam-ico/internal/app"
	"github.com/scam-ico/scam-ico/internal/cli/render"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/cobra"
)

// icoFlags are shared by the commands that talk to a deployed ICO
type icoFlags struct {
	ico     string
	account int
}

func addICOFlags(cmd *cobra.Command, flags *icoFlags, withAccount bool) {
	cmd.Flags().StringVar(&flags.ico, "ico", "", "ICO contract address (defaults to the address recorded in the artifact)")
	if withAccount {
		cmd.Flags().IntVarP(&flags.account, "account", "a", 0, "Index of the wallet account that signs")
	}
}

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	flags := &icoFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the ICO contracts and account balances",
		Long:  `Show the deployed ICO, its WETH and SCM tokens, the SCM still held by the ICO and the ETH, WETH and SCM balances of every wallet account.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network, err := selectNetwork(cmd, app)
			if err != nil {
				return err
			}

			result, err := app.ShowBalances.Run(cmd.Context(), usecase.ShowBalancesParams{
				Network:    network,
				ICOAddress: flags.ico,
			})
			if err != nil {
				return err
			}

			return render.NewBalancesRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	addICOFlags(cmd, flags, false)
	return cmd
}

// NewWETHCmd creates the weth command with subcommands
func NewWETHCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weth",
		Short: "Work with the ICO's WETH token",
	}

	cmd.AddCommand(newWETHResolveCmd())
	cmd.AddCommand(newTokenActionCmd("deposit", "Wrap ETH into WETH", "Deposited",
		`Wrap ETH by calling deposit() on the WETH token with the amount as value.`,
		func(a *app.App) tokenAction { return a.DepositWETH }))
	cmd.AddCommand(newTokenActionCmd("mint", "Mint mock WETH (test networks only)", "Minted",
		`Mint "magic" WETH for the account. Only the MockWETH token deployed on test
networks supports this. Development and live networks use WETH9, which is
refused.`,
		func(a *app.App) tokenAction { return a.MintWETH }))

	return cmd
}

// NewParticipateCmd creates the participate command
func NewParticipateCmd() *cobra.Command {
	cmd := newTokenActionCmd("participate", "Buy SCM with WETH", "Spent",
		`Approve the ICO to spend the WETH amount, then call participate() on the ICO.`,
		func(a *app.App) tokenAction { return a.Participate })
	return cmd
}

// tokenAction is a use case that sends token transactions for one account
type tokenAction interface {
	Run(ctx context.Context, params usecase.TokenActionParams) (*usecase.TokenActionResult, error)
}

func newTokenActionCmd(use, short, verb, long string, action func(*app.App) tokenAction) *cobra.Command {
	flags := &icoFlags{}

	cmd := &cobra.Command{
		Use:     use + " <amount>",
		Short:   short,
		Long:    long,
		Example: fmt.Sprintf("  scam-ico %s 1.5 --account 1", use),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := domain.ParseEther(args[0])
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network, err := selectNetwork(cmd, app)
			if err != nil {
				return err
			}

			result, err := action(app).Run(cmd.Context(), usecase.TokenActionParams{
				Network:    network,
				ICOAddress: flags.ico,
				Account:    flags.account,
				Amount:     amount,
			})
			if err != nil {
				return err
			}

			return render.NewTokenActionRenderer(cmd.OutOrStdout(), verb).Render(result)
		},
	}

	addICOFlags(cmd, flags, true)
	return cmd
}

func newWETHResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which WETH the ICO would be deployed against",
		Long: `Resolve the WETH address for the network without deploying the ICO. On
development and test networks this deploys the token (use --dry-run to only
show the plan).`,
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

			result, err := app.ResolveWETH.Run(cmd.Context(), usecase.ResolveWETHParams{Network: network})
			if err != nil {
				return err
			}

			return render.NewMigrationRenderer(cmd.OutOrStdout()).RenderWETH(result)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show the plan without deploying")
	return cmd
}
