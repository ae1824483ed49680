package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/scam-ico/scam-ico/internal/app"
	"github.com/scam-ico/scam-ico/internal/config"
	domainconfig "github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// Command annotations read before the app is initialised
	annotationNoTimeout = "no-timeout"
	annotationQuiet     = "quiet"
)

// Execute runs the root command and releases the app's resources afterwards
func Execute(ctx context.Context) error {
	rootCmd, cleanup := newRootCmd()
	defer cleanup()
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

func newRootCmd() (*cobra.Command, func()) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	rootCmd := &cobra.Command{
		Use:   "scam-ico",
		Short: "Deploy and operate the Scam ICO contracts",
		Long: `scam-ico migrates the Scam ICO contract system to an EVM network and lets
you interact with the deployed ICO.

On development networks a fresh WETH9 is deployed, test networks get a
mintable MockWETH, and any other network uses its published WETH9.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			if _, ok := cmd.Annotations[annotationQuiet]; ok {
				v.Set("quiet", true)
			}

			appInstance, appCleanup, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			cleanups = append(cleanups, appCleanup)

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			_, noTimeout := cmd.Annotations[annotationNoTimeout]
			if timeout := appInstance.Config.Timeout; timeout > 0 && !noTimeout {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				cleanups = append(cleanups, cancel)
			}

			appInstance.Log.Debug("running command", "command", cmd.CommandPath(), "project", appInstance.Config.ProjectRoot)
			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from ico.toml [networks] (prompted when omitted)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().Duration("timeout", 5*time.Minute, "Timeout for the whole command (0 disables)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "ico",
		Title: "ICO Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{NewMigrateCmd(), NewNetworksCmd(), NewHistoryCmd()} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewStatusCmd(), NewWETHCmd(), NewParticipateCmd(), NewDashboardCmd()} {
		c.GroupID = "ico"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewNodeCmd(), NewConfigCmd()} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd, cleanup
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// selectNetwork resolves the --network flag, prompting when it is missing
func selectNetwork(cmd *cobra.Command, a *app.App) (*domainconfig.Network, error) {
	return a.SelectNetwork.Run(cmd.Context(), usecase.SelectNetworkParams{})
}
