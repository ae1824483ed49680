package cli

import (
	"github.com/scam-ico/scam-ico/internal/cli/render"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNodeCmd creates the node command with subcommands
func NewNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage the local development node",
		Long: `Manage the local development node configured under [node] in ico.toml.
The node backs the "development" network.`,
	}

	cmd.AddCommand(newNodeOpCmd("start", "Start the development node", `Start the development node in the background. Fails if it is already running.`))
	cmd.AddCommand(newNodeOpCmd("stop", "Stop the development node", `Stop the development node if it is running.`))
	cmd.AddCommand(newNodeOpCmd("restart", "Restart the development node", `Stop and start the development node. Chain state is lost.`))
	cmd.AddCommand(newNodeOpCmd("status", "Show development node status", `Show whether the node is running and answering RPC requests.`))

	logs := newNodeOpCmd("logs", "Follow the development node log", `Print the node log and follow it until interrupted.`)
	logs.Annotations = map[string]string{annotationNoTimeout: "true"}
	cmd.AddCommand(logs)

	return cmd
}

// nodeFlags holds common flags for node commands
type nodeFlags struct {
	port string
}

func newNodeOpCmd(operation, short, long string) *cobra.Command {
	flags := &nodeFlags{}

	cmd := &cobra.Command{
		Use:   operation,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNodeCommand(cmd, operation, flags)
		},
	}

	cmd.Flags().StringVar(&flags.port, "port", "", "RPC port (defaults to [node] port)")
	return cmd
}

// runNodeCommand executes a node management operation
func runNodeCommand(cmd *cobra.Command, operation string, flags *nodeFlags) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ManageNode.Run(cmd.Context(), usecase.ManageNodeParams{
		Operation: operation,
		Port:      flags.port,
	})
	if err != nil {
		return err
	}

	renderer := render.NewNodeRenderer(cmd.OutOrStdout())
	if operation == "logs" {
		if err := renderer.RenderLogsHeader(result); err != nil {
			return err
		}
		return app.ManageNode.StreamLogs(cmd.Context(), result.Instance, cmd.OutOrStdout())
	}

	return renderer.Render(result)
}
