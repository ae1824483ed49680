package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// Render renders the resolved project configuration
func (r *ConfigRenderer) Render(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintln(r.out, FormatError("no ico.toml found"))
		return nil
	}

	project := result.Project
	fmt.Fprintln(r.out, "📋 Current config:")
	fmt.Fprintf(r.out, "Artifacts: %s\n", getRelativePath(result.ArtifactsDir))
	fmt.Fprintf(r.out, "Data dir:  %s\n", getRelativePath(result.DataDir))
	fmt.Fprintf(r.out, "Wallet:    %s\n", result.WalletSource)
	fmt.Fprintf(r.out, "Contracts: ico=%s weth=%s mock_weth=%s scm=%s\n",
		project.Contracts.ICO, project.Contracts.WETH, project.Contracts.MockWETH, project.Contracts.SCM)
	fmt.Fprintf(r.out, "Node:      %s on port %s\n", project.Node.Command, project.Node.Port)

	if len(project.Networks) > 0 {
		fmt.Fprintln(r.out)
		t := newTable(r.out)
		t.AppendHeader(table.Row{"Network", "Kind", "RPC URL"})
		names := lo.Keys(project.Networks)
		sort.Strings(names)
		for _, name := range names {
			network := project.Networks[name]
			t.AppendRow(table.Row{name, network.Kind, network.RPCURL})
		}
		t.Render()
	}

	if len(project.WETH) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "WETH overrides:")
		ids := lo.Keys(project.WETH)
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(r.out, "  %-10s %s\n", id, project.WETH[id])
		}
	}

	fmt.Fprintf(r.out, "\n📁 config file: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
