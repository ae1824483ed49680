package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the configured networks with the WETH strategy each one uses
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in ico.toml [networks]")
		return nil
	}

	headerStyle.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	t.AppendHeader(table.Row{"Network", "Kind", "Chain ID", "WETH"})
	for _, network := range result.Networks {
		t.AppendRow(table.Row{network.Name, network.Kind, chainIDCell(network), wethCell(network)})
	}
	t.Render()
	return nil
}

func chainIDCell(network usecase.NetworkStatus) string {
	if network.ChainID == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", network.ChainID)
}

func wethCell(network usecase.NetworkStatus) string {
	if network.Error != nil {
		if domain.IsUnresolvedAddress(network.Error) {
			return errorStyle.Sprint("❌ not in registry")
		}
		return errorStyle.Sprintf("❌ %v", network.Error)
	}
	if network.Strategy.Deploys() {
		return highlightStyle.Sprintf("deployed on migrate (%s)", network.Strategy)
	}
	if network.WETH == (common.Address{}) {
		return "-"
	}
	return addressStyle.Sprint(network.WETH.Hex())
}
