package render

import (
	"fmt"
	"io"

	"github.com/scam-ico/scam-ico/internal/usecase"
)

// MigrationRenderer renders migration and WETH resolution results
type MigrationRenderer struct {
	out io.Writer
}

// NewMigrationRenderer creates a new migration renderer
func NewMigrationRenderer(out io.Writer) *MigrationRenderer {
	return &MigrationRenderer{out: out}
}

// Render renders the outcome of a migration run
func (r *MigrationRenderer) Render(result *usecase.RunMigrationResult) error {
	if err := r.RenderWETH(result.WETH); err != nil {
		return err
	}

	if result.DryRun {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning("Dry run, nothing was deployed"))
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s", result.ICO.Name)))
	r.field("Address", addressStyle.Sprint(result.ICO.Address.Hex()))
	r.field("Transaction", result.ICO.TransactionHash.Hex())
	if result.ICO.BlockNumber > 0 {
		r.field("Block", fmt.Sprintf("%d", result.ICO.BlockNumber))
	}
	if result.Migration != nil {
		r.field("Deployer", result.Migration.Deployer)
		r.field("Migration", result.Migration.ID)
	}
	if explorer := result.WETH.Network.ExplorerURL; explorer != "" {
		r.field("Explorer", fmt.Sprintf("%s/address/%s", explorer, result.ICO.Address.Hex()))
	}
	return nil
}

// RenderWETH renders how the WETH dependency was resolved
func (r *MigrationRenderer) RenderWETH(result *usecase.ResolveWETHResult) error {
	network := result.Network
	headerStyle.Fprintf(r.out, "⛓  %s (chain %d, %s)\n", network.Name, network.ChainID, network.Kind)
	r.field("Strategy", Title(string(result.Strategy)))

	switch {
	case result.Deployment != nil:
		r.field("WETH", fmt.Sprintf("%s %s", addressStyle.Sprint(result.Address.Hex()), labelStyle.Sprintf("(new %s)", result.Contract)))
		r.field("WETH tx", result.Deployment.TransactionHash.Hex())
	case result.DryRun && result.Strategy.Deploys():
		r.field("WETH", highlightStyle.Sprintf("would deploy %s", result.Contract))
	default:
		r.field("WETH", addressStyle.Sprint(result.Address.Hex()))
	}
	return nil
}

func (r *MigrationRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-12s", label+":"), value)
}
