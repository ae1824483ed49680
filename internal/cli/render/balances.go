package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scam-ico/scam-ico/internal/domain/models"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// BalancesRenderer renders the ICO status screen
type BalancesRenderer struct {
	out io.Writer
}

// NewBalancesRenderer creates a new balances renderer
func NewBalancesRenderer(out io.Writer) *BalancesRenderer {
	return &BalancesRenderer{out: out}
}

// Render renders the ICO contracts, the remaining supply and every account's balances
func (r *BalancesRenderer) Render(result *usecase.ShowBalancesResult) error {
	RenderContext(r.out, result.Context)
	fmt.Fprintf(r.out, "  %s %s SCM\n", labelStyle.Sprintf("%-12s", "Remaining:"), highlightStyle.Sprint(FormatTokens(result.Remaining)))
	fmt.Fprintln(r.out)

	if len(result.Balances) == 0 {
		fmt.Fprintln(r.out, "No accounts available")
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{"#", "Account", "ETH", "WETH", "SCM"})
	for i, b := range result.Balances {
		if b.Error != nil {
			t.AppendRow(table.Row{i, b.Account.Hex(), errorStyle.Sprintf("❌ %v", b.Error), "", ""})
			continue
		}
		t.AppendRow(table.Row{i, b.Account.Hex(), FormatEther(b.ETH), FormatTokens(b.WETH), FormatTokens(b.SCM)})
	}
	t.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s\n", labelStyle.Sprintf("Accounts from %s", result.Source))
	return nil
}

// RenderContext prints the contracts of an ICO deployment
func RenderContext(out io.Writer, ico *models.ICOContext) {
	headerStyle.Fprintf(out, "💰 Scam ICO on %s (chain %d)\n", ico.Network, ico.ChainID)
	for _, c := range []*models.Contract{ico.ICO, ico.WETH, ico.SCM} {
		if c == nil {
			continue
		}
		fmt.Fprintf(out, "  %s %s\n", labelStyle.Sprintf("%-12s", c.Name+":"), addressStyle.Sprint(c.Address.Hex()))
	}
}
