package render

import (
	"fmt"
	"io"

	"github.com/scam-ico/scam-ico/internal/usecase"
)

// TokenActionRenderer renders the result of deposit, mint and participate
type TokenActionRenderer struct {
	out  io.Writer
	verb string
}

// NewTokenActionRenderer creates a renderer; verb describes the action, e.g. "Deposited"
func NewTokenActionRenderer(out io.Writer, verb string) *TokenActionRenderer {
	return &TokenActionRenderer{out: out, verb: verb}
}

// Render renders the amount, the account and every transaction sent
func (r *TokenActionRenderer) Render(result *usecase.TokenActionResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s %s WETH", r.verb, FormatTokens(result.Amount))))
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-12s", "Account:"), addressStyle.Sprint(result.Account.Address.Hex()))
	for _, receipt := range result.Receipts {
		fmt.Fprintf(r.out, "  %s %s %s\n",
			labelStyle.Sprintf("%-12s", "Tx:"),
			receipt.Hash.Hex(),
			labelStyle.Sprintf("(block %d, gas %d)", receipt.BlockNumber, receipt.GasUsed))
	}
	return nil
}
