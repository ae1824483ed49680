package domain

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

// Account is an address the tool can act for. Key is nil for accounts the
// node unlocks itself; those set Managed and are sent with eth_sendTransaction.
type Account struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
	Managed bool
}

// CanSign reports whether transactions can be sent for the account, either
// signed locally or by the node
func (a *Account) CanSign() bool {
	return a != nil && (a.Key != nil || a.Managed)
}

// WalletSource describes where the wallet accounts came from
type WalletSource string

const (
	WalletSourcePrivateKey WalletSource = "private-key"
	WalletSourceMnemonic   WalletSource = "mnemonic"
	WalletSourceNode       WalletSource = "node"
)

// Wallet is an ordered set of accounts, the first one deploys
type Wallet struct {
	Source   WalletSource
	Accounts []*Account
}

// Deployer returns the account used for deployments
func (w *Wallet) Deployer() (*Account, error) {
	if w == nil || len(w.Accounts) == 0 {
		return nil, fmt.Errorf("wallet has no accounts")
	}
	if !w.Accounts[0].CanSign() {
		return nil, fmt.Errorf("%w %s", ErrNoSigner, w.Accounts[0].Address.Hex())
	}
	return w.Accounts[0], nil
}

// ParseEther converts a decimal ether amount such as "1.5" to wei
func ParseEther(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	r, ok := new(big.Rat).SetString(amount)
	if !ok || r.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	r.Mul(r, new(big.Rat).SetInt(big.NewInt(params.Ether)))
	if !r.IsInt() {
		return nil, fmt.Errorf("%w: %q has more than 18 decimals", ErrInvalidAmount, amount)
	}
	return new(big.Int).Set(r.Num()), nil
}

// WeiToEther converts wei to a float ether value for display
func WeiToEther(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Rat).SetFrac(wei, big.NewInt(params.Ether)).Float64()
	return f
}
