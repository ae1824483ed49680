package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
)

// ShowBalancesParams contains parameters for showing balances
type ShowBalancesParams struct {
	Network    *config.Network
	ICOAddress string
}

// ShowBalancesResult contains the balances of every wallet account
type ShowBalancesResult struct {
	Context  *models.ICOContext
	Source   domain.WalletSource
	Balances []*models.AccountBalances
	// Remaining is the amount of SCM the ICO still holds
	Remaining *big.Int
}

// ShowBalances reads ETH, WETH and SCM balances for the wallet accounts
type ShowBalances struct {
	loader  *LoadContext
	wallets WalletProvider
}

// NewShowBalances creates a new ShowBalances use case
func NewShowBalances(loader *LoadContext, wallets WalletProvider) *ShowBalances {
	return &ShowBalances{
		loader:  loader,
		wallets: wallets,
	}
}

// Run executes the use case
func (uc *ShowBalances) Run(ctx context.Context, params ShowBalancesParams) (*ShowBalancesResult, error) {
	loaded, err := uc.loader.Run(ctx, LoadContextParams{
		Network:    params.Network,
		ICOAddress: params.ICOAddress,
	})
	if err != nil {
		return nil, err
	}
	ico := loaded.Context
	client := loaded.Client

	wallet, err := uc.wallets.Wallet(ctx, params.Network, client)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	remaining, err := tokenBalance(ctx, client, ico.SCM, ico.ICO.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to read remaining tokens: %w", err)
	}

	balances := make([]*models.AccountBalances, 0, len(wallet.Accounts))
	for _, account := range wallet.Accounts {
		balances = append(balances, accountBalances(ctx, client, ico, account.Address))
	}

	return &ShowBalancesResult{
		Context:   ico,
		Source:    wallet.Source,
		Balances:  balances,
		Remaining: remaining,
	}, nil
}

// accountBalances never fails, a read error is stored on the entry
func accountBalances(ctx context.Context, client ChainClient, ico *models.ICOContext, account common.Address) *models.AccountBalances {
	entry := &models.AccountBalances{Account: account}

	eth, err := client.BalanceAt(ctx, account)
	if err != nil {
		entry.Error = fmt.Errorf("ETH balance: %w", err)
		return entry
	}
	entry.ETH = eth

	if entry.WETH, err = tokenBalance(ctx, client, ico.WETH, account); err != nil {
		entry.Error = fmt.Errorf("WETH balance: %w", err)
		return entry
	}
	if entry.SCM, err = tokenBalance(ctx, client, ico.SCM, account); err != nil {
		entry.Error = fmt.Errorf("SCM balance: %w", err)
		return entry
	}
	return entry
}

func tokenBalance(ctx context.Context, client ChainClient, token *models.Contract, owner common.Address) (*big.Int, error) {
	out, err := client.Call(ctx, token, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected output from %s.balanceOf", token.Name)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T from %s.balanceOf", out[0], token.Name)
	}
	return balance, nil
}
