package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
)

// TokenActionParams contains parameters shared by the token transactions
type TokenActionParams struct {
	Network    *config.Network
	ICOAddress string
	// Account is the index of the wallet account that signs
	Account int
	Amount  *big.Int
}

// TokenActionResult contains the transactions a token action sent
type TokenActionResult struct {
	Context  *models.ICOContext
	Account  *domain.Account
	Amount   *big.Int
	Receipts []*models.TxReceipt
}

// tokenSession is the state every token action starts from
type tokenSession struct {
	ico    *models.ICOContext
	client ChainClient
	signer *domain.Account
}

// openTokenSession loads the ICO context and selects the signing account
func openTokenSession(ctx context.Context, loader *LoadContext, wallets WalletProvider, params TokenActionParams) (*tokenSession, error) {
	if params.Amount == nil || params.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}

	loaded, err := loader.Run(ctx, LoadContextParams{
		Network:    params.Network,
		ICOAddress: params.ICOAddress,
	})
	if err != nil {
		return nil, err
	}

	wallet, err := wallets.Wallet(ctx, params.Network, loaded.Client)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if params.Account < 0 || params.Account >= len(wallet.Accounts) {
		return nil, fmt.Errorf("account index %d out of range (wallet has %d accounts)", params.Account, len(wallet.Accounts))
	}
	signer := wallet.Accounts[params.Account]
	if !signer.CanSign() {
		return nil, fmt.Errorf("%w %s", domain.ErrNoSigner, signer.Address.Hex())
	}

	return &tokenSession{
		ico:    loaded.Context,
		client: loaded.Client,
		signer: signer,
	}, nil
}

func (s *tokenSession) result(amount *big.Int, receipts ...*models.TxReceipt) *TokenActionResult {
	return &TokenActionResult{
		Context:  s.ico,
		Account:  s.signer,
		Amount:   amount,
		Receipts: receipts,
	}
}

// DepositWETH wraps ETH into WETH for a wallet account
type DepositWETH struct {
	loader   *LoadContext
	wallets  WalletProvider
	progress ProgressSink
}

// NewDepositWETH creates a new DepositWETH use case
func NewDepositWETH(loader *LoadContext, wallets WalletProvider, progress ProgressSink) *DepositWETH {
	return &DepositWETH{
		loader:   loader,
		wallets:  wallets,
		progress: progress,
	}
}

// Run executes the use case
func (uc *DepositWETH) Run(ctx context.Context, params TokenActionParams) (_ *TokenActionResult, err error) {
	defer func() { finishProgress(ctx, uc.progress, err) }()
	session, err := openTokenSession(ctx, uc.loader, uc.wallets, params)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deposit",
		Message: fmt.Sprintf("Depositing into %s", session.ico.WETH.Name),
		Spinner: true,
	})
	receipt, err := session.client.Transact(ctx, session.signer, session.ico.WETH, params.Amount, "deposit")
	if err != nil {
		return nil, fmt.Errorf("deposit failed: %w", err)
	}

	return session.result(params.Amount, receipt), nil
}

// MintWETH mints mock WETH for a wallet account
type MintWETH struct {
	loader   *LoadContext
	wallets  WalletProvider
	progress ProgressSink
}

// NewMintWETH creates a new MintWETH use case
func NewMintWETH(loader *LoadContext, wallets WalletProvider, progress ProgressSink) *MintWETH {
	return &MintWETH{
		loader:   loader,
		wallets:  wallets,
		progress: progress,
	}
}

// Run executes the use case
func (uc *MintWETH) Run(ctx context.Context, params TokenActionParams) (_ *TokenActionResult, err error) {
	defer func() { finishProgress(ctx, uc.progress, err) }()
	if !domain.StrategyFor(params.Network).Mintable() {
		return nil, fmt.Errorf("minting WETH on %s: %w", params.Network.Name, domain.ErrNotMintable)
	}

	session, err := openTokenSession(ctx, uc.loader, uc.wallets, params)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "mint",
		Message: fmt.Sprintf("Minting %s", session.ico.WETH.Name),
		Spinner: true,
	})
	receipt, err := session.client.Transact(ctx, session.signer, session.ico.WETH, nil, "mint", session.signer.Address, params.Amount)
	if err != nil {
		return nil, fmt.Errorf("mint failed: %w", err)
	}

	return session.result(params.Amount, receipt), nil
}

// Participate buys SCM by paying WETH to the ICO
type Participate struct {
	loader   *LoadContext
	wallets  WalletProvider
	progress ProgressSink
}

// NewParticipate creates a new Participate use case
func NewParticipate(loader *LoadContext, wallets WalletProvider, progress ProgressSink) *Participate {
	return &Participate{
		loader:   loader,
		wallets:  wallets,
		progress: progress,
	}
}

// Run approves the ICO for the amount and then participates with it
func (uc *Participate) Run(ctx context.Context, params TokenActionParams) (_ *TokenActionResult, err error) {
	defer func() { finishProgress(ctx, uc.progress, err) }()
	session, err := openTokenSession(ctx, uc.loader, uc.wallets, params)
	if err != nil {
		return nil, err
	}
	ico := session.ico

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "approve",
		Message: fmt.Sprintf("Approving %s to spend %s", ico.ICO.Name, ico.WETH.Name),
		Spinner: true,
	})
	approval, err := session.client.Transact(ctx, session.signer, ico.WETH, nil, "approve", ico.ICO.Address, params.Amount)
	if err != nil {
		return nil, fmt.Errorf("approve failed: %w", err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "participate",
		Message: fmt.Sprintf("Participating in %s", ico.ICO.Name),
		Spinner: true,
	})
	participation, err := session.client.Transact(ctx, session.signer, ico.ICO, nil, "participate", params.Amount)
	if err != nil {
		return nil, fmt.Errorf("participate failed: %w", err)
	}

	return session.result(params.Amount, approval, participation), nil
}
