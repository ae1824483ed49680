package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	"github.com/cosmos/go-bip39"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// Provider builds wallets from the [wallet] section of the project file
type Provider struct {
	wallet config.WalletConfig
	log    *slog.Logger
}

// NewProvider creates a wallet provider
func NewProvider(cfg *config.RuntimeConfig, log *slog.Logger) *Provider {
	var walletCfg config.WalletConfig
	if cfg.Project != nil {
		walletCfg = cfg.Project.Wallet
	}
	return &Provider{
		wallet: walletCfg,
		log:    log.With("component", "wallet"),
	}
}

// Wallet returns the accounts usable on network. A private key wins over a
// mnemonic. Without either, the node's unlocked accounts are used and the node
// signs for them. Development nodes that expose none fall back to the local
// dev mnemonic.
func (p *Provider) Wallet(ctx context.Context, network *config.Network, client usecase.ChainClient) (*domain.Wallet, error) {
	count := p.wallet.Accounts
	if count <= 0 {
		count = config.DefaultAccounts
	}
	path := p.wallet.DerivationPath
	if path == "" {
		path = config.DefaultDerivationPath
	}

	if key := strings.TrimSpace(p.wallet.PrivateKey); key != "" {
		account, err := FromPrivateKey(key)
		if err != nil {
			return nil, err
		}
		p.log.Debug("using private key wallet", "address", account.Address.Hex())
		return &domain.Wallet{Source: domain.WalletSourcePrivateKey, Accounts: []*domain.Account{account}}, nil
	}

	if mnemonic := strings.TrimSpace(p.wallet.Mnemonic); mnemonic != "" {
		return p.mnemonicWallet(mnemonic, path, count)
	}

	addresses, err := client.NodeAccounts(ctx)
	development := network.Kind == config.NetworkKindDevelopment
	switch {
	case err != nil && !development:
		return nil, fmt.Errorf("failed to list node accounts: %w", err)
	case len(addresses) == 0 && development:
		if err != nil {
			p.log.Debug("node accounts unavailable", "error", err)
		}
		return p.mnemonicWallet(config.DevMnemonic, path, count)
	case len(addresses) == 0:
		return nil, fmt.Errorf("no wallet configured and %s exposes no accounts", network.Name)
	}
	if len(addresses) > count {
		addresses = addresses[:count]
	}

	p.log.Debug("using node-managed wallet", "accounts", len(addresses))
	wallet := &domain.Wallet{Source: domain.WalletSourceNode}
	for _, address := range addresses {
		wallet.Accounts = append(wallet.Accounts, &domain.Account{Address: address, Managed: true})
	}
	return wallet, nil
}

func (p *Provider) mnemonicWallet(mnemonic, path string, count int) (*domain.Wallet, error) {
	accts, err := FromMnemonic(mnemonic, path, count)
	if err != nil {
		return nil, err
	}
	p.log.Debug("using mnemonic wallet", "accounts", len(accts), "path", path)
	return &domain.Wallet{Source: domain.WalletSourceMnemonic, Accounts: accts}, nil
}

// FromPrivateKey parses a hex private key, with or without 0x prefix
func FromPrivateKey(hexKey string) (*domain.Account, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &domain.Account{Address: crypto.PubkeyToAddress(key.PublicKey), Key: key}, nil
}

// FromMnemonic derives count accounts at basePath/0 .. basePath/count-1
func FromMnemonic(mnemonic, basePath string, count int) ([]*domain.Account, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to derive master key: %w", err)
	}

	result := make([]*domain.Account, 0, count)
	for i := 0; i < count; i++ {
		path, err := accounts.ParseDerivationPath(fmt.Sprintf("%s/%d", strings.TrimSuffix(basePath, "/"), i))
		if err != nil {
			return nil, fmt.Errorf("invalid derivation path %q: %w", basePath, err)
		}

		key := master
		for _, n := range path {
			if key, err = key.Child(n); err != nil {
				return nil, fmt.Errorf("failed to derive %s: %w", path, err)
			}
		}

		priv, err := key.ECPrivKey()
		if err != nil {
			return nil, err
		}
		ecdsaKey, err := crypto.ToECDSA(priv.Serialize())
		if err != nil {
			return nil, err
		}
		result = append(result, &domain.Account{
			Address: crypto.PubkeyToAddress(ecdsaKey.PublicKey),
			Key:     ecdsaKey,
		})
	}
	return result, nil
}

var _ usecase.WalletProvider = (*Provider)(nil)
