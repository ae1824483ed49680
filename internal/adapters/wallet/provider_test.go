package wallet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anvilKey0 = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	anvilAccount0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	anvilAccount1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

// nodeClient only answers eth_accounts
type nodeClient struct {
	usecase.ChainClient
	accounts []common.Address
	err      error
}

func (c *nodeClient) NodeAccounts(ctx context.Context) ([]common.Address, error) {
	return c.accounts, c.err
}

func newProvider(walletCfg config.WalletConfig) *Provider {
	cfg := &config.RuntimeConfig{Project: &config.ProjectConfig{Wallet: walletCfg}}
	return NewProvider(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var (
	development = &config.Network{Name: "development", Kind: config.NetworkKindDevelopment, ChainID: 1337}
	testnet     = &config.Network{Name: "test", Kind: config.NetworkKindTest, ChainID: 31337}
)

func TestFromMnemonic(t *testing.T) {
	accts, err := FromMnemonic(config.DevMnemonic, config.DefaultDerivationPath, 2)
	require.NoError(t, err)
	require.Len(t, accts, 2)

	assert.Equal(t, anvilAccount0, accts[0].Address)
	assert.Equal(t, anvilAccount1, accts[1].Address)
	assert.True(t, accts[0].CanSign())

	_, err = FromMnemonic("not a real mnemonic", config.DefaultDerivationPath, 1)
	assert.Error(t, err)

	_, err = FromMnemonic(config.DevMnemonic, "m/44'/x", 1)
	assert.Error(t, err)
}

func TestFromPrivateKey(t *testing.T) {
	account, err := FromPrivateKey(anvilKey0)
	require.NoError(t, err)
	assert.Equal(t, anvilAccount0, account.Address)

	account, err = FromPrivateKey(anvilKey0[2:])
	require.NoError(t, err)
	assert.Equal(t, anvilAccount0, account.Address)

	_, err = FromPrivateKey("0x1234")
	assert.Error(t, err)
}

func TestProviderWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("private key wins over mnemonic", func(t *testing.T) {
		p := newProvider(config.WalletConfig{PrivateKey: anvilKey0, Mnemonic: "abandon abandon abandon"})
		wallet, err := p.Wallet(ctx, testnet, &nodeClient{})
		require.NoError(t, err)
		assert.Equal(t, domain.WalletSourcePrivateKey, wallet.Source)
		require.Len(t, wallet.Accounts, 1)

		deployer, err := wallet.Deployer()
		require.NoError(t, err)
		assert.Equal(t, anvilAccount0, deployer.Address)
	})

	t.Run("mnemonic derives configured count", func(t *testing.T) {
		p := newProvider(config.WalletConfig{Mnemonic: config.DevMnemonic, Accounts: 2})
		wallet, err := p.Wallet(ctx, testnet, &nodeClient{})
		require.NoError(t, err)
		assert.Equal(t, domain.WalletSourceMnemonic, wallet.Source)
		require.Len(t, wallet.Accounts, 2)
		assert.Equal(t, anvilAccount1, wallet.Accounts[1].Address)
	})

	t.Run("development prefers the node's unlocked accounts", func(t *testing.T) {
		// ganache starts from a random mnemonic, so only its own accounts hold ether
		ganache := common.HexToAddress("0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1")
		p := newProvider(config.WalletConfig{})
		wallet, err := p.Wallet(ctx, development, &nodeClient{accounts: []common.Address{ganache}})
		require.NoError(t, err)
		assert.Equal(t, domain.WalletSourceNode, wallet.Source)

		deployer, err := wallet.Deployer()
		require.NoError(t, err)
		assert.Equal(t, ganache, deployer.Address)
		assert.True(t, deployer.Managed)
	})

	t.Run("development node error falls back to dev mnemonic", func(t *testing.T) {
		p := newProvider(config.WalletConfig{})
		wallet, err := p.Wallet(ctx, development, &nodeClient{err: errors.New("method not found")})
		require.NoError(t, err)
		assert.Equal(t, domain.WalletSourceMnemonic, wallet.Source)
		assert.Equal(t, anvilAccount0, wallet.Accounts[0].Address)
	})

	t.Run("development falls back to dev mnemonic", func(t *testing.T) {
		p := newProvider(config.WalletConfig{})
		wallet, err := p.Wallet(ctx, development, &nodeClient{})
		require.NoError(t, err)
		assert.Equal(t, domain.WalletSourceMnemonic, wallet.Source)
		assert.Len(t, wallet.Accounts, config.DefaultAccounts)
		assert.Equal(t, anvilAccount0, wallet.Accounts[0].Address)
	})

	t.Run("other networks use node-managed accounts", func(t *testing.T) {
		p := newProvider(config.WalletConfig{Accounts: 1})
		client := &nodeClient{accounts: []common.Address{anvilAccount1, anvilAccount0}}

		wallet, err := p.Wallet(ctx, testnet, client)
		require.NoError(t, err)
		assert.Equal(t, domain.WalletSourceNode, wallet.Source)
		require.Len(t, wallet.Accounts, 1)
		assert.Equal(t, anvilAccount1, wallet.Accounts[0].Address)
		assert.Nil(t, wallet.Accounts[0].Key)
		assert.True(t, wallet.Accounts[0].Managed)
		assert.True(t, wallet.Accounts[0].CanSign())

		deployer, err := wallet.Deployer()
		require.NoError(t, err)
		assert.Equal(t, anvilAccount1, deployer.Address)
	})

	t.Run("node without accounts", func(t *testing.T) {
		p := newProvider(config.WalletConfig{})
		_, err := p.Wallet(ctx, testnet, &nodeClient{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no wallet configured")
	})

	t.Run("node error is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		p := newProvider(config.WalletConfig{})
		_, err := p.Wallet(ctx, testnet, &nodeClient{err: boom})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("invalid private key", func(t *testing.T) {
		p := newProvider(config.WalletConfig{PrivateKey: "0xzz"})
		_, err := p.Wallet(ctx, development, &nodeClient{})
		assert.Error(t, err)
	})
}
