package usecase_test

import (
	"context"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/stretchr/testify/mock"
)

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) Names() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) Resolve(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockNetworkSelector is a mock implementation of NetworkSelector
type MockNetworkSelector struct {
	mock.Mock
}

func (m *MockNetworkSelector) SelectNetwork(ctx context.Context, names []string) (string, error) {
	args := m.Called(ctx, names)
	return args.String(0), args.Error(1)
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) RecordDeployment(ctx context.Context, name string, chainID uint64, address common.Address, txHash common.Hash) error {
	args := m.Called(ctx, name, chainID, address, txHash)
	return args.Error(0)
}

// MockWETHRegistry is a mock implementation of WETHRegistry
type MockWETHRegistry struct {
	mock.Mock
}

func (m *MockWETHRegistry) Lookup(chainID uint64) (common.Address, bool) {
	args := m.Called(chainID)
	return args.Get(0).(common.Address), args.Bool(1)
}

// MockChainConnector is a mock implementation of ChainConnector
type MockChainConnector struct {
	mock.Mock
}

func (m *MockChainConnector) Connect(ctx context.Context, network *config.Network) (usecase.ChainClient, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ChainClient), args.Error(1)
}

// MockChainClient is a mock implementation of ChainClient
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) Deploy(ctx context.Context, signer *domain.Account, artifact *models.Artifact, params ...any) (*models.DeployedContract, error) {
	args := m.Called(ctx, signer, artifact, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeployedContract), args.Error(1)
}

func (m *MockChainClient) Call(ctx context.Context, contract *models.Contract, method string, params ...any) ([]any, error) {
	args := m.Called(ctx, contract, method, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func (m *MockChainClient) Transact(ctx context.Context, signer *domain.Account, contract *models.Contract, value *big.Int, method string, params ...any) (*models.TxReceipt, error) {
	args := m.Called(ctx, signer, contract, value, method, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TxReceipt), args.Error(1)
}

func (m *MockChainClient) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainClient) HasCode(ctx context.Context, address common.Address) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *MockChainClient) NodeAccounts(ctx context.Context) ([]common.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]common.Address), args.Error(1)
}

// MockWalletProvider is a mock implementation of WalletProvider
type MockWalletProvider struct {
	mock.Mock
}

func (m *MockWalletProvider) Wallet(ctx context.Context, network *config.Network, client usecase.ChainClient) (*domain.Wallet, error) {
	args := m.Called(ctx, network, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// MockMigrationRepository is a mock implementation of MigrationRepository
type MockMigrationRepository struct {
	mock.Mock
}

func (m *MockMigrationRepository) SaveMigration(ctx context.Context, migration *models.Migration) error {
	args := m.Called(ctx, migration)
	return args.Error(0)
}

func (m *MockMigrationRepository) ListMigrations(ctx context.Context, network string) ([]*models.Migration, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Migration), args.Error(1)
}

// MockRunLock is a mock implementation of RunLock
type MockRunLock struct {
	mock.Mock
	released int
}

func (m *MockRunLock) Acquire(ctx context.Context) (func() error, error) {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() error {
		m.released++
		return nil
	}, nil
}

// MockNodeManager is a mock implementation of NodeManager
type MockNodeManager struct {
	mock.Mock
}

func (m *MockNodeManager) Start(ctx context.Context, instance *domain.NodeInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockNodeManager) Stop(ctx context.Context, instance *domain.NodeInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockNodeManager) GetStatus(ctx context.Context, instance *domain.NodeInstance) (*domain.NodeStatus, error) {
	args := m.Called(ctx, instance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NodeStatus), args.Error(1)
}

func (m *MockNodeManager) StreamLogs(ctx context.Context, instance *domain.NodeInstance, writer io.Writer) error {
	args := m.Called(ctx, instance, writer)
	return args.Error(0)
}

// Fixtures

var (
	wethAddress    = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	icoAddress     = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	scmAddress     = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	mainnetWETH    = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	wethDeployTx   = common.HexToHash("0x01")
	icoDeployTx    = common.HexToHash("0x02")
	developmentNet = &config.Network{Name: "development", Kind: config.NetworkKindDevelopment, ChainID: 1337, RPCURL: "http://localhost:7545"}
	testNet        = &config.Network{Name: "test", Kind: config.NetworkKindTest, ChainID: 31337, RPCURL: "http://localhost:8545"}
	mainnetNet     = &config.Network{Name: "mainnet", Kind: config.NetworkKindLive, ChainID: 1, RPCURL: "https://eth.example"}
	unknownNet     = &config.Network{Name: "bogus", Kind: config.NetworkKindLive, ChainID: 987654, RPCURL: "https://bogus.example"}
	// ganache serves chain id 1337 but answers net_version with 5777
	ganacheNet = &config.Network{Name: "development", Kind: config.NetworkKindDevelopment, ChainID: 1337, NetworkID: 5777, RPCURL: "http://localhost:7545"}
)

func newRuntimeConfig(dryRun bool) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot: "/project",
		DataDir:     "/project/.ico",
		DryRun:      dryRun,
		Project: &config.ProjectConfig{
			Contracts: config.ContractNames{}.WithDefaults(),
			Node: config.NodeConfig{
				Command: config.DefaultNodeCommand,
				Port:    config.DefaultNodePort,
			},
		},
	}
}

func newArtifact(name string) *models.Artifact {
	return &models.Artifact{
		ContractName: name,
		ABI:          []byte(`[]`),
		Bytecode:     models.Bytecode("0x6080"),
	}
}

func newSigner(hexKey string) *domain.Account {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		panic(err)
	}
	return &domain.Account{Address: crypto.PubkeyToAddress(key.PublicKey), Key: key}
}

func newWallet() *domain.Wallet {
	return &domain.Wallet{
		Source: domain.WalletSourceMnemonic,
		Accounts: []*domain.Account{
			newSigner("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"),
			newSigner("59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"),
			{Address: common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")},
		},
	}
}
