package usecase

import (
	"context"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
)

// NetworkResolver resolves configured network names
type NetworkResolver interface {
	Names() []string
	Resolve(ctx context.Context, name string) (*config.Network, error)
}

// NetworkSelector handles interactive selection of a network
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, names []string) (string, error)
}

// ArtifactRepository provides access to compiled contract artifacts
type ArtifactRepository interface {
	// GetArtifact returns domain.ErrArtifactNotFound when no artifact exists
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	// RecordDeployment stores the deployed address under the artifact's networks entry
	RecordDeployment(ctx context.Context, name string, networkID uint64, address common.Address, txHash common.Hash) error
}

// WETHRegistry looks up published WETH9 deployments by network id
type WETHRegistry interface {
	Lookup(networkID uint64) (common.Address, bool)
}

// ChainConnector opens clients for networks
type ChainConnector interface {
	Connect(ctx context.Context, network *config.Network) (ChainClient, error)
}

// ChainClient talks to the node of one network
type ChainClient interface {
	// Deploy creates the artifact's contract and waits for it to be mined
	Deploy(ctx context.Context, signer *domain.Account, artifact *models.Artifact, args ...any) (*models.DeployedContract, error)
	// Call performs a read-only contract call
	Call(ctx context.Context, contract *models.Contract, method string, args ...any) ([]any, error)
	// Transact sends a contract transaction and waits for it to be mined
	Transact(ctx context.Context, signer *domain.Account, contract *models.Contract, value *big.Int, method string, args ...any) (*models.TxReceipt, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	HasCode(ctx context.Context, address common.Address) (bool, error)
	// NodeAccounts returns the accounts managed by the node (eth_accounts)
	NodeAccounts(ctx context.Context) ([]common.Address, error)
}

// WalletProvider builds the wallet used on a network
type WalletProvider interface {
	Wallet(ctx context.Context, network *config.Network, client ChainClient) (*domain.Wallet, error)
}

// MigrationRepository persists migration records
type MigrationRepository interface {
	SaveMigration(ctx context.Context, migration *models.Migration) error
	// ListMigrations returns records newest first, all networks when network is empty
	ListMigrations(ctx context.Context, network string) ([]*models.Migration, error)
}

// RunLock serialises migrations within a project
type RunLock interface {
	// Acquire returns domain.ErrMigrationInProgress when the lock is held elsewhere
	Acquire(ctx context.Context) (release func() error, err error)
}

// NodeManager manages local development node processes
type NodeManager interface {
	Start(ctx context.Context, instance *domain.NodeInstance) error
	Stop(ctx context.Context, instance *domain.NodeInstance) error
	GetStatus(ctx context.Context, instance *domain.NodeInstance) (*domain.NodeStatus, error)
	StreamLogs(ctx context.Context, instance *domain.NodeInstance, writer io.Writer) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// finishProgress closes the running stage once a use case returns
func finishProgress(ctx context.Context, sink ProgressSink, err error) {
	if err != nil {
		sink.Error("")
		return
	}
	sink.OnProgress(ctx, ProgressEvent{Stage: "done"})
}
