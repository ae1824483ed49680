package adapters

import (
	"log/slog"

	"github.com/google/wire"
	"github.com/scam-ico/scam-ico/internal/adapters/artifacts"
	"github.com/scam-ico/scam-ico/internal/adapters/blockchain"
	"github.com/scam-ico/scam-ico/internal/adapters/devnode"
	"github.com/scam-ico/scam-ico/internal/adapters/interactive"
	"github.com/scam-ico/scam-ico/internal/adapters/lock"
	"github.com/scam-ico/scam-ico/internal/adapters/progress"
	"github.com/scam-ico/scam-ico/internal/adapters/registry"
	"github.com/scam-ico/scam-ico/internal/adapters/repository/migrations"
	"github.com/scam-ico/scam-ico/internal/adapters/wallet"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// ProvideConnector provides the chain connector and closes its clients on cleanup
func ProvideConnector(log *slog.Logger) (*blockchain.Connector, func()) {
	connector := blockchain.NewConnector(log)
	return connector, connector.Close
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	migrations.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.MigrationRepository), new(*migrations.FileRepository)),

	lock.NewFileLock,
	wire.Bind(new(usecase.RunLock), new(*lock.FileLock)),
)

// RegistrySet provides the WETH registry
var RegistrySet = wire.NewSet(
	registry.NewWETHRegistry,
	wire.Bind(new(usecase.WETHRegistry), new(*registry.WETHRegistry)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	ProvideConnector,
	wire.Bind(new(usecase.ChainConnector), new(*blockchain.Connector)),

	wallet.NewProvider,
	wire.Bind(new(usecase.WalletProvider), new(*wallet.Provider)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),

	progress.NewProgressSink,
)

// NodeSet provides the local development node manager
var NodeSet = wire.NewSet(
	devnode.NewManager,
	wire.Bind(new(usecase.NodeManager), new(*devnode.Manager)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	RegistrySet,
	BlockchainSet,
	InteractiveSet,
	NodeSet,
)
