package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
)

// ResolveWETHParams contains parameters for resolving the WETH address
type ResolveWETHParams struct {
	Network *config.Network
}

// ResolveWETHResult contains the resolved WETH dependency
type ResolveWETHResult struct {
	Network  *config.Network
	Strategy domain.TokenStrategy
	// Contract is the artifact name of the token, empty for registry lookups
	Contract string
	// Address is zero only for a dry run of a deploying strategy
	Address common.Address
	// Deployment is set when the token was deployed by this run
	Deployment *models.DeployedContract
	DryRun     bool
}

// ResolveWETH determines the WETH address for a network, deploying a
// token first on development and test networks
type ResolveWETH struct {
	config    *config.RuntimeConfig
	connector ChainConnector
	wallets   WalletProvider
	artifacts ArtifactRepository
	registry  WETHRegistry
	progress  ProgressSink
}

// NewResolveWETH creates a new ResolveWETH use case
func NewResolveWETH(
	cfg *config.RuntimeConfig,
	connector ChainConnector,
	wallets WalletProvider,
	artifacts ArtifactRepository,
	registry WETHRegistry,
	progress ProgressSink,
) *ResolveWETH {
	return &ResolveWETH{
		config:    cfg,
		connector: connector,
		wallets:   wallets,
		artifacts: artifacts,
		registry:  registry,
		progress:  progress,
	}
}

// Run resolves the WETH address for the network
func (uc *ResolveWETH) Run(ctx context.Context, params ResolveWETHParams) (_ *ResolveWETHResult, err error) {
	defer func() { finishProgress(ctx, uc.progress, err) }()
	network := params.Network
	strategy := domain.StrategyFor(network)

	// Registry lookups need neither a node nor a wallet
	if !strategy.Deploys() {
		return uc.resolve(ctx, network, nil, nil)
	}

	client, err := uc.connector.Connect(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	var deployer *domain.Account
	if !uc.config.DryRun {
		wallet, err := uc.wallets.Wallet(ctx, network, client)
		if err != nil {
			return nil, fmt.Errorf("failed to load wallet: %w", err)
		}
		if deployer, err = wallet.Deployer(); err != nil {
			return nil, err
		}
	}

	return uc.resolve(ctx, network, client, deployer)
}

// resolve applies the network's strategy. client and deployer are only used
// by deploying strategies.
func (uc *ResolveWETH) resolve(ctx context.Context, network *config.Network, client ChainClient, deployer *domain.Account) (*ResolveWETHResult, error) {
	strategy := domain.StrategyFor(network)
	result := &ResolveWETHResult{
		Network:  network,
		Strategy: strategy,
		DryRun:   uc.config.DryRun,
	}

	switch strategy {
	case domain.StrategyDeployFresh:
		result.Contract = uc.config.Project.Contracts.WETH
	case domain.StrategyDeployMock:
		result.Contract = uc.config.Project.Contracts.MockWETH
	default:
		address, ok := uc.registry.Lookup(network.ArtifactNetworkID())
		if !ok || address == (common.Address{}) {
			return nil, &domain.UnresolvedAddressError{Network: network.Name, NetworkID: network.ArtifactNetworkID()}
		}
		result.Address = address
		uc.progress.Info(fmt.Sprintf("Using published WETH9 at %s", address.Hex()))
		return result, nil
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, result.Contract)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s artifact: %w", result.Contract, err)
	}

	if uc.config.DryRun {
		uc.progress.Info(fmt.Sprintf("Dry run: would deploy %s", result.Contract))
		return result, nil
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploy-weth",
		Message: fmt.Sprintf("Deploying %s", result.Contract),
		Spinner: true,
	})

	deployed, err := client.Deploy(ctx, deployer, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", result.Contract, err)
	}
	if deployed.Address == (common.Address{}) {
		// A deployment that yields no address must never reach the ICO
		return nil, &domain.UnresolvedAddressError{Network: network.Name, NetworkID: network.ArtifactNetworkID()}
	}

	result.Address = deployed.Address
	result.Deployment = deployed
	return result, nil
}
