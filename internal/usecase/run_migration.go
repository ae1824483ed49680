package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
)

// RunMigrationParams contains parameters for a migration run
type RunMigrationParams struct {
	Network *config.Network
}

// RunMigrationResult contains the outcome of a migration run
type RunMigrationResult struct {
	Migration *models.Migration
	WETH      *ResolveWETHResult
	ICO       *models.DeployedContract // nil on dry runs
	DryRun    bool
}

// RunMigration deploys the ICO contract against the network's WETH token
type RunMigration struct {
	config     *config.RuntimeConfig
	resolver   *ResolveWETH
	connector  ChainConnector
	wallets    WalletProvider
	artifacts  ArtifactRepository
	migrations MigrationRepository
	lock       RunLock
	progress   ProgressSink
}

// NewRunMigration creates a new RunMigration use case
func NewRunMigration(
	cfg *config.RuntimeConfig,
	resolver *ResolveWETH,
	connector ChainConnector,
	wallets WalletProvider,
	artifacts ArtifactRepository,
	migrations MigrationRepository,
	lock RunLock,
	progress ProgressSink,
) *RunMigration {
	return &RunMigration{
		config:     cfg,
		resolver:   resolver,
		connector:  connector,
		wallets:    wallets,
		artifacts:  artifacts,
		migrations: migrations,
		lock:       lock,
		progress:   progress,
	}
}

// Run resolves WETH and deploys the ICO exactly once. There are no retries
// and nothing is rolled back, the first error stops the run.
func (uc *RunMigration) Run(ctx context.Context, params RunMigrationParams) (_ *RunMigrationResult, err error) {
	defer func() { finishProgress(ctx, uc.progress, err) }()
	network := params.Network
	dryRun := uc.config.DryRun

	icoName := uc.config.Project.Contracts.ICO
	icoArtifact, err := uc.artifacts.GetArtifact(ctx, icoName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s artifact: %w", icoName, err)
	}

	if dryRun {
		weth, err := uc.resolver.resolve(ctx, network, nil, nil)
		if err != nil {
			return nil, err
		}
		uc.progress.Info(fmt.Sprintf("Dry run: would deploy %s", icoName))
		return &RunMigrationResult{WETH: weth, DryRun: true}, nil
	}

	release, err := uc.lock.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = release() }()

	migration := &models.Migration{
		ID:        uuid.New().String(),
		Network:   network.Name,
		ChainID:   network.ChainID,
		NetworkID: network.ArtifactNetworkID(),
		Strategy:  string(domain.StrategyFor(network)),
		StartedAt: time.Now().UTC(),
	}

	// Registry lookups fail fast, before touching the node
	var weth *ResolveWETHResult
	if !domain.StrategyFor(network).Deploys() {
		if weth, err = uc.resolver.resolve(ctx, network, nil, nil); err != nil {
			return nil, uc.fail(ctx, migration, err)
		}
	}

	client, err := uc.connector.Connect(ctx, network)
	if err != nil {
		return nil, uc.fail(ctx, migration, fmt.Errorf("failed to connect to %s: %w", network.Name, err))
	}

	wallet, err := uc.wallets.Wallet(ctx, network, client)
	if err != nil {
		return nil, uc.fail(ctx, migration, fmt.Errorf("failed to load wallet: %w", err))
	}
	deployer, err := wallet.Deployer()
	if err != nil {
		return nil, uc.fail(ctx, migration, err)
	}
	migration.Deployer = deployer.Address.Hex()

	if weth == nil {
		if weth, err = uc.resolver.resolve(ctx, network, client, deployer); err != nil {
			return nil, uc.fail(ctx, migration, err)
		}
	}
	migration.WETH = models.ContractRecord{
		Name:     weth.Contract,
		Address:  weth.Address.Hex(),
		Deployed: weth.Deployment != nil,
	}
	if weth.Deployment != nil {
		migration.WETH.TransactionHash = weth.Deployment.TransactionHash.Hex()
		if err := uc.artifacts.RecordDeployment(ctx, weth.Contract, network.ArtifactNetworkID(), weth.Address, weth.Deployment.TransactionHash); err != nil {
			return nil, uc.fail(ctx, migration, fmt.Errorf("failed to record %s deployment: %w", weth.Contract, err))
		}
		uc.progress.Info(fmt.Sprintf("Deployed %s at %s", weth.Contract, weth.Address.Hex()))
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploy-ico",
		Message: fmt.Sprintf("Deploying %s", icoName),
		Spinner: true,
	})

	ico, err := client.Deploy(ctx, deployer, icoArtifact, weth.Address)
	if err != nil {
		return nil, uc.fail(ctx, migration, fmt.Errorf("failed to deploy %s: %w", icoName, err))
	}
	migration.ICO = models.ContractRecord{
		Name:            icoName,
		Address:         ico.Address.Hex(),
		TransactionHash: ico.TransactionHash.Hex(),
		Deployed:        true,
	}

	if err := uc.artifacts.RecordDeployment(ctx, icoName, network.ArtifactNetworkID(), ico.Address, ico.TransactionHash); err != nil {
		return nil, uc.fail(ctx, migration, fmt.Errorf("failed to record %s deployment: %w", icoName, err))
	}

	migration.Status = models.MigrationStatusCompleted
	migration.CompletedAt = time.Now().UTC()
	if err := uc.migrations.SaveMigration(ctx, migration); err != nil {
		return nil, fmt.Errorf("failed to save migration: %w", err)
	}

	return &RunMigrationResult{
		Migration: migration,
		WETH:      weth,
		ICO:       ico,
	}, nil
}

// fail records the failed run and returns cause
func (uc *RunMigration) fail(ctx context.Context, migration *models.Migration, cause error) error {
	migration.Status = models.MigrationStatusFailed
	migration.Error = cause.Error()
	migration.CompletedAt = time.Now().UTC()

	if err := uc.migrations.SaveMigration(ctx, migration); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to save migration: %w", err))
	}
	return cause
}
