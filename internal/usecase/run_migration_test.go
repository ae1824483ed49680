package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/models"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type migrationFixture struct {
	connector  *MockChainConnector
	client     *MockChainClient
	wallets    *MockWalletProvider
	artifacts  *MockArtifactRepository
	registry   *MockWETHRegistry
	migrations *MockMigrationRepository
	lock       *MockRunLock
	uc         *usecase.RunMigration
}

func newMigrationFixture(dryRun bool) *migrationFixture {
	f := &migrationFixture{
		connector:  new(MockChainConnector),
		client:     new(MockChainClient),
		wallets:    new(MockWalletProvider),
		artifacts:  new(MockArtifactRepository),
		registry:   new(MockWETHRegistry),
		migrations: new(MockMigrationRepository),
		lock:       new(MockRunLock),
	}
	cfg := newRuntimeConfig(dryRun)
	resolver := usecase.NewResolveWETH(cfg, f.connector, f.wallets, f.artifacts, f.registry, usecase.NopProgress{})
	f.uc = usecase.NewRunMigration(cfg, resolver, f.connector, f.wallets, f.artifacts, f.migrations, f.lock, usecase.NopProgress{})
	return f
}

func TestRunMigration(t *testing.T) {
	ctx := context.Background()

	t.Run("development deploys WETH9 then the ICO with its address", func(t *testing.T) {
		f := newMigrationFixture(false)
		wallet := newWallet()
		deployer := wallet.Accounts[0]
		weth9 := newArtifact("WETH9")
		ico := newArtifact("ScamIco")

		f.lock.On("Acquire", ctx).Return(nil)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(ico, nil)
		f.artifacts.On("GetArtifact", ctx, "WETH9").Return(weth9, nil)
		f.connector.On("Connect", ctx, developmentNet).Return(f.client, nil)
		f.wallets.On("Wallet", ctx, developmentNet, f.client).Return(wallet, nil)
		f.client.On("Deploy", ctx, deployer, weth9, []any(nil)).
			Return(&models.DeployedContract{Name: "WETH9", Address: wethAddress, TransactionHash: wethDeployTx}, nil).Once()
		f.client.On("Deploy", ctx, deployer, ico, []any{wethAddress}).
			Return(&models.DeployedContract{Name: "ScamIco", Address: icoAddress, TransactionHash: icoDeployTx}, nil).Once()
		f.artifacts.On("RecordDeployment", ctx, "WETH9", uint64(1337), wethAddress, wethDeployTx).Return(nil).Once()
		f.artifacts.On("RecordDeployment", ctx, "ScamIco", uint64(1337), icoAddress, icoDeployTx).Return(nil).Once()

		var saved *models.Migration
		f.migrations.On("SaveMigration", ctx, mock.AnythingOfType("*models.Migration")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Migration) }).
			Return(nil).Once()

		result, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: developmentNet})
		require.NoError(t, err)

		assert.Equal(t, wethAddress, result.WETH.Address)
		assert.Equal(t, icoAddress, result.ICO.Address)
		f.client.AssertNumberOfCalls(t, "Deploy", 2)
		f.client.AssertExpectations(t)
		f.artifacts.AssertExpectations(t)

		require.NotNil(t, saved)
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, models.MigrationStatusCompleted, saved.Status)
		assert.Equal(t, "development", saved.Network)
		assert.Equal(t, string(domain.StrategyDeployFresh), saved.Strategy)
		assert.Equal(t, deployer.Address.Hex(), saved.Deployer)
		assert.True(t, saved.WETH.Deployed)
		assert.Equal(t, wethAddress.Hex(), saved.WETH.Address)
		assert.Equal(t, icoAddress.Hex(), saved.ICO.Address)
		assert.Equal(t, 1, f.lock.released)
	})

	t.Run("deployments are recorded under the node's net_version", func(t *testing.T) {
		f := newMigrationFixture(false)
		wallet := newWallet()
		deployer := wallet.Accounts[0]
		weth9 := newArtifact("WETH9")
		ico := newArtifact("ScamIco")

		f.lock.On("Acquire", ctx).Return(nil)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(ico, nil)
		f.artifacts.On("GetArtifact", ctx, "WETH9").Return(weth9, nil)
		f.connector.On("Connect", ctx, ganacheNet).Return(f.client, nil)
		f.wallets.On("Wallet", ctx, ganacheNet, f.client).Return(wallet, nil)
		f.client.On("Deploy", ctx, deployer, weth9, []any(nil)).
			Return(&models.DeployedContract{Name: "WETH9", Address: wethAddress, TransactionHash: wethDeployTx}, nil).Once()
		f.client.On("Deploy", ctx, deployer, ico, []any{wethAddress}).
			Return(&models.DeployedContract{Name: "ScamIco", Address: icoAddress, TransactionHash: icoDeployTx}, nil).Once()
		f.artifacts.On("RecordDeployment", ctx, "WETH9", uint64(5777), wethAddress, wethDeployTx).Return(nil).Once()
		f.artifacts.On("RecordDeployment", ctx, "ScamIco", uint64(5777), icoAddress, icoDeployTx).Return(nil).Once()

		var saved *models.Migration
		f.migrations.On("SaveMigration", ctx, mock.AnythingOfType("*models.Migration")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Migration) }).
			Return(nil).Once()

		_, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: ganacheNet})
		require.NoError(t, err)
		f.artifacts.AssertExpectations(t)
		f.artifacts.AssertNotCalled(t, "RecordDeployment", ctx, "ScamIco", uint64(1337), mock.Anything, mock.Anything)

		require.NotNil(t, saved)
		assert.Equal(t, uint64(1337), saved.ChainID)
		assert.Equal(t, uint64(5777), saved.NetworkID)
	})

	t.Run("known live network deploys only the ICO", func(t *testing.T) {
		f := newMigrationFixture(false)
		wallet := newWallet()
		ico := newArtifact("ScamIco")

		f.lock.On("Acquire", ctx).Return(nil)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(ico, nil)
		f.registry.On("Lookup", uint64(1)).Return(mainnetWETH, true)
		f.connector.On("Connect", ctx, mainnetNet).Return(f.client, nil)
		f.wallets.On("Wallet", ctx, mainnetNet, f.client).Return(wallet, nil)
		f.client.On("Deploy", ctx, wallet.Accounts[0], ico, []any{mainnetWETH}).
			Return(&models.DeployedContract{Name: "ScamIco", Address: icoAddress, TransactionHash: icoDeployTx}, nil).Once()
		f.artifacts.On("RecordDeployment", ctx, "ScamIco", uint64(1), icoAddress, icoDeployTx).Return(nil)
		f.migrations.On("SaveMigration", ctx, mock.Anything).Return(nil)

		result, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: mainnetNet})
		require.NoError(t, err)

		assert.Equal(t, mainnetWETH, result.WETH.Address)
		assert.False(t, result.Migration.WETH.Deployed)
		f.client.AssertNumberOfCalls(t, "Deploy", 1)
		f.artifacts.AssertNotCalled(t, "RecordDeployment", ctx, "WETH9", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown live network never deploys the ICO", func(t *testing.T) {
		f := newMigrationFixture(false)

		f.lock.On("Acquire", ctx).Return(nil)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(newArtifact("ScamIco"), nil)
		f.registry.On("Lookup", uint64(987654)).Return(common.Address{}, false)

		var saved *models.Migration
		f.migrations.On("SaveMigration", ctx, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Migration) }).
			Return(nil)

		result, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: unknownNet})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, domain.IsUnresolvedAddress(err))
		assert.Contains(t, err.Error(), "bogus")

		f.connector.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
		f.client.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		require.NotNil(t, saved)
		assert.Equal(t, models.MigrationStatusFailed, saved.Status)
		assert.Contains(t, saved.Error, "unable to locate WETH9")
	})

	t.Run("ICO deployment failure is recorded and propagated", func(t *testing.T) {
		f := newMigrationFixture(false)
		wallet := newWallet()
		weth9 := newArtifact("WETH9")
		ico := newArtifact("ScamIco")
		deployErr := errors.New("execution reverted")

		f.lock.On("Acquire", ctx).Return(nil)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(ico, nil)
		f.artifacts.On("GetArtifact", ctx, "WETH9").Return(weth9, nil)
		f.connector.On("Connect", ctx, developmentNet).Return(f.client, nil)
		f.wallets.On("Wallet", ctx, developmentNet, f.client).Return(wallet, nil)
		f.client.On("Deploy", ctx, wallet.Accounts[0], weth9, []any(nil)).
			Return(&models.DeployedContract{Name: "WETH9", Address: wethAddress, TransactionHash: wethDeployTx}, nil)
		f.client.On("Deploy", ctx, wallet.Accounts[0], ico, []any{wethAddress}).Return(nil, deployErr).Once()
		f.artifacts.On("RecordDeployment", ctx, "WETH9", uint64(1337), wethAddress, wethDeployTx).Return(nil)

		var saved *models.Migration
		f.migrations.On("SaveMigration", ctx, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Migration) }).
			Return(nil)

		_, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: developmentNet})
		require.Error(t, err)
		assert.ErrorIs(t, err, deployErr)

		require.NotNil(t, saved)
		assert.Equal(t, models.MigrationStatusFailed, saved.Status)
		assert.True(t, saved.WETH.Deployed, "the token deployment is kept in the record")
		assert.Empty(t, saved.ICO.Address)
		f.artifacts.AssertNotCalled(t, "RecordDeployment", ctx, "ScamIco", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("held lock stops the run", func(t *testing.T) {
		f := newMigrationFixture(false)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(newArtifact("ScamIco"), nil)
		f.lock.On("Acquire", ctx).Return(domain.ErrMigrationInProgress)

		_, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: developmentNet})
		assert.ErrorIs(t, err, domain.ErrMigrationInProgress)
		f.connector.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
		f.migrations.AssertNotCalled(t, "SaveMigration", mock.Anything, mock.Anything)
	})

	t.Run("missing ICO artifact fails before anything else", func(t *testing.T) {
		f := newMigrationFixture(false)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(nil, domain.ErrArtifactNotFound)

		_, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: developmentNet})
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		f.lock.AssertNotCalled(t, "Acquire", mock.Anything)
	})

	t.Run("save failure is joined with the cause", func(t *testing.T) {
		f := newMigrationFixture(false)
		saveErr := errors.New("disk full")

		f.lock.On("Acquire", ctx).Return(nil)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(newArtifact("ScamIco"), nil)
		f.registry.On("Lookup", uint64(987654)).Return(common.Address{}, false)
		f.migrations.On("SaveMigration", ctx, mock.Anything).Return(saveErr)

		_, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: unknownNet})
		assert.True(t, domain.IsUnresolvedAddress(err))
		assert.ErrorIs(t, err, saveErr)
	})

	t.Run("dry run deploys nothing", func(t *testing.T) {
		f := newMigrationFixture(true)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(newArtifact("ScamIco"), nil)
		f.artifacts.On("GetArtifact", ctx, "WETH9").Return(newArtifact("WETH9"), nil)

		result, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: developmentNet})
		require.NoError(t, err)

		assert.True(t, result.DryRun)
		assert.Nil(t, result.ICO)
		assert.Equal(t, domain.StrategyDeployFresh, result.WETH.Strategy)
		f.lock.AssertNotCalled(t, "Acquire", mock.Anything)
		f.connector.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
		f.migrations.AssertNotCalled(t, "SaveMigration", mock.Anything, mock.Anything)
	})

	t.Run("dry run still fails for unknown live networks", func(t *testing.T) {
		f := newMigrationFixture(true)
		f.artifacts.On("GetArtifact", ctx, "ScamIco").Return(newArtifact("ScamIco"), nil)
		f.registry.On("Lookup", uint64(987654)).Return(common.Address{}, false)

		_, err := f.uc.Run(ctx, usecase.RunMigrationParams{Network: unknownNet})
		assert.True(t, domain.IsUnresolvedAddress(err))
	})
}
