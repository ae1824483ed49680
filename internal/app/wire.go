//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/scam-ico/scam-ico/internal/adapters"
	"github.com/scam-ico/scam-ico/internal/config"
	"github.com/scam-ico/scam-ico/internal/logging"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.ProvideNetworkResolver,
		wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewSelectNetwork,
		usecase.NewListNetworks,
		usecase.NewResolveWETH,
		usecase.NewRunMigration,
		usecase.NewListMigrations,
		usecase.NewLoadContext,
		usecase.NewShowBalances,
		usecase.NewDepositWETH,
		usecase.NewMintWETH,
		usecase.NewParticipate,
		usecase.NewManageNode,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil, nil
}
