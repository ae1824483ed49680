package app

import (
	"log/slog"

	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	SelectNetwork  *usecase.SelectNetwork
	ListNetworks   *usecase.ListNetworks
	ResolveWETH    *usecase.ResolveWETH
	RunMigration   *usecase.RunMigration
	ListMigrations *usecase.ListMigrations
	ShowBalances   *usecase.ShowBalances
	DepositWETH    *usecase.DepositWETH
	MintWETH       *usecase.MintWETH
	Participate    *usecase.Participate
	ManageNode     *usecase.ManageNode
	ShowConfig     *usecase.ShowConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selectNetwork *usecase.SelectNetwork,
	listNetworks *usecase.ListNetworks,
	resolveWETH *usecase.ResolveWETH,
	runMigration *usecase.RunMigration,
	listMigrations *usecase.ListMigrations,
	showBalances *usecase.ShowBalances,
	depositWETH *usecase.DepositWETH,
	mintWETH *usecase.MintWETH,
	participate *usecase.Participate,
	manageNode *usecase.ManageNode,
	showConfig *usecase.ShowConfig,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		SelectNetwork:  selectNetwork,
		ListNetworks:   listNetworks,
		ResolveWETH:    resolveWETH,
		RunMigration:   runMigration,
		ListMigrations: listMigrations,
		ShowBalances:   showBalances,
		DepositWETH:    depositWETH,
		MintWETH:       mintWETH,
		Participate:    participate,
		ManageNode:     manageNode,
		ShowConfig:     showConfig,
	}, nil
}
