package render

import "github.com/scam-ico/scam-ico/internal/usecase"

// Renderer writes a use case result to the terminal
type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[*usecase.ListNetworksResult]   = (*NetworksRenderer)(nil)
	_ Renderer[*usecase.RunMigrationResult]   = (*MigrationRenderer)(nil)
	_ Renderer[*usecase.ListMigrationsResult] = (*HistoryRenderer)(nil)
	_ Renderer[*usecase.ShowBalancesResult]   = (*BalancesRenderer)(nil)
	_ Renderer[*usecase.TokenActionResult]    = (*TokenActionRenderer)(nil)
	_ Renderer[*usecase.ManageNodeResult]     = (*NodeRenderer)(nil)
	_ Renderer[*usecase.ShowConfigResult]     = (*ConfigRenderer)(nil)
)
