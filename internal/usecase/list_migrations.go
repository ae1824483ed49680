package usecase

import (
	"context"
	"fmt"

	"github.com/scam-ico/scam-ico/internal/domain/models"
)

// ListMigrationsParams contains parameters for listing migrations
type ListMigrationsParams struct {
	Network string // empty lists all networks
	Limit   int    // zero means no limit
}

// ListMigrationsResult contains recorded migrations, newest first
type ListMigrationsResult struct {
	Migrations []*models.Migration
}

// ListMigrations is a use case for showing the migration history
type ListMigrations struct {
	repo MigrationRepository
}

// NewListMigrations creates a new ListMigrations use case
func NewListMigrations(repo MigrationRepository) *ListMigrations {
	return &ListMigrations{repo: repo}
}

// Run executes the use case
func (uc *ListMigrations) Run(ctx context.Context, params ListMigrationsParams) (*ListMigrationsResult, error) {
	migrations, err := uc.repo.ListMigrations(ctx, params.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	if params.Limit > 0 && len(migrations) > params.Limit {
		migrations = migrations[:params.Limit]
	}

	return &ListMigrationsResult{Migrations: migrations}, nil
}
