package migrations

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

const MigrationsFile = "migrations.json"

// FileRepository stores migration records in a json file under the data directory
type FileRepository struct {
	dataDir    string
	mu         sync.RWMutex
	migrations map[string]*models.Migration
}

// NewFileRepository creates a repository rooted at dataDir, loading existing records
func NewFileRepository(dataDir string) (*FileRepository, error) {
	r := &FileRepository{
		dataDir:    dataDir,
		migrations: make(map[string]*models.Migration),
	}

	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return r, nil
}

// NewFileRepositoryFromConfig creates a repository for the project's data directory
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DataDir)
}

func (r *FileRepository) path() string {
	return filepath.Join(r.dataDir, MigrationsFile)
}

func (r *FileRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var records []*models.Migration
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%s is corrupt: %w", r.path(), err)
	}
	for _, m := range records {
		r.migrations[m.ID] = m
	}
	return nil
}

// save writes all records, oldest first, through a temp file and rename
func (r *FileRepository) save() error {
	if err := os.MkdirAll(r.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	records := r.sorted()
	slices.Reverse(records)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := r.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, r.path())
}

// sorted returns the records newest first
func (r *FileRepository) sorted() []*models.Migration {
	records := lo.Values(r.migrations)
	slices.SortFunc(records, func(a, b *models.Migration) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return records
}

// SaveMigration inserts or replaces a record
func (r *FileRepository) SaveMigration(ctx context.Context, migration *models.Migration) error {
	if migration.ID == "" {
		return fmt.Errorf("migration has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.migrations[migration.ID] = migration
	return r.save()
}

// ListMigrations returns records newest first, filtered by network when set
func (r *FileRepository) ListMigrations(ctx context.Context, network string) ([]*models.Migration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.sorted()
	if network == "" {
		return records, nil
	}
	return lo.Filter(records, func(m *models.Migration, _ int) bool {
		return m.Network == network
	}), nil
}

var _ usecase.MigrationRepository = (*FileRepository)(nil)
