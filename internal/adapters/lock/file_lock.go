package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

const LockFile = "migrate.lock"

// FileLock is an advisory file lock held for the duration of a migration
type FileLock struct {
	path string
}

// NewFileLock creates the migration lock for the project's data directory
func NewFileLock(cfg *config.RuntimeConfig) *FileLock {
	return &FileLock{path: filepath.Join(cfg.DataDir, LockFile)}
}

// Acquire takes the lock without waiting
func (l *FileLock) Acquire(ctx context.Context) (func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	fileLock := flock.New(l.path)
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", l.path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock file %s)", domain.ErrMigrationInProgress, l.path)
	}

	return fileLock.Unlock, nil
}

var _ usecase.RunLock = (*FileLock)(nil)
