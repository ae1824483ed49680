package lock

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock(t *testing.T) {
	ctx := context.Background()
	cfg := &config.RuntimeConfig{DataDir: filepath.Join(t.TempDir(), ".ico")}

	first := NewFileLock(cfg)
	release, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.DataDir, LockFile))

	_, err = NewFileLock(cfg).Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMigrationInProgress)

	require.NoError(t, release())

	again, err := NewFileLock(cfg).Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, again())
}

func TestFileLockCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLock(&config.RuntimeConfig{DataDir: t.TempDir()}).Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
