package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// Repository reads and updates build artifacts stored as <dir>/<Name>.json
type Repository struct {
	dir string
	log *slog.Logger
	mu  sync.Mutex
}

// NewRepository creates an artifact repository for the configured artifacts directory
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		dir: cfg.ArtifactsDir,
		log: log.With("component", "artifacts"),
	}
}

func (r *Repository) path(name string) string {
	return filepath.Join(r.dir, name+".json")
}

// GetArtifact loads the artifact of the named contract
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (looked in %s)", domain.ErrArtifactNotFound, name, r.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	if artifact.ContractName == "" {
		artifact.ContractName = name
	}
	artifact.Path = path

	r.log.Debug("loaded artifact", "name", name, "path", path, "networks", len(artifact.Networks))
	return &artifact, nil
}

// RecordDeployment writes the address into the artifact's networks map.
// Fields this tool does not know about, at the top level and inside network
// entries, are written back unchanged.
func (r *Repository) RecordDeployment(ctx context.Context, name string, networkID uint64, address common.Address, txHash common.Hash) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.path(name)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	networks := make(map[string]map[string]json.RawMessage)
	if raw, ok := doc["networks"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &networks); err != nil {
			return fmt.Errorf("artifact %s has malformed networks: %w", path, err)
		}
	}

	key := strconv.FormatUint(networkID, 10)
	entry := networks[key]
	if entry == nil {
		entry = make(map[string]json.RawMessage)
	}
	if entry["address"], err = json.Marshal(address.Hex()); err != nil {
		return err
	}
	if entry["transactionHash"], err = json.Marshal(txHash.Hex()); err != nil {
		return err
	}
	networks[key] = entry

	if doc["networks"], err = json.Marshal(networks); err != nil {
		return err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, out, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	r.log.Debug("recorded deployment", "name", name, "networkId", networkID, "address", address.Hex())
	return nil
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
