package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/scam-ico/scam-ico/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Project      *config.ProjectConfig
	ConfigPath   string
	Exists       bool
	ArtifactsDir string
	DataDir      string
	// WalletSource names the configured credential without revealing it
	WalletSource string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{
		config: cfg,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	path := filepath.Join(uc.config.ProjectRoot, "ico.toml")
	_, err := os.Stat(path)

	wallet := uc.config.Project.Wallet
	source := "node accounts"
	switch {
	case wallet.PrivateKey != "":
		source = "private key"
	case wallet.Mnemonic != "":
		source = "mnemonic"
	}

	return &ShowConfigResult{
		Project:      uc.config.Project,
		ConfigPath:   path,
		Exists:       err == nil,
		ArtifactsDir: uc.config.ArtifactsDir,
		DataDir:      uc.config.DataDir,
		WalletSource: source,
	}, nil
}
