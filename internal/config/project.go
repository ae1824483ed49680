package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "ico.toml"

// LoadProject loads .env files and parses ico.toml from the project root.
// A missing ico.toml yields a project with only defaults applied, which
// includes a development network on the local node port.
func LoadProject(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	project := &config.ProjectConfig{}
	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, project); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := normalizeProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

// loadEnvFiles loads .env and .env.local without overriding the environment
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

func normalizeProject(project *config.ProjectConfig) error {
	if project.Artifacts == "" {
		project.Artifacts = config.DefaultArtifactsDir
	}
	if project.Networks == nil {
		project.Networks = make(map[string]config.NetworkConfig)
	}
	if project.Node.Command == "" {
		project.Node.Command = config.DefaultNodeCommand
	}
	if project.Node.Port == "" {
		project.Node.Port = config.DefaultNodePort
	}
	if _, ok := project.Networks[config.DefaultNetwork]; !ok {
		project.Networks[config.DefaultNetwork] = config.NetworkConfig{
			RPCURL: "http://localhost:" + project.Node.Port,
			Kind:   config.NetworkKindDevelopment,
		}
	}
	if project.WETH == nil {
		project.WETH = make(map[string]string)
	}
	project.Contracts = project.Contracts.WithDefaults()

	for name, network := range project.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.Explorer = os.ExpandEnv(network.Explorer)
		if network.Kind == "" {
			network.Kind = domain.KindForName(name)
		}
		if !network.Kind.Valid() {
			return fmt.Errorf("network %s: unknown kind %q (want development, test or live)", name, network.Kind)
		}
		project.Networks[name] = network
	}

	// Unset variables expand to the empty string, which means "not configured"
	project.Wallet.PrivateKey = os.ExpandEnv(project.Wallet.PrivateKey)
	project.Wallet.Mnemonic = strings.TrimSpace(os.ExpandEnv(project.Wallet.Mnemonic))
	if project.Wallet.Accounts <= 0 {
		project.Wallet.Accounts = config.DefaultAccounts
	}
	if project.Wallet.DerivationPath == "" {
		project.Wallet.DerivationPath = config.DefaultDerivationPath
	}

	for chainID, address := range project.WETH {
		address = os.ExpandEnv(address)
		if !common.IsHexAddress(address) {
			return fmt.Errorf("weth override for network id %s: %w %q", chainID, domain.ErrInvalidAddress, address)
		}
		project.WETH[chainID] = address
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find ico.toml.
// Without one, the current directory is the root and defaults apply.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}
