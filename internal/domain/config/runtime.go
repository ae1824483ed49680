package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string
	ArtifactsDir string

	// Context settings
	NetworkName string // empty if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Quiet          bool // no progress output
	Timeout        time.Duration
	LogLevel       string
	LogFile        string

	// Command-specific settings (only populated for relevant commands)
	DryRun bool

	// Resolved configurations
	Project *ProjectConfig
}

// NetworkKind selects how the WETH dependency is obtained on a network
type NetworkKind string

const (
	NetworkKindDevelopment NetworkKind = "development"
	NetworkKindTest        NetworkKind = "test"
	NetworkKindLive        NetworkKind = "live"
)

// Valid reports whether k is one of the known kinds
func (k NetworkKind) Valid() bool {
	switch k {
	case NetworkKindDevelopment, NetworkKindTest, NetworkKindLive:
		return true
	}
	return false
}

// Network represents network configuration
type Network struct {
	ChainID     uint64      `json:"chainId"`
	NetworkID   uint64      `json:"networkId,omitempty"`
	Name        string      `json:"name"`
	Kind        NetworkKind `json:"kind"`
	RPCURL      string      `json:"rpcUrl"`
	ExplorerURL string      `json:"explorerUrl,omitempty"`
}

// ArtifactNetworkID is the id artifact networks entries and the WETH
// registry are keyed by: the node's net_version, or the chain id when the
// network id is unknown. Ganache serves chain id 1337 with net_version 5777.
func (n *Network) ArtifactNetworkID() uint64 {
	if n.NetworkID != 0 {
		return n.NetworkID
	}
	return n.ChainID
}
