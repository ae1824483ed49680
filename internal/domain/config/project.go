package config

// ProjectConfig represents the ico.toml project file
type ProjectConfig struct {
	Artifacts string                   `toml:"artifacts,omitempty"`
	Networks  map[string]NetworkConfig `toml:"networks"`
	Wallet    WalletConfig             `toml:"wallet"`
	WETH      map[string]string        `toml:"weth"` // chain id -> address overrides
	Contracts ContractNames            `toml:"contracts"`
	Node      NodeConfig               `toml:"node"`
}

// NetworkConfig is a [networks.<name>] section
type NetworkConfig struct {
	RPCURL    string      `toml:"rpc_url"`
	Kind      NetworkKind `toml:"kind,omitempty"`
	ChainID   uint64      `toml:"chain_id,omitempty"`   // skips the eth_chainId lookup when set
	NetworkID uint64      `toml:"network_id,omitempty"` // defaults to the node net_version, or chain_id when that is set
	Explorer  string      `toml:"explorer,omitempty"`
}

// WalletConfig selects where signing accounts come from
type WalletConfig struct {
	PrivateKey     string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Mnemonic       string `toml:"mnemonic,omitempty"`
	Accounts       int    `toml:"accounts,omitempty"`
	DerivationPath string `toml:"derivation_path,omitempty"` // base path, account index is appended
}

// ContractNames maps roles to artifact names
type ContractNames struct {
	ICO      string `toml:"ico,omitempty"`
	WETH     string `toml:"weth,omitempty"`
	MockWETH string `toml:"mock_weth,omitempty"`
	SCM      string `toml:"scm,omitempty"`
}

// NodeConfig configures the local development node
type NodeConfig struct {
	Command string   `toml:"command,omitempty"`
	Port    string   `toml:"port,omitempty"`
	ChainID string   `toml:"chain_id,omitempty"`
	Args    []string `toml:"args,omitempty"`
}

const (
	DefaultArtifactsDir   = "build/contracts"
	DefaultICOContract    = "ScamIco"
	DefaultWETHContract   = "WETH9"
	DefaultMockWETH       = "MockWETH"
	DefaultSCMContract    = "Scam"
	DefaultAccounts       = 3
	DefaultDerivationPath = "m/44'/60'/0'/0"
	DefaultNodeCommand    = "anvil"
	DefaultNodePort       = "7545"

	// DefaultNetwork is used when no network is given and no prompt is
	// possible. A project without it gets one on the local node port.
	DefaultNetwork = "development"

	// DevMnemonic is the well known mnemonic local dev chains fund by default.
	DevMnemonic = "test test test test test test test test test test test junk"
)

// WithDefaults returns the contract names with empty roles filled in
func (c ContractNames) WithDefaults() ContractNames {
	if c.ICO == "" {
		c.ICO = DefaultICOContract
	}
	if c.WETH == "" {
		c.WETH = DefaultWETHContract
	}
	if c.MockWETH == "" {
		c.MockWETH = DefaultMockWETH
	}
	if c.SCM == "" {
		c.SCM = DefaultSCMContract
	}
	return c
}
