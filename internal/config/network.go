package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/sethvargo/go-retry"
)

// NodeIDs are the ids a node reports: eth_chainId and net_version
type NodeIDs struct {
	ChainID   uint64 `json:"chainId"`
	NetworkID uint64 `json:"networkId"`
}

// NodeIDFetcher returns the ids served at an RPC URL
type NodeIDFetcher func(ctx context.Context, rpcURL string) (NodeIDs, error)

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	dataDir string
	project *config.ProjectConfig
	cache   *NetworkCache
	fetch   NodeIDFetcher
	mu      sync.RWMutex
}

// NetworkCache caches node id lookups
type NetworkCache struct {
	Networks  map[string]NodeIDs `json:"networks"` // name -> ids
	RPCs      map[string]NodeIDs `json:"rpcs"`     // rpcURL -> ids
	UpdatedAt time.Time          `json:"updatedAt"`
}

const chainIDCacheFile = "chain-ids.json"

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(dataDir string, project *config.ProjectConfig) *NetworkResolver {
	r := &NetworkResolver{
		dataDir: dataDir,
		project: project,
		fetch:   fetchNodeIDs,
	}

	r.loadCache()

	return r
}

// WithFetcher replaces the node id lookup, used by tests
func (r *NetworkResolver) WithFetcher(fetch NodeIDFetcher) *NetworkResolver {
	r.fetch = fetch
	return r
}

// Names returns the configured network names, sorted
func (r *NetworkResolver) Names() []string {
	names := lo.Keys(r.project.Networks)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	netCfg, exists := r.project.Networks[networkName]
	if !exists {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", networkName, ProjectFile)
	}
	if netCfg.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url (is its environment variable set?)", networkName)
	}

	ids := NodeIDs{ChainID: netCfg.ChainID, NetworkID: netCfg.NetworkID}
	if ids.ChainID != 0 && ids.NetworkID == 0 {
		// Public chains use the chain id as their network id
		ids.NetworkID = ids.ChainID
	}
	if ids.ChainID == 0 {
		r.mu.RLock()
		cached, ok := r.cache.Networks[networkName]
		if ok && r.cache.RPCs[netCfg.RPCURL] != cached {
			// RPC URL changed since the lookup was cached
			ok = false
		}
		r.mu.RUnlock()

		if !ok {
			fetched, err := r.fetch(ctx, netCfg.RPCURL)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
			}
			cached = fetched
			r.updateCache(networkName, netCfg.RPCURL, cached)
		}
		ids.ChainID = cached.ChainID
		if ids.NetworkID == 0 {
			ids.NetworkID = cached.NetworkID
		}
	}
	chainID := ids.ChainID

	explorer := netCfg.Explorer
	if explorer == "" {
		explorer = explorerURL(chainID)
	}

	return &config.Network{
		Name:        networkName,
		Kind:        netCfg.Kind,
		ChainID:     chainID,
		NetworkID:   ids.NetworkID,
		RPCURL:      netCfg.RPCURL,
		ExplorerURL: explorer,
	}, nil
}

// fetchNodeIDs asks the node for its chain id and net_version, retrying
// briefly since a local development node may still be starting up
func fetchNodeIDs(ctx context.Context, rpcURL string) (NodeIDs, error) {
	var ids NodeIDs
	backoff := retry.WithMaxRetries(3, retry.NewConstant(500*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := ethclient.DialContext(dialCtx, rpcURL)
		if err != nil {
			return fmt.Errorf("failed to connect to RPC: %w", err)
		}
		defer client.Close()

		id, err := client.ChainID(dialCtx)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to get chain ID: %w", err))
		}
		ids.ChainID = id.Uint64()

		// Providers without net_version are keyed by chain id
		ids.NetworkID = ids.ChainID
		if netID, err := client.NetworkID(dialCtx); err == nil && netID.Sign() > 0 {
			ids.NetworkID = netID.Uint64()
		}
		return nil
	})
	return ids, err
}

// explorerURL returns a default block explorer for well known chains
func explorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 3:
		return "https://ropsten.etherscan.io"
	case 4:
		return "https://rinkeby.etherscan.io"
	case 5:
		return "https://goerli.etherscan.io"
	case 42:
		return "https://kovan.etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 100:
		return "https://gnosisscan.io"
	default:
		return ""
	}
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = &NetworkCache{
		Networks:  make(map[string]NodeIDs),
		RPCs:      make(map[string]NodeIDs),
		UpdatedAt: time.Now(),
	}

	data, err := os.ReadFile(filepath.Join(r.dataDir, chainIDCacheFile))
	if err != nil {
		// Cache doesn't exist yet, that's fine
		return
	}

	var cache NetworkCache
	if err := json.Unmarshal(data, &cache); err != nil || cache.Networks == nil || cache.RPCs == nil {
		return
	}
	r.cache = &cache
}

// updateCache records the ids fetched for a network
func (r *NetworkResolver) updateCache(networkName, rpcURL string, ids NodeIDs) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = ids
	r.cache.RPCs[rpcURL] = ids
	r.cache.UpdatedAt = time.Now()

	// Save errors are ignored, the cache is just for performance
	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(r.dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(r.dataDir, chainIDCacheFile), data, 0644)
}
