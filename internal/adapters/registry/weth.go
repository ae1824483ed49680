package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

//go:embed weth.json
var canonicalWETH []byte

// WETHRegistry maps network ids to published WETH9 deployments. Entries from
// the project's [weth] table take precedence over the built-in list.
type WETHRegistry struct {
	addresses map[uint64]common.Address
}

// NewWETHRegistry builds the registry from the built-in list and project overrides
func NewWETHRegistry(cfg *config.RuntimeConfig) (*WETHRegistry, error) {
	var overrides map[string]string
	if cfg.Project != nil {
		overrides = cfg.Project.WETH
	}
	return newWETHRegistry(canonicalWETH, overrides)
}

func newWETHRegistry(builtin []byte, overrides map[string]string) (*WETHRegistry, error) {
	var canonical map[string]string
	if err := json.Unmarshal(builtin, &canonical); err != nil {
		return nil, fmt.Errorf("failed to parse built-in WETH registry: %w", err)
	}

	r := &WETHRegistry{addresses: make(map[uint64]common.Address)}
	for _, entries := range []map[string]string{canonical, overrides} {
		for key, address := range entries {
			networkID, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid network id %q in WETH registry", key)
			}
			if !common.IsHexAddress(address) {
				return nil, fmt.Errorf("invalid WETH address %q for network id %d", address, networkID)
			}
			r.addresses[networkID] = common.HexToAddress(address)
		}
	}
	return r, nil
}

// Lookup returns the WETH9 address published on the network id
func (r *WETHRegistry) Lookup(networkID uint64) (common.Address, bool) {
	address, ok := r.addresses[networkID]
	return address, ok
}

var _ usecase.WETHRegistry = (*WETHRegistry)(nil)
