package usecase

import (
	"context"
	"fmt"

	"github.com/scam-ico/scam-ico/internal/domain/config"
)

// SelectNetworkParams contains parameters for choosing the active network
type SelectNetworkParams struct {
	Name string
}

// SelectNetwork resolves the network a command operates on
type SelectNetwork struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	selector NetworkSelector
}

// NewSelectNetwork creates a new SelectNetwork use case
func NewSelectNetwork(cfg *config.RuntimeConfig, resolver NetworkResolver, selector NetworkSelector) *SelectNetwork {
	return &SelectNetwork{
		config:   cfg,
		resolver: resolver,
		selector: selector,
	}
}

// Run picks the named network, prompting for one when no name is given
func (uc *SelectNetwork) Run(ctx context.Context, params SelectNetworkParams) (*config.Network, error) {
	name := params.Name
	if name == "" {
		name = uc.config.NetworkName
	}

	if name == "" {
		names := uc.resolver.Names()
		switch {
		case len(names) == 0:
			return nil, fmt.Errorf("no networks configured, add a [networks.<name>] section to ico.toml")
		case len(names) == 1:
			name = names[0]
		case uc.config.NonInteractive:
			name = config.DefaultNetwork
		default:
			selected, err := uc.selector.SelectNetwork(ctx, names)
			if err != nil {
				return nil, fmt.Errorf("network selection failed: %w", err)
			}
			name = selected
		}
	}

	network, err := uc.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", name, err)
	}
	return network, nil
}
