package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name     string
	Kind     config.NetworkKind
	ChainID  uint64
	Strategy domain.TokenStrategy
	// WETH is the registered token for registry networks
	WETH  common.Address
	Error error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	registry WETHRegistry
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, registry WETHRegistry) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		registry: registry,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.resolver.Names()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{Name: name}

		network, err := uc.resolver.Resolve(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}

		status.Kind = network.Kind
		status.ChainID = network.ChainID
		status.Strategy = domain.StrategyFor(network)

		if status.Strategy == domain.StrategyRegistry {
			address, ok := uc.registry.Lookup(network.ArtifactNetworkID())
			if ok {
				status.WETH = address
			} else {
				status.Error = &domain.UnresolvedAddressError{Network: name, NetworkID: network.ArtifactNetworkID()}
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
