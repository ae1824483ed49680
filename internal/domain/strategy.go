package domain

import (
	"github.com/scam-ico/scam-ico/internal/domain/config"
)

// TokenStrategy is how the WETH dependency of the ICO is obtained
type TokenStrategy string

const (
	// StrategyDeployFresh deploys a new WETH9 contract (development networks)
	StrategyDeployFresh TokenStrategy = "deploy-fresh"
	// StrategyDeployMock deploys the mintable mock token (test networks)
	StrategyDeployMock TokenStrategy = "deploy-mock"
	// StrategyRegistry uses an already published WETH9 deployment
	StrategyRegistry TokenStrategy = "registry"
)

// StrategyFor returns the strategy used on the given network
func StrategyFor(network *config.Network) TokenStrategy {
	switch network.Kind {
	case config.NetworkKindDevelopment:
		return StrategyDeployFresh
	case config.NetworkKindTest:
		return StrategyDeployMock
	default:
		return StrategyRegistry
	}
}

// KindForName infers the network kind from its name when none is configured
func KindForName(name string) config.NetworkKind {
	switch name {
	case "development":
		return config.NetworkKindDevelopment
	case "test":
		return config.NetworkKindTest
	default:
		return config.NetworkKindLive
	}
}

// Mintable reports whether the strategy's token has a mint function. Only
// the mock token does; WETH9 is created by wrapping ether.
func (s TokenStrategy) Mintable() bool {
	return s == StrategyDeployMock
}

// Deploys reports whether the strategy deploys a token contract
func (s TokenStrategy) Deploys() bool {
	return s == StrategyDeployFresh || s == StrategyDeployMock
}
