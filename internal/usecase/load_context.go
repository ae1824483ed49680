package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
)

// LoadContextParams contains parameters for loading the ICO contracts
type LoadContextParams struct {
	Network *config.Network
	// ICOAddress overrides the address recorded in the ICO artifact
	ICOAddress string
}

// LoadContextResult contains the bound contracts and the client used
type LoadContextResult struct {
	Context *models.ICOContext
	Client  ChainClient
}

// LoadContext binds the deployed ICO and the token contracts it points to
type LoadContext struct {
	config    *config.RuntimeConfig
	connector ChainConnector
	artifacts ArtifactRepository
}

// NewLoadContext creates a new LoadContext use case
func NewLoadContext(cfg *config.RuntimeConfig, connector ChainConnector, artifacts ArtifactRepository) *LoadContext {
	return &LoadContext{
		config:    cfg,
		connector: connector,
		artifacts: artifacts,
	}
}

// Run executes the use case
func (uc *LoadContext) Run(ctx context.Context, params LoadContextParams) (*LoadContextResult, error) {
	network := params.Network
	names := uc.config.Project.Contracts

	client, err := uc.connector.Connect(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	icoArtifact, err := uc.artifacts.GetArtifact(ctx, names.ICO)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s artifact: %w", names.ICO, err)
	}

	var icoAddress common.Address
	if params.ICOAddress != "" {
		if !common.IsHexAddress(params.ICOAddress) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, params.ICOAddress)
		}
		icoAddress = common.HexToAddress(params.ICOAddress)
	} else {
		address, ok := icoArtifact.AddressOn(network.ArtifactNetworkID())
		if !ok {
			return nil, fmt.Errorf("%s %w on network %s (network id %d), run migrate first",
				names.ICO, domain.ErrNotDeployed, network.Name, network.ArtifactNetworkID())
		}
		icoAddress = address
	}

	hasCode, err := client.HasCode(ctx, icoAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s code: %w", names.ICO, err)
	}
	if !hasCode {
		return nil, fmt.Errorf("no contract code at %s address %s on network %s", names.ICO, icoAddress.Hex(), network.Name)
	}

	ico, err := bindContract(icoArtifact, icoAddress)
	if err != nil {
		return nil, err
	}

	// Only the mock token can mint, so bind its ABI where it was deployed
	wethName := names.WETH
	if network.Kind == config.NetworkKindTest {
		wethName = names.MockWETH
	}

	weth, err := uc.bindFromGetter(ctx, client, ico, "weth", wethName)
	if err != nil {
		return nil, err
	}
	scm, err := uc.bindFromGetter(ctx, client, ico, "scm", names.SCM)
	if err != nil {
		return nil, err
	}

	return &LoadContextResult{
		Context: &models.ICOContext{
			Network: network.Name,
			ChainID: network.ChainID,
			ICO:     ico,
			WETH:    weth,
			SCM:     scm,
		},
		Client: client,
	}, nil
}

// bindFromGetter binds artifact name at the address returned by the ICO getter
func (uc *LoadContext) bindFromGetter(ctx context.Context, client ChainClient, ico *models.Contract, getter, name string) (*models.Contract, error) {
	out, err := client.Call(ctx, ico, getter)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s.%s(): %w", ico.Name, getter, err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unexpected output from %s.%s()", ico.Name, getter)
	}
	address, ok := out[0].(common.Address)
	if !ok || address == (common.Address{}) {
		return nil, fmt.Errorf("%s.%s() returned no address", ico.Name, getter)
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s artifact: %w", name, err)
	}
	return bindContract(artifact, address)
}

func bindContract(artifact *models.Artifact, address common.Address) (*models.Contract, error) {
	parsed, err := artifact.ParsedABI()
	if err != nil {
		return nil, err
	}
	return &models.Contract{
		Name:    artifact.ContractName,
		Address: address,
		ABI:     parsed,
	}, nil
}
