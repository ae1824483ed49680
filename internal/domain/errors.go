package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrArtifactNotFound is returned when a compiled contract artifact is missing
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrNotDeployed is returned when an artifact has no address for a network
	ErrNotDeployed = errors.New("contract not deployed")

	// ErrNoSigner is returned when an account has no local key and the node will not sign for it
	ErrNoSigner = errors.New("no signing key for account")

	// ErrNotMintable is returned when minting on a network whose WETH is not the mock token
	ErrNotMintable = errors.New("WETH is only mintable on test networks")

	// ErrInvalidAmount is returned when an ether amount can't be parsed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrMigrationInProgress is returned when another migration holds the project lock
	ErrMigrationInProgress = errors.New("another migration is in progress")
)

// UnresolvedAddressError is returned when no WETH address can be determined
// for the active network.
type UnresolvedAddressError struct {
	Network   string
	NetworkID uint64
}

func (e *UnresolvedAddressError) Error() string {
	return fmt.Sprintf("unable to locate WETH9 contract address for network %s", e.Network)
}

// IsUnresolvedAddress reports whether err is (or wraps) an UnresolvedAddressError.
func IsUnresolvedAddress(err error) bool {
	var target *UnresolvedAddressError
	return errors.As(err, &target)
}
