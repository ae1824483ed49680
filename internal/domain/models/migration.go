package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MigrationStatus represents the outcome of a migration run
type MigrationStatus string

const (
	MigrationStatusCompleted MigrationStatus = "COMPLETED"
	MigrationStatusFailed    MigrationStatus = "FAILED"
)

// Migration is the persisted record of one migration run
type Migration struct {
	ID          string          `json:"id" yaml:"id"`
	Network     string          `json:"network" yaml:"network"`
	ChainID     uint64          `json:"chainId" yaml:"chainId"`
	NetworkID   uint64          `json:"networkId,omitempty" yaml:"networkId,omitempty"`
	Strategy    string          `json:"strategy" yaml:"strategy"`
	Status      MigrationStatus `json:"status" yaml:"status"`
	Deployer    string          `json:"deployer" yaml:"deployer"`
	WETH        ContractRecord  `json:"weth" yaml:"weth"`
	ICO         ContractRecord  `json:"ico" yaml:"ico"`
	Error       string          `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt   time.Time       `json:"startedAt" yaml:"startedAt"`
	CompletedAt time.Time       `json:"completedAt" yaml:"completedAt"`
}

// ContractRecord is a contract used or created by a migration
type ContractRecord struct {
	Name            string `json:"name" yaml:"name"`
	Address         string `json:"address" yaml:"address"`
	TransactionHash string `json:"transactionHash,omitempty" yaml:"transactionHash,omitempty"`
	Deployed        bool   `json:"deployed" yaml:"deployed"`
}

// Duration returns how long the run took
func (m *Migration) Duration() time.Duration {
	if m.CompletedAt.IsZero() {
		return 0
	}
	return m.CompletedAt.Sub(m.StartedAt)
}

// AccountBalances are the token balances of one account
type AccountBalances struct {
	Account common.Address
	ETH     *big.Int
	WETH    *big.Int
	SCM     *big.Int
	Error   error
}

// ICOContext is the set of contracts the client interacts with
type ICOContext struct {
	Network string
	ChainID uint64
	ICO     *Contract
	WETH    *Contract
	SCM     *Contract
}
