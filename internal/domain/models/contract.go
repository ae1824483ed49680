package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact represents a compiled contract artifact as written by the build tool
type Artifact struct {
	ContractName string                     `json:"contractName"`
	ABI          json.RawMessage            `json:"abi"`
	Bytecode     Bytecode                   `json:"bytecode"`
	Networks     map[string]ArtifactNetwork `json:"networks,omitempty"`

	// Path of the artifact file, not persisted
	Path string `json:"-"`
}

// ArtifactNetwork is the deployment record of an artifact on one network id
type ArtifactNetwork struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// Bytecode holds creation bytecode. Both the plain hex string form and the
// {"object": "0x..."} form are accepted.
type Bytecode string

// UnmarshalJSON implements json.Unmarshaler
func (b *Bytecode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*b = Bytecode(obj.Object)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = Bytecode(s)
	return nil
}

// Bytes decodes the hex bytecode
func (b Bytecode) Bytes() ([]byte, error) {
	s := string(b)
	if s == "" || s == "0x" {
		return nil, fmt.Errorf("empty bytecode")
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	if strings.Contains(s, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	return hexutil.Decode(s)
}

// ParsedABI parses the artifact ABI
func (a *Artifact) ParsedABI() (*abi.ABI, error) {
	if len(a.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no ABI", a.ContractName)
	}
	parsed, err := abi.JSON(bytes.NewReader(a.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", a.ContractName, err)
	}
	return &parsed, nil
}

// AddressOn returns the recorded address for a network id
func (a *Artifact) AddressOn(networkID uint64) (common.Address, bool) {
	entry, ok := a.Networks[strconv.FormatUint(networkID, 10)]
	if !ok || !common.IsHexAddress(entry.Address) {
		return common.Address{}, false
	}
	addr := common.HexToAddress(entry.Address)
	if addr == (common.Address{}) {
		return common.Address{}, false
	}
	return addr, true
}

// Contract is an artifact bound to an on-chain address
type Contract struct {
	Name    string
	Address common.Address
	ABI     *abi.ABI
}

// DeployedContract is the result of a contract creation transaction
type DeployedContract struct {
	Name            string
	Address         common.Address
	TransactionHash common.Hash
	BlockNumber     uint64
	GasUsed         uint64
}

// TxReceipt summarises a mined transaction
type TxReceipt struct {
	Hash        common.Hash
	BlockNumber uint64
	GasUsed     uint64
}
