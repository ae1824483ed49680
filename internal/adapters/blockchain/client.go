package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/domain/models"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/sethvargo/go-retry"
)

const defaultPollInterval = time.Second

// Connector dials one ethclient per network and reuses it for the rest of the command
type Connector struct {
	log          *slog.Logger
	pollInterval time.Duration
	mu           sync.Mutex
	clients      map[string]*Client
}

// NewConnector creates a new connector
func NewConnector(log *slog.Logger) *Connector {
	return &Connector{
		log:          log.With("component", "blockchain"),
		pollInterval: defaultPollInterval,
		clients:      make(map[string]*Client),
	}
}

// WithPollInterval sets how often receipts are polled
func (c *Connector) WithPollInterval(d time.Duration) *Connector {
	c.pollInterval = d
	return c
}

// Connect dials the network's RPC endpoint and checks its chain id
func (c *Connector) Connect(ctx context.Context, network *config.Network) (usecase.ChainClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[network.Name]; ok {
		return client, nil
	}

	eth, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		eth.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64())
	}

	c.log.Debug("connected", "network", network.Name, "chainId", chainID.Uint64())

	client := &Client{
		eth:          eth,
		chainID:      chainID,
		log:          c.log.With("network", network.Name),
		pollInterval: c.pollInterval,
	}
	c.clients[network.Name] = client
	return client, nil
}

// Close closes every open client
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, client := range c.clients {
		client.eth.Close()
		delete(c.clients, name)
	}
}

// Client implements usecase.ChainClient on top of ethclient and abi bindings
type Client struct {
	eth          *ethclient.Client
	chainID      *big.Int
	log          *slog.Logger
	pollInterval time.Duration
}

// Deploy sends the creation transaction and waits until the code is on chain
func (c *Client) Deploy(ctx context.Context, signer *domain.Account, artifact *models.Artifact, args ...any) (*models.DeployedContract, error) {
	if !signer.CanSign() {
		return nil, domain.ErrNoSigner
	}

	parsed, err := artifact.ParsedABI()
	if err != nil {
		return nil, err
	}
	bytecode, err := artifact.Bytecode.Bytes()
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", artifact.ContractName, err)
	}
	constructorInput, err := parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s constructor arguments: %w", artifact.ContractName, err)
	}

	var (
		address common.Address
		hash    common.Hash
	)
	if signer.Key == nil {
		hash, err = c.sendFromNode(ctx, signer.Address, nil, nil, append(bytecode, constructorInput...))
		if err != nil {
			return nil, fmt.Errorf("failed to deploy %s: %w", artifact.ContractName, err)
		}
	} else {
		var tx *types.Transaction
		address, tx, err = bind.DeployContract(c.transactOpts(ctx, signer, nil), bytecode, c.eth, constructorInput)
		if err != nil {
			return nil, err
		}
		hash = tx.Hash()
	}
	c.log.Debug("sent deployment", "contract", artifact.ContractName, "tx", hash.Hex(), "nodeSigned", signer.Key == nil)

	receipt, err := c.waitMined(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}
	if address == (common.Address{}) {
		return nil, fmt.Errorf("receipt of %s has no contract address", hash.Hex())
	}

	ok, err := c.HasCode(ctx, address)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no contract code at %s after deploying %s", address.Hex(), artifact.ContractName)
	}

	return &models.DeployedContract{
		Name:            artifact.ContractName,
		Address:         address,
		TransactionHash: hash,
		BlockNumber:     blockNumber(receipt),
		GasUsed:         receipt.GasUsed,
	}, nil
}

// Call performs an eth_call against the latest block
func (c *Client) Call(ctx context.Context, contract *models.Contract, method string, args ...any) ([]any, error) {
	bound := bind.NewBoundContract(contract.Address, *contract.ABI, c.eth, c.eth, c.eth)

	var out []any
	if err := bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", contract.Name, method, err)
	}
	return out, nil
}

// Transact sends a contract transaction, then waits for its receipt. Accounts
// without a local key are signed by the node.
func (c *Client) Transact(ctx context.Context, signer *domain.Account, contract *models.Contract, value *big.Int, method string, args ...any) (*models.TxReceipt, error) {
	if !signer.CanSign() {
		return nil, fmt.Errorf("%w %s", domain.ErrNoSigner, signer.Address.Hex())
	}

	var hash common.Hash
	if signer.Key == nil {
		input, err := contract.ABI.Pack(method, args...)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", contract.Name, method, err)
		}
		to := contract.Address
		if hash, err = c.sendFromNode(ctx, signer.Address, &to, value, input); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", contract.Name, method, err)
		}
	} else {
		bound := bind.NewBoundContract(contract.Address, *contract.ABI, c.eth, c.eth, c.eth)
		tx, err := bound.Transact(c.transactOpts(ctx, signer, value), method, args...)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", contract.Name, method, err)
		}
		hash = tx.Hash()
	}
	c.log.Debug("sent transaction", "contract", contract.Name, "method", method, "tx", hash.Hex(), "nodeSigned", signer.Key == nil)

	receipt, err := c.waitMined(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", contract.Name, method, err)
	}

	return &models.TxReceipt{
		Hash:        hash,
		BlockNumber: blockNumber(receipt),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// BalanceAt returns the ether balance at the latest block
func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.eth.BalanceAt(ctx, account, nil)
}

// HasCode reports whether a contract is deployed at address
func (c *Client) HasCode(ctx context.Context, address common.Address) (bool, error) {
	code, err := c.eth.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// NodeAccounts returns the accounts the node manages
func (c *Client) NodeAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := c.eth.Client().CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// nodeTransaction is the eth_sendTransaction argument object
type nodeTransaction struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to,omitempty"`
	Value *hexutil.Big    `json:"value,omitempty"`
	Data  hexutil.Bytes   `json:"data"`
}

// lockedAccountErrors are the messages nodes answer eth_sendTransaction with
// when they hold no unlocked key for the sender
var lockedAccountErrors = []string{
	"unknown account",
	"authentication needed",
	"account is locked",
	"sender account not recognized",
	"no signer",
	"does not exist",
	"method not found",
}

// sendFromNode has the node sign and send a transaction for an account it
// manages. Gas, price and nonce are left for the node to fill in.
func (c *Client) sendFromNode(ctx context.Context, from common.Address, to *common.Address, value *big.Int, data []byte) (common.Hash, error) {
	tx := nodeTransaction{From: from, To: to, Data: data}
	if value != nil && value.Sign() > 0 {
		tx.Value = (*hexutil.Big)(value)
	}

	var hash common.Hash
	if err := c.eth.Client().CallContext(ctx, &hash, "eth_sendTransaction", tx); err != nil {
		msg := strings.ToLower(err.Error())
		for _, locked := range lockedAccountErrors {
			if strings.Contains(msg, locked) {
				return common.Hash{}, fmt.Errorf("%w %s: node refused to sign: %v", domain.ErrNoSigner, from.Hex(), err)
			}
		}
		return common.Hash{}, err
	}
	return hash, nil
}

func (c *Client) transactOpts(ctx context.Context, signer *domain.Account, value *big.Int) *bind.TransactOpts {
	txSigner := types.LatestSignerForChainID(c.chainID)
	return &bind.TransactOpts{
		From:    signer.Address,
		Context: ctx,
		Value:   value,
		Signer: func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if from != signer.Address {
				return nil, fmt.Errorf("%w %s", domain.ErrNoSigner, from.Hex())
			}
			return types.SignTx(tx, txSigner, signer.Key)
		},
	}
}

// waitMined polls for the receipt until it shows up or ctx ends
func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := retry.Do(ctx, retry.NewConstant(c.pollInterval), func(ctx context.Context) error {
		r, err := c.eth.TransactionReceipt(ctx, hash)
		if errors.Is(err, ethereum.NotFound) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("waiting for transaction %s: %w", hash.Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, fmt.Errorf("transaction %s reverted", hash.Hex())
	}
	return receipt, nil
}

func blockNumber(receipt *types.Receipt) uint64 {
	if receipt.BlockNumber == nil {
		return 0
	}
	return receipt.BlockNumber.Uint64()
}

var (
	_ usecase.ChainConnector = (*Connector)(nil)
	_ usecase.ChainClient    = (*Client)(nil)
)
