package vault

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/logger"
)

// vaultABI is the IVault surface the paymaster depends on. The vault is an
// opaque, trusted collaborator: deposit accepts value into custodial holding,
// withdraw releases it back to the caller.
const vaultABI = `[
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"deposit","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"withdraw","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

// TxSender submits a signed contract call from the treasury address and
// returns once the transaction is mined (or fails).
type TxSender interface {
	SendContractCall(ctx context.Context, to common.Address, value *big.Int, data []byte) (common.Hash, error)
}

// Client calls the target vault contract. Deposits are not attributed to an
// end user on the vault side: the vault only ever sees the paymaster's own
// address. The user is recorded in the emitted facts instead.
type Client struct {
	address common.Address
	abi     abi.ABI
	sender  TxSender
	logger  *zap.Logger
}

// NewClient binds the vault ABI at the given address.
func NewClient(address common.Address, sender TxSender) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(vaultABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse vault ABI")
	}
	return &Client{
		address: address,
		abi:     parsed,
		sender:  sender,
		logger:  logger.Log,
	}, nil
}

// Address returns the bound vault contract address.
func (c *Client) Address() common.Address {
	return c.address
}

// Deposit instructs the vault to accept amount from the treasury.
func (c *Client) Deposit(ctx context.Context, amount *big.Int) (common.Hash, error) {
	data, err := c.abi.Pack("deposit", amount)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to pack deposit call")
	}

	txHash, err := c.sender.SendContractCall(ctx, c.address, amount, data)
	if err != nil {
		return txHash, errors.Wrap(err, "vault deposit failed")
	}

	c.logger.Debug("Vault deposit settled",
		zap.String("vault", c.address.Hex()),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", txHash.Hex()),
	)
	return txHash, nil
}

// Withdraw instructs the vault to release amount back to the treasury.
func (c *Client) Withdraw(ctx context.Context, amount *big.Int) (common.Hash, error) {
	data, err := c.abi.Pack("withdraw", amount)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to pack withdraw call")
	}

	txHash, err := c.sender.SendContractCall(ctx, c.address, big.NewInt(0), data)
	if err != nil {
		return txHash, errors.Wrap(err, "vault withdraw failed")
	}

	c.logger.Debug("Vault withdrawal settled",
		zap.String("vault", c.address.Hex()),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", txHash.Hex()),
	)
	return txHash, nil
}
