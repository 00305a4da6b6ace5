package treasury

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/logger"
)

const (
	// nativeTransferGas is the intrinsic gas of a plain value transfer
	nativeTransferGas = 21000
	// contractCallGasCap bounds estimation fallback for vault calls
	contractCallGasCap = 300000
)

// Client holds the paymaster's operator key and submits native transfers and
// contract calls from the treasury address. The treasury address is also the
// passive receiver of vault withdrawal proceeds and pre-funding, which needs
// no action here beyond the chain crediting the balance.
type Client struct {
	eth     *ethclient.Client
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
	logger  *zap.Logger

	receiptTimeout time.Duration

	// nonce assignment is serialized so concurrent operations never race
	mu sync.Mutex
}

// Config configures the treasury client.
type Config struct {
	RPCURL     string
	PrivateKey string
	// ReceiptTimeout bounds how long a submission waits for its receipt.
	ReceiptTimeout time.Duration
}

// NewClient dials the RPC endpoint and derives the treasury address from the
// operator key.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, errors.New("treasury RPC URL is required")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid operator private key")
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial RPC endpoint")
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chain ID")
	}

	c := &Client{
		eth:     eth,
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
		logger:  logger.Log,
	}

	if cfg.ReceiptTimeout > 0 {
		c.receiptTimeout = cfg.ReceiptTimeout
	} else {
		c.receiptTimeout = 2 * time.Minute
	}

	return c, nil
}

// Address returns the treasury address funds are held at.
func (c *Client) Address() common.Address {
	return c.address
}

// Balance returns the treasury's current native balance.
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	balance, err := c.eth.BalanceAt(ctx, c.address, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch treasury balance")
	}
	return balance, nil
}

// Transfer sends a native value transfer from the treasury to the recipient
// and waits for the receipt. A reverted or dropped transaction is an error.
func (c *Client) Transfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	return c.submit(ctx, &to, amount, nil, nativeTransferGas)
}

// SendContractCall submits calldata to a contract from the treasury address
// and waits for the receipt.
func (c *Client) SendContractCall(ctx context.Context, to common.Address, value *big.Int, data []byte) (common.Hash, error) {
	return c.submit(ctx, &to, value, data, 0)
}

func (c *Client) submit(ctx context.Context, to *common.Address, value *big.Int, data []byte, gasLimit uint64) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nonce, err := c.eth.PendingNonceAt(ctx, c.address)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to fetch pending nonce")
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to suggest gas price")
	}

	if gasLimit == 0 {
		gasLimit, err = c.eth.EstimateGas(ctx, ethereum.CallMsg{
			From:  c.address,
			To:    to,
			Value: value,
			Data:  data,
		})
		if err != nil {
			return common.Hash{}, errors.Wrap(err, "gas estimation failed")
		}
		if gasLimit > contractCallGasCap {
			gasLimit = contractCallGasCap
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to sign transaction")
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to send transaction")
	}

	c.logger.Debug("Treasury transaction submitted",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.String("value", value.String()),
	)

	waitCtx, cancel := context.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.eth, signed)
	if err != nil {
		return signed.Hash(), errors.Wrap(err, "failed waiting for receipt")
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return signed.Hash(), errors.Errorf("transaction %s reverted", signed.Hash().Hex())
	}

	return signed.Hash(), nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}
