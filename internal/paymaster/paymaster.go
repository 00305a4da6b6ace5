package paymaster

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/kinlabs/kin-paymaster/internal/constants"
)

var (
	// ErrInvalidRoyalty is returned when the configured royalty rate exceeds 100%
	ErrInvalidRoyalty = errors.New("royalty rate exceeds 10000 basis points")
	// ErrInsufficientAmount is returned when amount cannot cover royalty + relayer fee
	ErrInsufficientAmount = errors.New("amount insufficient to cover royalty and relayer fee")
	// ErrNothingToClaim is returned when a claim is attempted with a zero credit balance
	ErrNothingToClaim = errors.New("no relayer fees to claim")
)

// Config holds the immutable deployment parameters of the paymaster:
// the keeper (royalty beneficiary), the target vault, and the royalty rate.
// Set once at startup and never mutated.
type Config struct {
	Keeper      common.Address
	TargetVault common.Address
	RoyaltyBps  uint64
}

// NewConfig validates and returns the paymaster configuration.
// A royalty rate above 10000 bps (100%) aborts configuration.
func NewConfig(keeper, targetVault common.Address, royaltyBps uint64) (Config, error) {
	if royaltyBps > constants.BpsDenominator {
		return Config{}, fmt.Errorf("%w: got %d", ErrInvalidRoyalty, royaltyBps)
	}
	return Config{
		Keeper:      keeper,
		TargetVault: targetVault,
		RoyaltyBps:  royaltyBps,
	}, nil
}

// Split is the settled breakdown of a single forwarded operation.
// Royalty + RelayerFee + Net always equals the gross amount; integer
// division remainder is absorbed into Net.
type Split struct {
	Amount     *big.Int
	Royalty    *big.Int
	RelayerFee *big.Int
	Net        *big.Int
}

// ComputeSplit derives the royalty and net amount for a forwarded operation.
// royalty = floor(amount * royaltyBps / 10000), net = amount - royalty - relayerFee.
// Returns ErrInsufficientAmount when royalty + relayerFee would exceed amount,
// so the subtraction can never underflow.
func (c Config) ComputeSplit(amount, relayerFee *big.Int) (Split, error) {
	if amount == nil || relayerFee == nil {
		return Split{}, fmt.Errorf("%w: nil amount", ErrInsufficientAmount)
	}
	if amount.Sign() < 0 || relayerFee.Sign() < 0 {
		return Split{}, fmt.Errorf("%w: negative value", ErrInsufficientAmount)
	}

	royalty := new(big.Int).Mul(amount, new(big.Int).SetUint64(c.RoyaltyBps))
	royalty.Div(royalty, big.NewInt(constants.BpsDenominator))

	owed := new(big.Int).Add(royalty, relayerFee)
	if owed.Cmp(amount) > 0 {
		return Split{}, fmt.Errorf("%w: amount=%s royalty=%s relayer_fee=%s",
			ErrInsufficientAmount, amount, royalty, relayerFee)
	}

	net := new(big.Int).Sub(amount, owed)

	return Split{
		Amount:     new(big.Int).Set(amount),
		Royalty:    royalty,
		RelayerFee: new(big.Int).Set(relayerFee),
		Net:        net,
	}, nil
}
