package services

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// VaultClient is the opaque external vault the paymaster forwards value to
// and from. A failed call must fail the whole paymaster operation.
type VaultClient interface {
	Address() common.Address
	Deposit(ctx context.Context, amount *big.Int) (common.Hash, error)
	Withdraw(ctx context.Context, amount *big.Int) (common.Hash, error)
}

// TreasuryClient moves native value out of the paymaster's treasury and
// reports its balance.
type TreasuryClient interface {
	Address() common.Address
	Balance(ctx context.Context) (*big.Int, error)
	Transfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error)
}
