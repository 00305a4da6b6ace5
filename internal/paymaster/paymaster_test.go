package paymaster_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinlabs/kin-paymaster/internal/paymaster"
)

var (
	keeper = common.HexToAddress("0x1111111111111111111111111111111111111111")
	vault  = common.HexToAddress("0xdfc24b077bc1425ad1dea75bcb6f8158e10df303")
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name       string
		royaltyBps uint64
		wantErr    error
	}{
		{name: "zero rate", royaltyBps: 0},
		{name: "typical rate", royaltyBps: 1100},
		{name: "full rate", royaltyBps: 10000},
		{name: "rate above 100 percent", royaltyBps: 10001, wantErr: paymaster.ErrInvalidRoyalty},
		{name: "rate far above 100 percent", royaltyBps: 1 << 32, wantErr: paymaster.ErrInvalidRoyalty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := paymaster.NewConfig(keeper, vault, tt.royaltyBps)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, keeper, cfg.Keeper)
			assert.Equal(t, vault, cfg.TargetVault)
			assert.Equal(t, tt.royaltyBps, cfg.RoyaltyBps)
		})
	}
}

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name        string
		royaltyBps  uint64
		amount      int64
		relayerFee  int64
		wantRoyalty int64
		wantNet     int64
		wantErr     error
	}{
		{
			name:       "250 bps concrete scenario",
			royaltyBps: 250, amount: 10000, relayerFee: 100,
			wantRoyalty: 250, wantNet: 9650,
		},
		{
			name:       "zero rate concrete scenario",
			royaltyBps: 0, amount: 5000, relayerFee: 50,
			wantRoyalty: 0, wantNet: 4950,
		},
		{
			name:       "royalty floors toward zero",
			royaltyBps: 333, amount: 1000, relayerFee: 0,
			wantRoyalty: 33, wantNet: 967,
		},
		{
			name:       "full royalty leaves room for nothing else",
			royaltyBps: 10000, amount: 777, relayerFee: 0,
			wantRoyalty: 777, wantNet: 0,
		},
		{
			name:       "fee consumes remainder exactly",
			royaltyBps: 1100, amount: 10000, relayerFee: 8900,
			wantRoyalty: 1100, wantNet: 0,
		},
		{
			name:       "fee pushes past amount",
			royaltyBps: 1100, amount: 10000, relayerFee: 8901,
			wantErr: paymaster.ErrInsufficientAmount,
		},
		{
			name:       "fee alone exceeds amount",
			royaltyBps: 0, amount: 100, relayerFee: 101,
			wantErr: paymaster.ErrInsufficientAmount,
		},
		{
			name:       "zero amount zero fee",
			royaltyBps: 1100, amount: 0, relayerFee: 0,
			wantRoyalty: 0, wantNet: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := paymaster.NewConfig(keeper, vault, tt.royaltyBps)
			require.NoError(t, err)

			split, err := cfg.ComputeSplit(big.NewInt(tt.amount), big.NewInt(tt.relayerFee))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, big.NewInt(tt.wantRoyalty), split.Royalty)
			assert.Zero(t, split.Net.Cmp(big.NewInt(tt.wantNet)))
			assert.Equal(t, big.NewInt(tt.relayerFee), split.RelayerFee)

			// Conservation: royalty + relayerFee + net == amount exactly
			total := new(big.Int).Add(split.Royalty, split.RelayerFee)
			total.Add(total, split.Net)
			assert.Zero(t, total.Cmp(big.NewInt(tt.amount)), "value created or destroyed")
		})
	}
}

func TestComputeSplitRejectsInvalidInputs(t *testing.T) {
	cfg, err := paymaster.NewConfig(keeper, vault, 1100)
	require.NoError(t, err)

	_, err = cfg.ComputeSplit(nil, big.NewInt(1))
	assert.ErrorIs(t, err, paymaster.ErrInsufficientAmount)

	_, err = cfg.ComputeSplit(big.NewInt(100), nil)
	assert.ErrorIs(t, err, paymaster.ErrInsufficientAmount)

	_, err = cfg.ComputeSplit(big.NewInt(-100), big.NewInt(0))
	assert.ErrorIs(t, err, paymaster.ErrInsufficientAmount)

	_, err = cfg.ComputeSplit(big.NewInt(100), big.NewInt(-1))
	assert.ErrorIs(t, err, paymaster.ErrInsufficientAmount)
}

func TestComputeSplitDoesNotAliasInputs(t *testing.T) {
	cfg, err := paymaster.NewConfig(keeper, vault, 250)
	require.NoError(t, err)

	amount := big.NewInt(10000)
	fee := big.NewInt(100)
	split, err := cfg.ComputeSplit(amount, fee)
	require.NoError(t, err)

	amount.SetInt64(1)
	fee.SetInt64(1)
	assert.Equal(t, big.NewInt(10000), split.Amount)
	assert.Equal(t, big.NewInt(100), split.RelayerFee)
}
