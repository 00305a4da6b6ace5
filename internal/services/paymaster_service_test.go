package services_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/logger"
	"github.com/kinlabs/kin-paymaster/internal/mocks"
	"github.com/kinlabs/kin-paymaster/internal/paymaster"
	"github.com/kinlabs/kin-paymaster/internal/services"
)

var (
	testKeeper  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testVault   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	testRelayer = common.HexToAddress("0x00000000000000000000000000000000000000cc")
	testUser    = common.HexToAddress("0x00000000000000000000000000000000000000dd")

	royaltyTxHash = common.HexToHash("0x01")
	vaultTxHash   = common.HexToHash("0x02")
	userTxHash    = common.HexToHash("0x03")
)

func TestMain(m *testing.M) {
	logger.InitLogger()
	os.Exit(m.Run())
}

type serviceMocks struct {
	querier  *mocks.MockQuerier
	vault    *mocks.MockVaultClient
	treasury *mocks.MockTreasuryClient
}

func newTestService(t *testing.T, royaltyBps uint64) (*services.PaymasterService, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &serviceMocks{
		querier:  mocks.NewMockQuerier(ctrl),
		vault:    mocks.NewMockVaultClient(ctrl),
		treasury: mocks.NewMockTreasuryClient(ctrl),
	}

	cfg, err := paymaster.NewConfig(testKeeper, testVault, royaltyBps)
	require.NoError(t, err)

	svc := services.NewPaymasterService(mocks.NewTestStore(m.querier), m.vault, m.treasury, cfg, nil)
	return svc, m
}

func eventRow(eventType string) db.PaymasterEvent {
	return db.PaymasterEvent{ID: uuid.New(), EventType: eventType}
}

func TestDepositFor(t *testing.T) {
	ctx := context.Background()

	t.Run("splits amount and forwards net into the vault", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		amount := big.NewInt(10000)
		fee := big.NewInt(100)

		gomock.InOrder(
			m.querier.EXPECT().
				UpsertRelayerCredit(gomock.Any(), db.UpsertRelayerCreditParams{
					RelayerAddress: testRelayer.Hex(),
					Amount:         db.NumericFromBigInt(big.NewInt(100)),
				}).
				Return(db.RelayerCredit{}, nil),
			m.treasury.EXPECT().
				Transfer(gomock.Any(), testKeeper, big.NewInt(250)).
				Return(royaltyTxHash, nil),
			m.vault.EXPECT().
				Deposit(gomock.Any(), big.NewInt(9650)).
				Return(vaultTxHash, nil),
		)
		m.querier.EXPECT().
			CreatePaymasterEvent(gomock.Any(), gomock.Any()).
			Return(eventRow("royalty_paid"), nil).
			Times(2)

		result, err := svc.DepositFor(ctx, testRelayer, testUser, amount, fee)
		require.NoError(t, err)

		assert.Equal(t, big.NewInt(250), result.Split.Royalty)
		assert.Equal(t, big.NewInt(9650), result.Split.Net)
		assert.Equal(t, royaltyTxHash.Hex(), result.RoyaltyTxHash)
		assert.Equal(t, vaultTxHash.Hex(), result.VaultTxHash)
		assert.Len(t, result.EventIDs, 2)

		// royalty + fee + net must reassemble the original amount
		total := new(big.Int).Add(result.Split.Royalty, result.Split.RelayerFee)
		total.Add(total, result.Split.Net)
		assert.Equal(t, amount, total)
	})

	t.Run("skips the royalty transfer at zero bps", func(t *testing.T) {
		svc, m := newTestService(t, 0)

		m.querier.EXPECT().
			UpsertRelayerCredit(gomock.Any(), gomock.Any()).
			Return(db.RelayerCredit{}, nil)
		m.vault.EXPECT().
			Deposit(gomock.Any(), big.NewInt(4950)).
			Return(vaultTxHash, nil)
		m.querier.EXPECT().
			CreatePaymasterEvent(gomock.Any(), gomock.Any()).
			Return(eventRow("deposit_forwarded"), nil).
			Times(2)

		result, err := svc.DepositFor(ctx, testRelayer, testUser, big.NewInt(5000), big.NewInt(50))
		require.NoError(t, err)

		assert.Equal(t, big.NewInt(0), result.Split.Royalty)
		assert.Equal(t, big.NewInt(4950), result.Split.Net)
		assert.Empty(t, result.RoyaltyTxHash)
	})

	t.Run("rejects an amount too small to cover royalty and fee", func(t *testing.T) {
		svc, _ := newTestService(t, 250)

		_, err := svc.DepositFor(ctx, testRelayer, testUser, big.NewInt(100), big.NewInt(99))
		assert.ErrorIs(t, err, paymaster.ErrInsufficientAmount)
	})

	t.Run("rolls back when the vault rejects the deposit", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.querier.EXPECT().
			UpsertRelayerCredit(gomock.Any(), gomock.Any()).
			Return(db.RelayerCredit{}, nil)
		m.treasury.EXPECT().
			Transfer(gomock.Any(), testKeeper, gomock.Any()).
			Return(royaltyTxHash, nil)
		m.vault.EXPECT().
			Deposit(gomock.Any(), gomock.Any()).
			Return(common.Hash{}, errors.New("execution reverted"))

		_, err := svc.DepositFor(ctx, testRelayer, testUser, big.NewInt(10000), big.NewInt(100))
		assert.ErrorIs(t, err, paymaster.ErrExternalCall)
	})
}

func TestWithdrawFor(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the gross amount and pays out the net", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		gomock.InOrder(
			m.vault.EXPECT().
				Withdraw(gomock.Any(), big.NewInt(10000)).
				Return(vaultTxHash, nil),
			m.querier.EXPECT().
				UpsertRelayerCredit(gomock.Any(), db.UpsertRelayerCreditParams{
					RelayerAddress: testRelayer.Hex(),
					Amount:         db.NumericFromBigInt(big.NewInt(100)),
				}).
				Return(db.RelayerCredit{}, nil),
			m.treasury.EXPECT().
				Transfer(gomock.Any(), testKeeper, big.NewInt(250)).
				Return(royaltyTxHash, nil),
			m.treasury.EXPECT().
				Transfer(gomock.Any(), testUser, big.NewInt(9650)).
				Return(userTxHash, nil),
		)
		m.querier.EXPECT().
			CreatePaymasterEvent(gomock.Any(), gomock.Any()).
			Return(eventRow("withdraw_forwarded"), nil).
			Times(2)

		result, err := svc.WithdrawFor(ctx, testRelayer, testUser, big.NewInt(10000), big.NewInt(100))
		require.NoError(t, err)

		assert.Equal(t, big.NewInt(9650), result.Split.Net)
		assert.Equal(t, userTxHash.Hex(), result.UserTxHash)
		assert.Equal(t, vaultTxHash.Hex(), result.VaultTxHash)
	})

	t.Run("skips the user transfer when the net amount is zero", func(t *testing.T) {
		svc, m := newTestService(t, 10000)

		m.vault.EXPECT().
			Withdraw(gomock.Any(), big.NewInt(100)).
			Return(vaultTxHash, nil)
		m.querier.EXPECT().
			UpsertRelayerCredit(gomock.Any(), gomock.Any()).
			Return(db.RelayerCredit{}, nil)
		m.treasury.EXPECT().
			Transfer(gomock.Any(), testKeeper, big.NewInt(100)).
			Return(royaltyTxHash, nil)
		m.querier.EXPECT().
			CreatePaymasterEvent(gomock.Any(), gomock.Any()).
			Return(eventRow("withdraw_forwarded"), nil).
			Times(2)

		result, err := svc.WithdrawFor(ctx, testRelayer, testUser, big.NewInt(100), big.NewInt(0))
		require.NoError(t, err)

		assert.Zero(t, result.Split.Net.Cmp(big.NewInt(0)))
		assert.Empty(t, result.UserTxHash)
	})

	t.Run("rolls back when the vault refuses the withdrawal", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.vault.EXPECT().
			Withdraw(gomock.Any(), gomock.Any()).
			Return(common.Hash{}, errors.New("insufficient vault balance"))

		_, err := svc.WithdrawFor(ctx, testRelayer, testUser, big.NewInt(10000), big.NewInt(100))
		assert.ErrorIs(t, err, paymaster.ErrExternalCall)
	})
}

func TestClaimRelayerFees(t *testing.T) {
	ctx := context.Background()

	t.Run("zeroes the ledger entry before paying out", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		balance := big.NewInt(500)
		gomock.InOrder(
			m.querier.EXPECT().
				GetRelayerCreditForUpdate(gomock.Any(), testRelayer.Hex()).
				Return(db.RelayerCredit{
					RelayerAddress: testRelayer.Hex(),
					Amount:         db.NumericFromBigInt(balance),
				}, nil),
			m.querier.EXPECT().
				ZeroRelayerCredit(gomock.Any(), testRelayer.Hex()).
				Return(int64(1), nil),
			m.treasury.EXPECT().
				Transfer(gomock.Any(), testRelayer, balance).
				Return(userTxHash, nil),
			m.querier.EXPECT().
				CreatePaymasterEvent(gomock.Any(), gomock.Any()).
				Return(eventRow("fees_claimed"), nil),
		)

		result, err := svc.ClaimRelayerFees(ctx, testRelayer)
		require.NoError(t, err)

		assert.Equal(t, balance, result.Amount)
		assert.Equal(t, userTxHash.Hex(), result.TxHash)
		assert.NotEqual(t, uuid.Nil, result.EventID)
	})

	t.Run("a claim re-entered during the payout finds nothing", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		balance := big.NewInt(500)
		m.querier.EXPECT().
			GetRelayerCreditForUpdate(gomock.Any(), testRelayer.Hex()).
			Return(db.RelayerCredit{
				RelayerAddress: testRelayer.Hex(),
				Amount:         db.NumericFromBigInt(balance),
			}, nil)
		m.querier.EXPECT().
			ZeroRelayerCredit(gomock.Any(), testRelayer.Hex()).
			Return(int64(1), nil)
		// the recipient claims again from inside the payout; the ledger
		// entry was zeroed before the transfer started, so the nested
		// claim sees nothing
		m.treasury.EXPECT().
			Transfer(gomock.Any(), testRelayer, balance).
			DoAndReturn(func(innerCtx context.Context, _ common.Address, _ *big.Int) (common.Hash, error) {
				m.querier.EXPECT().
					GetRelayerCreditForUpdate(gomock.Any(), testRelayer.Hex()).
					Return(db.RelayerCredit{
						RelayerAddress: testRelayer.Hex(),
						Amount:         db.NumericFromBigInt(big.NewInt(0)),
					}, nil)
				_, innerErr := svc.ClaimRelayerFees(innerCtx, testRelayer)
				assert.ErrorIs(t, innerErr, paymaster.ErrNothingToClaim)
				return userTxHash, nil
			})
		m.querier.EXPECT().
			CreatePaymasterEvent(gomock.Any(), gomock.Any()).
			Return(eventRow("fees_claimed"), nil)

		result, err := svc.ClaimRelayerFees(ctx, testRelayer)
		require.NoError(t, err)
		assert.Equal(t, balance, result.Amount)
	})

	t.Run("fails when the relayer has no ledger entry", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.querier.EXPECT().
			GetRelayerCreditForUpdate(gomock.Any(), testRelayer.Hex()).
			Return(db.RelayerCredit{}, pgx.ErrNoRows)

		_, err := svc.ClaimRelayerFees(ctx, testRelayer)
		assert.ErrorIs(t, err, paymaster.ErrNothingToClaim)
	})

	t.Run("fails on a zero balance", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.querier.EXPECT().
			GetRelayerCreditForUpdate(gomock.Any(), testRelayer.Hex()).
			Return(db.RelayerCredit{
				RelayerAddress: testRelayer.Hex(),
				Amount:         db.NumericFromBigInt(big.NewInt(0)),
			}, nil)

		_, err := svc.ClaimRelayerFees(ctx, testRelayer)
		assert.ErrorIs(t, err, paymaster.ErrNothingToClaim)
	})

	t.Run("a second claim after zeroing finds nothing", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.querier.EXPECT().
			GetRelayerCreditForUpdate(gomock.Any(), testRelayer.Hex()).
			Return(db.RelayerCredit{
				RelayerAddress: testRelayer.Hex(),
				Amount:         db.NumericFromBigInt(big.NewInt(500)),
			}, nil)
		// another transaction already zeroed the row between the read and
		// the update
		m.querier.EXPECT().
			ZeroRelayerCredit(gomock.Any(), testRelayer.Hex()).
			Return(int64(0), nil)

		_, err := svc.ClaimRelayerFees(ctx, testRelayer)
		assert.ErrorIs(t, err, paymaster.ErrNothingToClaim)
	})

	t.Run("a failed payout rolls the zeroing back", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		gomock.InOrder(
			m.querier.EXPECT().
				GetRelayerCreditForUpdate(gomock.Any(), testRelayer.Hex()).
				Return(db.RelayerCredit{
					RelayerAddress: testRelayer.Hex(),
					Amount:         db.NumericFromBigInt(big.NewInt(500)),
				}, nil),
			m.querier.EXPECT().
				ZeroRelayerCredit(gomock.Any(), testRelayer.Hex()).
				Return(int64(1), nil),
			m.treasury.EXPECT().
				Transfer(gomock.Any(), testRelayer, big.NewInt(500)).
				Return(common.Hash{}, errors.New("nonce too low")),
		)

		_, err := svc.ClaimRelayerFees(ctx, testRelayer)
		assert.ErrorIs(t, err, paymaster.ErrExternalCall)
	})
}

func TestGetRelayerCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored balance", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.querier.EXPECT().
			GetRelayerCredit(gomock.Any(), testRelayer.Hex()).
			Return(db.RelayerCredit{
				RelayerAddress: testRelayer.Hex(),
				Amount:         db.NumericFromBigInt(big.NewInt(1234)),
			}, nil)

		balance, err := svc.GetRelayerCredit(ctx, testRelayer)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(1234), balance)
	})

	t.Run("an unknown relayer has a zero balance", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.querier.EXPECT().
			GetRelayerCredit(gomock.Any(), testRelayer.Hex()).
			Return(db.RelayerCredit{}, pgx.ErrNoRows)

		balance, err := svc.GetRelayerCredit(ctx, testRelayer)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(0), balance)
	})
}

func TestSolvency(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		treasury    int64
		outstanding int64
		solvent     bool
	}{
		{name: "covered", treasury: 1000, outstanding: 400, solvent: true},
		{name: "exactly covered", treasury: 400, outstanding: 400, solvent: true},
		{name: "shortfall", treasury: 100, outstanding: 400, solvent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, 250)

			m.treasury.EXPECT().
				Balance(gomock.Any()).
				Return(big.NewInt(tt.treasury), nil)
			m.querier.EXPECT().
				SumRelayerCredits(gomock.Any()).
				Return(db.NumericFromBigInt(big.NewInt(tt.outstanding)), nil)

			report, err := svc.Solvency(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.solvent, report.Solvent)
			assert.Equal(t, big.NewInt(tt.outstanding), report.OutstandingCredits)
		})
	}

	t.Run("a failed balance read maps to an external call error", func(t *testing.T) {
		svc, m := newTestService(t, 250)

		m.treasury.EXPECT().
			Balance(gomock.Any()).
			Return(nil, errors.New("rpc unavailable"))

		_, err := svc.Solvency(ctx)
		assert.ErrorIs(t, err, paymaster.ErrExternalCall)
	})
}
