package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/constants"
	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/events"
	"github.com/kinlabs/kin-paymaster/internal/logger"
	"github.com/kinlabs/kin-paymaster/internal/paymaster"
)

// PaymasterService settles relayer-submitted forward operations: it skims
// the configured royalty to the keeper, accrues the relayer's fee in the
// credit ledger, and moves the remainder through the vault. Every operation
// runs inside one database transaction; a failed external call rolls the
// whole operation back with no partial credit.
type PaymasterService struct {
	store      db.Store
	vault      VaultClient
	treasury   TreasuryClient
	config     paymaster.Config
	dispatcher *events.Dispatcher
	logger     *zap.Logger
}

// NewPaymasterService creates a new paymaster service. dispatcher may be nil
// when asynchronous fact delivery is not configured.
func NewPaymasterService(
	store db.Store,
	vaultClient VaultClient,
	treasuryClient TreasuryClient,
	config paymaster.Config,
	dispatcher *events.Dispatcher,
) *PaymasterService {
	return &PaymasterService{
		store:      store,
		vault:      vaultClient,
		treasury:   treasuryClient,
		config:     config,
		dispatcher: dispatcher,
		logger:     logger.Log,
	}
}

// Config returns the immutable paymaster parameters.
func (s *PaymasterService) Config() paymaster.Config {
	return s.config
}

// ForwardResult is the settled outcome of a DepositFor or WithdrawFor.
type ForwardResult struct {
	Split         paymaster.Split
	RoyaltyTxHash string
	VaultTxHash   string
	UserTxHash    string
	EventIDs      []uuid.UUID
}

// ClaimResult is the outcome of a successful fee claim.
type ClaimResult struct {
	Amount  *big.Int
	TxHash  string
	EventID uuid.UUID
}

// SolvencyReport compares the treasury balance against outstanding relayer
// credits. Keeping the treasury funded is the operator's responsibility; the
// service only reports.
type SolvencyReport struct {
	TreasuryBalance    *big.Int
	OutstandingCredits *big.Int
	Solvent            bool
}

// DepositFor forwards a deposit on behalf of user. Effects, in order: the
// calling relayer's ledger balance grows by relayerFee, the royalty goes to
// the keeper, and the vault accepts the net amount. The vault call carries
// no user attribution; user appears only in the emitted facts.
func (s *PaymasterService) DepositFor(ctx context.Context, relayer, user common.Address, amount, relayerFee *big.Int) (*ForwardResult, error) {
	split, err := s.config.ComputeSplit(amount, relayerFee)
	if err != nil {
		return nil, err
	}

	result := &ForwardResult{Split: split}

	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		// Effect first: accrue the relayer's fee. The upsert takes the row
		// lock that serializes concurrent operations for this relayer.
		if _, err := q.UpsertRelayerCredit(ctx, db.UpsertRelayerCreditParams{
			RelayerAddress: relayer.Hex(),
			Amount:         db.NumericFromBigInt(split.RelayerFee),
		}); err != nil {
			return fmt.Errorf("failed to credit relayer: %w", err)
		}

		// Interactions: royalty to the keeper, then the vault accepts net.
		if split.Royalty.Sign() > 0 {
			royaltyTx, err := s.treasury.Transfer(ctx, s.config.Keeper, split.Royalty)
			if err != nil {
				return fmt.Errorf("%w: royalty transfer: %v", paymaster.ErrExternalCall, err)
			}
			result.RoyaltyTxHash = royaltyTx.Hex()
		}

		vaultTx, err := s.vault.Deposit(ctx, split.Net)
		if err != nil {
			return fmt.Errorf("%w: vault deposit: %v", paymaster.ErrExternalCall, err)
		}
		result.VaultTxHash = vaultTx.Hex()

		ids, err := s.recordForwardEvents(ctx, q, constants.EventTypeDepositForwarded,
			relayer, user, split, result.RoyaltyTxHash, result.VaultTxHash)
		if err != nil {
			return err
		}
		result.EventIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitForwardFacts(constants.EventTypeDepositForwarded, relayer, user, split, result)

	s.logger.Info("Deposit forwarded",
		zap.String("relayer", relayer.Hex()),
		zap.String("user", user.Hex()),
		zap.String("amount", split.Amount.String()),
		zap.String("royalty", split.Royalty.String()),
		zap.String("net", split.Net.String()),
	)
	return result, nil
}

// WithdrawFor forwards a withdrawal on behalf of user. Effects, in order:
// the vault releases the gross amount to the treasury, the relayer's ledger
// balance grows by relayerFee, the royalty goes to the keeper, and the net
// amount goes directly to user.
func (s *PaymasterService) WithdrawFor(ctx context.Context, relayer, user common.Address, amount, relayerFee *big.Int) (*ForwardResult, error) {
	split, err := s.config.ComputeSplit(amount, relayerFee)
	if err != nil {
		return nil, err
	}

	result := &ForwardResult{Split: split}

	err = s.store.ExecTx(ctx, func(q db.Querier) error {
		vaultTx, err := s.vault.Withdraw(ctx, split.Amount)
		if err != nil {
			return fmt.Errorf("%w: vault withdrawal: %v", paymaster.ErrExternalCall, err)
		}
		result.VaultTxHash = vaultTx.Hex()

		if _, err := q.UpsertRelayerCredit(ctx, db.UpsertRelayerCreditParams{
			RelayerAddress: relayer.Hex(),
			Amount:         db.NumericFromBigInt(split.RelayerFee),
		}); err != nil {
			return fmt.Errorf("failed to credit relayer: %w", err)
		}

		if split.Royalty.Sign() > 0 {
			royaltyTx, err := s.treasury.Transfer(ctx, s.config.Keeper, split.Royalty)
			if err != nil {
				return fmt.Errorf("%w: royalty transfer: %v", paymaster.ErrExternalCall, err)
			}
			result.RoyaltyTxHash = royaltyTx.Hex()
		}

		if split.Net.Sign() > 0 {
			userTx, err := s.treasury.Transfer(ctx, user, split.Net)
			if err != nil {
				return fmt.Errorf("%w: user transfer: %v", paymaster.ErrExternalCall, err)
			}
			result.UserTxHash = userTx.Hex()
		}

		ids, err := s.recordForwardEvents(ctx, q, constants.EventTypeWithdrawForwarded,
			relayer, user, split, result.RoyaltyTxHash, result.VaultTxHash)
		if err != nil {
			return err
		}
		result.EventIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitForwardFacts(constants.EventTypeWithdrawForwarded, relayer, user, split, result)

	s.logger.Info("Withdrawal forwarded",
		zap.String("relayer", relayer.Hex()),
		zap.String("user", user.Hex()),
		zap.String("amount", split.Amount.String()),
		zap.String("royalty", split.Royalty.String()),
		zap.String("net", split.Net.String()),
	)
	return result, nil
}

// ClaimRelayerFees pays out the caller's entire accrued balance. The ledger
// entry is zeroed strictly before the outgoing transfer; a failed transfer
// rolls the zeroing back, so the two settle atomically and a re-entered
// claim observes a zero balance.
func (s *PaymasterService) ClaimRelayerFees(ctx context.Context, relayer common.Address) (*ClaimResult, error) {
	result := &ClaimResult{}

	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		credit, err := q.GetRelayerCreditForUpdate(ctx, relayer.Hex())
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return paymaster.ErrNothingToClaim
			}
			return fmt.Errorf("failed to read relayer credit: %w", err)
		}

		balance, err := db.NumericToBigInt(credit.Amount)
		if err != nil {
			return fmt.Errorf("corrupt credit balance: %w", err)
		}
		if balance.Sign() == 0 {
			return paymaster.ErrNothingToClaim
		}

		rows, err := q.ZeroRelayerCredit(ctx, relayer.Hex())
		if err != nil {
			return fmt.Errorf("failed to zero relayer credit: %w", err)
		}
		if rows == 0 {
			return paymaster.ErrNothingToClaim
		}

		// Interaction last: the payout itself.
		payoutTx, err := s.treasury.Transfer(ctx, relayer, balance)
		if err != nil {
			return fmt.Errorf("%w: fee payout: %v", paymaster.ErrExternalCall, err)
		}
		result.TxHash = payoutTx.Hex()
		result.Amount = balance

		evt, err := q.CreatePaymasterEvent(ctx, db.CreatePaymasterEventParams{
			EventType:      constants.EventTypeFeesClaimed,
			RelayerAddress: relayer.Hex(),
			Amount:         db.NumericFromBigInt(balance),
			RoyaltyAmount:  db.NumericFromBigInt(big.NewInt(0)),
			RelayerFee:     db.NumericFromBigInt(balance),
			NetAmount:      db.NumericFromBigInt(big.NewInt(0)),
			TxHash:         pgtype.Text{String: result.TxHash, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("failed to record claim event: %w", err)
		}
		result.EventID = evt.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Enqueue(events.Fact{
			ID:             result.EventID,
			Type:           constants.EventTypeFeesClaimed,
			RelayerAddress: relayer.Hex(),
			Amount:         result.Amount.String(),
			Royalty:        "0",
			RelayerFee:     result.Amount.String(),
			Net:            "0",
			TxHash:         result.TxHash,
			OccurredAt:     time.Now().UTC(),
		})
	}

	s.logger.Info("Relayer fees claimed",
		zap.String("relayer", relayer.Hex()),
		zap.String("amount", result.Amount.String()),
		zap.String("tx_hash", result.TxHash),
	)
	return result, nil
}

// GetRelayerCredit returns the relayer's outstanding claimable balance. A
// relayer with no ledger entry has a zero balance.
func (s *PaymasterService) GetRelayerCredit(ctx context.Context, relayer common.Address) (*big.Int, error) {
	credit, err := s.store.GetRelayerCredit(ctx, relayer.Hex())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return big.NewInt(0), nil
		}
		return nil, fmt.Errorf("failed to read relayer credit: %w", err)
	}
	return db.NumericToBigInt(credit.Amount)
}

// Solvency reports whether the treasury currently covers all outstanding
// relayer credits.
func (s *PaymasterService) Solvency(ctx context.Context) (*SolvencyReport, error) {
	balance, err := s.treasury.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: treasury balance: %v", paymaster.ErrExternalCall, err)
	}

	total, err := s.store.SumRelayerCredits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum relayer credits: %w", err)
	}
	outstanding, err := db.NumericToBigInt(total)
	if err != nil {
		return nil, fmt.Errorf("corrupt credit total: %w", err)
	}

	return &SolvencyReport{
		TreasuryBalance:    balance,
		OutstandingCredits: outstanding,
		Solvent:            balance.Cmp(outstanding) >= 0,
	}, nil
}

// recordForwardEvents persists the royalty-paid fact and the forwarded fact
// for one settled operation, inside the operation's transaction.
func (s *PaymasterService) recordForwardEvents(
	ctx context.Context,
	q db.Querier,
	forwardType string,
	relayer, user common.Address,
	split paymaster.Split,
	royaltyTxHash, vaultTxHash string,
) ([]uuid.UUID, error) {
	royaltyEvt, err := q.CreatePaymasterEvent(ctx, db.CreatePaymasterEventParams{
		EventType:      constants.EventTypeRoyaltyPaid,
		RelayerAddress: relayer.Hex(),
		UserAddress:    pgtype.Text{String: user.Hex(), Valid: true},
		Amount:         db.NumericFromBigInt(split.Amount),
		RoyaltyAmount:  db.NumericFromBigInt(split.Royalty),
		RelayerFee:     db.NumericFromBigInt(split.RelayerFee),
		NetAmount:      db.NumericFromBigInt(split.Net),
		TxHash:         pgtype.Text{String: royaltyTxHash, Valid: royaltyTxHash != ""},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record royalty event: %w", err)
	}

	forwardEvt, err := q.CreatePaymasterEvent(ctx, db.CreatePaymasterEventParams{
		EventType:      forwardType,
		RelayerAddress: relayer.Hex(),
		UserAddress:    pgtype.Text{String: user.Hex(), Valid: true},
		Amount:         db.NumericFromBigInt(split.Amount),
		RoyaltyAmount:  db.NumericFromBigInt(split.Royalty),
		RelayerFee:     db.NumericFromBigInt(split.RelayerFee),
		NetAmount:      db.NumericFromBigInt(split.Net),
		TxHash:         pgtype.Text{String: vaultTxHash, Valid: vaultTxHash != ""},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record forward event: %w", err)
	}

	return []uuid.UUID{royaltyEvt.ID, forwardEvt.ID}, nil
}

// emitForwardFacts hands the settled operation's facts to the dispatcher,
// after commit.
func (s *PaymasterService) emitForwardFacts(
	forwardType string,
	relayer, user common.Address,
	split paymaster.Split,
	result *ForwardResult,
) {
	if s.dispatcher == nil {
		return
	}

	now := time.Now().UTC()
	royaltyID, forwardID := uuid.Nil, uuid.Nil
	if len(result.EventIDs) == 2 {
		royaltyID, forwardID = result.EventIDs[0], result.EventIDs[1]
	}

	s.dispatcher.Enqueue(events.Fact{
		ID:             royaltyID,
		Type:           constants.EventTypeRoyaltyPaid,
		RelayerAddress: relayer.Hex(),
		UserAddress:    user.Hex(),
		Amount:         split.Amount.String(),
		Royalty:        split.Royalty.String(),
		RelayerFee:     split.RelayerFee.String(),
		Net:            split.Net.String(),
		TxHash:         result.RoyaltyTxHash,
		OccurredAt:     now,
	})
	s.dispatcher.Enqueue(events.Fact{
		ID:             forwardID,
		Type:           forwardType,
		RelayerAddress: relayer.Hex(),
		UserAddress:    user.Hex(),
		Amount:         split.Amount.String(),
		Royalty:        split.Royalty.String(),
		RelayerFee:     split.RelayerFee.String(),
		Net:            split.Net.String(),
		TxHash:         result.VaultTxHash,
		OccurredAt:     now,
	})
}
