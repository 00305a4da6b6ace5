package handlers

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kinlabs/kin-paymaster/internal/auth"
	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/helpers"
	"github.com/kinlabs/kin-paymaster/internal/paymaster"
	"github.com/kinlabs/kin-paymaster/internal/services"
)

// PaymasterHandler handles forward, claim and introspection operations
type PaymasterHandler struct {
	common *CommonServices
}

// NewPaymasterHandler creates a new PaymasterHandler instance
func NewPaymasterHandler(common *CommonServices) *PaymasterHandler {
	return &PaymasterHandler{common: common}
}

// ForwardRequest is the request body for deposit and withdrawal forwarding.
// Amounts are base-10 wei strings. The relayer fee is taken at face value
// beyond the underflow guard; bounding it is the calling relayer's
// responsibility.
type ForwardRequest struct {
	UserAddress string `json:"user_address" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	RelayerFee  string `json:"relayer_fee" binding:"required"`
}

// ForwardResponse reports the settled split of a forwarded operation
type ForwardResponse struct {
	Object        string   `json:"object"`
	RelayerAddr   string   `json:"relayer_address"`
	UserAddr      string   `json:"user_address"`
	Amount        string   `json:"amount"`
	Royalty       string   `json:"royalty"`
	RelayerFee    string   `json:"relayer_fee"`
	Net           string   `json:"net"`
	RoyaltyTxHash string   `json:"royalty_tx_hash,omitempty"`
	VaultTxHash   string   `json:"vault_tx_hash,omitempty"`
	UserTxHash    string   `json:"user_tx_hash,omitempty"`
	EventIDs      []string `json:"event_ids"`
}

// ClaimResponse reports a settled fee claim
type ClaimResponse struct {
	Object  string `json:"object"`
	Relayer string `json:"relayer_address"`
	Amount  string `json:"amount"`
	TxHash  string `json:"tx_hash"`
	EventID string `json:"event_id"`
}

// CreditResponse reports a relayer's outstanding claimable balance
type CreditResponse struct {
	Object  string `json:"object"`
	Relayer string `json:"relayer_address"`
	Amount  string `json:"amount"`
}

// ConfigResponse exposes the immutable paymaster parameters
type ConfigResponse struct {
	Object      string `json:"object"`
	Keeper      string `json:"keeper"`
	TargetVault string `json:"target_vault"`
	RoyaltyBps  uint64 `json:"royalty_bps"`
}

// SolvencyResponse compares the treasury balance with outstanding credits
type SolvencyResponse struct {
	Object             string `json:"object"`
	TreasuryBalance    string `json:"treasury_balance"`
	OutstandingCredits string `json:"outstanding_credits"`
	Solvent            bool   `json:"solvent"`
}

// EventResponse is one persisted fact record
type EventResponse struct {
	ID             string `json:"id"`
	Object         string `json:"object"`
	EventType      string `json:"event_type"`
	RelayerAddress string `json:"relayer_address"`
	UserAddress    string `json:"user_address,omitempty"`
	Amount         string `json:"amount"`
	Royalty        string `json:"royalty"`
	RelayerFee     string `json:"relayer_fee"`
	Net            string `json:"net"`
	TxHash         string `json:"tx_hash,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

// parseForwardRequest validates the request body and the caller's relayer
// identity, returning everything a forward operation needs.
func (h *PaymasterHandler) parseForwardRequest(c *gin.Context) (relayer, user common.Address, amount, fee *big.Int, ok bool) {
	var req ForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	relayerAddr, hasRelayer := auth.RelayerAddress(c)
	if !hasRelayer {
		sendError(c, http.StatusForbidden, "Relayer API key required", nil)
		return
	}

	if !helpers.IsAddressValid(req.UserAddress) {
		sendError(c, http.StatusBadRequest, "Invalid user address", nil)
		return
	}

	amountInt, valid := helpers.ParseAmount(req.Amount)
	if !valid {
		sendError(c, http.StatusBadRequest, "Invalid amount", nil)
		return
	}
	feeInt, valid := helpers.ParseAmount(req.RelayerFee)
	if !valid {
		sendError(c, http.StatusBadRequest, "Invalid relayer fee", nil)
		return
	}

	return common.HexToAddress(relayerAddr), common.HexToAddress(req.UserAddress),
		amountInt, feeInt, true
}

// forwardErrorStatus maps operation failures to HTTP statuses
func forwardErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, paymaster.ErrInsufficientAmount):
		return http.StatusUnprocessableEntity, "Amount insufficient to cover royalty and relayer fee"
	case errors.Is(err, paymaster.ErrNothingToClaim):
		return http.StatusConflict, "No relayer fees to claim"
	case errors.Is(err, paymaster.ErrExternalCall):
		return http.StatusBadGateway, "External transfer failed, operation rolled back"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// DepositFor godoc
// @Summary Forward a deposit
// @Description Skims the royalty to the keeper, accrues the relayer fee and forwards the net amount into the vault
// @Tags paymaster
// @Accept json
// @Produce json
// @Param request body ForwardRequest true "Deposit details"
// @Success 201 {object} ForwardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /paymaster/deposits [post]
func (h *PaymasterHandler) DepositFor(c *gin.Context) {
	relayer, user, amount, fee, ok := h.parseForwardRequest(c)
	if !ok {
		return
	}

	result, err := h.common.paymaster.DepositFor(c.Request.Context(), relayer, user, amount, fee)
	if err != nil {
		status, msg := forwardErrorStatus(err)
		sendError(c, status, msg, err)
		return
	}

	sendSuccess(c, http.StatusCreated, toForwardResponse(relayer, user, result))
}

// WithdrawFor godoc
// @Summary Forward a withdrawal
// @Description Releases the gross amount from the vault, skims the royalty, accrues the relayer fee and pays the net amount to the user
// @Tags paymaster
// @Accept json
// @Produce json
// @Param request body ForwardRequest true "Withdrawal details"
// @Success 201 {object} ForwardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /paymaster/withdrawals [post]
func (h *PaymasterHandler) WithdrawFor(c *gin.Context) {
	relayer, user, amount, fee, ok := h.parseForwardRequest(c)
	if !ok {
		return
	}

	result, err := h.common.paymaster.WithdrawFor(c.Request.Context(), relayer, user, amount, fee)
	if err != nil {
		status, msg := forwardErrorStatus(err)
		sendError(c, status, msg, err)
		return
	}

	sendSuccess(c, http.StatusCreated, toForwardResponse(relayer, user, result))
}

// ClaimRelayerFees godoc
// @Summary Claim accrued relayer fees
// @Description Pays out the caller's entire accrued fee balance and zeroes the ledger entry
// @Tags paymaster
// @Produce json
// @Success 200 {object} ClaimResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /paymaster/claims [post]
func (h *PaymasterHandler) ClaimRelayerFees(c *gin.Context) {
	relayerAddr, hasRelayer := auth.RelayerAddress(c)
	if !hasRelayer {
		sendError(c, http.StatusForbidden, "Relayer API key required", nil)
		return
	}
	relayer := common.HexToAddress(relayerAddr)

	result, err := h.common.paymaster.ClaimRelayerFees(c.Request.Context(), relayer)
	if err != nil {
		status, msg := forwardErrorStatus(err)
		sendError(c, status, msg, err)
		return
	}

	sendSuccess(c, http.StatusOK, ClaimResponse{
		Object:  "claim",
		Relayer: relayer.Hex(),
		Amount:  result.Amount.String(),
		TxHash:  result.TxHash,
		EventID: result.EventID.String(),
	})
}

// GetRelayerCredit godoc
// @Summary Get the caller's outstanding credit balance
// @Tags paymaster
// @Produce json
// @Success 200 {object} CreditResponse
// @Security ApiKeyAuth
// @Router /paymaster/credits [get]
func (h *PaymasterHandler) GetRelayerCredit(c *gin.Context) {
	relayerAddr, hasRelayer := auth.RelayerAddress(c)
	if !hasRelayer {
		sendError(c, http.StatusForbidden, "Relayer API key required", nil)
		return
	}
	relayer := common.HexToAddress(relayerAddr)

	balance, err := h.common.paymaster.GetRelayerCredit(c.Request.Context(), relayer)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to read credit balance", err)
		return
	}

	sendSuccess(c, http.StatusOK, CreditResponse{
		Object:  "credit",
		Relayer: relayer.Hex(),
		Amount:  balance.String(),
	})
}

// GetConfig godoc
// @Summary Get the paymaster configuration
// @Tags paymaster
// @Produce json
// @Success 200 {object} ConfigResponse
// @Security ApiKeyAuth
// @Router /paymaster/config [get]
func (h *PaymasterHandler) GetConfig(c *gin.Context) {
	cfg := h.common.paymaster.Config()
	sendSuccess(c, http.StatusOK, ConfigResponse{
		Object:      "config",
		Keeper:      cfg.Keeper.Hex(),
		TargetVault: cfg.TargetVault.Hex(),
		RoyaltyBps:  cfg.RoyaltyBps,
	})
}

// GetSolvency godoc
// @Summary Compare the treasury balance with outstanding relayer credits
// @Tags paymaster
// @Produce json
// @Success 200 {object} SolvencyResponse
// @Failure 502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /paymaster/solvency [get]
func (h *PaymasterHandler) GetSolvency(c *gin.Context) {
	report, err := h.common.paymaster.Solvency(c.Request.Context())
	if err != nil {
		status, msg := forwardErrorStatus(err)
		sendError(c, status, msg, err)
		return
	}

	sendSuccess(c, http.StatusOK, SolvencyResponse{
		Object:             "solvency",
		TreasuryBalance:    report.TreasuryBalance.String(),
		OutstandingCredits: report.OutstandingCredits.String(),
		Solvent:            report.Solvent,
	})
}

// ListEvents godoc
// @Summary List persisted fact records
// @Tags paymaster
// @Produce json
// @Param event_type query string false "Filter by event type"
// @Param relayer query string false "Filter by relayer address"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Page offset"
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /paymaster/events [get]
func (h *PaymasterHandler) ListEvents(c *gin.Context) {
	limit := parseQueryInt(c, "limit", 50)
	offset := parseQueryInt(c, "offset", 0)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var (
		rows []db.PaymasterEvent
		err  error
	)
	if relayer := c.Query("relayer"); relayer != "" {
		if !helpers.IsAddressValid(relayer) {
			sendError(c, http.StatusBadRequest, "Invalid relayer address", nil)
			return
		}
		rows, err = h.common.db.ListPaymasterEventsByRelayer(c.Request.Context(), db.ListPaymasterEventsByRelayerParams{
			RelayerAddress: common.HexToAddress(relayer).Hex(),
			Limit:          int32(limit),
			Offset:         int32(offset),
		})
	} else {
		rows, err = h.common.db.ListPaymasterEvents(c.Request.Context(), db.ListPaymasterEventsParams{
			EventType: c.Query("event_type"),
			Limit:     int32(limit),
			Offset:    int32(offset),
		})
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	items := make([]EventResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toEventResponse(row))
	}
	sendList(c, items)
}

func toForwardResponse(relayer, user common.Address, result *services.ForwardResult) ForwardResponse {
	ids := make([]string, 0, len(result.EventIDs))
	for _, id := range result.EventIDs {
		ids = append(ids, id.String())
	}
	return ForwardResponse{
		Object:        "forward",
		RelayerAddr:   relayer.Hex(),
		UserAddr:      user.Hex(),
		Amount:        result.Split.Amount.String(),
		Royalty:       result.Split.Royalty.String(),
		RelayerFee:    result.Split.RelayerFee.String(),
		Net:           result.Split.Net.String(),
		RoyaltyTxHash: result.RoyaltyTxHash,
		VaultTxHash:   result.VaultTxHash,
		UserTxHash:    result.UserTxHash,
		EventIDs:      ids,
	}
}

func toEventResponse(row db.PaymasterEvent) EventResponse {
	resp := EventResponse{
		ID:             row.ID.String(),
		Object:         "event",
		EventType:      row.EventType,
		RelayerAddress: row.RelayerAddress,
		Amount:         numericString(row.Amount),
		Royalty:        numericString(row.RoyaltyAmount),
		RelayerFee:     numericString(row.RelayerFee),
		Net:            numericString(row.NetAmount),
	}
	if row.UserAddress.Valid {
		resp.UserAddress = row.UserAddress.String
	}
	if row.TxHash.Valid {
		resp.TxHash = row.TxHash.String
	}
	if row.CreatedAt.Valid {
		resp.CreatedAt = row.CreatedAt.Time.Unix()
	}
	return resp
}

func numericString(n pgtype.Numeric) string {
	v, err := db.NumericToBigInt(n)
	if err != nil {
		return "0"
	}
	return v.String()
}

func parseQueryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
