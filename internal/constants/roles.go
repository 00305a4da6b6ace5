package constants

// API key roles
const (
	RoleAdmin   = "admin"
	RoleRelayer = "relayer"
)

// Paymaster event types
const (
	EventTypeRoyaltyPaid       = "royalty_paid"
	EventTypeDepositForwarded  = "deposit_forwarded"
	EventTypeWithdrawForwarded = "withdraw_forwarded"
	EventTypeFeesClaimed       = "fees_claimed"
)

// Basis point scale: 10000 bps == 100%
const BpsDenominator = 10000
