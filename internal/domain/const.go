package domain

const (
	RequesterAddressCtxKey = "fn-requesterAddress"
	RequesterProvenCtxKey  = "fn-requesterProven"
)

const (
	WalletAddressHeader = "x-wallet-address"
)

const (
	RoleInvestor = "INVESTOR"
	RoleUser     = "USER"
)

// IsValidRole reports whether role is one of the registrable roles.
func IsValidRole(role string) bool {
	return role == RoleInvestor || role == RoleUser
}

const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusConfirmed = "CONFIRMED"
	TransactionStatusFailed    = "FAILED"
)

// IsValidTransactionStatus reports whether status is a known tracking state.
func IsValidTransactionStatus(status string) bool {
	switch status {
	case TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusFailed:
		return true
	default:
		return false
	}
}
