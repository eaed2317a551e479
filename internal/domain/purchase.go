package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase links a user to an investment at the price recorded when the
// purchase was made. Repeated purchases of the same investment are allowed.
type Purchase struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	InvestmentID  string          `json:"investmentId"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CreatedAt     time.Time       `json:"createdAt"`
	Investment    *Investment     `json:"investment,omitempty"`
}
