package domain

import (
	"github.com/shopspring/decimal"
)

// Investment is a published, purchasable reference to an externally
// protected portfolio strategy.
type Investment struct {
	ID                   string            `json:"id"`
	ProtectedDataAddress string            `json:"protectedDataAddress"`
	CollectionID         string            `json:"collectionId"`
	Name                 string            `json:"name"`
	Description          *string           `json:"description,omitempty"`
	Price                decimal.Decimal   `json:"price"`
	CreatorID            string            `json:"creatorId"`
	Creator              *User             `json:"creator,omitempty"`
	Allocations          []TokenAllocation `json:"tokenAllocations,omitempty"`
	PurchaseCount        int64             `json:"purchaseCount"`
}

// TokenAllocation is one slice of a portfolio breakdown. Order matters;
// the position within Investment.Allocations is preserved on storage.
type TokenAllocation struct {
	Symbol     string          `json:"symbol"`
	Percentage decimal.Decimal `json:"percentage"`
}
