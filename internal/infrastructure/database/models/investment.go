package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Investment struct {
	ID                   string            `json:"id" gorm:"primaryKey;type:uuid"`
	ProtectedDataAddress string            `json:"protectedDataAddress" gorm:"type:text;uniqueIndex;not null"`
	CollectionID         string            `json:"collectionId" gorm:"type:text;not null"`
	Name                 string            `json:"name" gorm:"type:text;not null"`
	Description          *string           `json:"description,omitempty" gorm:"type:text"`
	Price                decimal.Decimal   `json:"price" gorm:"type:numeric;not null;default:0"`
	CreatorID            string            `json:"creatorId" gorm:"type:uuid;index;not null"`
	Creator              User              `json:"creator" gorm:"foreignKey:CreatorID"`
	Allocations          []TokenAllocation `json:"tokenAllocations,omitempty" gorm:"foreignKey:InvestmentID;constraint:OnDelete:CASCADE;"`
	CDate                time.Time         `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate                time.Time         `json:"mdate" gorm:"autoUpdateTime"`
}

type TokenAllocation struct {
	InvestmentID string          `json:"investmentId" gorm:"primaryKey;type:uuid"`
	Position     int             `json:"position" gorm:"primaryKey"`
	Symbol       string          `json:"symbol" gorm:"type:text;not null"`
	Percentage   decimal.Decimal `json:"percentage" gorm:"type:numeric;not null"`
}
