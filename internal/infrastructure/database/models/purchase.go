package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Purchase struct {
	ID            string          `json:"id" gorm:"primaryKey;type:uuid"`
	UserID        string          `json:"userId" gorm:"type:uuid;index;not null"`
	User          User            `json:"-" gorm:"foreignKey:UserID"`
	InvestmentID  string          `json:"investmentId" gorm:"type:uuid;index;not null"`
	Investment    Investment      `json:"-" gorm:"foreignKey:InvestmentID"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" gorm:"type:numeric;not null;default:0"`
	CDate         time.Time       `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Transaction struct {
	TxHash string    `json:"txHash" gorm:"primaryKey;type:text"`
	Type   string    `json:"type" gorm:"type:text;not null"`
	Status string    `json:"status" gorm:"type:text;not null"`
	CDate  time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate  time.Time `json:"mdate" gorm:"autoUpdateTime"`
}
