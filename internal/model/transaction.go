package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindInbound  TransactionKind = "IN"
	KindOutbound TransactionKind = "OUT"
)

// Transaction is an immutable stock movement record. ProductName is a
// snapshot taken at transaction time; it is not kept in sync with later
// renames, and the record survives deletion of the product.
type Transaction struct {
	ID          int             `gorm:"primaryKey" json:"id"`
	ProductID   int             `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(100);not null" json:"product_name"`
	Kind        TransactionKind `gorm:"type:varchar(10);not null" json:"kind"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitValue   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_value"`
	Profit      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"profit"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (Transaction) TableName() string {
	return "transactions"
}
