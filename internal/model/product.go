package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxNameLength caps product names at registration and edit time.
const MaxNameLength = 100

var oneHundred = decimal.NewFromInt(100)

type Product struct {
	ID            int             `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	CostPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"cost_price"`
	SalePrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"sale_price"`
	RegisteredAt  time.Time       `json:"registered_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProfitMargin returns the margin as a percentage of the sale price,
// or zero when the sale price is not positive.
func (p *Product) ProfitMargin() decimal.Decimal {
	if !p.SalePrice.IsPositive() {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.CostPrice).Div(p.SalePrice).Mul(oneHundred)
}

// UnitProfit is the profit realized per unit sold at the current prices.
func (p *Product) UnitProfit() decimal.Decimal {
	return p.SalePrice.Sub(p.CostPrice)
}

// StockValue is the cost-value of the units currently on hand.
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}
