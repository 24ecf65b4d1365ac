package model

import "github.com/shopspring/decimal"

// State is the full durable snapshot exchanged with a store: every
// product, the complete transaction history, the running profit and both
// id counters. It is always loaded and saved wholesale.
type State struct {
	Products          []Product       `json:"products"`
	Transactions      []Transaction   `json:"transactions"`
	CumulativeProfit  decimal.Decimal `json:"cumulative_profit"`
	NextProductID     int             `json:"next_product_id"`
	NextTransactionID int             `json:"next_transaction_id"`
}

// NewState returns the empty default state with both counters at 1.
func NewState() *State {
	return &State{
		Products:          []Product{},
		Transactions:      []Transaction{},
		CumulativeProfit:  decimal.Zero,
		NextProductID:     1,
		NextTransactionID: 1,
	}
}

// Clone returns a deep copy. Decimals are immutable, so copying the
// structs by value is enough.
func (s *State) Clone() *State {
	out := &State{
		Products:          make([]Product, len(s.Products)),
		Transactions:      make([]Transaction, len(s.Transactions)),
		CumulativeProfit:  s.CumulativeProfit,
		NextProductID:     s.NextProductID,
		NextTransactionID: s.NextTransactionID,
	}
	copy(out.Products, s.Products)
	copy(out.Transactions, s.Transactions)
	return out
}
