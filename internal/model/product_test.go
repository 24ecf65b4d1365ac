package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProfitMargin(t *testing.T) {
	cases := []struct {
		name string
		cost string
		sale string
		want string
	}{
		{"widget margin", "5", "8", "37.5"},
		{"zero sale price", "5", "0", "0"},
		{"free cost", "0", "10", "100"},
		{"thin margin", "99", "100", "1"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := Product{
				CostPrice: decimal.RequireFromString(tc.cost),
				SalePrice: decimal.RequireFromString(tc.sale),
			}
			got := p.ProfitMargin()
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("margin = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStockValue(t *testing.T) {
	p := Product{
		StockQuantity: 12,
		CostPrice:     decimal.RequireFromString("2.50"),
	}
	if got := p.StockValue(); !got.Equal(decimal.RequireFromString("30")) {
		t.Fatalf("stock value = %s, want 30", got)
	}
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	if s.NextProductID != 1 || s.NextTransactionID != 1 {
		t.Fatalf("counters = %d/%d, want 1/1", s.NextProductID, s.NextTransactionID)
	}
	if !s.CumulativeProfit.IsZero() {
		t.Fatalf("cumulative profit = %s, want 0", s.CumulativeProfit)
	}
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.Products = append(s.Products, Product{ID: 1, Name: "Widget"})

	clone := s.Clone()
	clone.Products[0].Name = "Changed"
	clone.NextProductID = 99

	if s.Products[0].Name != "Widget" {
		t.Fatalf("clone mutation leaked into original: %s", s.Products[0].Name)
	}
	if s.NextProductID != 1 {
		t.Fatalf("clone counter mutation leaked: %d", s.NextProductID)
	}
}
