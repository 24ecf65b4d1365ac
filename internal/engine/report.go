package engine

import (
	"sort"

	"go-stockbook/internal/model"

	"github.com/shopspring/decimal"
)

// Report aggregates the state of the whole inventory for the dashboard
// and the console report screen.
type Report struct {
	TotalProducts     int             `json:"total_products"`
	TotalTransactions int             `json:"total_transactions"`
	CumulativeProfit  decimal.Decimal `json:"cumulative_profit"`
	UnitsInStock      int             `json:"units_in_stock"`
	StockCostValue    decimal.Decimal `json:"stock_cost_value"`
	TopMargin         *MarginEntry    `json:"top_margin,omitempty"`
	LowStock          []LowStockEntry `json:"low_stock,omitempty"`
	BestSeller        *BestSeller     `json:"best_seller,omitempty"`
}

type MarginEntry struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Margin    decimal.Decimal `json:"margin"`
}

type LowStockEntry struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
}

// BestSeller is the product with the highest cumulative outbound
// quantity, keyed by the name recorded on the transactions. Ties go to
// the lexicographically smaller name.
type BestSeller struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

// BuildReport computes the aggregate report from a consistent snapshot of
// the current state.
func (e *Engine) BuildReport() *Report {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r := &Report{
		TotalProducts:     len(e.products),
		TotalTransactions: len(e.transactions),
		CumulativeProfit:  e.cumulativeProfit,
		StockCostValue:    decimal.Zero,
	}

	for _, p := range e.sortedProductsLocked() {
		r.UnitsInStock += p.StockQuantity
		r.StockCostValue = r.StockCostValue.Add(p.StockValue())

		if margin := p.ProfitMargin(); r.TopMargin == nil || margin.GreaterThan(r.TopMargin.Margin) {
			r.TopMargin = &MarginEntry{ProductID: p.ID, Name: p.Name, Margin: margin}
		}
		if p.StockQuantity <= LowStockThreshold {
			r.LowStock = append(r.LowStock, LowStockEntry{
				ProductID: p.ID,
				Name:      p.Name,
				Units:     p.StockQuantity,
			})
		}
	}

	r.BestSeller = e.bestSellerLocked()
	return r
}

func (e *Engine) bestSellerLocked() *BestSeller {
	sold := make(map[string]int)
	for _, tx := range e.transactions {
		if tx.Kind == model.KindOutbound {
			sold[tx.ProductName] += tx.Quantity
		}
	}
	if len(sold) == 0 {
		return nil
	}

	names := make([]string, 0, len(sold))
	for name := range sold {
		names = append(names, name)
	}
	sort.Strings(names)

	best := &BestSeller{Name: names[0], Units: sold[names[0]]}
	for _, name := range names[1:] {
		if sold[name] > best.Units {
			best = &BestSeller{Name: name, Units: sold[name]}
		}
	}
	return best
}
