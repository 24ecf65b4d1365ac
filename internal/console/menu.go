package console

import (
	"fmt"
	"io"

	"go-stockbook/internal/engine"
	"go-stockbook/internal/model"

	"github.com/shopspring/decimal"
)

const historyPageSize = 20

// Menu drives the engine through a numbered menu, one operation per
// choice. The engine saves state after every mutation, so the menu only
// translates input and renders results.
type Menu struct {
	engine *engine.Engine
	prompt *Prompter
	out    io.Writer
}

func NewMenu(e *engine.Engine, in io.Reader, out io.Writer) *Menu {
	return &Menu{engine: e, prompt: NewPrompter(in, out), out: out}
}

func (m *Menu) Run() {
	for {
		fmt.Fprintln(m.out, "\n=== STOCKBOOK ===")
		fmt.Fprintln(m.out, "[1] Register new product")
		fmt.Fprintln(m.out, "[2] Stock inbound")
		fmt.Fprintln(m.out, "[3] Stock outbound (sale)")
		fmt.Fprintln(m.out, "[4] List products")
		fmt.Fprintln(m.out, "[5] Find product")
		fmt.Fprintln(m.out, "[6] Edit product")
		fmt.Fprintln(m.out, "[7] Delete product")
		fmt.Fprintln(m.out, "[8] Reports")
		fmt.Fprintln(m.out, "[9] Transaction history")
		fmt.Fprintln(m.out, "[0] Exit")

		choice, ok := m.prompt.NonNegativeInt("\nChoose an option")
		if !ok {
			return
		}

		switch choice {
		case 1:
			m.registerProduct()
		case 2:
			m.stockInbound()
		case 3:
			m.stockOutbound()
		case 4:
			m.listProducts()
		case 5:
			m.findProduct()
		case 6:
			m.editProduct()
		case 7:
			m.deleteProduct()
		case 8:
			m.showReport()
		case 9:
			m.showHistory()
		case 0:
			fmt.Fprintln(m.out, "\nBye.")
			return
		default:
			fmt.Fprintln(m.out, "Invalid option, pick 0-9.")
		}
	}
}

func (m *Menu) registerProduct() {
	fmt.Fprintln(m.out, "\n=== REGISTER NEW PRODUCT ===")

	name, ok := m.prompt.RequiredText("Product name")
	if !ok {
		return
	}
	if m.engine.HasProductNamed(name) {
		fmt.Fprintln(m.out, "! A product with this name already exists.")
		if !m.prompt.Confirm("Continue anyway?") {
			return
		}
	}

	quantity, ok := m.prompt.NonNegativeInt("Initial quantity")
	if !ok {
		return
	}
	cost, ok := m.prompt.NonNegativeDecimal("Cost price")
	if !ok {
		return
	}
	sale, ok := m.prompt.DecimalGreaterThan("Sale price", cost)
	if !ok {
		return
	}

	product, err := m.engine.RegisterProduct(name, quantity, cost, sale)
	if err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintf(m.out, "\nProduct registered. ID: %d\n", product.ID)
}

func (m *Menu) stockInbound() {
	fmt.Fprintln(m.out, "\n=== STOCK INBOUND ===")
	if !m.listProducts() {
		return
	}

	id, ok := m.prompt.PositiveInt("\nProduct ID")
	if !ok {
		return
	}
	product, err := m.engine.GetProduct(id)
	if err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintf(m.out, "\nSelected: %s\nCurrent stock: %d\n", product.Name, product.StockQuantity)

	quantity, ok := m.prompt.PositiveInt("Quantity to add")
	if !ok {
		return
	}
	tx, err := m.engine.RecordInbound(id, quantity)
	if err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintf(m.out, "\nStock updated: %d -> %d\n", product.StockQuantity, product.StockQuantity+tx.Quantity)
}

func (m *Menu) stockOutbound() {
	fmt.Fprintln(m.out, "\n=== STOCK OUTBOUND (SALE) ===")
	if !m.listProducts() {
		return
	}

	id, ok := m.prompt.PositiveInt("\nProduct ID")
	if !ok {
		return
	}
	product, err := m.engine.GetProduct(id)
	if err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintf(m.out, "\nSelected: %s\nAvailable stock: %d\nSale price: %s\n",
		product.Name, product.StockQuantity, product.SalePrice.StringFixed(2))

	quantity, ok := m.prompt.PositiveInt("Quantity to sell")
	if !ok {
		return
	}

	qty := decimal.NewFromInt(int64(quantity))
	fmt.Fprintln(m.out, "\n--- SALE SUMMARY ---")
	fmt.Fprintf(m.out, "Quantity: %d\n", quantity)
	fmt.Fprintf(m.out, "Total value: %s\n", product.SalePrice.Mul(qty).StringFixed(2))
	fmt.Fprintf(m.out, "Estimated profit: %s\n", product.UnitProfit().Mul(qty).StringFixed(2))

	if !m.prompt.Confirm("\nConfirm sale?") {
		fmt.Fprintln(m.out, "Sale cancelled.")
		return
	}

	res, err := m.engine.RecordOutbound(id, quantity)
	if err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintf(m.out, "\nSale recorded. Profit: %s, stock left: %d\n",
		res.Transaction.Profit.StringFixed(2), res.RemainingStock)
	if res.LowStock {
		fmt.Fprintf(m.out, "! ALERT: low stock for '%s'.\n", res.Transaction.ProductName)
	}
}

func (m *Menu) listProducts() bool {
	fmt.Fprintln(m.out, "\n=== PRODUCTS IN STOCK ===")

	products := m.engine.ListProducts()
	if len(products) == 0 {
		fmt.Fprintln(m.out, "No products registered.")
		return false
	}
	for i := range products {
		fmt.Fprintln(m.out, formatProduct(&products[i]))
	}
	fmt.Fprintf(m.out, "\nTotal products: %d\n", len(products))
	return true
}

func (m *Menu) findProduct() {
	fmt.Fprintln(m.out, "\n=== FIND PRODUCT ===")

	term, ok := m.prompt.RequiredText("Name or part of the name")
	if !ok {
		return
	}
	results := m.engine.FindProducts(term)
	if len(results) == 0 {
		fmt.Fprintln(m.out, "No products found.")
		return
	}
	fmt.Fprintf(m.out, "\nFound %d product(s):\n", len(results))
	for i := range results {
		fmt.Fprintln(m.out, formatProduct(&results[i]))
	}
}

func (m *Menu) editProduct() {
	fmt.Fprintln(m.out, "\n=== EDIT PRODUCT ===")
	if !m.listProducts() {
		return
	}

	id, ok := m.prompt.PositiveInt("\nProduct ID to edit")
	if !ok {
		return
	}
	product, err := m.engine.GetProduct(id)
	if err != nil {
		m.showError(err)
		return
	}

	fmt.Fprintf(m.out, "\nEditing: %s\n", product.Name)
	fmt.Fprintln(m.out, "[1] Change name")
	fmt.Fprintln(m.out, "[2] Change cost price")
	fmt.Fprintln(m.out, "[3] Change sale price")
	fmt.Fprintln(m.out, "[0] Cancel")

	choice, ok := m.prompt.NonNegativeInt("\nChoose")
	if !ok {
		return
	}

	var upd engine.ProductUpdate
	switch choice {
	case 1:
		name, ok := m.prompt.RequiredText("New name")
		if !ok {
			return
		}
		upd.Name = &name
	case 2:
		cost, ok := m.prompt.NonNegativeDecimal("New cost price")
		if !ok {
			return
		}
		upd.CostPrice = &cost
	case 3:
		sale, ok := m.prompt.DecimalGreaterThan("New sale price", product.CostPrice)
		if !ok {
			return
		}
		upd.SalePrice = &sale
	case 0:
		fmt.Fprintln(m.out, "Edit cancelled.")
		return
	default:
		fmt.Fprintln(m.out, "Invalid option.")
		return
	}

	if _, err := m.engine.UpdateProduct(id, upd); err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintln(m.out, "\nProduct updated.")
}

func (m *Menu) deleteProduct() {
	fmt.Fprintln(m.out, "\n=== DELETE PRODUCT ===")
	if !m.listProducts() {
		return
	}

	id, ok := m.prompt.PositiveInt("\nProduct ID to delete")
	if !ok {
		return
	}
	product, err := m.engine.GetProduct(id)
	if err != nil {
		m.showError(err)
		return
	}

	if product.StockQuantity > 0 {
		fmt.Fprintf(m.out, "! This product still has %d units in stock.\n", product.StockQuantity)
	}
	if !m.prompt.Confirm(fmt.Sprintf("\nConfirm deletion of '%s'?", product.Name)) {
		fmt.Fprintln(m.out, "Deletion cancelled.")
		return
	}

	if _, err := m.engine.DeleteProduct(id); err != nil {
		m.showError(err)
		return
	}
	fmt.Fprintln(m.out, "\nProduct deleted.")
}

func (m *Menu) showReport() {
	fmt.Fprintln(m.out, "\n=== REPORTS ===")

	r := m.engine.BuildReport()
	fmt.Fprintf(m.out, "Cumulative profit: %s\n", r.CumulativeProfit.StringFixed(2))
	fmt.Fprintf(m.out, "Registered products: %d\n", r.TotalProducts)
	fmt.Fprintf(m.out, "Transactions: %d\n", r.TotalTransactions)

	if r.TotalProducts > 0 {
		fmt.Fprintf(m.out, "Units in stock: %d\n", r.UnitsInStock)
		fmt.Fprintf(m.out, "Stock cost value: %s\n", r.StockCostValue.StringFixed(2))
	}
	if r.TopMargin != nil {
		fmt.Fprintf(m.out, "\nHighest margin: %s (%s%%)\n", r.TopMargin.Name, r.TopMargin.Margin.StringFixed(1))
	}
	if len(r.LowStock) > 0 {
		fmt.Fprintln(m.out, "\n! Low-stock products (<=5):")
		for _, item := range r.LowStock {
			fmt.Fprintf(m.out, "  - %s: %d units\n", item.Name, item.Units)
		}
	}
	if r.BestSeller != nil {
		fmt.Fprintf(m.out, "\nBest seller: %s (%d units)\n", r.BestSeller.Name, r.BestSeller.Units)
	}
}

func (m *Menu) showHistory() {
	fmt.Fprintln(m.out, "\n=== TRANSACTION HISTORY ===")

	transactions := m.engine.ListTransactions(historyPageSize)
	if len(transactions) == 0 {
		fmt.Fprintln(m.out, "No transactions recorded.")
		return
	}

	fmt.Fprintf(m.out, "Showing the last %d transactions:\n\n", len(transactions))
	for i := range transactions {
		fmt.Fprintln(m.out, formatTransaction(&transactions[i]))
	}
	fmt.Fprintf(m.out, "\nTotal transactions: %d\n", m.engine.TransactionCount())
}

func (m *Menu) showError(err error) {
	fmt.Fprintf(m.out, "\nError: %v\n", err)
}

func formatProduct(p *model.Product) string {
	return fmt.Sprintf("ID: %d | %s | Stock: %d | Cost: %s | Sale: %s | Margin: %s%%",
		p.ID, p.Name, p.StockQuantity,
		p.CostPrice.StringFixed(2), p.SalePrice.StringFixed(2), p.ProfitMargin().StringFixed(1))
}

func formatTransaction(t *model.Transaction) string {
	kind := "INBOUND"
	if t.Kind == model.KindOutbound {
		kind = "SALE"
	}
	return fmt.Sprintf("[%s] %s | %s | Qty: %d | Value: %s | Profit: %s",
		t.Timestamp.Format("02/01/2006 15:04"), kind, t.ProductName,
		t.Quantity, t.UnitValue.StringFixed(2), t.Profit.StringFixed(2))
}
