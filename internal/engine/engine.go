package engine

import (
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go-stockbook/internal/model"
	"go-stockbook/internal/store"
	"go-stockbook/pkg/metrics"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level at or below which a product is
// flagged for attention.
const LowStockThreshold = 5

// Engine owns the in-memory aggregate state for the process lifetime.
// All mutating operations are serialized behind a single write lock, so a
// stock check and the decrement it guards are atomic with respect to other
// mutations. The whole state is saved through the store after every
// mutation; a save failure leaves the in-memory change visible and is
// surfaced as a PersistenceError.
type Engine struct {
	mu sync.RWMutex

	products          map[int]*model.Product
	transactions      []model.Transaction
	cumulativeProfit  decimal.Decimal
	nextProductID     int
	nextTransactionID int

	store store.Store
	log   zerolog.Logger
}

// New builds an Engine from the last saved snapshot. A load failure
// degrades to the empty initial state rather than aborting startup.
func New(st store.Store, log zerolog.Logger) *Engine {
	state, err := st.Load()
	if err != nil {
		log.Warn().Err(err).Msg("state load failed, starting from empty state")
		state = model.NewState()
	}

	e := &Engine{
		products: make(map[int]*model.Product, len(state.Products)),
		store:    st,
		log:      log,
	}
	for i := range state.Products {
		p := state.Products[i]
		e.products[p.ID] = &p
	}
	e.transactions = append([]model.Transaction{}, state.Transactions...)
	e.cumulativeProfit = state.CumulativeProfit
	e.nextProductID = state.NextProductID
	e.nextTransactionID = state.NextTransactionID

	log.Info().
		Int("products", len(e.products)).
		Int("transactions", len(e.transactions)).
		Msg("inventory state loaded")
	metrics.LowStockProducts.Set(float64(e.lowStockCountLocked()))
	return e
}

// RegisterProduct validates and stores a new product, assigning the next
// product id. Duplicate names are accepted; use HasProductNamed when the
// caller wants to warn first.
func (e *Engine) RegisterProduct(name string, quantity int, costPrice, salePrice decimal.Decimal) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if costPrice.IsNegative() {
		return nil, &ValidationError{Field: "cost_price", Reason: "must not be negative"}
	}
	if !salePrice.GreaterThan(costPrice) {
		return nil, &ValidationError{Field: "sale_price", Reason: "must exceed cost price"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p := &model.Product{
		ID:            e.nextProductID,
		Name:          name,
		StockQuantity: quantity,
		CostPrice:     costPrice,
		SalePrice:     salePrice,
		RegisteredAt:  time.Now(),
	}
	e.nextProductID++
	e.products[p.ID] = p

	if err := e.persistLocked("register_product"); err != nil {
		return nil, err
	}
	e.log.Info().Int("product_id", p.ID).Str("name", p.Name).Msg("product registered")
	out := *p
	return &out, nil
}

// RecordInbound adds stock and appends an inbound transaction valued at
// the product's current cost price. Inbound movements carry no profit.
func (e *Engine) RecordInbound(productID, quantity int) (*model.Transaction, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.products[productID]
	if !ok {
		return nil, &NotFoundError{ProductID: productID}
	}

	p.StockQuantity += quantity
	tx := e.appendTransactionLocked(p, model.KindInbound, quantity, p.CostPrice, decimal.Zero)

	if err := e.persistLocked("record_inbound"); err != nil {
		return nil, err
	}
	e.log.Info().
		Int("product_id", p.ID).
		Int("quantity", quantity).
		Int("stock", p.StockQuantity).
		Msg("inbound recorded")
	out := tx
	return &out, nil
}

// OutboundResult is what a completed sale reports back to the caller.
// LowStock is set when the remaining stock is at or below the threshold;
// how to surface it is the adapter's decision.
type OutboundResult struct {
	Transaction    model.Transaction `json:"transaction"`
	RemainingStock int               `json:"remaining_stock"`
	LowStock       bool              `json:"low_stock"`
}

// RecordOutbound removes stock, realizes profit at the current prices and
// appends an outbound transaction. It fails without touching state when
// the requested quantity exceeds the available stock.
func (e *Engine) RecordOutbound(productID, quantity int) (*OutboundResult, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.products[productID]
	if !ok {
		return nil, &NotFoundError{ProductID: productID}
	}
	if quantity > p.StockQuantity {
		return nil, &InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: p.StockQuantity,
		}
	}

	profit := p.UnitProfit().Mul(decimal.NewFromInt(int64(quantity)))
	p.StockQuantity -= quantity
	e.cumulativeProfit = e.cumulativeProfit.Add(profit)
	tx := e.appendTransactionLocked(p, model.KindOutbound, quantity, p.SalePrice, profit)

	if err := e.persistLocked("record_outbound"); err != nil {
		return nil, err
	}
	e.log.Info().
		Int("product_id", p.ID).
		Int("quantity", quantity).
		Int("stock", p.StockQuantity).
		Str("profit", profit.String()).
		Msg("outbound recorded")
	return &OutboundResult{
		Transaction:    tx,
		RemainingStock: p.StockQuantity,
		LowStock:       p.StockQuantity <= LowStockThreshold,
	}, nil
}

// ProductUpdate carries the editable product fields; nil means unchanged.
type ProductUpdate struct {
	Name      *string          `json:"name"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	SalePrice *decimal.Decimal `json:"sale_price"`
}

// UpdateProduct applies the provided fields as one atomic edit. When the
// sale price is part of the edit it is validated against the cost price
// the product will end up with; editing the cost price alone never
// re-checks the existing sale price.
func (e *Engine) UpdateProduct(id int, upd ProductUpdate) (*model.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.products[id]
	if !ok {
		return nil, &NotFoundError{ProductID: id}
	}

	name := p.Name
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
	}
	cost := p.CostPrice
	if upd.CostPrice != nil {
		cost = *upd.CostPrice
		if cost.IsNegative() {
			return nil, &ValidationError{Field: "cost_price", Reason: "must not be negative"}
		}
	}
	if upd.SalePrice != nil && !upd.SalePrice.GreaterThan(cost) {
		return nil, &ValidationError{Field: "sale_price", Reason: "must exceed cost price"}
	}

	p.Name = name
	p.CostPrice = cost
	if upd.SalePrice != nil {
		p.SalePrice = *upd.SalePrice
	}

	if err := e.persistLocked("update_product"); err != nil {
		return nil, err
	}
	e.log.Info().Int("product_id", p.ID).Msg("product updated")
	out := *p
	return &out, nil
}

// DeleteProduct removes a product and returns the removed record so the
// caller can warn about leftover stock. History and cumulative profit are
// untouched: past transactions remain valid records.
func (e *Engine) DeleteProduct(id int) (*model.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.products[id]
	if !ok {
		return nil, &NotFoundError{ProductID: id}
	}
	delete(e.products, id)

	if err := e.persistLocked("delete_product"); err != nil {
		return nil, err
	}
	e.log.Info().Int("product_id", id).Int("stock_left", p.StockQuantity).Msg("product deleted")
	out := *p
	return &out, nil
}

// GetProduct returns a copy of a single product.
func (e *Engine) GetProduct(id int) (*model.Product, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.products[id]
	if !ok {
		return nil, &NotFoundError{ProductID: id}
	}
	out := *p
	return &out, nil
}

// ListProducts returns copies of all products ordered by id.
func (e *Engine) ListProducts() []model.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sortedProductsLocked()
}

// FindProducts returns products whose name contains the term,
// case-insensitively, ordered by id. An empty term matches nothing.
func (e *Engine) FindProducts(term string) []model.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []model.Product
	for _, p := range e.sortedProductsLocked() {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// HasProductNamed reports whether a product with this exact name already
// exists, ignoring case. Registration does not reject duplicates; this
// lets adapters warn and ask before proceeding.
func (e *Engine) HasProductNamed(name string) bool {
	name = strings.TrimSpace(name)

	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, p := range e.products {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// ListTransactions returns the most recent transactions, newest first.
// A limit of zero or less returns the full history.
func (e *Engine) ListTransactions(limit int) []model.Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := len(e.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]model.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, e.transactions[i])
	}
	return out
}

// TransactionCount returns the total number of recorded transactions.
func (e *Engine) TransactionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.transactions)
}

// CumulativeProfit returns the running profit total.
func (e *Engine) CumulativeProfit() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cumulativeProfit
}

func (e *Engine) appendTransactionLocked(p *model.Product, kind model.TransactionKind, quantity int, unitValue, profit decimal.Decimal) model.Transaction {
	tx := model.Transaction{
		ID:          e.nextTransactionID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Kind:        kind,
		Quantity:    quantity,
		UnitValue:   unitValue,
		Profit:      profit,
		Timestamp:   time.Now(),
	}
	e.nextTransactionID++
	e.transactions = append(e.transactions, tx)
	return tx
}

func (e *Engine) sortedProductsLocked() []model.Product {
	out := make([]model.Product, 0, len(e.products))
	for _, p := range e.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (e *Engine) lowStockCountLocked() int {
	n := 0
	for _, p := range e.products {
		if p.StockQuantity <= LowStockThreshold {
			n++
		}
	}
	return n
}

func (e *Engine) snapshotLocked() *model.State {
	return &model.State{
		Products:          e.sortedProductsLocked(),
		Transactions:      append([]model.Transaction{}, e.transactions...),
		CumulativeProfit:  e.cumulativeProfit,
		NextProductID:     e.nextProductID,
		NextTransactionID: e.nextTransactionID,
	}
}

func (e *Engine) persistLocked(op string) error {
	metrics.LowStockProducts.Set(float64(e.lowStockCountLocked()))
	if err := e.store.Save(e.snapshotLocked()); err != nil {
		metrics.Operations.WithLabelValues(op, "persistence_error").Inc()
		e.log.Error().Err(err).Str("operation", op).Msg("state save failed")
		return &PersistenceError{Op: "save", Err: err}
	}
	metrics.Operations.WithLabelValues(op, "ok").Inc()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > model.MaxNameLength {
		return &ValidationError{Field: "name", Reason: "must be at most 100 characters"}
	}
	return nil
}
