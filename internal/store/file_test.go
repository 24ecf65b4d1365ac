package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-stockbook/internal/model"

	"github.com/shopspring/decimal"
)

func sampleState() *model.State {
	registered := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &model.State{
		Products: []model.Product{
			{
				ID:            1,
				Name:          "Widget",
				StockQuantity: 12,
				CostPrice:     decimal.RequireFromString("5.00"),
				SalePrice:     decimal.RequireFromString("8.00"),
				RegisteredAt:  registered,
			},
			{
				ID:            3,
				Name:          "Gadget",
				StockQuantity: 0,
				CostPrice:     decimal.RequireFromString("2.25"),
				SalePrice:     decimal.RequireFromString("4.75"),
				RegisteredAt:  registered.Add(time.Hour),
			},
		},
		Transactions: []model.Transaction{
			{
				ID:          1,
				ProductID:   1,
				ProductName: "Widget",
				Kind:        model.KindOutbound,
				Quantity:    3,
				UnitValue:   decimal.RequireFromString("8.00"),
				Profit:      decimal.RequireFromString("9.00"),
				Timestamp:   registered.Add(2 * time.Hour),
			},
		},
		CumulativeProfit:  decimal.RequireFromString("9.00"),
		NextProductID:     4,
		NextTransactionID: 2,
	}
}

func assertStatesEqual(t *testing.T, got, want *model.State) {
	t.Helper()

	if got.NextProductID != want.NextProductID || got.NextTransactionID != want.NextTransactionID {
		t.Fatalf("counters = %d/%d, want %d/%d",
			got.NextProductID, got.NextTransactionID, want.NextProductID, want.NextTransactionID)
	}
	if !got.CumulativeProfit.Equal(want.CumulativeProfit) {
		t.Fatalf("profit = %s, want %s", got.CumulativeProfit, want.CumulativeProfit)
	}
	if len(got.Products) != len(want.Products) {
		t.Fatalf("products = %d, want %d", len(got.Products), len(want.Products))
	}
	for i := range want.Products {
		g, w := got.Products[i], want.Products[i]
		if g.ID != w.ID || g.Name != w.Name || g.StockQuantity != w.StockQuantity {
			t.Fatalf("product %d = %+v, want %+v", i, g, w)
		}
		if !g.CostPrice.Equal(w.CostPrice) || !g.SalePrice.Equal(w.SalePrice) {
			t.Fatalf("product %d prices = %s/%s, want %s/%s", i, g.CostPrice, g.SalePrice, w.CostPrice, w.SalePrice)
		}
		if !g.RegisteredAt.Equal(w.RegisteredAt) {
			t.Fatalf("product %d registered_at = %s, want %s", i, g.RegisteredAt, w.RegisteredAt)
		}
	}
	if len(got.Transactions) != len(want.Transactions) {
		t.Fatalf("transactions = %d, want %d", len(got.Transactions), len(want.Transactions))
	}
	for i := range want.Transactions {
		g, w := got.Transactions[i], want.Transactions[i]
		if g.ID != w.ID || g.ProductID != w.ProductID || g.ProductName != w.ProductName ||
			g.Kind != w.Kind || g.Quantity != w.Quantity {
			t.Fatalf("transaction %d = %+v, want %+v", i, g, w)
		}
		if !g.UnitValue.Equal(w.UnitValue) || !g.Profit.Equal(w.Profit) {
			t.Fatalf("transaction %d values = %s/%s, want %s/%s", i, g.UnitValue, g.Profit, w.UnitValue, w.Profit)
		}
		if !g.Timestamp.Equal(w.Timestamp) {
			t.Fatalf("transaction %d timestamp = %s, want %s", i, g.Timestamp, w.Timestamp)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	want := sampleState()
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertStatesEqual(t, got, want)
}

func TestFileStoreMissingFileIsEmptyState(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "never-written.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	state, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.Products) != 0 || len(state.Transactions) != 0 {
		t.Fatalf("missing file should be empty state: %+v", state)
	}
	if state.NextProductID != 1 || state.NextTransactionID != 1 {
		t.Fatalf("counters = %d/%d, want 1/1", state.NextProductID, state.NextTransactionID)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("expected error on corrupt file")
	}
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Save(model.NewState()); err != nil {
		t.Fatalf("save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, _ := NewFileStore(path)

	if err := s.Save(sampleState()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	empty := model.NewState()
	if err := s.Save(empty); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Products) != 0 {
		t.Fatalf("overwrite left %d products behind", len(got.Products))
	}
	// no temp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file not cleaned up by rename")
	}
}

func TestFileStoreEmptyPathRejected(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
