package store

import (
	"fmt"
	"strconv"

	"go-stockbook/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	keyCumulativeProfit  = "cumulative_profit"
	keyNextProductID     = "next_product_id"
	keyNextTransactionID = "next_transaction_id"
)

// configEntry holds profit and the id counters as string-encoded values,
// one row per key.
type configEntry struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value string `gorm:"not null"`
}

func (configEntry) TableName() string {
	return "config"
}

// PostgresStore persists the snapshot in three tables: products,
// transactions and config. Save replaces all three inside one database
// transaction, so the store is never left partially updated.
type PostgresStore struct {
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}, &configEntry{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load() (*model.State, error) {
	state := model.NewState()

	if err := s.db.Order("id").Find(&state.Products).Error; err != nil {
		return nil, err
	}
	if err := s.db.Order("id").Find(&state.Transactions).Error; err != nil {
		return nil, err
	}

	var entries []configEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return nil, err
	}
	for _, entry := range entries {
		switch entry.Key {
		case keyCumulativeProfit:
			v, err := decimal.NewFromString(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("config %s: %w", entry.Key, err)
			}
			state.CumulativeProfit = v
		case keyNextProductID:
			v, err := strconv.Atoi(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("config %s: %w", entry.Key, err)
			}
			state.NextProductID = v
		case keyNextTransactionID:
			v, err := strconv.Atoi(entry.Value)
			if err != nil {
				return nil, fmt.Errorf("config %s: %w", entry.Key, err)
			}
			state.NextTransactionID = v
		}
	}
	if state.NextProductID < 1 {
		state.NextProductID = 1
	}
	if state.NextTransactionID < 1 {
		state.NextTransactionID = 1
	}
	return state, nil
}

func (s *PostgresStore) Save(state *model.State) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transactions").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM products").Error; err != nil {
			return err
		}
		if len(state.Products) > 0 {
			if err := tx.Create(&state.Products).Error; err != nil {
				return err
			}
		}
		if len(state.Transactions) > 0 {
			if err := tx.Create(&state.Transactions).Error; err != nil {
				return err
			}
		}

		entries := []configEntry{
			{Key: keyCumulativeProfit, Value: state.CumulativeProfit.String()},
			{Key: keyNextProductID, Value: strconv.Itoa(state.NextProductID)},
			{Key: keyNextTransactionID, Value: strconv.Itoa(state.NextTransactionID)},
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&entries).Error
	})
}
