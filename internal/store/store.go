// Package store provides the persistence contract for the inventory
// state and its backends: in-memory, JSON file and Postgres.
package store

import "go-stockbook/internal/model"

// Store persists the full inventory snapshot. Load returns the last
// saved state or the empty default when nothing was ever saved; Save
// replaces the stored state wholesale, all-or-nothing.
type Store interface {
	Load() (*model.State, error)
	Save(state *model.State) error
}
