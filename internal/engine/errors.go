// Package engine holds the inventory consistency core: it applies stock
// movements, derives profit and enforces the invariants that keep
// products, history and the running profit total mutually consistent.
package engine

import (
	"errors"
	"fmt"
)

// ValidationError is returned when an input is malformed or out of range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NotFoundError is returned when a referenced product id does not exist.
type NotFoundError struct {
	ProductID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%d", e.ProductID)
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// InsufficientStockError is returned when an outbound quantity exceeds the
// available stock. There is no partial fulfillment.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: product=%d requested=%d available=%d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// PersistenceError wraps a store failure. When it follows a mutation the
// in-memory change is already visible; only durability is uncertain.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	_, ok := target.(*PersistenceError)
	return ok
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError.
func IsInsufficientStockError(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}

// IsPersistenceError checks if an error is a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
