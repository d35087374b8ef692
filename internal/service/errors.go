package service

import (
	"errors"
	"fmt"
)

// Error classes. Every domain error unwraps to exactly one of these so
// callers (the HTTP layer) can map a whole class with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrStateConflict = errors.New("state conflict")
)

// Resource names used in NotFoundError.
const (
	ResourceProduct    = "product"
	ResourceCustomer   = "customer"
	ResourceSale       = "sale"
	ResourceDebtCredit = "debt/credit record"
)

// NotFoundError reports a missing product, customer, sale or ledger record.
type NotFoundError struct {
	Resource string
	ID       int64
	Key      string // natural key (barcode) when the lookup was not by id
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
	}
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError reports a structural input violation caught before any
// persistence.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StateConflictError reports an operation that is well-formed but not
// allowed in the record's current state.
type StateConflictError struct {
	Reason string
}

func (e *StateConflictError) Error() string { return e.Reason }

func (e *StateConflictError) Unwrap() error { return ErrStateConflict }

var (
	ErrEmptyCart = &ValidationError{Field: "items", Reason: "sale must contain at least one item"}

	ErrAlreadyPaid       = &StateConflictError{Reason: "debt/credit is already fully paid"}
	ErrOverpayment       = &StateConflictError{Reason: "payment amount cannot exceed remaining amount"}
	ErrInsufficientStock = &StateConflictError{Reason: "insufficient stock"}
	ErrConcurrentUpdate  = &StateConflictError{Reason: "record was modified concurrently, retry the operation"}
)

func productNotFound(id int64) error  { return &NotFoundError{Resource: ResourceProduct, ID: id} }
func customerNotFound(id int64) error { return &NotFoundError{Resource: ResourceCustomer, ID: id} }
