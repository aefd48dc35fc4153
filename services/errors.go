package services

import (
	"errors"
	"fmt"
)

// Business-rule failures. Controllers translate these into HTTP codes;
// nothing here knows about gin.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUnauthorized        = errors.New("you do not have access to this resource")
	ErrOutOfStock          = errors.New("insufficient stock")
	ErrEmptyCart           = errors.New("your cart is empty")
	ErrInvalidTransition   = errors.New("order cannot move to that status")
	ErrAlreadyReviewed     = errors.New("you have already reviewed this product")
	ErrNotPurchased        = errors.New("you can only review products you have purchased and received")
	ErrDuplicateCredential = errors.New("username or email already registered")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// ErrStorage marks database failures, as opposed to business-rule
// violations. The surrounding transaction guarantees no partial writes.
var ErrStorage = errors.New("storage error")

// InsufficientStockError carries the item name so checkout can tell the
// customer exactly which line no longer fits.
type InsufficientStockError struct {
	ItemName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ItemName)
}

func storageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
