// Package store provides inventory storage interfaces and implementations.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/vyrodovalexey/agrostock/internal/model"
)

// Store errors.
var (
	ErrNotFound      = errors.New("item not found")
	ErrAlreadyExists = errors.New("item already exists")
	ErrInvalidName   = errors.New("invalid item name")
	ErrNilItem       = errors.New("item cannot be nil")
	ErrEmptyPatch    = errors.New("patch has no fields to change")
)

// Patch lists the editable item fields. Nil fields are left unchanged.
type Patch struct {
	Expiry   *model.Date
	Supplier *string
}

// Store defines the interface for inventory operations.
// Items are addressed by name, compared case-insensitively.
type Store interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Get retrieves an item by name.
	Get(ctx context.Context, name string) (*model.Item, error)

	// Create adds a new item and returns it with a generated ID.
	Create(ctx context.Context, item *model.Item) (*model.Item, error)

	// Restock records an inflow of amount for the named item.
	Restock(ctx context.Context, name string, amount decimal.Decimal, on model.Date) (*model.Item, error)

	// Withdraw records an outflow of amount for the named item.
	Withdraw(ctx context.Context, name string, amount decimal.Decimal, on model.Date) (*model.Item, error)

	// Update applies a patch to the named item's editable fields.
	Update(ctx context.Context, name string, patch Patch) (*model.Item, error)

	// Delete removes the named item and its history.
	Delete(ctx context.Context, name string) error
}

// NameKey returns the lookup key for an item name.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
