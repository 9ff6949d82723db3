// Package model defines the supply item and movement types tracked by the inventory.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors for Item and Movement.
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrEmptyUnit          = errors.New("unit cannot be empty")
	ErrEmptySupplier      = errors.New("supplier cannot be empty")
	ErrMissingExpiry      = errors.New("expiry date must be set")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrUnknownKind        = errors.New("unknown movement kind")
	ErrInconsistentLedger = errors.New("quantity does not match movement history")
)

// MovementKind tells whether a movement adds or removes quantity.
type MovementKind string

// Movement kinds.
const (
	Inflow  MovementKind = "inflow"
	Outflow MovementKind = "outflow"
)

// Valid reports whether k is a known movement kind.
func (k MovementKind) Valid() bool {
	return k == Inflow || k == Outflow
}

// Movement is one recorded inflow or outflow of an item.
type Movement struct {
	Kind   MovementKind    `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	Date   Date            `json:"date"`
}

// Item is a tracked agricultural supply.
//
// Quantity always equals the sum of inflow amounts minus the sum of
// outflow amounts in History. History is append-only.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Expiry   Date            `json:"expiry"`
	Supplier string          `json:"supplier"`
	History  []Movement      `json:"history"`
}

// NewItem builds an item holding quantity, seeded with a single inflow dated on.
func NewItem(name string, quantity decimal.Decimal, unit string, expiry Date, supplier string, on Date) (*Item, error) {
	item := &Item{
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		Unit:     strings.TrimSpace(unit),
		Expiry:   expiry,
		Supplier: strings.TrimSpace(supplier),
		History:  []Movement{{Kind: Inflow, Amount: quantity, Date: on}},
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks field values and the quantity/history invariant.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}

	if strings.TrimSpace(i.Unit) == "" {
		return ErrEmptyUnit
	}

	if strings.TrimSpace(i.Supplier) == "" {
		return ErrEmptySupplier
	}

	if i.Expiry.IsZero() {
		return ErrMissingExpiry
	}

	for idx, m := range i.History {
		if !m.Kind.Valid() {
			return fmt.Errorf("movement %d: %w: %q", idx, ErrUnknownKind, m.Kind)
		}
		if !m.Amount.IsPositive() {
			return fmt.Errorf("movement %d: %w", idx, ErrNonPositiveAmount)
		}
	}

	if !i.Balance().Equal(i.Quantity) {
		return fmt.Errorf("%w: quantity %s, history %s", ErrInconsistentLedger, i.Quantity, i.Balance())
	}

	if i.Quantity.IsNegative() {
		return ErrInsufficientStock
	}

	return nil
}

// Balance recomputes the quantity from the movement history.
func (i *Item) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, m := range i.History {
		switch m.Kind {
		case Inflow:
			total = total.Add(m.Amount)
		case Outflow:
			total = total.Sub(m.Amount)
		}
	}
	return total
}

// Restock adds amount to the item and records an inflow dated on.
func (i *Item) Restock(amount decimal.Decimal, on Date) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	i.Quantity = i.Quantity.Add(amount)
	i.History = append(i.History, Movement{Kind: Inflow, Amount: amount, Date: on})

	return nil
}

// Withdraw removes amount from the item and records an outflow dated on.
// The item is left untouched when amount exceeds the current quantity.
func (i *Item) Withdraw(amount decimal.Decimal, on Date) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	if amount.GreaterThan(i.Quantity) {
		return fmt.Errorf("%w: requested %s, available %s %s", ErrInsufficientStock, amount, i.Quantity, i.Unit)
	}

	i.Quantity = i.Quantity.Sub(amount)
	i.History = append(i.History, Movement{Kind: Outflow, Amount: amount, Date: on})

	return nil
}

// MovementsSince returns the movements dated on or after from, in history order.
func (i *Item) MovementsSince(from Date) []Movement {
	var out []Movement
	for _, m := range i.History {
		if !m.Date.Before(from) {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	c.History = append([]Movement(nil), i.History...)
	return &c
}
