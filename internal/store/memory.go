package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vyrodovalexey/agrostock/internal/model"
)

// MemoryStore implements Store with an ordered in-memory slice.
type MemoryStore struct {
	mu    sync.RWMutex
	items []*model.Item
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make([]*model.Item, 0),
	}
}

// List returns copies of all items in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, *item.Clone())
	}

	return items, nil
}

// Get retrieves an item by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	key, err := lookupKey(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(key)
	if idx < 0 {
		return nil, ErrNotFound
	}

	return s.items[idx].Clone(), nil
}

// Create adds a new item and returns it with a generated ID.
func (s *MemoryStore) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	if item == nil {
		return nil, fmt.Errorf("create item: %w", ErrNilItem)
	}

	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(NameKey(item.Name)) >= 0 {
		return nil, fmt.Errorf("create item %q: %w", item.Name, ErrAlreadyExists)
	}

	newItem := item.Clone()
	newItem.ID = uuid.New().String()
	s.items = append(s.items, newItem)

	return newItem.Clone(), nil
}

// Restock records an inflow of amount for the named item.
func (s *MemoryStore) Restock(
	ctx context.Context,
	name string,
	amount decimal.Decimal,
	on model.Date,
) (*model.Item, error) {
	return s.mutate(ctx, "restock item", name, func(item *model.Item) error {
		return item.Restock(amount, on)
	})
}

// Withdraw records an outflow of amount for the named item.
// The item is unchanged when amount exceeds its quantity.
func (s *MemoryStore) Withdraw(
	ctx context.Context,
	name string,
	amount decimal.Decimal,
	on model.Date,
) (*model.Item, error) {
	return s.mutate(ctx, "withdraw item", name, func(item *model.Item) error {
		return item.Withdraw(amount, on)
	})
}

// Update applies a patch to the named item's editable fields.
func (s *MemoryStore) Update(ctx context.Context, name string, patch Patch) (*model.Item, error) {
	if patch.Expiry == nil && patch.Supplier == nil {
		return nil, fmt.Errorf("update item: %w", ErrEmptyPatch)
	}

	return s.mutate(ctx, "update item", name, func(item *model.Item) error {
		if patch.Expiry != nil {
			item.Expiry = *patch.Expiry
		}
		if patch.Supplier != nil {
			item.Supplier = strings.TrimSpace(*patch.Supplier)
		}
		return item.Validate()
	})
}

// Delete removes the named item and its history.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	key, err := lookupKey(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(key)
	if idx < 0 {
		return ErrNotFound
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)

	return nil
}

// mutate runs fn against a copy of the named item and commits the copy only
// when fn succeeds, so a rejected change leaves the stored item untouched.
func (s *MemoryStore) mutate(
	ctx context.Context,
	op string,
	name string,
	fn func(*model.Item) error,
) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	key, err := lookupKey(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(key)
	if idx < 0 {
		return nil, ErrNotFound
	}

	working := s.items[idx].Clone()
	if err := fn(working); err != nil {
		return nil, fmt.Errorf("%s %q: %w", op, working.Name, err)
	}

	s.items[idx] = working

	return working.Clone(), nil
}

// indexOf returns the position of the item with the given key, or -1.
// Callers must hold s.mu.
func (s *MemoryStore) indexOf(key string) int {
	for i, item := range s.items {
		if NameKey(item.Name) == key {
			return i
		}
	}
	return -1
}

func lookupKey(name string) (string, error) {
	key := NameKey(name)
	if key == "" {
		return "", ErrInvalidName
	}
	return key, nil
}
