// Package cart is the client-local cart persistence: a JSON array of items
// under a well-known key, with a read-only migration path from the legacy
// single-item key.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"
)

const (
	// StorageKey holds the cart as a JSON array. All writes use this form.
	StorageKey = "cart"

	// legacyItemKey held a single cart item in older sessions. It is read
	// as a fallback when the array key is absent, never written.
	legacyItemKey = "cartItem"
)

// KV is the client-local key/value persistence the cart rides on.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Color    string  `json:"color,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// Store reads and mutates the persisted cart.
type Store struct {
	mu sync.Mutex
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Items returns the persisted cart, falling back to the legacy single-item
// key when the array key is absent.
func (s *Store) Items() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items()
}

func (s *Store) items() ([]Item, error) {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}
	if ok {
		var items []Item
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decoding cart: %w", err)
		}
		return items, nil
	}

	raw, ok, err = s.kv.Get(legacyItemKey)
	if err != nil {
		return nil, fmt.Errorf("reading legacy cart item: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var item Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decoding legacy cart item: %w", err)
	}
	return []Item{item}, nil
}

// Add merges the item into the cart: an existing entry with the same id
// gains quantity, otherwise the item is appended. The write always uses
// the array form, completing the legacy migration as a side effect.
func (s *Store) Add(item Item) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.items()
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	return s.write(items)
}

// Clear empties the cart. The checkout flow calls this exactly once, on a
// successful payment.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(StorageKey); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	if err := s.kv.Delete(legacyItemKey); err != nil {
		return fmt.Errorf("clearing legacy cart item: %w", err)
	}
	return nil
}

func (s *Store) write(items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.kv.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("writing cart: %w", err)
	}
	return nil
}
