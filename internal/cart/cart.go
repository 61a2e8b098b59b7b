// Package cart keeps a session's cart or favorites as a set of products,
// persisted to client-side storage after every change.
package cart

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"unitrade_backend/internal/storage"
	"unitrade_backend/models"
)

const (
	CartKey      = "cart"
	FavoritesKey = "favorites"

	formatVersion = 1
)

type persisted struct {
	Version int              `json:"version"`
	Items   []models.Product `json:"items"`
}

// Lookup resolves a product id to its current record.
type Lookup func(id uint) (models.Product, bool)

// Store is a set of products keyed by id, kept in insertion order.
type Store struct {
	mu      sync.Mutex
	key     string
	backend storage.Store
	lookup  Lookup
	items   []models.Product
}

type Option func(*Store)

// WithLookup makes Items and Total read live product data instead of the snapshot taken on Add.
func WithLookup(lookup Lookup) Option {
	return func(s *Store) { s.lookup = lookup }
}

// Open rehydrates the store saved under key. Malformed state is discarded and the store starts empty.
func Open(backend storage.Store, key string, opts ...Option) *Store {
	s := &Store{key: key, backend: backend}
	for _, opt := range opts {
		opt(s)
	}

	items, err := s.restore()
	if err != nil {
		log.Printf("Discarding stored %s: %v", key, err)
		if err := backend.Delete(key); err != nil {
			log.Printf("Failed to clear stored %s: %v", key, err)
		}
		items = nil
	}
	s.items = items
	return s
}

func OpenCart(backend storage.Store, opts ...Option) *Store {
	return Open(backend, CartKey, opts...)
}

func OpenFavorites(backend storage.Store, opts ...Option) *Store {
	return Open(backend, FavoritesKey, opts...)
}

func (s *Store) restore() ([]models.Product, error) {
	data, ok, err := s.backend.Get(s.key)
	if err != nil || !ok {
		return nil, err
	}

	var blob persisted
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if blob.Version != formatVersion {
		return nil, fmt.Errorf("unsupported version %d", blob.Version)
	}

	seen := make(map[uint]bool, len(blob.Items))
	for _, item := range blob.Items {
		if item.ID == 0 {
			return nil, fmt.Errorf("item without id")
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate item %d", item.ID)
		}
		seen[item.ID] = true
	}
	return blob.Items, nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(persisted{Version: formatVersion, Items: s.items})
	if err != nil {
		return err
	}
	if err := s.backend.Set(s.key, data); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) indexOf(id uint) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Add inserts p unless a product with the same id is already present.
func (s *Store) Add(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(p.ID) >= 0 {
		return nil
	}
	s.items = append(s.items, p)
	return s.persist()
}

func (s *Store) Remove(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return s.persist()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist()
}

func (s *Store) Contains(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns the entries in insertion order.
func (s *Store) Items() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, s.resolve(item))
	}
	return out
}

// Total sums the prices of the entries, computed on every call.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, item := range s.items {
		total += s.resolve(item).Price
	}
	return total
}

func (s *Store) resolve(item models.Product) models.Product {
	if s.lookup == nil {
		return item
	}
	if live, ok := s.lookup(item.ID); ok {
		return live
	}
	return item
}
