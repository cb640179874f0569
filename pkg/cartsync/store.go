package cartsync

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// storeFileName is the fixed key the cart is persisted under, the same slot
// name the storefront has always used.
const storeFileName = "nexuscart-cart.json"

// Store is the durable local slot the cart survives restarts in. Load must
// never fail: missing or malformed data degrades to an empty cart. Save is
// called synchronously after every mutation; cart writes are user-paced and
// tiny, so there is no batching.
type Store interface {
	Load() Cart
	Save(cart Cart) error
}

// FileStore persists the cart as a JSON document in a directory, one file
// per device-local cart.
type FileStore struct {
	path string
}

// NewFileStore returns a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, storeFileName)}, nil
}

func (s *FileStore) Load() Cart {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Cart{Items: []LineItem{}}
	}
	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return Cart{Items: []LineItem{}}
	}
	if cart.Items == nil {
		cart.Items = []LineItem{}
	}
	return cart
}

func (s *FileStore) Save(cart Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// MemoryStore keeps the cart in memory only. Useful in tests and for
// embedders that handle persistence themselves.
type MemoryStore struct {
	cart   Cart
	loaded bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() Cart {
	if !s.loaded {
		return Cart{Items: []LineItem{}}
	}
	return s.cart.clone()
}

func (s *MemoryStore) Save(cart Cart) error {
	s.cart = cart.clone()
	s.loaded = true
	return nil
}
