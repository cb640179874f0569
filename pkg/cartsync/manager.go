package cartsync

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager is the reconciliation policy. It owns the in-memory cart, keeps it
// persisted through a Store, and decides per mutation whether the operation
// is authoritative-remote (credential present: call the mirror and adopt its
// response) or local-only. Remote failures of the network/not-found kind
// degrade to the identical local mutation; the error is still returned so
// the caller can observe the degradation without blocking on it.
//
// Unlike the single-threaded UI runtime this logic came from, Manager is
// safe for concurrent use: a mutex guards every read-modify-write over the
// cart and its persistence.
type Manager struct {
	mu      sync.Mutex
	store   Store
	mirror  Mirror
	tokens  TokenSource
	pricing Pricing
	log     *zap.Logger

	cart Cart
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithPricing overrides the checkout constants.
func WithPricing(p Pricing) Option {
	return func(m *Manager) { m.pricing = p }
}

// NewManager loads the persisted cart (empty on missing or malformed data)
// and returns a ready manager.
func NewManager(store Store, mirror Mirror, tokens TokenSource, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		mirror:  mirror,
		tokens:  tokens,
		pricing: DefaultPricing(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cart = store.Load()
	return m
}

// Cart returns a copy of the current cart.
func (m *Manager) Cart() Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.clone()
}

// Totals computes the checkout summary for the current cart.
func (m *Manager) Totals() Totals {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ComputeTotals(m.cart.Items, m.pricing)
}

func (m *Manager) authenticated() bool {
	return m.tokens != nil && m.tokens.Token() != ""
}

// Sync fetches the server cart and replaces local state with it. Anonymous
// clients keep their local cart untouched.
func (m *Manager) Sync(ctx context.Context) error {
	if !m.authenticated() {
		return nil
	}

	remote, err := m.mirror.FetchCart(ctx)
	if err != nil {
		m.log.Warn("cart sync failed, keeping local state", zap.Error(err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.adoptLocked(remote)
	return nil
}

// AddToCart adds quantity units of a product/size to the cart, merging with
// an existing line item of the same identity. An out-of-stock answer from
// the server blocks; network trouble degrades to a local add.
func (m *Manager) AddToCart(ctx context.Context, product ProductSnapshot, size string, quantity int) (Cart, error) {
	if product.ID == "" || quantity < 1 {
		return m.Cart(), ErrValidation
	}

	if m.authenticated() {
		remote, err := m.mirror.AddItem(ctx, product.ID, quantity, NormalizeSize(size))
		if err == nil {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.adoptLocked(remote)
			return m.cart.clone(), nil
		}
		if !fallbackKind(err) {
			return m.Cart(), err
		}
		m.log.Warn("remote add failed, applying locally",
			zap.String("product_id", product.ID), zap.Error(err))
		cart, _ := m.addLocally(product, size, quantity)
		return cart, err
	}

	return m.addLocally(product, size, quantity)
}

func (m *Manager) addLocally(product ProductSnapshot, size string, quantity int) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart.Items = Merge(m.cart.Items, LineItem{
		Product:  product,
		Quantity: quantity,
		Size:     size,
		Price:    product.Price,
	})
	m.persistLocked()
	return m.cart.clone(), nil
}

// UpdateQuantity replaces a line item's quantity. Quantities below 1 are
// rejected without touching any state.
func (m *Manager) UpdateQuantity(ctx context.Context, itemID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return m.Cart(), ErrValidation
	}

	if m.authenticated() {
		remote, err := m.mirror.SetItemQuantity(ctx, itemID, quantity)
		if err == nil {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.adoptLocked(remote)
			return m.cart.clone(), nil
		}
		if !fallbackKind(err) {
			return m.Cart(), err
		}
		m.log.Warn("remote quantity update failed, applying locally",
			zap.String("item_id", itemID), zap.Error(err))
		cart, _ := m.updateLocally(itemID, quantity)
		return cart, err
	}

	return m.updateLocally(itemID, quantity)
}

func (m *Manager) updateLocally(itemID string, quantity int) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cart.Items {
		if m.cart.Items[i].ID == itemID {
			m.cart.Items[i].Quantity = quantity
			m.persistLocked()
			return m.cart.clone(), nil
		}
	}
	return m.cart.clone(), ErrNotFound
}

// RemoveItem deletes a line item by id.
func (m *Manager) RemoveItem(ctx context.Context, itemID string) (Cart, error) {
	if m.authenticated() {
		remote, err := m.mirror.RemoveItem(ctx, itemID)
		if err == nil {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.adoptLocked(remote)
			return m.cart.clone(), nil
		}
		if !fallbackKind(err) {
			return m.Cart(), err
		}
		m.log.Warn("remote remove failed, applying locally",
			zap.String("item_id", itemID), zap.Error(err))
		cart, _ := m.removeLocally(itemID)
		return cart, err
	}

	return m.removeLocally(itemID)
}

func (m *Manager) removeLocally(itemID string) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.cart.Items[:0]
	for _, item := range m.cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	m.cart.Items = kept
	m.persistLocked()
	return m.cart.clone(), nil
}

// Clear empties the cart.
func (m *Manager) Clear(ctx context.Context) (Cart, error) {
	if m.authenticated() {
		_, err := m.mirror.Clear(ctx)
		if err != nil && !fallbackKind(err) {
			return m.Cart(), err
		}
		if err != nil {
			m.log.Warn("remote clear failed, clearing locally", zap.Error(err))
		}
		cart, _ := m.clearLocally()
		return cart, err
	}

	return m.clearLocally()
}

func (m *Manager) clearLocally() (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart.Items = []LineItem{}
	m.persistLocked()
	return m.cart.clone(), nil
}

// Checkout submits the cart as an order. There is no local fallback for
// placing an order: anonymous carts and remote failures surface as errors
// the caller should turn into a retry prompt. On success the local cart is
// cleared.
func (m *Manager) Checkout(ctx context.Context, shippingAddress, paymentMethod string) (Order, error) {
	m.mu.Lock()
	empty := len(m.cart.Items) == 0
	m.mu.Unlock()
	if empty {
		return Order{}, ErrEmptyCart
	}
	if !m.authenticated() {
		return Order{}, ErrUnauthenticated
	}

	order, err := m.mirror.Checkout(ctx, shippingAddress, paymentMethod)
	if err != nil {
		m.log.Warn("checkout failed", zap.Error(err))
		return Order{}, err
	}

	m.mu.Lock()
	m.cart.Items = []LineItem{}
	m.persistLocked()
	m.mu.Unlock()

	m.log.Info("order placed",
		zap.String("order_id", order.ID), zap.Float64("total", order.Total))
	return order, nil
}

// Login is the Anonymous -> Authenticated transition: the server cart
// replaces local state, and anything added while anonymous is discarded.
func (m *Manager) Login(ctx context.Context) error {
	remote, err := m.mirror.FetchCart(ctx)
	if err != nil {
		m.log.Warn("cart fetch on login failed", zap.Error(err))
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.adoptLocked(remote)
	return nil
}

// Logout is the Authenticated -> Anonymous transition: the local cart is
// wiped so it never leaks across identities.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart.Items = []LineItem{}
	m.persistLocked()
}

// adoptLocked replaces local state with the server's representation.
// Callers hold m.mu.
func (m *Manager) adoptLocked(remote Cart) {
	if remote.Items == nil {
		remote.Items = []LineItem{}
	}
	m.cart = remote
	m.persistLocked()
}

// persistLocked writes through to the store. A failed persist is logged and
// otherwise ignored: the in-memory cart stays correct and the next
// successful save catches up.
func (m *Manager) persistLocked() {
	if err := m.store.Save(m.cart); err != nil {
		m.log.Warn("cart persist failed", zap.Error(err))
	}
}
