package cartsync

import "errors"

// Error kinds surfaced by the reconciliation policy. Remote failures are
// always wrapped in one of these; a raw transport or decode error never
// reaches the caller.
var (
	// ErrValidation marks input rejected before any network call
	// (quantity below 1, missing product id).
	ErrValidation = errors.New("cartsync: invalid input")

	// ErrNetwork covers timeouts, connectivity failures and unexpected
	// server errors. Mutations fall back to local state on this kind.
	ErrNetwork = errors.New("cartsync: network failure")

	// ErrNotFound means the server has no such cart or item. Treated like
	// ErrNetwork for fallback purposes.
	ErrNotFound = errors.New("cartsync: not found")

	// ErrOutOfStock blocks an add; there is no local fallback for it.
	ErrOutOfStock = errors.New("cartsync: product out of stock")

	// ErrEmptyCart blocks a checkout against an empty cart.
	ErrEmptyCart = errors.New("cartsync: cart is empty")

	// ErrUnauthenticated blocks operations that cannot run without a
	// credential, such as checkout.
	ErrUnauthenticated = errors.New("cartsync: not authenticated")
)

// fallbackKind reports whether a remote failure should degrade to a local
// mutation instead of blocking the caller.
func fallbackKind(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrNotFound)
}
