package cartsync

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeSize maps the "no size variant" spellings onto a single identity
// key: empty and whitespace-only sizes compare equal.
func NormalizeSize(size string) string {
	return strings.TrimSpace(size)
}

// Merge folds candidate into items. An existing entry with the same
// (product, size) identity absorbs the candidate's quantity; the price and
// product snapshot of the first add win. Otherwise the candidate is appended
// with a freshly generated local id. Merge never fails, and it is not
// idempotent on quantity: repeated adds of the same candidate keep
// accumulating, which is exactly what repeated add-to-cart clicks should do.
func Merge(items []LineItem, candidate LineItem) []LineItem {
	size := NormalizeSize(candidate.Size)
	for i := range items {
		if items[i].Product.ID == candidate.Product.ID && NormalizeSize(items[i].Size) == size {
			items[i].Quantity += candidate.Quantity
			return items
		}
	}
	candidate.Size = size
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	return append(items, candidate)
}
