// Package cartsync maintains a shopping cart as an ordered list of line
// items, persisted to a local slot and mirrored best-effort against the
// NexusCart backend. Mutations go through a reconciliation policy: when a
// credential is present the server is the authority and its responses
// replace local state wholesale; otherwise (or when the server is
// unreachable) the same mutation is applied to local state directly.
package cartsync

// ProductSnapshot is the catalog data captured once when an item is added.
// Price changes in the catalog never alter a cart already in progress.
type ProductSnapshot struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category,omitempty"`
}

// LineItem is one cart entry for a product/size combination.
type LineItem struct {
	ID       string          `json:"_id"`
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size"`
	Price    float64         `json:"price"`
}

// Cart is the ordered sequence of line items. Order is insertion order and
// only matters for stable display.
type Cart struct {
	Items []LineItem `json:"items"`
}

// TotalItems returns the summed quantity across all line items.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// clone returns a deep copy so callers can't mutate manager state.
func (c Cart) clone() Cart {
	out := Cart{Items: make([]LineItem, len(c.Items))}
	copy(out.Items, c.Items)
	return out
}

// OrderItem is one line of a submitted order as echoed by the server.
type OrderItem struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Image     string  `json:"image"`
}

// Order is the server's representation of a placed order. The cart core
// only displays it; order lifecycle belongs to the backend.
type Order struct {
	ID              string      `json:"_id"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
}
