package models

import "time"

// ProductRef is the catalog snapshot embedded in a cart item, captured when
// the item is added so later catalog edits don't alter carts in progress.
type ProductRef struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// CartItem is one line of a server-held cart. IDs are assigned by the
// server when the item is first added.
type CartItem struct {
	ID       string     `json:"_id"`
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
	Size     string     `json:"size"`
	Price    float64    `json:"price"`
}

// Cart is the server-held cart document, one per user, stored as JSON in
// Redis under cart:user:<id>.
type Cart struct {
	UserID    string     `json:"-"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AddItemRequest is the add-to-cart body.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

// UpdateItemRequest is the quantity-update body.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the cart checkout body.
type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}
