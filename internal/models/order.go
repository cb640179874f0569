package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses as the storefront uses them.
const (
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a line of a placed order, denormalized so the order renders
// even if the product is later edited or removed.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Size     string             `bson:"size" json:"size"`
	Image    string             `bson:"image" json:"image"`
}

// Order is a submitted order.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	ShippingAddress string             `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// CreateOrderRequest is the direct order-creation body: the client submits
// its computed payload (items plus total).
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items" binding:"required"`
	Total           float64           `json:"total" binding:"required"`
	ShippingAddress string            `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
}

// CreateOrderItem is one line of a direct order-creation payload.
type CreateOrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Image     string  `json:"image"`
}
