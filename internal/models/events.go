package models

import "time"

// OrderCreatedEvent is published after a successful checkout or direct
// order creation; the worker turns it into a confirmation email.
type OrderCreatedEvent struct {
	Event     string    `json:"event"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewsletterSubscribedEvent is published on signup; the worker sends the
// welcome email.
type NewsletterSubscribedEvent struct {
	Event     string    `json:"event"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}
