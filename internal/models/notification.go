package models

import "time"

// Notification channels and outcomes.
const (
	ChannelEmail = "email"

	StatusSent   = "sent"
	StatusFailed = "failed"

	TypeOrderCreated         = "order_created"
	TypeNewsletterSubscribed = "newsletter_subscribed"
)

// NotificationLog is one delivery attempt, appended by the worker to
// Postgres.
type NotificationLog struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Recipient string    `json:"recipient"`
	Type      string    `json:"type"`
	Channel   string    `json:"channel"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NotificationFilter pages through the log.
type NotificationFilter struct {
	Status   string
	Type     string
	Page     int
	PageSize int
}
