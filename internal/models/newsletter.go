package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email          string             `bson:"email" json:"email"`
	IsActive       bool               `bson:"is_active" json:"isActive"`
	SubscribedAt   time.Time          `bson:"subscribed_at" json:"subscribedAt"`
	UnsubscribedAt *time.Time         `bson:"unsubscribed_at,omitempty" json:"unsubscribedAt,omitempty"`
}

// NewsletterStats is the admin stats view.
type NewsletterStats struct {
	TotalSubscribers  int64        `json:"totalSubscribers"`
	TotalUnsubscribed int64        `json:"totalUnsubscribed"`
	RecentSubscribers []Subscriber `json:"recentSubscribers"`
}
