package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexuscart/nexuscart/internal/models"
)

// CartRepository stores one cart document per user in Redis, JSON-encoded,
// expiring after the configured TTL of inactivity.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

func (r *CartRepository) key(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// GetCart returns the user's cart, or nil when none exists yet.
func (r *CartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	cart.UserID = userID
	return &cart, nil
}

// SaveCart writes the cart back, refreshing its TTL.
func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(cart.UserID), data, r.ttl).Err()
}

// DeleteCart drops the user's cart document entirely.
func (r *CartRepository) DeleteCart(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}
