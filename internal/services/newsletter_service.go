package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/nexuscart/nexuscart/internal/apperrors"
	"github.com/nexuscart/nexuscart/internal/models"
)

// SubscriberStore is the newsletter persistence the service needs.
type SubscriberStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Create(ctx context.Context, sub *models.Subscriber) error
	Update(ctx context.Context, sub *models.Subscriber) error
	CountByActive(ctx context.Context, active bool) (int64, error)
	RecentActive(ctx context.Context, limit int64) ([]models.Subscriber, error)
}

// NewsletterService handles signups and unsubscribes.
type NewsletterService struct {
	subscribers SubscriberStore
	publisher   EventPublisher
	topic       string
	log         *zap.Logger
}

func NewNewsletterService(subscribers SubscriberStore, publisher EventPublisher, topic string, log *zap.Logger) *NewsletterService {
	return &NewsletterService{subscribers: subscribers, publisher: publisher, topic: topic, log: log}
}

// Subscribe signs an email up. A previously unsubscribed address is
// reactivated; an already-active one is rejected.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.BadRequest("A valid email is required")
	}

	existing, err := s.subscribers.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return nil, apperrors.New(http.StatusConflict, "Email is already subscribed", nil)
	case err == nil:
		existing.IsActive = true
		existing.SubscribedAt = time.Now().UTC()
		existing.UnsubscribedAt = nil
		if err := s.subscribers.Update(ctx, existing); err != nil {
			return nil, apperrors.Internal("Failed to subscribe", err)
		}
		s.publishSubscribed(ctx, email)
		return existing, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		sub := &models.Subscriber{
			Email:        email,
			IsActive:     true,
			SubscribedAt: time.Now().UTC(),
		}
		if err := s.subscribers.Create(ctx, sub); err != nil {
			return nil, apperrors.Internal("Failed to subscribe", err)
		}
		s.publishSubscribed(ctx, email)
		return sub, nil
	default:
		return nil, apperrors.Internal("Failed to subscribe", err)
	}
}

// Unsubscribe deactivates an address, keeping the record for stats.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	sub, err := s.subscribers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Email is not subscribed")
		}
		return apperrors.Internal("Failed to unsubscribe", err)
	}
	if !sub.IsActive {
		return apperrors.NotFound("Email is not subscribed")
	}

	now := time.Now().UTC()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	if err := s.subscribers.Update(ctx, sub); err != nil {
		return apperrors.Internal("Failed to unsubscribe", err)
	}
	return nil
}

// Stats returns subscriber counts plus the latest signups.
func (s *NewsletterService) Stats(ctx context.Context) (*models.NewsletterStats, error) {
	active, err := s.subscribers.CountByActive(ctx, true)
	if err != nil {
		return nil, apperrors.Internal("Failed to load stats", err)
	}
	inactive, err := s.subscribers.CountByActive(ctx, false)
	if err != nil {
		return nil, apperrors.Internal("Failed to load stats", err)
	}
	recent, err := s.subscribers.RecentActive(ctx, 10)
	if err != nil {
		return nil, apperrors.Internal("Failed to load stats", err)
	}
	return &models.NewsletterStats{
		TotalSubscribers:  active,
		TotalUnsubscribed: inactive,
		RecentSubscribers: recent,
	}, nil
}

func (s *NewsletterService) publishSubscribed(ctx context.Context, email string) {
	event := models.NewsletterSubscribedEvent{
		Event:     models.TypeNewsletterSubscribed,
		Email:     email,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.topic, email, event); err != nil {
		s.log.Warn("failed to publish newsletter event",
			zap.String("email", email), zap.Error(err))
	}
}
