package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/nexuscart/nexuscart/internal/models"
	"github.com/nexuscart/nexuscart/internal/repository"
	"github.com/nexuscart/nexuscart/internal/sender"
)

const orderCreatedTemplate = `<html><body>
<h2>Thanks for your order!</h2>
<p>Order <strong>{{.OrderID}}</strong> has been received and is being processed.</p>
<p>{{.ItemCount}} item(s), total ${{printf "%.2f" .Total}}.</p>
</body></html>`

const newsletterWelcomeTemplate = `<html><body>
<h2>Welcome to the NexusCart newsletter!</h2>
<p>You'll hear from us when new drops land. Unsubscribe any time.</p>
</body></html>`

var (
	orderCreatedTmpl      = template.Must(template.New("order_created").Parse(orderCreatedTemplate))
	newsletterWelcomeTmpl = template.Must(template.New("newsletter_welcome").Parse(newsletterWelcomeTemplate))
)

// NotificationService turns broker events into emails and records every
// delivery attempt.
type NotificationService struct {
	repo   repository.NotificationRepository
	emails sender.EmailSender
	log    *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, emails sender.EmailSender, log *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, emails: emails, log: log}
}

// HandleOrderCreated sends the order confirmation email.
func (s *NotificationService) HandleOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error {
	if event.Email == "" {
		s.log.Warn("order event without email, skipping",
			zap.String("order_id", event.OrderID))
		return nil
	}

	var buf bytes.Buffer
	if err := orderCreatedTmpl.Execute(&buf, event); err != nil {
		return fmt.Errorf("render order email: %w", err)
	}

	return s.deliver(ctx, event.Email, models.TypeOrderCreated, "Order confirmed!", buf.String())
}

// HandleNewsletterSubscribed sends the welcome email.
func (s *NotificationService) HandleNewsletterSubscribed(ctx context.Context, event models.NewsletterSubscribedEvent) error {
	var buf bytes.Buffer
	if err := newsletterWelcomeTmpl.Execute(&buf, event); err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}

	return s.deliver(ctx, event.Email, models.TypeNewsletterSubscribed, "Welcome to NexusCart", buf.String())
}

// GetLogs pages through the delivery log.
func (s *NotificationService) GetLogs(ctx context.Context, filter models.NotificationFilter) ([]models.NotificationLog, int64, error) {
	return s.repo.GetLogs(ctx, filter)
}

func (s *NotificationService) deliver(ctx context.Context, to, eventType, subject, body string) error {
	entry := &models.NotificationLog{
		Recipient: to,
		Type:      eventType,
		Channel:   models.ChannelEmail,
		Status:    models.StatusSent,
	}

	_, sendErr := s.emails.SendEmail(ctx, to, subject, body)
	if sendErr != nil {
		entry.Status = models.StatusFailed
		entry.Error = sendErr.Error()
		s.log.Error("email delivery failed",
			zap.String("recipient", to),
			zap.String("type", eventType),
			zap.Error(sendErr))
	} else {
		s.log.Info("email delivered",
			zap.String("recipient", to),
			zap.String("type", eventType))
	}

	if err := s.repo.SaveLog(ctx, entry); err != nil {
		s.log.Error("failed to record notification log", zap.Error(err))
	}
	return sendErr
}
