package sender

import (
	"context"
	"time"
)

// SendResult identifies a delivered message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender delivers one email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}
