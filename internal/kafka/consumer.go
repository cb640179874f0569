package kafka

import (
	"context"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes one raw event payload.
type Handler func(ctx context.Context, value []byte) error

// Consumer runs a reader loop over one topic within a consumer group.
type Consumer struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, log *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})
	return &Consumer{reader: reader, log: log}
}

// Run reads messages until ctx is cancelled, passing each to handle. Handler
// failures are logged and the loop moves on; the message is not retried.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	c.log.Info("consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group", c.reader.Config().GroupID))

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := handle(ctx, msg.Value); err != nil {
			c.log.Error("event handling failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
