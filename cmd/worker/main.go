package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/nexuscart/nexuscart/internal/config"
	"github.com/nexuscart/nexuscart/internal/database"
	"github.com/nexuscart/nexuscart/internal/kafka"
	"github.com/nexuscart/nexuscart/internal/logger"
	"github.com/nexuscart/nexuscart/internal/models"
	"github.com/nexuscart/nexuscart/internal/repository"
	"github.com/nexuscart/nexuscart/internal/sender"
	"github.com/nexuscart/nexuscart/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.ConnectPostgres(cfg, &models.NotificationLog{})
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}

	emails, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUser)
	if err != nil {
		log.Fatal("smtp sender init failed", zap.Error(err))
	}

	notifications := services.NewNotificationService(
		repository.NewNotificationRepository(db), emails, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		cancel()
	}()

	orderConsumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.OrderTopic, cfg.ConsumerGroup, log)
	defer orderConsumer.Close()
	newsletterConsumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.NewsletterTopic, cfg.ConsumerGroup, log)
	defer newsletterConsumer.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := orderConsumer.Run(ctx, func(ctx context.Context, value []byte) error {
			var event models.OrderCreatedEvent
			if err := json.Unmarshal(value, &event); err != nil {
				log.Warn("malformed order event", zap.Error(err))
				return nil
			}
			return notifications.HandleOrderCreated(ctx, event)
		})
		if err != nil {
			log.Error("order consumer stopped", zap.Error(err))
			cancel()
		}
	}()

	go func() {
		defer wg.Done()
		err := newsletterConsumer.Run(ctx, func(ctx context.Context, value []byte) error {
			var event models.NewsletterSubscribedEvent
			if err := json.Unmarshal(value, &event); err != nil {
				log.Warn("malformed newsletter event", zap.Error(err))
				return nil
			}
			return notifications.HandleNewsletterSubscribed(ctx, event)
		})
		if err != nil {
			log.Error("newsletter consumer stopped", zap.Error(err))
			cancel()
		}
	}()

	wg.Wait()
	log.Info("worker stopped")
}
