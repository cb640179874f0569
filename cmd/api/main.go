package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nexuscart/nexuscart/internal/config"
	"github.com/nexuscart/nexuscart/internal/controllers"
	"github.com/nexuscart/nexuscart/internal/database"
	"github.com/nexuscart/nexuscart/internal/kafka"
	"github.com/nexuscart/nexuscart/internal/logger"
	"github.com/nexuscart/nexuscart/internal/middleware"
	"github.com/nexuscart/nexuscart/internal/repository"
	"github.com/nexuscart/nexuscart/internal/routes"
	"github.com/nexuscart/nexuscart/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	mongoClient, db, err := database.ConnectMongo(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatal("mongo connection failed", zap.Error(err))
	}
	defer func() {
		if err := database.DisconnectMongo(mongoClient); err != nil {
			log.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.KafkaBrokers, log)
	defer producer.Close()

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	cartRepo := repository.NewCartRepository(redisClient, cfg.CartTTL)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(userRepo, cartRepo, orderRepo, tokens, log)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, orderRepo, userRepo, producer, cfg.OrderTopic, log)
	orderService := services.NewOrderService(orderRepo, userRepo, producer, cfg.OrderTopic, log)
	newsletterService := services.NewNewsletterService(newsletterRepo, producer, cfg.NewsletterTopic, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit(rate.Every(time.Minute/300), 50))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(r, routes.Controllers{
		Auth:       controllers.NewAuthController(authService),
		Products:   controllers.NewProductController(productService),
		Cart:       controllers.NewCartController(cartService),
		Orders:     controllers.NewOrderController(orderService),
		Newsletter: controllers.NewNewsletterController(newsletterService),
	}, tokens)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("api listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
