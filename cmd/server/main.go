package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockstores-be/internal/address"
	"stockstores-be/internal/auth"
	"stockstores-be/internal/config"
	"stockstores-be/internal/events"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/mailer"
	"stockstores-be/internal/middleware"
	"stockstores-be/internal/order"
	"stockstores-be/internal/product"
	"stockstores-be/internal/rest"
	"stockstores-be/internal/review"
	"stockstores-be/internal/seed"
	"stockstores-be/internal/store"
	"stockstores-be/internal/upload"
	"stockstores-be/internal/user"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	zlog := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openRepositories(ctx, cfg)
	if err != nil {
		zlog.Fatal("failed to open entity store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	var publisher events.Publisher = events.NopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kp, err := events.NewKafkaPublisher(brokers, cfg.KafkaOrderTopic)
		if err != nil {
			zlog.Fatal("failed to create kafka publisher", zap.Error(err))
		}
		publisher = kp
		zlog.Info("order events enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaOrderTopic))
	}
	defer publisher.Close()

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL, cfg.ResetTokenTTL)
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.Email, cfg.EmailPassword)

	storeSvc := store.NewService(repos.stores, repos.products)
	userSvc := user.NewService(repos.users, issuer, mail, cfg.PrimaryURL())

	svc := rest.Services{
		Users:    userSvc,
		Stores:   storeSvc,
		Products: product.NewService(repos.products, storeSvc, repos.reviews),
		Reviews:  review.NewService(repos.reviews, repos.products),
		Orders:   order.NewService(repos.orders, repos.products, storeSvc, publisher),
		Shipping: address.NewService(repos.addresses),
		Uploads:  upload.NewService(userSvc, upload.NewCloudinaryClient(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret)),
		Seed:     seed.New(repos.users, !cfg.IsProduction()),
	}

	api := rest.NewServer(rest.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		Production:     cfg.IsProduction(),
	}, svc)

	limiter := middleware.NewRateLimiter(ctx, cfg.InternalSecret)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           chain(api.Handler(), issuer, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// chain wraps h so that a request passes request id, access log, auth and
// rate limit, in that order.
func chain(h http.Handler, parser middleware.TokenParser, limiter *middleware.RateLimiter) http.Handler {
	h = limiter.Middleware(h)
	h = middleware.Auth(parser)(h)
	h = logger.LoggingMiddleware(h)
	return logger.RequestIDMiddleware(h)
}
