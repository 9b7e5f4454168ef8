package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/staybooking/api"
	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/auth"
	"github.com/Domenick1991/staybooking/internal/bootstrap"
	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/Domenick1991/staybooking/internal/logging"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/Domenick1991/staybooking/internal/service/accommodation"
	"github.com/Domenick1991/staybooking/internal/service/booking"
	"github.com/Domenick1991/staybooking/internal/service/notification"
	"github.com/Domenick1991/staybooking/internal/service/payment"
	"github.com/Domenick1991/staybooking/internal/service/user"
	"github.com/Domenick1991/staybooking/internal/stripe"
	"github.com/Domenick1991/staybooking/internal/validation"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	log := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.WithError(err).Warn("kafka is not reachable, notifications may be lost")
	}
	notifier := notification.NewPublisher(producer, cfg.Kafka.NotificationsTopic, log,
		notification.WithPublishAttempts(cfg.Kafka.PublishAttempts),
		notification.WithPublishTimeout(cfg.Kafka.PublishTimeout()))

	accommodationRepo := repository.NewAccommodationRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	validate := validation.New(time.Now)

	accommodationService := accommodation.NewAccommodationService(accommodationRepo, notifier, log)
	bookingService := booking.NewBookingService(bookingRepo, notifier, log)
	paymentService := payment.NewPaymentService(
		paymentRepo,
		bookingRepo,
		accommodationRepo,
		stripe.NewClient(cfg.Payment.APIKey, cfg.Payment.Currency),
		notifier,
		cfg.Payment.BaseURL,
		log,
	)
	userService := user.NewUserService(userRepo, roleRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), tokens, log)

	router := bootstrap.NewRouter(cfg.HTTP, tokens, bootstrap.Handlers{
		Accommodations: api.NewAccommodationHandler(accommodationService, validate),
		Bookings:       api.NewBookingHandler(bookingService, validate),
		Payments:       api.NewPaymentHandler(paymentService, bookingService),
		Users:          api.NewUserHandler(userService, validate),
	}, log)

	if err := bootstrap.Run(ctx, cfg.HTTP, router, log); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
