package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/kafka"
	"github.com/Domenick1991/staybooking/internal/logging"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/Domenick1991/staybooking/internal/service/notification"
	"github.com/Domenick1991/staybooking/internal/subscribers"
	"github.com/Domenick1991/staybooking/internal/telegram"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
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
	if cfg.Telegram.Token == "" {
		logrus.Fatal("TELEGRAM_BOT_TOKEN is required for the worker")
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

	store := subscribers.NewRedisStore(cfg.Redis)
	defer store.Close()

	bot, err := telegram.NewBot(cfg.Telegram.Token, log)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	notifications := notification.NewService(
		store,
		bot,
		repository.NewBookingRepository(pool),
		notification.NewPublisher(producer, cfg.Kafka.NotificationsTopic, log,
			notification.WithPublishAttempts(cfg.Kafka.PublishAttempts),
			notification.WithPublishTimeout(cfg.Kafka.PublishTimeout())),
		log,
		notification.WithRetry(cfg.Worker.RetryAttempts, cfg.Worker.RetryDelay()),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			return notifications.HandleEvent(ctx, msg.Value)
		}); err != nil && ctx.Err() == nil {
			log.WithError(err).Error("notification consumer stopped")
			stop()
		}
	}()

	go bot.Listen(ctx, notifications)

	scheduler := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log)))
	if _, err := scheduler.AddFunc(cfg.Worker.ExpirySchedule, func() {
		if err := notifications.RunExpirySweep(ctx); err != nil {
			log.WithError(err).Error("expiry sweep failed")
		}
	}); err != nil {
		log.Fatalf("schedule expiry sweep %q: %v", cfg.Worker.ExpirySchedule, err)
	}
	scheduler.Start()
	log.WithField("schedule", cfg.Worker.ExpirySchedule).Info("worker started")

	<-ctx.Done()
	log.Info("shutting down worker")
	<-scheduler.Stop().Done()
}
