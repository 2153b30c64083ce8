package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"food-order/bot"
	"food-order/checkout"
	"food-order/config"
	"food-order/db"
	"food-order/notify"
	"food-order/services"
	"food-order/session"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		err = runMigrate(ctx, cfg, log)
	} else {
		err = run(ctx, cfg, log)
	}
	if err != nil {
		log.Error("exit", zap.Error(err))
		stop()
		log.Sync()
		os.Exit(1)
	}
}

// run serves the bot until ctx is done. Errors are returned so deferred closes
// still run before the process exits.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Telegram.Token == "" {
		return errors.New("TOKEN not set")
	}

	if err := db.Init(cfg.DB); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(ctx, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var pub checkout.Publisher = notify.LogPublisher{Log: log}
	if cfg.Broker.URL != "" {
		amqpPub, err := notify.Dial(cfg.Broker.URL, cfg.Broker.Queue, log)
		if err != nil {
			return fmt.Errorf("broker: %w", err)
		}
		defer amqpPub.Close()
		pub = amqpPub
		log.Info("publishing paid orders", zap.String("queue", cfg.Broker.Queue))
	}

	flow := checkout.New(services.OrderStore{}, pub, cfg.Checkout, log)
	b, err := bot.New(cfg, session.NewRegistry(), flow, log)
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	if cfg.Telegram.PaymentProviderToken == "" {
		log.Info("no payment provider token, orders are confirmed without invoice")
	}
	log.Info("bot started")
	b.Start(ctx)
	log.Info("bot stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL %q: %w", level, err)
	}
	return cfg.Build()
}

func runMigrate(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if err := db.Init(cfg.DB); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer db.Close()

	return applyMigrations(ctx, log)
}
