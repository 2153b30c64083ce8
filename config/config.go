package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	Checkout CheckoutConfig
	Broker   BrokerConfig
	LogLevel string
	Lang     string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func (c DBConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}

type TelegramConfig struct {
	Token                string
	PaymentProviderToken string // empty: orders are confirmed without an invoice
}

type CheckoutConfig struct {
	PaymentMethods []PaymentMethod
	// ClearDelay is how long the success screen keeps the order before the cart is cleared.
	ClearDelay time.Duration
	Currency   string
}

type PaymentMethod struct {
	ID   string
	Name string
}

type BrokerConfig struct {
	URL   string // empty disables order notifications
	Queue string
}

var knownPaymentMethods = map[string]string{
	"qris":  "QR Payments",
	"bca":   "BCA Virtual Account",
	"blu":   "Blu Virtual Account",
	"gopay": "Gopay Wallet",
}

const defaultPaymentMethods = "qris,bca,blu,gopay"

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT: %w", err)
	}
	delay, err := time.ParseDuration(getEnv("CHECKOUT_CLEAR_DELAY", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("CHECKOUT_CLEAR_DELAY: %w", err)
	}
	if delay < 0 {
		return nil, fmt.Errorf("CHECKOUT_CLEAR_DELAY must be >= 0")
	}
	methods, err := ParsePaymentMethods(getEnv("PAYMENT_METHODS", defaultPaymentMethods))
	if err != nil {
		return nil, err
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "food_order"),
		},
		Telegram: TelegramConfig{
			Token:                getEnv("TOKEN", ""),
			PaymentProviderToken: getEnv("PAYMENT_PROVIDER_TOKEN", ""),
		},
		Checkout: CheckoutConfig{
			PaymentMethods: methods,
			ClearDelay:     delay,
			Currency:       "IDR",
		},
		Broker: BrokerConfig{
			URL:   getEnv("AMQP_URL", ""),
			Queue: getEnv("AMQP_QUEUE", "orders"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Lang:     getEnv("DEFAULT_LANG", "id"),
	}, nil
}

// ParsePaymentMethods turns a comma separated list of method ids into display entries.
func ParsePaymentMethods(list string) ([]PaymentMethod, error) {
	var methods []PaymentMethod
	seen := map[string]bool{}
	for _, id := range strings.Split(list, ",") {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		name, ok := knownPaymentMethods[id]
		if !ok {
			return nil, fmt.Errorf("unknown payment method: %s", id)
		}
		seen[id] = true
		methods = append(methods, PaymentMethod{ID: id, Name: name})
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no payment methods configured")
	}
	return methods, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
