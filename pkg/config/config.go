package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP      HTTP
	Logger    Logger
	Postgres  Postgres
	Kafka     Kafka
	Mailer    Mailer
	Invoicing Invoicing
}

type HTTP struct {
	Port          int    `env:"HTTP_PORT" envDefault:"8080"`
	APIKeyEnabled bool   `env:"HTTP_API_KEY_ENABLED" envDefault:"false"`
	APIKey        string `env:"HTTP_API_KEY" envDefault:"dev"`
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Postgres struct {
	DSN          string        `env:"POSTGRES_DSN"`
	MaxConn      int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	PingAttempts int           `env:"POSTGRES_PING_ATTEMPTS" envDefault:"10"`
	PingInterval time.Duration `env:"POSTGRES_PING_INTERVAL" envDefault:"500ms"`
}

type Kafka struct {
	Brokers       []string `env:"KAFKA_BROKERS"`
	PaymentsTopic string   `env:"KAFKA_PAYMENTS_TOPIC" envDefault:"invoices.payment-recorded"`
}

type Mailer struct {
	Host     string `env:"MAILER_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"MAILER_PORT" envDefault:"587"`
	Login    string `env:"MAILER_LOGIN"`
	Password string `env:"MAILER_PASSWORD"`
	From     string `env:"MAILER_FROM"`
	FromName string `env:"MAILER_FROM_NAME" envDefault:"Invoicing"`
}

type Invoicing struct {
	// CollectionAddress is the operator wallet payments are directed to when
	// an invoice does not carry its own.
	CollectionAddress string        `env:"COLLECTION_ADDRESS" envDefault:"0x8dF42792C9CfD917d1a9247Fef3Bc0a8e4e148f5"`
	BaseURL           string        `env:"INVOICE_BASE_URL" envDefault:"http://localhost:3000"`
	AuditInterval     time.Duration `env:"BALANCE_AUDIT_INTERVAL" envDefault:"1h"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
