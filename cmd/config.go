package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"http_port"`

	DBHost            string        `mapstructure:"db_host"`
	DBPort            string        `mapstructure:"db_port"`
	DBUser            string        `mapstructure:"db_user"`
	DBPassword        string        `mapstructure:"db_password"`
	DBName            string        `mapstructure:"db_name"`
	DBSslMode         string        `mapstructure:"db_sslmode"`
	DBMaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`

	RedisAddr             string        `mapstructure:"redis_addr"`
	IdempotencyTTL        time.Duration `mapstructure:"idempotency_ttl"`
	IdempotencyPendingTTL time.Duration `mapstructure:"idempotency_pending_ttl"`

	KafkaBrokers               []string `mapstructure:"kafka_brokers"`
	KafkaOrderPlacedTopic      string   `mapstructure:"kafka_order_placed_topic"`
	KafkaDeliveryAcceptedTopic string   `mapstructure:"kafka_delivery_accepted_topic"`

	OutboxRelaySchedule  string `mapstructure:"outbox_relay_schedule"`
	OutboxRelayBatchSize int    `mapstructure:"outbox_relay_batch_size"`

	OTelEndpoint      string  `mapstructure:"otel_exporter_otlp_endpoint"`
	OTelSamplingRatio float64 `mapstructure:"otel_sampling_ratio"`

	LogLevel string `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"http_port":                     "8080",
	"db_host":                       "localhost",
	"db_port":                       "5432",
	"db_user":                       "postgres",
	"db_password":                   "",
	"db_name":                       "marketplace",
	"db_sslmode":                    "disable",
	"db_max_open_conns":             25,
	"db_max_idle_conns":             5,
	"db_conn_max_lifetime":          "30m",
	"redis_addr":                    "",
	"idempotency_ttl":               "24h",
	"idempotency_pending_ttl":       "1m",
	"kafka_brokers":                 "",
	"kafka_order_placed_topic":      "orders.placed",
	"kafka_delivery_accepted_topic": "deliveries.accepted",
	"outbox_relay_schedule":         "* * * * * *",
	"outbox_relay_batch_size":       100,
	"otel_exporter_otlp_endpoint":   "",
	"otel_sampling_ratio":           1.0,
	"log_level":                     "info",
}

// LoadConfig reads envFile when it exists, then the process environment.
// Environment variables win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
